package render

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/deusflow/noticias/internal/news"
)

const (
	dateLayout     = "2006-01-02"
	frontmatterSep = "---"
	defaultSource  = "built-in"
)

// Template is a text blob with {{name}} placeholders.
type Template struct {
	body   string
	source string
}

// New returns a template over body.
func New(body string) *Template {
	return &Template{body: body, source: "inline"}
}

// Default returns the built-in template.
func Default() *Template {
	return &Template{body: DefaultTemplate, source: defaultSource}
}

// LoadTemplate reads the template at path. It never fails: when the file is
// missing, unreadable or blank the built-in template is returned instead.
func LoadTemplate(path string, logger *slog.Logger) *Template {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("template not found, using built-in", "path", path)
		return Default()
	case err != nil:
		logger.Warn("template unreadable, using built-in", "path", path, "error", err)
		return Default()
	case len(bytes.TrimSpace(data)) == 0:
		logger.Warn("template is empty, using built-in", "path", path)
		return Default()
	}

	return &Template{body: string(data), source: path}
}

// Source tells where the template came from.
func (t *Template) Source() string {
	return t.source
}

// Render substitutes the candidate's fields into the template. Substitution
// is literal and single pass, so values that look like placeholders are
// copied as they are. Line endings are normalized to \n. A leading
// frontmatter block must be valid YAML.
func (t *Template) Render(c news.Candidate, now time.Time) (string, error) {
	r := strings.NewReplacer(
		"{{title}}", c.Title,
		"{{summary}}", c.Summary,
		"{{publishedAt}}", c.PublishedDate(now).UTC().Format(dateLayout),
		"{{category}}", c.Category,
		"{{source}}", c.Source,
		"{{originalUrl}}", c.Link,
		"{{content}}", c.Content,
		"{{currentDate}}", now.Format(dateLayout),
	)
	out := normalizeNewlines(r.Replace(t.body))

	if err := checkFrontmatter(out); err != nil {
		return "", err
	}
	return out, nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// checkFrontmatter parses the YAML block between the opening and closing
// "---" lines, if the document starts with one.
func checkFrontmatter(doc string) error {
	if !strings.HasPrefix(doc, frontmatterSep+"\n") {
		return nil
	}

	rest := doc[len(frontmatterSep)+1:]
	var block string
	switch {
	case strings.HasPrefix(rest, frontmatterSep+"\n") || rest == frontmatterSep:
		block = ""
	default:
		end := strings.Index(rest, "\n"+frontmatterSep+"\n")
		if end < 0 {
			if !strings.HasSuffix(rest, "\n"+frontmatterSep) {
				return errors.New("unterminated frontmatter")
			}
			end = len(rest) - len(frontmatterSep) - 1
		}
		block = rest[:end]
	}

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(block), &fields); err != nil {
		return fmt.Errorf("invalid frontmatter: %w", err)
	}
	return nil
}
