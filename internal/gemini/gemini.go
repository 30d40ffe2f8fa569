package gemini

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const maxPromptRunes = 6000

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Summarize asks the model for a short Spanish summary of an article.
func (c *Client) Summarize(ctx context.Context, title, content string) (string, error) {
	model := c.client.GenerativeModel(c.model)

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(title, content)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Gemini")
	}

	response := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return parseSummary(response)
}

func buildPrompt(title, content string) string {
	content = strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(content) > maxPromptRunes {
		content = string([]rune(content)[:maxPromptRunes]) + " [TRUNCADO]"
	}

	return fmt.Sprintf(`Resume esta noticia de tecnología para desarrolladores.

NOTICIA:
Título: %s
Contenido: %s

REQUISITOS:
- Escribe en español neutro, en dos frases como máximo.
- No traduzcas nombres de productos, marcas ni organizaciones.
- No uses comillas ni empieces con "Esta noticia trata de".

Responde con una sola línea en este formato:
RESUMEN: <resumen>
`, title, content)
}

var summaryLabel = regexp.MustCompile(`(?i)^\s*\**\s*resumen\s*\**\s*:\s*`)

// parseSummary extracts the text after the RESUMEN label. Without a label the
// whole response is taken.
func parseSummary(response string) (string, error) {
	lines := strings.Split(strings.ReplaceAll(response, "\r", ""), "\n")

	var picked []string
	labelled := false
	for _, line := range lines {
		if loc := summaryLabel.FindStringIndex(line); loc != nil {
			labelled = true
			picked = []string{line[loc[1]:]}
			continue
		}
		if labelled {
			picked = append(picked, line)
		}
	}
	if !labelled {
		picked = lines
	}

	summary := strings.Join(strings.Fields(strings.Join(picked, " ")), " ")
	if summary == "" {
		return "", errors.New("empty summary from Gemini")
	}
	return summary, nil
}
