package news

import "strings"

// DefaultMarkerThreshold is the number of distinct marker words a text needs
// to be taken as written in the target language.
const DefaultMarkerThreshold = 3

// RelevanceClassifier tells whether a text mentions any topic term.
// Matching is a case-insensitive substring test with no weighting.
type RelevanceClassifier struct {
	terms []string
}

// NewRelevanceClassifier builds a classifier over the given vocabulary.
func NewRelevanceClassifier(terms []string) *RelevanceClassifier {
	return &RelevanceClassifier{terms: lowerTerms(terms)}
}

// IsRelevant reports whether the joined parts contain at least one term.
func (c *RelevanceClassifier) IsRelevant(parts ...string) bool {
	_, ok := c.Match(parts...)
	return ok
}

// Match returns the first vocabulary term found in the joined parts.
func (c *RelevanceClassifier) Match(parts ...string) (string, bool) {
	text := strings.ToLower(strings.Join(parts, " "))
	for _, term := range c.terms {
		if strings.Contains(text, term) {
			return term, true
		}
	}
	return "", false
}

// LanguageClassifier detects the target language by counting marker words.
type LanguageClassifier struct {
	markers   []string
	threshold int
}

// NewLanguageClassifier builds a classifier. A non-positive threshold falls
// back to DefaultMarkerThreshold.
func NewLanguageClassifier(markers []string, threshold int) *LanguageClassifier {
	if threshold <= 0 {
		threshold = DefaultMarkerThreshold
	}
	return &LanguageClassifier{markers: lowerTerms(markers), threshold: threshold}
}

// MarkerCount returns how many distinct markers occur in text as substrings.
func (c *LanguageClassifier) MarkerCount(text string) int {
	text = strings.ToLower(text)
	count := 0
	for _, m := range c.markers {
		if strings.Contains(text, m) {
			count++
		}
	}
	return count
}

// IsTargetLanguage reports whether text carries at least threshold markers.
// Blank text is never in the target language.
func (c *LanguageClassifier) IsTargetLanguage(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return c.MarkerCount(text) >= c.threshold
}

// lowerTerms lower-cases, trims and de-duplicates a vocabulary, keeping order.
func lowerTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
