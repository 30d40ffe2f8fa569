package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelevanceClassifier(t *testing.T) {
	c := NewRelevanceClassifier([]string{"JavaScript", "desarrollo web", "  ", "Machine Learning"})

	assert.True(t, c.IsRelevant("Novedades de JAVASCRIPT", "", ""))
	assert.True(t, c.IsRelevant("Título", "todo sobre Desarrollo Web moderno", ""))
	assert.True(t, c.IsRelevant("", "", "intro to machine learning"))
	assert.False(t, c.IsRelevant("Receta de paella", "arroz y azafrán", "fuego lento"))
	assert.False(t, c.IsRelevant())

	term, ok := c.Match("curso de javascript")
	assert.True(t, ok)
	assert.Equal(t, "javascript", term)
}

func TestRelevanceClassifier_TermsSpanParts(t *testing.T) {
	c := NewRelevanceClassifier([]string{"desarrollo web"})
	// parts are joined with a space before matching
	assert.True(t, c.IsRelevant("desarrollo", "web"))
}

func TestRelevanceClassifier_EmptyVocabulary(t *testing.T) {
	c := NewRelevanceClassifier(nil)
	assert.False(t, c.IsRelevant("javascript"))
}

func TestLanguageClassifier(t *testing.T) {
	markers := []string{"para", "como", "desarrollo", "también", "Desarrollo"}
	c := NewLanguageClassifier(markers, 3)

	tests := []struct {
		name  string
		text  string
		count int
		want  bool
	}{
		{name: "empty", text: "", count: 0, want: false},
		{name: "blank", text: "   ", count: 0, want: false},
		{name: "no markers", text: "The quick brown fox", count: 0, want: false},
		{name: "two markers", text: "Guía para el desarrollo", count: 2, want: false},
		{name: "three markers", text: "Cómo y para qué sirve el desarrollo, y también", count: 3, want: true},
		{name: "repeats count once", text: "para para para", count: 1, want: false},
		{name: "case insensitive", text: "PARA COMO DESARROLLO", count: 3, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.count, c.MarkerCount(tt.text))
			assert.Equal(t, tt.want, c.IsTargetLanguage(tt.text))
		})
	}
}

func TestLanguageClassifier_DefaultThreshold(t *testing.T) {
	c := NewLanguageClassifier([]string{"uno", "dos", "tres"}, 0)
	assert.False(t, c.IsTargetLanguage("uno dos"))
	assert.True(t, c.IsTargetLanguage("uno dos tres"))
}
