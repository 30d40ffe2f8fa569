package news

import (
	"regexp"
	"strings"
	"time"
)

const (
	maxSlugRunes   = 50
	// emptySlugBase replaces a title that cleans down to nothing.
	emptySlugBase  = "noticia"
	slugDateLayout = "20060102"
)

// accentFolder maps a fixed set of accented Latin letters to their base letter.
var accentFolder = strings.NewReplacer(
	"á", "a", "à", "a", "ä", "a", "â", "a", "ã", "a", "å", "a",
	"é", "e", "è", "e", "ë", "e", "ê", "e",
	"í", "i", "ì", "i", "ï", "i", "î", "i",
	"ó", "o", "ò", "o", "ö", "o", "ô", "o", "õ", "o",
	"ú", "u", "ù", "u", "ü", "u", "û", "u",
	"ý", "y", "ÿ", "y",
	"ñ", "n", "ç", "c",
	"Á", "A", "À", "A", "Ä", "A", "Â", "A", "Ã", "A", "Å", "A",
	"É", "E", "È", "E", "Ë", "E", "Ê", "E",
	"Í", "I", "Ì", "I", "Ï", "I", "Î", "I",
	"Ó", "O", "Ò", "O", "Ö", "O", "Ô", "O", "Õ", "O",
	"Ú", "U", "Ù", "U", "Ü", "U", "Û", "U",
	"Ý", "Y", "Ÿ", "Y",
	"Ñ", "N", "Ç", "C",
)

var (
	nonSlugRune    = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}-]`)
	slugSeparators = regexp.MustCompile(`[\s\p{Z}-]+`)
)

// Slug derives a filesystem-safe identifier from title, suffixed with the
// date of now as -YYYYMMDD. The title part is at most 50 runes.
func Slug(title string, now time.Time) string {
	s := accentFolder.Replace(strings.ToLower(title))
	s = nonSlugRune.ReplaceAllString(s, "")
	s = slugSeparators.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if r := []rune(s); len(r) > maxSlugRunes {
		s = strings.TrimRight(string(r[:maxSlugRunes]), "-")
	}
	if s == "" {
		s = emptySlugBase
	}
	return s + "-" + now.Format(slugDateLayout)
}
