package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "Sin etiquetas", want: "Sin etiquetas"},
		{name: "empty", in: "", want: ""},
		{name: "paragraphs", in: "<p>Hola</p><p>mundo &amp; más</p>", want: "Hola\nmundo & más"},
		{name: "drops scripts and styles", in: "<style>p{}</style><p>Texto</p><script>alert(1)</script>", want: "Texto"},
		{name: "inline elements join", in: "Aprende <b>Go</b> y <a href=\"#\">Rust</a>", want: "Aprende Go y Rust"},
		{name: "line breaks", in: "uno<br>dos<br/>tres", want: "uno\ndos\ntres"},
		{name: "entity only", in: "caf&eacute;", want: "café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}
