package product

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Taza Cinéfilos: Edición ¡Especial!", "taza-cinefilos-edicion-especial"},
		{"  Hello   World  ", "hello-world"},
		{"--a--b--", "a-b"},
		{"Ñoño el Niño", "nono-el-nino"},
		{"Calcetines 100% algodón", "calcetines-100-algodon"},
		{"日本", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short...", Truncate("short", 150))
	assert.Equal(t, "abc ...", Truncate("abc def", 4), "the cut is by rune count only")
	assert.Equal(t, "x \n...", Truncate("x \n", 150))
	assert.Equal(t, "ñañ...", Truncate("ñañaña", 3))

	long := strings.Repeat("x", 200)
	got := Truncate(long, 150)
	assert.Equal(t, 153, len(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}
