package relay

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "ok", 10, "ok"},
		{"exact", "abcde", 5, "abcde"},
		{"ascii", "abcdef", 3, "abc..."},
		{"cut inside rune walks back", "aé", 2, "a..."},
		{"cut on rune boundary", "éé", 2, "é..."},
		{"wide runes", "日本語", 4, "日..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}

	long := truncate(strings.Repeat("é", 100), 120)
	assert.True(t, utf8.ValidString(long))
	assert.Equal(t, strings.Repeat("é", 60)+"...", long)
}
