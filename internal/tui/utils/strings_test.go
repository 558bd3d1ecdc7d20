package utils

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "fits", in: "https://acme.jfrog.io", width: 40, want: "https://acme.jfrog.io"},
		{name: "exact", in: "abcdef", width: 6, want: "abcdef"},
		{name: "cut", in: "abcdefgh", width: 5, want: "abcd…"},
		{name: "zero width", in: "abc", width: 0, want: ""},
		{name: "negative width", in: "abc", width: -3, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateString(tt.in, tt.width))
		})
	}
}

func TestTruncateString_WideRunes(t *testing.T) {
	got := TruncateString("環境設定の画面", 6)
	assert.LessOrEqual(t, runewidth.StringWidth(got), 6)
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
}
