package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLParam(t *testing.T) {
	tests := []struct {
		search, name string
		want         string
		ok           bool
	}{
		{"?q=go+lang&page=2", "q", "go lang", true},
		{"?q=go+lang&page=2", "page", "2", true},
		{"?a=1&a=2", "a", "1", true},
		{"?name=J%C3%B6rg", "name", "Jörg", true},
		{"?empty=", "empty", "", true},
		{"?bad=%zz", "bad", "%zz", true},
		{"?xq=1", "q", "", false},
		{"", "q", "", false},
		{"?a.b=1&aXb=2", "a.b", "1", true},
	}
	for _, tt := range tests {
		got, ok := URLParam(tt.search, tt.name)
		assert.Equal(t, tt.ok, ok, "URLParam(%q, %q)", tt.search, tt.name)
		assert.Equal(t, tt.want, got, "URLParam(%q, %q)", tt.search, tt.name)
	}
}

func TestURLParamEdges(t *testing.T) {
	got, ok := URLParam("?tab=info#section", "tab")
	assert.True(t, ok)
	assert.Equal(t, "info", got, "a fragment is not part of the value")

	got, ok = URLParam("?raw=%FF", "raw")
	assert.True(t, ok)
	assert.Equal(t, "\xff", got)
}
