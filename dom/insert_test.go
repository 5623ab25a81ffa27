package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestInsertAdjacentHTML(t *testing.T) {
	doc, err := ParseString(`<ul id="l"><li id="mid">mid</li></ul>`)
	require.NoError(t, err)
	mid := Select(doc, "#mid").Get()

	require.NoError(t, PrependBeforeBeginning(mid, "<li>a</li><li>b</li>"))
	require.NoError(t, AppendAfterEnd(mid, "<li>y</li><li>z</li>"))
	require.NoError(t, PrependAfterBeginning(mid, "<i>1</i>"))
	require.NoError(t, AppendBeforeEnd(mid, "<i>2</i>"))

	assert.Equal(t,
		`<li>a</li><li>b</li><li id="mid"><i>1</i>mid<i>2</i></li><li>y</li><li>z</li>`,
		InnerHTML(Select(doc, "#l").Get()))
}

func TestInsertAdjacentHTMLDetached(t *testing.T) {
	n := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	assert.ErrorIs(t, AppendAfterEnd(n, "<p>x</p>"), ErrNoParent)
	assert.ErrorIs(t, PrependBeforeBeginning(n, "<p>x</p>"), ErrNoParent)

	require.NoError(t, AppendBeforeEnd(n, "<p>x</p>"))
	assert.Equal(t, "<p>x</p>", InnerHTML(n))

	assert.Error(t, InsertAdjacentHTML(n, Position("middle"), "x"))
}

func TestStyleHelpers(t *testing.T) {
	n := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	SetAttr(n, "style", "color: red; font-weight: bold !important")

	assert.Equal(t, "red", GetStyle(n, "COLOR"))
	assert.Equal(t, "bold", GetStyle(n, "font-weight"))
	assert.Equal(t, "", GetStyle(n, "margin"))

	SetStyle(n, "color", "")
	v, _ := GetAttr(n, "style")
	assert.Equal(t, "font-weight: bold !important;", v)

	SetStyle(n, "font-weight", "")
	_, ok := GetAttr(n, "style")
	assert.False(t, ok, "style attribute is removed when empty")
}

func TestHasClass(t *testing.T) {
	n := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	SetAttr(n, "CLASS", "  a   b ")

	assert.True(t, HasClass(n, "a"))
	assert.True(t, HasClass(n, "b"))
	assert.False(t, HasClass(n, "ab"))
	assert.False(t, HasClass(n, ""))
	assert.False(t, HasClass(nil, "a"))

	RemoveAttr(n, "class")
	assert.False(t, HasClass(n, "a"))
}

func TestStyleWithoutTrailingSemicolon(t *testing.T) {
	n := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	SetAttr(n, "style", "color: blue")
	assert.Equal(t, "blue", GetStyle(n, "color"))

	SetStyle(n, "margin", "0")
	v, _ := GetAttr(n, "style")
	assert.Equal(t, "color: blue; margin: 0;", v)

	SetAttr(n, "style", "color: ; width: 2px")
	assert.Equal(t, "2px", GetStyle(n, "width"))
	SetStyle(n, "height", "1px")
	v, _ = GetAttr(n, "style")
	assert.Equal(t, "width: 2px; height: 1px;", v, "empty declarations are dropped")
}
