package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html><head><title>t</title></head>
<body>
  <div id="main" class="box">
    <h1 id="title" style="color: blue">Hello</h1>
    <p class="lead">first <b>bold</b></p>
    <a id="link" href="/a">link</a>
  </div>
  <ul id="list">
    <li>one</li>
    <li class="foo">two</li>
    <li>three</li>
  </ul>
</body></html>`

func mustParse(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(page)
	require.NoError(t, err)
	return doc
}

func TestSelectText(t *testing.T) {
	doc := mustParse(t)

	s := Select(doc, "#title").Text("Bye <i>now</i>")
	require.NoError(t, s.Err())
	assert.Equal(t, "Bye <i>now</i>", InnerHTML(s.Get()))
}

func TestSelectTextFunc(t *testing.T) {
	doc := mustParse(t)

	s := Select(doc, "#title").TextFunc(func(cur string, i int) string {
		assert.Equal(t, 0, i)
		return cur + "!"
	})
	assert.Equal(t, "Hello!", InnerHTML(s.Get()))

	s.TextFunc(func(string, int) string { return "" })
	assert.Equal(t, "Hello!", InnerHTML(s.Get()), "empty result leaves content unchanged")
}

func TestSelectFind(t *testing.T) {
	doc := mustParse(t)

	s := Select(doc, "#main").Find("b")
	require.NoError(t, s.Err())
	assert.Equal(t, "bold", InnerHTML(s.Get()))

	s = Select(doc, "#main").Find("li")
	assert.ErrorIs(t, s.Err(), ErrNoNode, "li is not inside #main")
	assert.Nil(t, s.Get())
}

func TestSelectAttrAndStyle(t *testing.T) {
	doc := mustParse(t)

	s := Select(doc, "#link").
		Attr("href", "/b").
		AttrFunc("href", func(cur string, _ int) string { return cur + "?x=1" }).
		AttrFunc("title", func(cur string, _ int) string { return "" })
	require.NoError(t, s.Err())

	href, _ := GetAttr(s.Get(), "href")
	assert.Equal(t, "/b?x=1", href)
	_, ok := GetAttr(s.Get(), "title")
	assert.False(t, ok, "empty result does not create the attribute")

	h := Select(doc, "#title").
		StyleFunc("color", func(cur string, _ int) string {
			assert.Equal(t, "blue", cur, "function receives the current property value")
			return "red"
		}).
		Style("margin", "0")
	assert.Equal(t, "red", GetStyle(h.Get(), "color"))
	style, _ := GetAttr(h.Get(), "style")
	assert.Equal(t, "color: red; margin: 0;", style)
}

func TestSelectData(t *testing.T) {
	doc := mustParse(t)
	s := Select(doc, ".lead").Data("<span>raw</span>")
	assert.Equal(t, "<span>raw</span>", InnerHTML(s.Get()))
}

func TestSelectOn(t *testing.T) {
	doc := mustParse(t)

	var got []string
	s := Select(doc, "#link").On("click", func(e *Event) {
		got = append(got, e.Type)
	})
	doc.Dispatch(s.Get(), "click", nil)
	assert.Equal(t, []string{"click"}, got)
}

func TestSelectErrorsAreSticky(t *testing.T) {
	doc := mustParse(t)

	s := Select(doc, "#missing").Text("x").Attr("a", "b")
	assert.ErrorIs(t, s.Err(), ErrNoNode)
	assert.Nil(t, s.Get())

	s = Select(doc, "div[")
	require.Error(t, s.Err())
	assert.NotErrorIs(t, s.Err(), ErrNoNode)

	assert.ErrorIs(t, SelectNode(doc, nil).Err(), ErrNoNode)
}

func TestSelectNode(t *testing.T) {
	doc := mustParse(t)
	n, err := doc.QuerySelector("h1", nil)
	require.NoError(t, err)

	SelectNode(doc, n).Text("direct")
	assert.True(t, strings.Contains(doc.String(), `<h1 id="title" style="color: blue">direct</h1>`))
}
