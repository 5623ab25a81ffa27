package dom

import (
	"slices"
	"strings"

	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// HasClass reports whether the class attribute of n lists class.
func HasClass(n *html.Node, class string) bool {
	if n == nil || class == "" {
		return false
	}
	v, _ := GetAttr(n, "class")
	return slices.Contains(strings.Fields(v), class)
}

// GetAttr returns the value of attribute name and whether it is present.
func GetAttr(n *html.Node, name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets attribute name on n, adding it if needed.
func SetAttr(n *html.Node, name, val string) {
	name = strings.ToLower(name)
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: val})
}

// RemoveAttr deletes attribute name from n.
func RemoveAttr(n *html.Node, name string) {
	name = strings.ToLower(name)
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == name
	})
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			break
		}
	}
	return b.String()
}

// OuterHTML renders n itself.
func OuterHTML(n *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}

// SetInnerHTML replaces the children of n with markup parsed as a
// fragment in the context of n.
func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := parseFragment(markup, n)
	if err != nil {
		return err
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

func parseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	if context != nil && context.Type != html.ElementNode {
		context = nil
	}
	return html.ParseFragment(strings.NewReader(markup), context)
}

type declaration struct {
	prop, value string
	important   bool
}

func styleDeclarations(n *html.Node) []declaration {
	raw, ok := GetAttr(n, "style")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	// The parser drops the value of a final declaration without ";".
	if !strings.HasSuffix(strings.TrimSpace(raw), ";") {
		raw += ";"
	}
	parsed, err := parser.ParseDeclarations(raw)
	if err != nil {
		return nil
	}
	out := make([]declaration, 0, len(parsed))
	for _, d := range parsed {
		if strings.TrimSpace(d.Value) == "" {
			continue
		}
		out = append(out, declaration{
			prop:      strings.ToLower(d.Property),
			value:     d.Value,
			important: d.Important,
		})
	}
	return out
}

// GetStyle returns the value of CSS property prop from the style
// attribute of n, or "" when it is not set.
func GetStyle(n *html.Node, prop string) string {
	prop = strings.ToLower(prop)
	for _, d := range styleDeclarations(n) {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

// SetStyle sets CSS property prop in the style attribute of n. An empty
// value removes the property, and the attribute when nothing is left.
func SetStyle(n *html.Node, prop, val string) {
	prop = strings.ToLower(prop)
	decls := styleDeclarations(n)

	idx := slices.IndexFunc(decls, func(d declaration) bool { return d.prop == prop })
	switch {
	case val == "" && idx >= 0:
		decls = slices.Delete(decls, idx, idx+1)
	case val == "":
	case idx >= 0:
		decls[idx] = declaration{prop: prop, value: val}
	default:
		decls = append(decls, declaration{prop: prop, value: val})
	}

	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		s := d.prop + ": " + d.value
		if d.important {
			s += " !important"
		}
		parts = append(parts, s)
	}
	SetAttr(n, "style", strings.Join(parts, "; ")+";")
}
