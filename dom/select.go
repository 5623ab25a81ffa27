package dom

import (
	"golang.org/x/net/html"
)

// Selection is a chainable handle over a single node.
//
// The first failure (an invalid selector, a selector that matches nothing,
// a fragment that does not parse) is recorded and every later call in the
// chain becomes a no-op. Check [Selection.Err] at the end of the chain.
type Selection struct {
	doc  *Document
	node *html.Node
	err  error
}

// Select returns a Selection over the first node in doc matching selector.
func Select(doc *Document, selector string) *Selection {
	s := &Selection{doc: doc}
	s.node, s.err = doc.QuerySelector(selector, nil)
	return s
}

// SelectNode returns a Selection over n.
func SelectNode(doc *Document, n *html.Node) *Selection {
	s := &Selection{doc: doc, node: n}
	if n == nil {
		s.err = ErrNoNode
	}
	return s
}

// Find re-scopes the selection to the first descendant of the current node
// matching selector.
func (s *Selection) Find(selector string) *Selection {
	if s.err != nil {
		return s
	}
	s.node, s.err = s.doc.QuerySelector(selector, s.node)
	return s
}

// Text replaces the inner content of the node with value.
func (s *Selection) Text(value string) *Selection {
	if s.err != nil {
		return s
	}
	s.err = SetInnerHTML(s.node, value)
	return s
}

// TextFunc replaces the inner content with fn(current, 0). An empty result
// leaves the content unchanged.
func (s *Selection) TextFunc(fn func(current string, index int) string) *Selection {
	if s.err != nil {
		return s
	}
	s.err = textFunc(s.node, fn, 0)
	return s
}

// Style sets CSS property prop on the node.
func (s *Selection) Style(prop, value string) *Selection {
	if s.err != nil {
		return s
	}
	SetStyle(s.node, prop, value)
	return s
}

// StyleFunc sets CSS property prop to fn(current, 0), where current is the
// property's present value. An empty result leaves it unchanged.
func (s *Selection) StyleFunc(prop string, fn func(current string, index int) string) *Selection {
	if s.err != nil {
		return s
	}
	styleFunc(s.node, prop, fn, 0)
	return s
}

// Attr sets attribute name on the node.
func (s *Selection) Attr(name, value string) *Selection {
	if s.err != nil {
		return s
	}
	SetAttr(s.node, name, value)
	return s
}

// AttrFunc sets attribute name to fn(current, 0). An empty result leaves the
// attribute unchanged.
func (s *Selection) AttrFunc(name string, fn func(current string, index int) string) *Selection {
	if s.err != nil {
		return s
	}
	attrFunc(s.node, name, fn, 0)
	return s
}

// Data replaces the inner content with raw, unconditionally.
func (s *Selection) Data(raw string) *Selection {
	if s.err != nil {
		return s
	}
	s.err = SetInnerHTML(s.node, raw)
	return s
}

// On attaches fn as a listener for events of type typ.
func (s *Selection) On(typ string, fn Listener) *Selection {
	if s.err != nil {
		return s
	}
	s.doc.AddEventListener(s.node, typ, fn)
	return s
}

// Get returns the underlying node, or nil after a failure.
func (s *Selection) Get() *html.Node {
	if s.err != nil {
		return nil
	}
	return s.node
}

// Err returns the first failure recorded by the chain.
func (s *Selection) Err() error {
	return s.err
}

func textFunc(n *html.Node, fn func(string, int) string, index int) error {
	if fn == nil {
		return nil
	}
	if v := fn(InnerHTML(n), index); v != "" {
		return SetInnerHTML(n, v)
	}
	return nil
}

func styleFunc(n *html.Node, prop string, fn func(string, int) string, index int) {
	if fn == nil {
		return
	}
	if v := fn(GetStyle(n, prop), index); v != "" {
		SetStyle(n, prop, v)
	}
}

func attrFunc(n *html.Node, name string, fn func(string, int) string, index int) {
	if fn == nil {
		return
	}
	cur, _ := GetAttr(n, name)
	if v := fn(cur, index); v != "" {
		SetAttr(n, name, v)
	}
}
