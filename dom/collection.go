package dom

import (
	"strings"

	"github.com/baxromumarov/ammo"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Collection is a chainable handle over an ordered list of nodes.
//
// A collection keeps its original list and, once [Collection.Filter] or
// [Collection.FilterString] has been called, a filtered list derived from
// the original. Mutators, iteration and [Collection.Find] work on the
// filtered list when there is one and on the original otherwise.
//
// Failures are recorded as in [Selection]; see [Collection.Err].
type Collection struct {
	doc      *Document
	selector string

	nodes       []*html.Node
	filtered    []*html.Node
	hasFiltered bool

	err error
}

// SelectAll returns a Collection over every node in doc matching selector.
// Matching nothing yields an empty collection, not an error.
func SelectAll(doc *Document, selector string) *Collection {
	c := &Collection{doc: doc, selector: selector}
	c.nodes, c.err = doc.QuerySelectorAll(selector, nil)
	return c
}

// SelectNodes returns a Collection over nodes. selector, which may be empty,
// is what pseudo-selector filters are appended to.
func SelectNodes(doc *Document, nodes []*html.Node, selector string) *Collection {
	return &Collection{
		doc:      doc,
		selector: selector,
		nodes:    append([]*html.Node(nil), nodes...),
	}
}

func (c *Collection) active() []*html.Node {
	if c.hasFiltered {
		return c.filtered
	}
	return c.nodes
}

// Filter keeps the nodes of the original list for which fn returns true.
func (c *Collection) Filter(fn func(n *html.Node, index int) bool) *Collection {
	if c.err != nil {
		return c
	}
	filtered := make([]*html.Node, 0, len(c.nodes))
	for i, n := range c.nodes {
		if fn(n, i) {
			filtered = append(filtered, n)
		}
	}
	c.filtered, c.hasFiltered = filtered, true
	return c
}

// FilterString filters the original list by a string. Without a colon,
// value is a class name and nodes carrying it are kept. With a colon,
// value is a pseudo-selector appended to the collection's selector, as in
// "li" + ":first-child", and nodes matching the combination are kept.
func (c *Collection) FilterString(value string) *Collection {
	if c.err != nil {
		return c
	}
	if !strings.Contains(value, ":") {
		return c.Filter(func(n *html.Node, _ int) bool {
			return HasClass(n, value)
		})
	}
	if c.selector == "" {
		c.err = ErrNoSelector
		return c
	}

	sel, err := c.doc.compile(c.selector + value)
	if err != nil {
		c.err = err
		return c
	}
	return c.Filter(func(n *html.Node, _ int) bool {
		return sel.Match(n)
	})
}

// Find replaces the active list with the descendants of its nodes that
// match selector, in order and without duplicates. The result becomes the
// collection's original list and selector, so later filters start from it.
func (c *Collection) Find(selector string) *Collection {
	if c.err != nil {
		return c
	}
	var found []*html.Node
	seen := make(map[*html.Node]bool)
	for _, n := range c.active() {
		matches, err := c.doc.QuerySelectorAll(selector, n)
		if err != nil {
			c.err = err
			return c
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				found = append(found, m)
			}
		}
	}
	c.selector = selector
	c.nodes, c.filtered, c.hasFiltered = found, nil, false
	return c
}

// Text replaces the inner content of every active node with value.
func (c *Collection) Text(value string) *Collection {
	return c.each(func(n *html.Node, _ int) error {
		return SetInnerHTML(n, value)
	})
}

// TextFunc replaces the inner content of every active node with
// fn(current, index). Empty results leave the node unchanged.
func (c *Collection) TextFunc(fn func(current string, index int) string) *Collection {
	return c.each(func(n *html.Node, i int) error {
		return textFunc(n, fn, i)
	})
}

// Style sets CSS property prop on every active node.
func (c *Collection) Style(prop, value string) *Collection {
	return c.each(func(n *html.Node, _ int) error {
		SetStyle(n, prop, value)
		return nil
	})
}

// StyleFunc sets CSS property prop on every active node to
// fn(current, index). Empty results leave the node unchanged.
func (c *Collection) StyleFunc(prop string, fn func(current string, index int) string) *Collection {
	return c.each(func(n *html.Node, i int) error {
		styleFunc(n, prop, fn, i)
		return nil
	})
}

// Attr sets attribute name on every active node.
func (c *Collection) Attr(name, value string) *Collection {
	return c.each(func(n *html.Node, _ int) error {
		SetAttr(n, name, value)
		return nil
	})
}

// AttrFunc sets attribute name on every active node to fn(current, index).
// Empty results leave the node unchanged.
func (c *Collection) AttrFunc(name string, fn func(current string, index int) string) *Collection {
	return c.each(func(n *html.Node, i int) error {
		attrFunc(n, name, fn, i)
		return nil
	})
}

// Data sets the inner content of the active node at index i to raw[i].
// Nodes past the end of raw are left alone.
func (c *Collection) Data(raw []string) *Collection {
	return c.each(func(n *html.Node, i int) error {
		if i >= len(raw) {
			return nil
		}
		return SetInnerHTML(n, raw[i])
	})
}

// On attaches fn to every active node for events of type typ.
func (c *Collection) On(typ string, fn Listener) *Collection {
	return c.each(func(n *html.Node, _ int) error {
		c.doc.AddEventListener(n, typ, fn)
		return nil
	})
}

// Each calls fn for every active node.
func (c *Collection) Each(fn func(n *html.Node, index int)) *Collection {
	return c.each(func(n *html.Node, i int) error {
		fn(n, i)
		return nil
	})
}

// each applies fn to the active nodes, keeping the first error and
// carrying on with the rest.
func (c *Collection) each(fn func(n *html.Node, index int) error) *Collection {
	if c.err != nil {
		return c
	}
	for i, n := range c.active() {
		if err := fn(n, i); err != nil && c.err == nil {
			c.err = err
		}
	}
	return c
}

// Eq returns the active node at index and whether it exists.
func (c *Collection) Eq(index int) (*html.Node, bool) {
	nodes := c.active()
	if c.err != nil || index < 0 || index >= len(nodes) {
		return nil, false
	}
	return nodes[index], true
}

// Index returns the position of the first active node carrying class, or
// -1 when none does.
func (c *Collection) Index(class string) int {
	if c.err != nil {
		return -1
	}
	for i, n := range c.active() {
		if HasClass(n, class) {
			return i
		}
	}
	return -1
}

// AsyncHandler processes one node of [Collection.Async]. It must call
// resolve to let the next node start.
type AsyncHandler func(resolve func(), n *html.Node, index int)

// Async runs handler over the active nodes one at a time and then calls
// complete, if non-nil. Node i+1 is handed out only after the handler for
// node i has called resolve; a handler that never resolves stalls the rest
// forever.
func (c *Collection) Async(handler AsyncHandler, complete func()) *Collection {
	c.AsyncSequence(handler, complete)
	return c
}

// AsyncSequence is [Collection.Async] returning the running sequence, so
// callers can wait for it. After a failure it returns nil.
func (c *Collection) AsyncSequence(handler AsyncHandler, complete func()) *ammo.Sequence {
	if c.err != nil {
		return nil
	}
	seq := ammo.NewSequence(ammo.WithLogger(c.doc.logger), ammo.WithName("dom.async"))
	for i, n := range c.active() {
		seq.Chain(func(k ammo.Continuation) {
			handler(func() { k.Resolve(n) }, n, i)
		})
	}
	if complete != nil {
		seq.Chain(func(k ammo.Continuation) {
			complete()
			k.Resolve(nil)
		})
	}
	c.doc.logger.Debug("async over collection", zap.Int("nodes", len(c.active())))
	seq.Execute(0)
	return seq
}

// Get returns a copy of the active list.
func (c *Collection) Get() []*html.Node {
	return append([]*html.Node(nil), c.active()...)
}

// Len returns the length of the active list.
func (c *Collection) Len() int {
	return len(c.active())
}

// Err returns the first failure recorded by the chain.
func (c *Collection) Err() error {
	return c.err
}
