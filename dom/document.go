package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

var (
	// ErrNoNode is recorded when a selector matches nothing or a nil node
	// is selected.
	ErrNoNode = errors.New("dom: no matching node")

	// ErrNoSelector is recorded when a pseudo-selector filter is applied to
	// a collection that was not built from a selector.
	ErrNoSelector = errors.New("dom: collection has no selector")

	// ErrNoParent is returned when an operation needs the parent of a
	// detached node.
	ErrNoParent = errors.New("dom: node has no parent")
)

// Document owns a parsed HTML tree together with the event listeners
// attached to its nodes. It is the explicit context every selection runs
// against.
//
// Tree mutation is not safe for concurrent use, just like a browser DOM.
// The selector cache and listener table are guarded internally.
type Document struct {
	root   *html.Node
	logger *zap.Logger

	mu        sync.Mutex
	selectors map[string]cascadia.Selector
	listeners map[*html.Node]map[string][]Listener
	hovered   *html.Node
	ready     bool
}

// Option configures a [Document].
type Option func(*Document)

// WithLogger sets the logger used for selector and event records.
func WithLogger(l *zap.Logger) Option {
	return func(d *Document) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDocument wraps an existing tree. root is usually an
// [html.DocumentNode] but any node works.
func NewDocument(root *html.Node, opts ...Option) *Document {
	d := &Document{
		root:      root,
		logger:    zap.NewNop(),
		selectors: make(map[string]cascadia.Selector),
		listeners: make(map[*html.Node]map[string][]Listener),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse reads an HTML document from r.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return NewDocument(root, opts...), nil
}

// ParseString parses an HTML document held in s.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Root returns the root node of the tree.
func (d *Document) Root() *html.Node {
	return d.root
}

// Render writes the whole tree to w.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the whole tree.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

func (d *Document) compile(selector string) (cascadia.Selector, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if sel, ok := d.selectors[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		d.logger.Debug("invalid selector", zap.String("selector", selector), zap.Error(err))
		return nil, fmt.Errorf("dom: selector %q: %w", selector, err)
	}
	d.selectors[selector] = sel
	return sel, nil
}

// QuerySelector returns the first descendant of within that matches
// selector, like Element.querySelector. A nil within means the root.
func (d *Document) QuerySelector(selector string, within *html.Node) (*html.Node, error) {
	sel, err := d.compile(selector)
	if err != nil {
		return nil, err
	}
	if within == nil {
		within = d.root
	}
	n := cascadia.Query(within, sel)
	if n == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoNode, selector)
	}
	return n, nil
}

// QuerySelectorAll returns every descendant of within that matches
// selector, in document order. A nil within means the root. No match is
// not an error.
func (d *Document) QuerySelectorAll(selector string, within *html.Node) ([]*html.Node, error) {
	sel, err := d.compile(selector)
	if err != nil {
		return nil, err
	}
	if within == nil {
		within = d.root
	}
	return cascadia.QueryAll(within, sel), nil
}

// Matches reports whether n matches selector.
func (d *Document) Matches(n *html.Node, selector string) (bool, error) {
	sel, err := d.compile(selector)
	if err != nil {
		return false, err
	}
	return sel.Match(n), nil
}

// Remove detaches n from its parent and drops the listeners of n and its
// descendants.
func (d *Document) Remove(n *html.Node) error {
	if n == nil || n.Parent == nil {
		return ErrNoParent
	}
	n.Parent.RemoveChild(n)

	d.mu.Lock()
	defer d.mu.Unlock()
	var forget func(*html.Node)
	forget = func(x *html.Node) {
		delete(d.listeners, x)
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			forget(c)
		}
	}
	forget(n)
	return nil
}
