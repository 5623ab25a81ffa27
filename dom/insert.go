package dom

import (
	"fmt"

	"golang.org/x/net/html"
)

// Position names where [InsertAdjacentHTML] places new nodes.
type Position string

const (
	BeforeBegin Position = "beforebegin"
	AfterBegin  Position = "afterbegin"
	BeforeEnd   Position = "beforeend"
	AfterEnd    Position = "afterend"
)

// InsertAdjacentHTML parses markup and inserts the resulting nodes
// relative to n: before n, as its first children, as its last children,
// or after n.
func InsertAdjacentHTML(n *html.Node, pos Position, markup string) error {
	switch pos {
	case BeforeBegin, AfterEnd:
		parent := n.Parent
		if parent == nil {
			return ErrNoParent
		}
		nodes, err := parseFragment(markup, parent)
		if err != nil {
			return err
		}
		ref := n
		if pos == AfterEnd {
			ref = n.NextSibling
		}
		for _, c := range nodes {
			parent.InsertBefore(c, ref)
		}
	case AfterBegin, BeforeEnd:
		nodes, err := parseFragment(markup, n)
		if err != nil {
			return err
		}
		ref := n.FirstChild
		if pos == BeforeEnd {
			ref = nil
		}
		for _, c := range nodes {
			n.InsertBefore(c, ref)
		}
	default:
		return fmt.Errorf("dom: unknown position %q", pos)
	}
	return nil
}

// AppendAfterEnd inserts markup right after n.
func AppendAfterEnd(n *html.Node, markup string) error {
	return InsertAdjacentHTML(n, AfterEnd, markup)
}

// AppendBeforeEnd inserts markup as the last children of n.
func AppendBeforeEnd(n *html.Node, markup string) error {
	return InsertAdjacentHTML(n, BeforeEnd, markup)
}

// PrependAfterBeginning inserts markup as the first children of n.
func PrependAfterBeginning(n *html.Node, markup string) error {
	return InsertAdjacentHTML(n, AfterBegin, markup)
}

// PrependBeforeBeginning inserts markup right before n.
func PrependBeforeBeginning(n *html.Node, markup string) error {
	return InsertAdjacentHTML(n, BeforeBegin, markup)
}
