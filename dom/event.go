package dom

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Event is delivered to listeners by [Document.Dispatch].
type Event struct {
	Type string

	// Target is the node the event was dispatched on.
	Target *html.Node

	// CurrentTarget is the node whose listener is running.
	CurrentTarget *html.Node

	// Detail is the payload passed to Dispatch.
	Detail any

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
// Remaining listeners on the current node still run.
func (e *Event) StopPropagation() { e.stopped = true }

// Listener handles an [Event].
type Listener func(e *Event)

var nonBubbling = map[string]bool{
	"mouseenter": true,
	"mouseleave": true,
	"focus":      true,
	"blur":       true,
	"load":       true,
}

// AddEventListener attaches fn to n for events of type typ. Listeners are
// never detached except by [Document.Remove].
func (d *Document) AddEventListener(n *html.Node, typ string, fn Listener) {
	if n == nil || fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	byType, ok := d.listeners[n]
	if !ok {
		byType = make(map[string][]Listener)
		d.listeners[n] = byType
	}
	byType[typ] = append(byType[typ], fn)
}

// Dispatch fires an event of type typ at target. Listeners on target run
// first, in the order they were added, then the event bubbles through the
// ancestors of target unless the type does not bubble (mouseenter,
// mouseleave, focus, blur, load) or a listener stops propagation.
func (d *Document) Dispatch(target *html.Node, typ string, detail any) *Event {
	e := &Event{Type: typ, Target: target, Detail: detail}
	d.trackHover(target, typ)
	d.logger.Debug("dispatch", zap.String("type", typ), zap.String("target", nodeName(target)))

	for n := target; n != nil; n = n.Parent {
		e.CurrentTarget = n
		for _, fn := range d.listenersFor(n, typ) {
			fn(e)
		}
		if e.stopped || nonBubbling[typ] {
			break
		}
	}
	e.CurrentTarget = nil
	return e
}

func (d *Document) listenersFor(n *html.Node, typ string) []Listener {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Listener(nil), d.listeners[n][typ]...)
}

func (d *Document) trackHover(target *html.Node, typ string) {
	if target == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	switch typ {
	case "mouseenter", "mouseover":
		d.hovered = target
	case "mouseleave", "mouseout":
		if d.hovered == target {
			d.hovered = target.Parent
		}
	}
}

// IsHovered reports whether the first node matching selector is under the
// pointer, that is whether it or one of its descendants received the last
// mouseenter or mouseover dispatched without a matching leave.
func (d *Document) IsHovered(selector string) (bool, error) {
	n, err := d.QuerySelector(selector, nil)
	if err != nil {
		return false, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for h := d.hovered; h != nil; h = h.Parent {
		if h == n {
			return true, nil
		}
	}
	return false, nil
}

// OnDOMReady runs fn when [Document.Ready] fires DOMContentLoaded at the
// root. Handlers added after that never run.
func (d *Document) OnDOMReady(fn func()) {
	if fn == nil {
		return
	}
	d.AddEventListener(d.root, "DOMContentLoaded", func(*Event) { fn() })
}

// Ready dispatches DOMContentLoaded at the root. Only the first call fires.
func (d *Document) Ready() {
	d.mu.Lock()
	if d.ready {
		d.mu.Unlock()
		return
	}
	d.ready = true
	d.mu.Unlock()
	d.Dispatch(d.root, "DOMContentLoaded", nil)
}

// OnHover tracks pointer hover over nodes. onIn runs on mouseenter and
// remembers the entered node; onOut runs on mouseout with the node that
// was last entered, across all of nodes.
func (d *Document) OnHover(nodes []*html.Node, onIn Listener, onOut func(e *Event, hovered *html.Node)) {
	var lastHovered *html.Node
	for _, n := range nodes {
		d.AddEventListener(n, "mouseenter", func(e *Event) {
			lastHovered = e.Target
			if onIn != nil {
				onIn(e)
			}
		})
		d.AddEventListener(n, "mouseout", func(e *Event) {
			if onOut != nil {
				onOut(e, lastHovered)
			}
		})
	}
}

// DelegateEvent listens for typ on context and calls fn only for events
// whose target carries every class in className. Several classes are
// written dot-separated, as in "btn.primary". A nil context means the root.
func (d *Document) DelegateEvent(typ, className string, fn Listener, context *html.Node) {
	var classes []string
	for _, c := range strings.Split(className, ".") {
		if c != "" {
			classes = append(classes, c)
		}
	}
	if context == nil {
		context = d.root
	}

	d.AddEventListener(context, typ, func(e *Event) {
		if len(classes) == 0 || e.Target == nil {
			return
		}
		for _, c := range classes {
			if !HasClass(e.Target, c) {
				return
			}
		}
		fn(e)
	})
}

func nodeName(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.DocumentNode {
		return "#document"
	}
	return n.Data
}
