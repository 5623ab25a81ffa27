// Package dom provides a chainable selection API over HTML documents
// parsed with [golang.org/x/net/html].
//
// Every selection runs against an explicit [Document]; there is no global
// document. [Select] wraps the first match of a CSS selector and
// [SelectAll] wraps every match:
//
//	doc, _ := dom.ParseString(page)
//	dom.Select(doc, "#title").Text("Hello").Attr("data-ready", "1")
//
//	items := dom.SelectAll(doc, "li").FilterString("active")
//	items.Style("color", "red")
//	fmt.Println(items.Index("first"), items.Err())
//
// Selectors are evaluated by [github.com/andybalholm/cascadia], so
// pseudo-classes such as :first-child, :nth-child(2n) and :not(...) work in
// [Collection.FilterString].
//
// Listeners are attached with [Selection.On], [Collection.On] or
// [Document.AddEventListener] and fired with [Document.Dispatch], which
// bubbles through ancestors.
package dom
