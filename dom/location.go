package dom

import (
	"net/url"
	"regexp"
	"strings"
)

// URLParam returns the first value of query parameter name in search, a
// location search string such as "?q=go+lang&page=2". Plus signs decode
// to spaces. It reports false when the parameter is absent.
//
// The value ends at the next "&" or "#", so a fragment is never part of
// it. Percent escapes are decoded byte-wise: sequences that are not valid
// UTF-8, such as "%FF", are kept as raw bytes rather than rejected, and a
// malformed escape like "%zz" leaves the whole value undecoded.
func URLParam(search, name string) (string, bool) {
	re, err := regexp.Compile(`[?&]` + regexp.QuoteMeta(name) + `=([^&#]*)`)
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(search)
	if m == nil {
		return "", false
	}
	raw := strings.ReplaceAll(m[1], "+", " ")
	if v, err := url.PathUnescape(raw); err == nil {
		return v, true
	}
	return raw, true
}
