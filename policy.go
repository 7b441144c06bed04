package htmlcleaner

import "strings"

// Policy defines the markup subset that survives cleaning.
type Policy struct {
	// AllowedTags is the closed list of tag names kept in output.
	// Element nodes with any other tag are unwrapped (children kept
	// in place) or, for script-like tags, dropped with their content.
	AllowedTags []string

	// AllowedAttributes maps tag names to the attribute names kept on
	// that tag. Attributes absent from a tag's list are dropped
	// silently. Globally banned attributes (style, class, id, data-*,
	// on* event handlers) are dropped on every tag regardless of this
	// map.
	AllowedAttributes map[string][]string

	// AllowedSchemes lists the URL schemes (e.g. "http", "https",
	// "mailto") permitted in href and src attributes. Any URL whose
	// scheme is not in this list causes the attribute to be dropped.
	AllowedSchemes []string

	// MaxDepth limits how deeply nested input elements may be. Inputs
	// nested beyond MaxDepth are rejected with a *LimitError.
	// Zero means unlimited.
	MaxDepth int

	// MaxInputBytes caps the size of a single input. Larger inputs
	// are rejected with a *LimitError. Zero means unlimited.
	MaxInputBytes int
}

// DefaultPolicy returns the Policy used by the package-level
// functions: the minimal markup subset a content-management backend
// accepts — headings, paragraphs, basic formatting, lists, links,
// images, tables, code and blockquotes — with per-tag attribute
// allow-sets for a, img, and blockquote only. Links and image sources
// must use http, https, or mailto.
func DefaultPolicy() *Policy {
	return &Policy{
		AllowedTags: []string{
			"h1", "h2", "h3", "h4", "h5", "h6",
			"p", "br", "hr",
			"strong", "b", "em", "i", "u",
			"ul", "ol", "li",
			"a", "img",
			"blockquote", "pre", "code",
			"table", "thead", "tbody", "tr", "th", "td",
			"div", "span",
		},
		AllowedAttributes: map[string][]string{
			"a":          {"href", "title"},
			"img":        {"src", "alt", "title", "width", "height"},
			"blockquote": {"cite"},
		},
		AllowedSchemes: []string{"http", "https", "mailto"},
		MaxDepth:       512,
		MaxInputBytes:  4 << 20,
	}
}

// bannedAttr reports whether the attribute name is rejected on every
// tag, before per-tag allow-sets are consulted.
func bannedAttr(name string) bool {
	switch name {
	case "style", "class", "id":
		return true
	}
	return strings.HasPrefix(name, "data-") || strings.HasPrefix(name, "on")
}

func attrAllowed(attr, tag string, allowed map[string][]string) bool {
	for _, a := range allowed[tag] {
		if a == attr {
			return true
		}
	}
	return false
}

func sliceToSet(s []string) map[string]bool {
	m := make(map[string]bool, len(s))
	for _, v := range s {
		m[strings.ToLower(v)] = true
	}
	return m
}

// isDroppedElement reports whether a disallowed tag is removed with
// its whole subtree instead of unwrapped. These carry code or embed
// content, not text, so splicing their children into the output would
// leak it.
func isDroppedElement(tag string) bool {
	switch tag {
	case "script", "style", "iframe", "object", "embed":
		return true
	}
	return false
}

func isVoidElement(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// isBlockElement reports whether a tag establishes a word boundary
// when extracting plain text.
func isBlockElement(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6",
		"p", "div", "li", "ul", "ol", "dl", "dt", "dd",
		"table", "thead", "tbody", "tfoot", "tr", "th", "td",
		"blockquote", "pre", "address", "figure", "figcaption",
		"section", "article", "aside", "header", "footer", "nav",
		"form", "fieldset", "br", "hr":
		return true
	}
	return false
}

// rawTextElement reports whether whitespace inside the tag's subtree
// is significant and must pass through byte-for-byte.
func rawTextElement(tag string) bool {
	return tag == "pre" || tag == "code"
}
