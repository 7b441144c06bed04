package htmlcleaner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// LimitError is returned when an input exceeds the Policy's size or
// nesting caps. It is the only error the cleaning operations surface;
// every other internal fault degrades instead of failing.
type LimitError struct {
	What  string
	Limit int

	// Actual is the observed size or depth. For input arriving from
	// a reader it is a lower bound: reading stops one byte past the
	// cap, so the true size may be larger.
	Actual int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("htmlcleaner: %s %d exceeds limit %d", e.What, e.Actual, e.Limit)
}

// parseFunc builds a node tree from HTML. It exists so tests can
// force the structured path to fault.
type parseFunc func(io.Reader) (*html.Node, error)

// Cleaner applies a Policy to HTML input. The zero value uses
// DefaultPolicy and logs nothing. A Cleaner is safe for concurrent
// use; its fields must not be mutated after first use.
type Cleaner struct {
	// Policy controls the allowed markup subset. Nil means
	// DefaultPolicy.
	Policy *Policy

	// Logger, when non-nil, receives one Warn record each time a
	// structured parse fails and the degraded path takes over.
	Logger *slog.Logger

	parse parseFunc
}

// Clean rebuilds input using only the tags and attributes the Policy
// allows. Disallowed containers are unwrapped so their content
// survives; script-like elements are dropped with their content.
// Clean never fails on malformed markup — if the structured parse
// faults the degraded regex path produces the result instead. The
// only error returned is a *LimitError for over-cap input.
func (c *Cleaner) Clean(input string) (string, error) {
	p := c.policy()
	if p.MaxInputBytes > 0 && len(input) > p.MaxInputBytes {
		return "", &LimitError{What: "input bytes", Limit: p.MaxInputBytes, Actual: len(input)}
	}
	if strings.TrimSpace(input) == "" {
		return "", nil
	}

	out, err := c.cleanTree(input, p)
	if err != nil {
		var le *LimitError
		if errors.As(err, &le) {
			return "", le
		}
		c.logDegraded(err)
		return c.CleanDegraded(input), nil
	}
	return out, nil
}

// CleanReader reads HTML from r and cleans it. Reads past
// MaxInputBytes are rejected without buffering the remainder, so the
// size a resulting *LimitError reports is a lower bound.
func (c *Cleaner) CleanReader(r io.Reader) (string, error) {
	p := c.policy()
	var (
		b   []byte
		err error
	)
	if p.MaxInputBytes > 0 {
		b, err = io.ReadAll(io.LimitReader(r, int64(p.MaxInputBytes)+1))
	} else {
		b, err = io.ReadAll(r)
	}
	if err != nil {
		return "", err
	}
	return c.Clean(string(b))
}

func (c *Cleaner) cleanTree(input string, p *Policy) (string, error) {
	doc, err := c.parseHTML(input)
	if err != nil {
		return "", err
	}

	allowedTags := sliceToSet(p.AllowedTags)
	allowedSchemes := sliceToSet(p.AllowedSchemes)

	var buf bytes.Buffer
	var limitErr *LimitError
	var walk func(n *html.Node, depth int, raw bool)

	walk = func(n *html.Node, depth int, raw bool) {
		if limitErr != nil {
			return
		}
		switch n.Type {
		case html.TextNode:
			if raw {
				buf.WriteString(escapeHTML(n.Data))
			} else {
				buf.WriteString(escapeHTML(collapseSpace(n.Data)))
			}

		case html.ElementNode:
			tag := strings.ToLower(n.Data)
			if isDroppedElement(tag) {
				return
			}
			if p.MaxDepth > 0 && depth > p.MaxDepth {
				limitErr = &LimitError{What: "nesting depth", Limit: p.MaxDepth, Actual: depth}
				return
			}

			if !allowedTags[tag] {
				// Unwrap: splice children into the output at this
				// position, tag markers discarded.
				for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
					walk(ch, depth+1, raw)
				}
				return
			}

			attrs := filterAttrs(n.Attr, tag, p.AllowedAttributes, allowedSchemes)
			buf.WriteByte('<')
			buf.WriteString(tag)
			for _, a := range attrs {
				buf.WriteByte(' ')
				buf.WriteString(strings.ToLower(a.Key))
				buf.WriteString(`="`)
				buf.WriteString(escapeHTML(a.Val))
				buf.WriteByte('"')
			}
			if isVoidElement(tag) {
				buf.WriteString(" />")
				return
			}
			buf.WriteByte('>')
			for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
				walk(ch, depth+1, raw || rawTextElement(tag))
			}
			buf.WriteString("</")
			buf.WriteString(tag)
			buf.WriteByte('>')

		case html.DocumentNode:
			for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
				walk(ch, depth, raw)
			}

		case html.DoctypeNode, html.CommentNode:
			// dropped

		default:
			for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
				walk(ch, depth, raw)
			}
		}
	}

	// html.Parse wraps fragments in <html><head><body>; walk the body.
	if body := findBody(doc); body != nil {
		for ch := body.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch, 1, false)
		}
	} else {
		walk(doc, 0, false)
	}

	if limitErr != nil {
		return "", limitErr
	}
	return strings.TrimSpace(buf.String()), nil
}

func (c *Cleaner) parseHTML(input string) (*html.Node, error) {
	parse := c.parse
	if parse == nil {
		parse = html.Parse
	}
	return parse(strings.NewReader(input))
}

func (c *Cleaner) policy() *Policy {
	if c.Policy != nil {
		return c.Policy
	}
	return DefaultPolicy()
}

func (c *Cleaner) logDegraded(err error) {
	if c.Logger != nil {
		c.Logger.Warn("structured parse failed, using degraded cleaner", "error", err)
	}
}

// Clean cleans input with DefaultPolicy.
func Clean(input string) (string, error) {
	var c Cleaner
	return c.Clean(input)
}

// CleanReader cleans HTML read from r with DefaultPolicy.
func CleanReader(r io.Reader) (string, error) {
	var c Cleaner
	return c.CleanReader(r)
}

// --- helpers ---------------------------------------------------------

// htmlEscaper escapes exactly the four characters that can break out
// of text or a double-quoted attribute value. Escaping more (the
// stdlib also rewrites ') would grow apostrophe-bearing text and
// break the cleaned-output-never-larger guarantee.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func filterAttrs(attrs []html.Attribute, tag string, allowed map[string][]string, schemes map[string]bool) []html.Attribute {
	var out []html.Attribute
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		if bannedAttr(key) || !attrAllowed(key, tag, allowed) {
			continue
		}
		if key == "href" || key == "src" {
			// Attribute values arrive entity-decoded from the parser,
			// so encoded scheme smuggling is already unfolded here.
			if !schemeAllowed(a.Val, schemes) {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

func schemeAllowed(raw string, schemes map[string]bool) bool {
	v := strings.TrimSpace(raw)
	// Strip control chars that can confuse URL parsers.
	v = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, v)

	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		// Relative URL — allow.
		return true
	}
	return schemes[strings.ToLower(u.Scheme)]
}

// collapseSpace folds every run of whitespace, newlines included,
// into a single space.
func collapseSpace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				sb.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func findBody(doc *html.Node) *html.Node {
	var find func(*html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.Data == "body" {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if r := find(c); r != nil {
				return r
			}
		}
		return nil
	}
	return find(doc)
}
