package htmlcleaner

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

var tagStripRe = regexp.MustCompile(`<[^>]*>`)

// ExtractText returns the text content of input with all markup
// removed. Words separated by block-level boundaries in the input are
// kept apart by a single space; whitespace collapses the same way
// Clean collapses it, with pre and code subtrees preserved
// byte-for-byte. Script-like elements contribute nothing. If the
// structured parse faults, tag delimiters are stripped by pattern
// instead. The only error returned is a *LimitError for over-cap
// input.
func (c *Cleaner) ExtractText(input string) (string, error) {
	p := c.policy()
	if p.MaxInputBytes > 0 && len(input) > p.MaxInputBytes {
		return "", &LimitError{What: "input bytes", Limit: p.MaxInputBytes, Actual: len(input)}
	}

	doc, err := c.parseHTML(input)
	if err != nil {
		c.logDegraded(err)
		return extractTextDegraded(input), nil
	}

	var buf bytes.Buffer
	var limitErr *LimitError

	boundary := func() {
		if buf.Len() > 0 && !endsInSpace(&buf) {
			buf.WriteByte(' ')
		}
	}

	var walk func(n *html.Node, depth int, raw bool)
	walk = func(n *html.Node, depth int, raw bool) {
		if limitErr != nil {
			return
		}
		switch n.Type {
		case html.TextNode:
			if raw {
				buf.WriteString(n.Data)
			} else {
				appendCollapsed(&buf, n.Data)
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
			block := isBlockElement(tag)
			if block {
				boundary()
			}
			for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
				walk(ch, depth+1, raw || rawTextElement(tag))
			}
			if block {
				boundary()
			}

		case html.CommentNode, html.DoctypeNode:
			// dropped

		default:
			for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
				walk(ch, depth, raw)
			}
		}
	}

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

// ExtractText extracts plain text with DefaultPolicy.
func ExtractText(input string) (string, error) {
	var c Cleaner
	return c.ExtractText(input)
}

// extractTextDegraded strips tag delimiters by pattern. Each removed
// tag becomes a space so words from adjacent blocks do not collide.
func extractTextDegraded(input string) string {
	out := scriptBlockRe.ReplaceAllString(input, " ")
	out = styleBlockRe.ReplaceAllString(out, " ")
	out = tagStripRe.ReplaceAllString(out, " ")
	return strings.TrimSpace(collapseSpace(out))
}

// appendCollapsed writes s with whitespace runs folded to one space,
// deduplicating against whatever the buffer already ends with.
func appendCollapsed(buf *bytes.Buffer, s string) {
	space := buf.Len() == 0 || endsInSpace(buf)
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				buf.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		buf.WriteRune(r)
	}
}

func endsInSpace(buf *bytes.Buffer) bool {
	b := buf.Bytes()
	if len(b) == 0 {
		return false
	}
	switch b[len(b)-1] {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
