package htmlcleaner

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Counting patterns. Unlike the degraded path's rewrite rules these
// carry no leading-whitespace anchor, so packed or malformed
// attribute runs still count.
var (
	styleCountRe = regexp.MustCompile(`(?i)\bstyle\s*=\s*("[^"]*"|'[^']*')`)
	dataCountRe  = regexp.MustCompile(`(?i)\bdata-[\w-]+\s*=\s*("[^"]*"|'[^']*')`)
	classCountRe = regexp.MustCompile(`(?i)\bclass\s*=\s*("[^"]*"|'[^']*')`)
	idCountRe    = regexp.MustCompile(`(?i)\bid\s*=\s*("[^"]*"|'[^']*')`)
)

// Report describes what cleaning would remove from an input. It is a
// plain value: returned by Analyze, never retained or mutated by the
// cleaners.
type Report struct {
	InputBytes   int
	CleanedBytes int

	StyleAttrs int
	DataAttrs  int
	ClassAttrs int
	IDAttrs    int

	// DisallowedTags counts element openings whose tag is outside the
	// allow-list; TagNames holds each such tag name once, in order of
	// first appearance.
	DisallowedTags int
	TagNames       []string

	// Reduction is the estimated size-reduction ratio,
	// (InputBytes - CleanedBytes) / InputBytes.
	Reduction float64
}

// Analyze computes what Clean would remove without producing cleaned
// output. It is read-only, never mutates input, and always returns a
// report: the tag scan runs on the tokenizer, which cannot fault, and
// an over-cap input gets its reduction estimated from the pattern
// counters instead of a full clean pass.
func (c *Cleaner) Analyze(input string) Report {
	p := c.policy()

	rep := Report{
		InputBytes: len(input),
		StyleAttrs: len(styleCountRe.FindAllString(input, -1)),
		DataAttrs:  len(dataCountRe.FindAllString(input, -1)),
		ClassAttrs: len(classCountRe.FindAllString(input, -1)),
		IDAttrs:    len(idCountRe.FindAllString(input, -1)),
	}

	allowed := sliceToSet(p.AllowedTags)
	seen := make(map[string]bool)
	z := html.NewTokenizer(strings.NewReader(input))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, _ := z.TagName()
		tag := strings.ToLower(string(name))
		if allowed[tag] {
			continue
		}
		rep.DisallowedTags++
		if !seen[tag] {
			seen[tag] = true
			rep.TagNames = append(rep.TagNames, tag)
		}
	}

	if cleaned, err := c.Clean(input); err == nil {
		rep.CleanedBytes = len(cleaned)
	} else {
		rep.CleanedBytes = rep.InputBytes - removableBytes(input)
	}
	if rep.InputBytes > 0 {
		rep.Reduction = float64(rep.InputBytes-rep.CleanedBytes) / float64(rep.InputBytes)
	}
	return rep
}

// Analyze analyzes input with DefaultPolicy.
func Analyze(input string) Report {
	var c Cleaner
	return c.Analyze(input)
}

// removableBytes sums the byte spans the attribute rules would strip.
// Used only when a full clean pass is unavailable.
func removableBytes(input string) int {
	n := 0
	for _, re := range []*regexp.Regexp{styleAttrRe, dataAttrRe, classAttrRe, idAttrRe, eventAttrRe} {
		for _, m := range re.FindAllString(input, -1) {
			n += len(m)
		}
	}
	return n
}
