package htmlcleaner

import (
	"regexp"
	"strings"
)

// Rewrite rules for the degraded path. Attribute patterns cover both
// double- and single-quoted values; script and style bodies are
// excised whole since their content is code, not copy.
var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	styleBlockRe  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`)

	styleAttrRe = regexp.MustCompile(`(?i)\s+style\s*=\s*("[^"]*"|'[^']*')`)
	dataAttrRe  = regexp.MustCompile(`(?i)\s+data-[\w-]+\s*=\s*("[^"]*"|'[^']*')`)
	classAttrRe = regexp.MustCompile(`(?i)\s+class\s*=\s*("[^"]*"|'[^']*')`)
	idAttrRe    = regexp.MustCompile(`(?i)\s+id\s*=\s*("[^"]*"|'[^']*')`)
	eventAttrRe = regexp.MustCompile(`(?i)\s+on[a-z]+\s*=\s*("[^"]*"|'[^']*')`)

	tagMarkerRe = regexp.MustCompile(`(?i)</?([a-zA-Z][a-zA-Z0-9-]*)[^>]*>`)
)

// CleanDegraded approximates Clean with ordered textual rewrites and
// no parser. It is the terminal recovery path: total over any string,
// it never fails, but it makes no well-formedness promise and nested
// or malformed disallowed tags may survive. Constructs a rule cannot
// match safely are left alone.
func (c *Cleaner) CleanDegraded(input string) string {
	p := c.policy()
	allowed := sliceToSet(p.AllowedTags)

	out := scriptBlockRe.ReplaceAllString(input, "")
	out = styleBlockRe.ReplaceAllString(out, "")

	out = styleAttrRe.ReplaceAllString(out, "")
	out = dataAttrRe.ReplaceAllString(out, "")
	out = classAttrRe.ReplaceAllString(out, "")
	out = idAttrRe.ReplaceAllString(out, "")
	out = eventAttrRe.ReplaceAllString(out, "")

	// Best-effort removal of disallowed tag markers, content kept.
	out = tagMarkerRe.ReplaceAllStringFunc(out, func(m string) string {
		name := strings.ToLower(tagMarkerRe.FindStringSubmatch(m)[1])
		if allowed[name] {
			return m
		}
		return ""
	})

	return strings.TrimSpace(out)
}

// CleanDegraded runs the degraded cleaner with DefaultPolicy.
func CleanDegraded(input string) string {
	var c Cleaner
	return c.CleanDegraded(input)
}
