// Package htmlcleaner normalizes arbitrary, possibly malformed HTML
// into a minimal allow-listed markup subset ready to submit as a
// content-management post body.
//
// # Overview
//
// htmlcleaner parses an HTML fragment using the standard
// golang.org/x/net/html parser, walks the resulting node tree, and
// rebuilds a new string containing only the tags and per-tag
// attributes a [Policy] permits. Styling baggage (style, class, id,
// and data-* attributes) is dropped on every tag; disallowed
// container tags are unwrapped so their content survives; script and
// style elements are removed with their content.
//
// Four operations share the policy tables:
//   - [Clean] — the structured cleaner (primary path)
//   - [CleanDegraded] — regex-based rewriting used when parsing faults
//   - [Analyze] — a read-only preview of what cleaning would remove
//   - [ExtractText] — plain-text extraction with block-boundary spacing
//
// # Degradation
//
// Clean never fails on bad markup. If the structured parse faults, the
// same call falls through to the degraded rewriter, which trades
// completeness for totality: it terminates on any byte sequence and
// makes no well-formedness promise. Attach a logger via
// [Cleaner.Logger] to observe when this happens. The only error the
// package surfaces is [LimitError], for inputs past the size or
// nesting caps.
//
// # Policies
//
// A [Policy] controls:
//   - Which element tags are allowed ([Policy.AllowedTags])
//   - Which attributes are allowed per tag ([Policy.AllowedAttributes])
//   - Which URL schemes are allowed in href/src ([Policy.AllowedSchemes])
//   - Input caps ([Policy.MaxDepth], [Policy.MaxInputBytes])
//
// [DefaultPolicy] covers the subset a typical publishing backend
// accepts: headings, paragraphs, inline formatting, lists, links,
// images, tables, code, and blockquotes, with attributes only on a,
// img, and blockquote.
//
// # Security
//
// The allow-list is closed: unknown tags and attributes are rejected
// by default, which covers script injection, event-handler attributes
// (onclick, onerror, ...), and CSS expression injection. href and src
// values must carry an allowed scheme, blocking javascript: and data:
// URLs; attribute values are checked after entity decoding, so encoded
// forms do not slip through.
//
// # Thread Safety
//
// All operations are pure functions of their input and the policy
// tables. A [Cleaner] and its Policy are safe for concurrent use as
// long as they are not mutated after first use.
//
// # Example
//
//	clean, err := htmlcleaner.Clean(`<h1 style="color:red">Title</h1>`)
//	// clean == "<h1>Title</h1>"
package htmlcleaner
