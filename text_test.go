package htmlcleaner_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/njchilds90/htmlcleaner"
)

func TestExtractText_BlockBoundaries(t *testing.T) {
	got, err := htmlcleaner.ExtractText(`<h1>Title</h1><p>Body text</p>`)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Title Body text" {
		t.Errorf("got %q want %q", got, "Title Body text")
	}
}

func TestExtractText_InlineTagsDoNotSplitWords(t *testing.T) {
	got, err := htmlcleaner.ExtractText(`<p>He<b>ll</b>o</p>`)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello" {
		t.Errorf("got %q want %q", got, "Hello")
	}
}

func TestExtractText_ListItems(t *testing.T) {
	got, err := htmlcleaner.ExtractText(`<ul><li>one</li><li>two</li></ul>`)
	if err != nil {
		t.Fatal(err)
	}
	if got != "one two" {
		t.Errorf("got %q want %q", got, "one two")
	}
}

func TestExtractText_NoMarkupResidue(t *testing.T) {
	input := `<a href="http://x" onclick="e()">link</a> <img src="http://y/p.png" alt="hidden">`
	got, err := htmlcleaner.ExtractText(input)
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(got, "<>") {
		t.Errorf("markup residue in text output: %q", got)
	}
	if strings.Contains(got, "href") || strings.Contains(got, "hidden") {
		t.Errorf("attribute leaked into text output: %q", got)
	}
	if got != "link" {
		t.Errorf("got %q want %q", got, "link")
	}
}

func TestExtractText_PreservesPreWhitespace(t *testing.T) {
	got, err := htmlcleaner.ExtractText("<p>x</p><pre>a\n  b</pre>")
	if err != nil {
		t.Fatal(err)
	}
	if got != "x a\n  b" {
		t.Errorf("got %q want %q", got, "x a\n  b")
	}
}

func TestExtractText_ScriptContentExcluded(t *testing.T) {
	got, err := htmlcleaner.ExtractText(`<p>keep</p><script>var x = 1</script>`)
	if err != nil {
		t.Fatal(err)
	}
	if got != "keep" {
		t.Errorf("got %q want %q", got, "keep")
	}
}

func TestExtractText_WhitespaceCollapsed(t *testing.T) {
	got, err := htmlcleaner.ExtractText("<p>a\n\n   b</p>")
	if err != nil {
		t.Fatal(err)
	}
	if got != "a b" {
		t.Errorf("got %q want %q", got, "a b")
	}
}

func TestExtractText_SizeLimit(t *testing.T) {
	p := htmlcleaner.DefaultPolicy()
	p.MaxInputBytes = 5
	c := htmlcleaner.Cleaner{Policy: p}
	_, err := c.ExtractText(`<p>too long for the cap</p>`)
	var le *htmlcleaner.LimitError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LimitError, got %v", err)
	}
}

var stripAllTagsRe = regexp.MustCompile(`<[^>]*>`)

func TestExtractText_MatchesCleanedContent(t *testing.T) {
	input := `<h1 class="t">Title</h1><section data-s="1"><p>Body <b>text</b> here</p></section>`
	text, err := htmlcleaner.ExtractText(input)
	if err != nil {
		t.Fatal(err)
	}
	cleaned, err := htmlcleaner.Clean(input)
	if err != nil {
		t.Fatal(err)
	}
	squash := func(s string) string {
		return strings.Join(strings.Fields(s), "")
	}
	fromClean := squash(stripAllTagsRe.ReplaceAllString(cleaned, " "))
	fromText := squash(text)
	if fromClean != fromText {
		t.Errorf("text diverges from cleaned content:\nclean %q\ntext  %q", fromClean, fromText)
	}
}
