package htmlcleaner_test

import (
	"testing"

	"github.com/njchilds90/htmlcleaner"
)

func TestAnalyze_StyleCount(t *testing.T) {
	rep := htmlcleaner.Analyze(`<p style="margin:15px 0;">Hello</p>`)
	if rep.StyleAttrs != 1 {
		t.Errorf("StyleAttrs = %d, want 1", rep.StyleAttrs)
	}
	if rep.Reduction <= 0 {
		t.Errorf("Reduction = %f, want > 0", rep.Reduction)
	}
}

func TestAnalyze_AllCounters(t *testing.T) {
	input := `<h1 style="font-weight:400" data-attribute="main-title" class="header-main" id="top">Title</h1>` +
		`<p style="margin:0" data-content="intro">Body</p>`
	rep := htmlcleaner.Analyze(input)
	if rep.StyleAttrs != 2 {
		t.Errorf("StyleAttrs = %d, want 2", rep.StyleAttrs)
	}
	if rep.DataAttrs != 2 {
		t.Errorf("DataAttrs = %d, want 2", rep.DataAttrs)
	}
	if rep.ClassAttrs != 1 {
		t.Errorf("ClassAttrs = %d, want 1", rep.ClassAttrs)
	}
	if rep.IDAttrs != 1 {
		t.Errorf("IDAttrs = %d, want 1", rep.IDAttrs)
	}
	if rep.InputBytes != len(input) {
		t.Errorf("InputBytes = %d, want %d", rep.InputBytes, len(input))
	}
}

func TestAnalyze_PackedAttributesCounted(t *testing.T) {
	// No whitespace between the attributes; malformed but countable.
	rep := htmlcleaner.Analyze(`<p style="a"class="b"id="c">x</p>`)
	if rep.StyleAttrs != 1 {
		t.Errorf("StyleAttrs = %d, want 1", rep.StyleAttrs)
	}
	if rep.ClassAttrs != 1 {
		t.Errorf("ClassAttrs = %d, want 1", rep.ClassAttrs)
	}
	if rep.IDAttrs != 1 {
		t.Errorf("IDAttrs = %d, want 1", rep.IDAttrs)
	}
}

func TestAnalyze_DisallowedTags(t *testing.T) {
	rep := htmlcleaner.Analyze(`<section><p>x</p></section><custom>y</custom><section>z</section>`)
	if rep.DisallowedTags != 3 {
		t.Errorf("DisallowedTags = %d, want 3", rep.DisallowedTags)
	}
	want := []string{"section", "custom"}
	if len(rep.TagNames) != len(want) {
		t.Fatalf("TagNames = %v, want %v", rep.TagNames, want)
	}
	for i, tag := range want {
		if rep.TagNames[i] != tag {
			t.Errorf("TagNames[%d] = %q, want %q", i, rep.TagNames[i], tag)
		}
	}
}

func TestAnalyze_CleanInputNoReduction(t *testing.T) {
	input := `<p>Hello</p>`
	rep := htmlcleaner.Analyze(input)
	if rep.Reduction != 0 {
		t.Errorf("Reduction = %f, want 0", rep.Reduction)
	}
	if rep.CleanedBytes != len(input) {
		t.Errorf("CleanedBytes = %d, want %d", rep.CleanedBytes, len(input))
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	rep := htmlcleaner.Analyze("")
	if rep.InputBytes != 0 || rep.Reduction != 0 {
		t.Errorf("empty input should yield a zero report: %+v", rep)
	}
}

func TestAnalyze_DoesNotMutateInput(t *testing.T) {
	input := `<p style="margin:0">Hello</p>`
	before := input
	_ = htmlcleaner.Analyze(input)
	if input != before {
		t.Error("Analyze mutated its input")
	}
}

func TestAnalyze_GarbageStillReports(t *testing.T) {
	rep := htmlcleaner.Analyze("<<<< not html \x00\xff")
	if rep.InputBytes == 0 {
		t.Errorf("report should reflect input size: %+v", rep)
	}
}

func TestAnalyze_OverCapStillReports(t *testing.T) {
	p := htmlcleaner.DefaultPolicy()
	p.MaxInputBytes = 8
	c := htmlcleaner.Cleaner{Policy: p}
	input := `<p style="margin:0">Hello there</p>`
	rep := c.Analyze(input)
	if rep.InputBytes != len(input) {
		t.Errorf("InputBytes = %d, want %d", rep.InputBytes, len(input))
	}
	if rep.StyleAttrs != 1 {
		t.Errorf("StyleAttrs = %d, want 1", rep.StyleAttrs)
	}
	if rep.Reduction <= 0 {
		t.Errorf("Reduction should be estimated from pattern spans, got %f", rep.Reduction)
	}
}
