package outline

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/structsum/internal/source"
)

func srcLines(texts ...string) []source.Line {
	lines := make([]source.Line, len(texts))
	for i, t := range texts {
		lines[i] = source.Line{Number: i + 1, Text: t}
	}
	return lines
}

func bare() Options {
	return Options{
		MinGranularity: 3,
		SuppressLowest: false,
	}
}

func TestRender_DefaultsSuppressLowestBreak(t *testing.T) {
	lines := srcLines(
		"#   ____________",
		"#   Intro",
		"some ordinary code",
		"### . . . . .",
		"### detail a",
	)

	got, err := Render("sample.c", lines, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "sample.c\n" +
		"line\tsection\n" +
		"1\t#   ________\n" +
		"2\t#   Intro\n" +
		"5\t### detail a\n"
	if got != want {
		t.Errorf("expected:\n%q\ngot:\n%q", want, got)
	}
	// The level-3 break is gone; its comment survives.
	if strings.Contains(got, ". .") {
		t.Error("level-3 break line should have been suppressed")
	}
}

func TestRender_KeepLowest(t *testing.T) {
	lines := srcLines(
		"### . . . . .",
		"### detail a",
	)
	opts := DefaultOptions()
	opts.SuppressLowest = false

	got, err := Render("f", lines, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "1\t### . . . . .") {
		t.Errorf("expected the break line to survive, got:\n%q", got)
	}
}

func TestRender_SuppressTargetsLowestPresentLevel(t *testing.T) {
	// No level-3 lines: the lowest present level is 2, so its break goes.
	lines := srcLines(
		"#   ____",
		"#   Intro",
		"##  ____",
		"##  Sub",
	)
	opts := bare()
	opts.SuppressLowest = true

	got, err := Render("f", lines, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "##  ____") {
		t.Errorf("level-2 break should be suppressed, got:\n%q", got)
	}
	if !strings.Contains(got, "#   ____") {
		t.Errorf("level-1 break should survive, got:\n%q", got)
	}
	if !strings.Contains(got, "##  Sub") {
		t.Errorf("level-2 comment should survive, got:\n%q", got)
	}
}

func TestRender_MinGranularityFilters(t *testing.T) {
	lines := srcLines(
		"#   One",
		"##  Two",
		"### Three",
	)

	opts := bare()
	opts.MinGranularity = 1
	coarse, err := Render("f", lines, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(coarse, "Two") || strings.Contains(coarse, "Three") {
		t.Errorf("granularity 1 must drop finer levels, got:\n%q", coarse)
	}

	opts.MinGranularity = 3
	fine, err := Render("f", lines, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Monotonic widening: every coarse entry appears in the fine output.
	for _, ln := range strings.Split(strings.TrimSuffix(coarse, "\n"), "\n") {
		if !strings.Contains(fine, ln) {
			t.Errorf("coarse entry %q missing from granularity-3 output", ln)
		}
	}
}

func TestRender_NoMatch(t *testing.T) {
	_, err := Render("f", srcLines("package main", "func f() {}"), DefaultOptions())
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}

	// Filtering can also empty the set: only level-3 lines, granularity 1.
	opts := bare()
	opts.MinGranularity = 1
	_, err = Render("f", srcLines("### detail"), opts)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch after filtering, got %v", err)
	}
}

func TestRender_AutoWidth(t *testing.T) {
	lines := srcLines(
		"#   _________________________________________",
		"#   short",
		"##  a slightly longer comment line",
	)
	opts := bare()
	opts.IncludeLineNumbers = false

	got, err := Render("f", lines, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := len("##  a slightly longer comment line")
	for _, ln := range strings.Split(strings.TrimSuffix(got, "\n"), "\n") {
		if len(ln) > want {
			t.Errorf("line %q exceeds auto width %d", ln, want)
		}
	}
	// The break line is measured against comments, not itself.
	if !strings.Contains(got, strings.Repeat("_", want-4)) {
		t.Errorf("break should be truncated to width %d, got:\n%q", want, got)
	}
}

func TestRender_ExplicitWidthTruncates(t *testing.T) {
	lines := srcLines("#   a very long section title indeed")
	opts := bare()
	opts.Width = 10
	opts.IncludeLineNumbers = false

	got, err := Render("f", lines, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "#   a very\n" {
		t.Errorf("expected plain 10-character prefix, got %q", got)
	}
}

func TestRender_ShortLinesNotPadded(t *testing.T) {
	lines := srcLines("#   hi")
	opts := bare()
	opts.Width = 40
	opts.IncludeLineNumbers = false

	got, err := Render("f", lines, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "#   hi\n" {
		t.Errorf("expected unpadded line, got %q", got)
	}
}

func TestRender_BareOutput(t *testing.T) {
	lines := srcLines(
		"#   Alpha",
		"##  Beta",
	)
	got, err := Render("ignored.c", lines, bare())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "#   Alpha\n##  Beta\n" {
		t.Errorf("expected undecorated entries only, got %q", got)
	}
}

func TestRender_HeaderWithoutLineNumbers(t *testing.T) {
	opts := bare()
	opts.IncludeHeader = true

	got, err := Render("f", srcLines("#   Alpha"), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "section\n") {
		t.Errorf("expected header without line column, got %q", got)
	}
}

func TestRender_OrderPreserved(t *testing.T) {
	lines := []source.Line{
		{Number: 10, Text: "### z-last alphabetically"},
		{Number: 20, Text: "#   a-first alphabetically"},
		{Number: 30, Text: "##  middle"},
	}
	got, err := Render("f", lines, bare())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if !strings.Contains(entries[0], "z-last") || !strings.Contains(entries[2], "middle") {
		t.Errorf("entries must keep source order, got %q", entries)
	}
}

func TestRender_Idempotent(t *testing.T) {
	lines := srcLines(
		"#   ____",
		"#   Intro",
		"### detail",
	)
	first, err := Render("f", lines, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Render("f", lines, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("identical input and options must produce byte-identical output")
	}
}

func TestOptions_Validate(t *testing.T) {
	for _, g := range []int{0, 4, -1} {
		opts := DefaultOptions()
		opts.MinGranularity = g
		if err := opts.Validate(); err == nil {
			t.Errorf("granularity %d: expected validation error", g)
		}
	}

	opts := DefaultOptions()
	opts.Width = -5
	if err := opts.Validate(); err == nil {
		t.Error("negative width: expected validation error")
	}
}
