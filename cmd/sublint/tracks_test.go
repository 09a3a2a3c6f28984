package main

import (
	"reflect"
	"testing"

	"sublint/internal/subtitles"
)

func TestAlignedLinesEqualCountsSkipAlignment(t *testing.T) {
	source := []subtitles.Cue{
		{Start: 0, End: 1000, Text: "hello"},
		{Start: 1000, End: 2000, Text: "world"},
	}
	target := []subtitles.Cue{
		{Start: 0, End: 1000, Text: "hallo"},
		{Start: 1000, End: 2000, Text: "welt"},
	}

	src, tgt, aligned, err := alignedLines(source, target, masterSource)
	if err != nil {
		t.Fatalf("alignedLines: %v", err)
	}
	if aligned {
		t.Fatal("expected no alignment for equal counts")
	}
	if !reflect.DeepEqual(src, []string{"hello", "world"}) {
		t.Errorf("source lines = %q", src)
	}
	if !reflect.DeepEqual(tgt, []string{"hallo", "welt"}) {
		t.Errorf("target lines = %q", tgt)
	}
}

func TestAlignedLinesMasterDirection(t *testing.T) {
	source := []subtitles.Cue{
		{Start: 0, End: 2000, Text: "one two"},
	}
	target := []subtitles.Cue{
		{Start: 0, End: 1000, Text: "eins"},
		{Start: 1000, End: 2000, Text: "zwei"},
	}

	src, tgt, aligned, err := alignedLines(source, target, masterSource)
	if err != nil {
		t.Fatalf("alignedLines(source master): %v", err)
	}
	if !aligned {
		t.Fatal("expected alignment for differing counts")
	}
	if len(src) != 1 || len(tgt) != 1 {
		t.Fatalf("expected 1 row, got %d source / %d target", len(src), len(tgt))
	}
	if tgt[0] != "eins\nzwei" {
		t.Errorf("target combination = %q, want %q", tgt[0], "eins\nzwei")
	}

	src, tgt, _, err = alignedLines(source, target, masterTarget)
	if err != nil {
		t.Fatalf("alignedLines(target master): %v", err)
	}
	if len(src) != 2 || len(tgt) != 2 {
		t.Fatalf("expected 2 rows, got %d source / %d target", len(src), len(tgt))
	}
	if tgt[0] != "eins" || tgt[1] != "zwei" {
		t.Errorf("target lines = %q", tgt)
	}
	if src[0] != "one two" {
		t.Errorf("source line 0 = %q, want the master-overlapping text", src[0])
	}
}

func TestAlignedLinesRejectsUnknownMaster(t *testing.T) {
	if _, _, _, err := alignedLines(nil, nil, "both"); err == nil {
		t.Fatal("expected error for unknown master value")
	}
}

func TestTSVEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"two\nlines", "two\\nlines"},
		{"tab\there", "tab\\there"},
	}
	for _, tt := range tests {
		if got := tsvEscape(tt.in); got != tt.want {
			t.Errorf("tsvEscape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
