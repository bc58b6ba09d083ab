package parse

import (
	"strings"
	"testing"
)

func TestNormalize_UnescapesDoubledBeforeSingle(t *testing.T) {
	// Model output is sometimes double-escaped; both layers must land on a
	// real newline.
	got := Normalize(`line one\\nline two\nline three`)
	want := "line one\nline two\nline three"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_UnescapesTabsAndCarriageReturns(t *testing.T) {
	got := Normalize(`a\tb\rc`)
	if got != "a\tb\rc" {
		t.Errorf("Normalize() = %q", got)
	}
}

func TestNormalize_CollapsesBlankRuns(t *testing.T) {
	got := Normalize("a\n\n\n\n\nb")
	if got != "a\n\nb" {
		t.Errorf("Normalize() = %q, want %q", got, "a\n\nb")
	}
}

func TestNormalize_StripsWrappingQuotes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"hello"`, "hello"},
		{`  "hello"  `, "hello"},
		{`"hello`, `"hello`},       // unbalanced, keep
		{`say "hi" now`, `say "hi" now`}, // interior quotes, keep
		{`""`, ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_InsertsNewlineBeforeGluedHeading(t *testing.T) {
	got := Normalize("intro text## Section")
	if got != "intro text\n## Section" {
		t.Errorf("Normalize() = %q", got)
	}

	// Already on its own line: untouched.
	got = Normalize("intro text\n\n## Section")
	if got != "intro text\n\n## Section" {
		t.Errorf("Normalize() = %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		`line\\none\ntwo`,
		"a\n\n\n\nb",
		`"wrapped"`,
		`""x""`,
		"text## Heading",
		"  padded  ",
		`mixed\n\n\n"quotes"## h`,
		"多字节文本\\n换行",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalize_HeadingMidSentenceHashUntouched(t *testing.T) {
	// "#1" is not a heading marker (no trailing space after the hashes).
	got := Normalize("item #1 is fine")
	if got != "item #1 is fine" {
		t.Errorf("Normalize() = %q", got)
	}
}

func TestNormalize_LongInput(t *testing.T) {
	in := strings.Repeat("chunk\\n", 2000)
	once := Normalize(in)
	if Normalize(once) != once {
		t.Error("Normalize not idempotent on long input")
	}
}
