package util

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDeriveExcerpt(t *testing.T) {
	content := "<h1>Title</h1><p>First   paragraph\nwith &amp; entities.</p>"
	got := DeriveExcerpt(content, 160)
	want := "Title First paragraph with & entities."
	if got != want {
		t.Errorf("DeriveExcerpt = %q, want %q", got, want)
	}
}

func TestDeriveExcerptTruncates(t *testing.T) {
	content := strings.Repeat("字", 200)
	got := DeriveExcerpt(content, 160)
	if utf8.RuneCountInString(got) != 160 {
		t.Errorf("truncated length = %d runes, want 160", utf8.RuneCountInString(got))
	}
}

func TestDeriveExcerptShortContent(t *testing.T) {
	if got := DeriveExcerpt("<p>short</p>", 160); got != "short" {
		t.Errorf("DeriveExcerpt = %q, want %q", got, "short")
	}
}

func TestSanitizeContent(t *testing.T) {
	dirty := `<p>ok</p><script>alert("x")</script>`
	got := SanitizeContent(dirty)
	if strings.Contains(got, "script") {
		t.Errorf("script tag survived sanitization: %q", got)
	}
	if !strings.Contains(got, "<p>ok</p>") {
		t.Errorf("benign markup was stripped: %q", got)
	}
}
