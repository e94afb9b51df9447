package util

import (
	"errors"
	"testing"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello, World! 2024", "hello-world-2024"},
		{"  multiple   spaces  ", "multiple-spaces"},
		{"Go & Rust: A Comparison", "go-rust-a-comparison"},
		{"snake_case_title", "snake-case-title"},
		{"already-a-slug", "already-a-slug"},
		{"--leading and trailing--", "leading-and-trailing"},
		{"UPPER Case", "upper-case"},
	}

	for _, tc := range cases {
		got, err := GenerateSlug(tc.title)
		if err != nil {
			t.Fatalf("GenerateSlug(%q): unexpected error %v", tc.title, err)
		}
		if got != tc.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestGenerateSlugRejectsBlank(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n", "!!!???"} {
		if _, err := GenerateSlug(title); !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("GenerateSlug(%q): expected ErrEmptyTitle, got %v", title, err)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"a", "hello-world", "post-2024", "123"}
	for _, slug := range valid {
		if !IsValidSlug(slug) {
			t.Errorf("IsValidSlug(%q) = false, want true", slug)
		}
	}

	invalid := []string{"", "Hello", "has space", "under_score", "中文", "semi;colon"}
	for _, slug := range invalid {
		if IsValidSlug(slug) {
			t.Errorf("IsValidSlug(%q) = true, want false", slug)
		}
	}
}
