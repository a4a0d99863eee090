package utils

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Annual Gala 2026", "annual-gala-2026"},
		{"  Hello,   World!  ", "hello-world"},
		{"already-slugged", "already-slugged"},
		{"ÜPPER", "pper"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRandomPassword(t *testing.T) {
	p := RandomPassword(10)
	if len(p) != 10 {
		t.Fatalf("len = %d, want 10", len(p))
	}
	for _, c := range p {
		if !strings.ContainsRune(passwordChars, c) {
			t.Errorf("unexpected character %q", c)
		}
	}
}

func TestUniqueSuffix(t *testing.T) {
	s := UniqueSuffix()
	if len(s) != 5 {
		t.Fatalf("len(%q) = %d, want 5", s, len(s))
	}
	if s != strings.ToLower(s) {
		t.Errorf("suffix must be lower-case, got %q", s)
	}
	seen := map[string]int{}
	for i := 0; i < 50; i++ {
		seen[UniqueSuffix()]++
	}
	if len(seen) < 2 {
		t.Errorf("50 suffixes produced %d distinct values", len(seen))
	}
}
