// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package folders

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSanitize(t *testing.T) {
	testCases := []struct {
		test  string
		input string
		want  string
	}{
		{test: "clean", input: "Report", want: "Report"},
		{test: "empty", input: "", want: "Untitled"},
		{test: "whitespace-only", input: "   ", want: "Untitled"},
		{test: "periods-only", input: "...", want: "Untitled"},
		{test: "surrounding-whitespace", input: "  Report  ", want: "Report"},
		{test: "forbidden-chars", input: `a\b/c:d*e?f"g<h>i|j`, want: "a-b-c-d-e-f-g-h-i-j"},
		{test: "per-char-not-per-run", input: "a///b", want: "a---b"},
		{test: "control-byte", input: "a\x00b", want: "a-b"},
		{test: "interior-tab", input: "tab\tname", want: "tab-name"},
		{test: "trailing-periods", input: "name..", want: "name"},
		{test: "trailing-period-space", input: "name. . ", want: "name"},
		{test: "substitution-before-trailing-strip", input: "A/B*C?.txt", want: "A-B-C-.txt"},
		{test: "stem-keeps-trailing-hyphen", input: "A/B*C?", want: "A-B-C-"},
		{test: "nfkc-ligature", input: "ﬁle", want: "file"},
		{test: "nfkc-fullwidth", input: "Ａｂｃ", want: "Abc"},
		{test: "nfkc-circled-digit", input: "item ①", want: "item 1"},
		{test: "nfkc-combining", input: "cafe\u0301", want: "café"},
	}
	for _, tc := range testCases {
		t.Run(tc.test, func(t *testing.T) {
			got := Sanitize(tc.input)
			if got != tc.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tc.input, got, tc.want)
			}
			if again := Sanitize(got); again != got {
				t.Errorf("Sanitize not idempotent: Sanitize(%q) = %q", got, again)
			}
		})
	}
}

func TestCleanWithoutSanitize(t *testing.T) {
	testCases := []struct {
		test  string
		input string
		want  string
	}{
		{test: "trims", input: "  Report  ", want: "Report"},
		{test: "empty-fallback", input: "   ", want: "Untitled"},
		{test: "forbidden-chars-kept", input: "a/b", want: "a/b"},
	}
	for _, tc := range testCases {
		t.Run(tc.test, func(t *testing.T) {
			if got := clean(tc.input, false); got != tc.want {
				t.Errorf("clean(%q, false) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestMakeUnique(t *testing.T) {
	testCases := []struct {
		test  string
		input []string
		want  []string
	}{
		{
			test:  "first-use-unchanged",
			input: []string{"Report"},
			want:  []string{"Report"},
		},
		{
			test:  "repeats-get-suffixes",
			input: []string{"Report", "Report", "Report"},
			want:  []string{"Report", "Report (2)", "Report (3)"},
		},
		{
			test:  "suffix-claimed-first",
			input: []string{"Report (2)", "Report", "Report"},
			want:  []string{"Report (2)", "Report", "Report (3)"},
		},
		{
			test:  "distinct-names-untouched",
			input: []string{"a", "b", "a"},
			want:  []string{"a", "b", "a (2)"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.test, func(t *testing.T) {
			reg := NewRegistry()
			var got []string
			for _, name := range tc.input {
				got = append(got, reg.MakeUnique(name))
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("MakeUnique sequence diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMakeUniquePairwiseDistinct(t *testing.T) {
	reg := NewRegistry()
	seen := make(map[string]bool)
	for _, name := range []string{"x", "x", "x (2)", "x", "y", "x (2)"} {
		got := reg.MakeUnique(name)
		if seen[got] {
			t.Fatalf("MakeUnique(%q) = %q already returned", name, got)
		}
		seen[got] = true
	}
}
