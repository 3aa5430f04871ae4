// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package folders

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRulesExcludes(t *testing.T) {
	rules := DefaultRules()
	testCases := []struct {
		path string
		want bool
	}{
		{path: "__MACOSX/._x.txt", want: true},
		{path: "__MACOSX/nested/y.txt", want: true},
		{path: "Thumbs.db", want: true},
		{path: "photos/Thumbs.db", want: true},
		{path: ".DS_Store", want: true},
		{path: "notes.txt", want: false},
		{path: "MACOSX/x.txt", want: false},
		{path: "Thumbs.db.txt", want: false},
	}
	for _, tc := range testCases {
		if got := rules.Excludes(tc.path); got != tc.want {
			t.Errorf("Excludes(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestLoadRules(t *testing.T) {
	doc := `
- dir_prefix: ".git/"
  reason: vcs internals
- basename: desktop.ini
  reason: windows shell artifact
`
	rules, err := LoadRules(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadRules = %v, want nil", err)
	}
	wantPrefixes := []string{"__MACOSX/", ".git/"}
	wantBasenames := []string{".DS_Store", "Thumbs.db", "desktop.ini"}
	if diff := cmp.Diff(wantPrefixes, rules.DirPrefixes); diff != "" {
		t.Errorf("DirPrefixes diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantBasenames, rules.Basenames); diff != "" {
		t.Errorf("Basenames diff (-want +got):\n%s", diff)
	}
	if !rules.Excludes(".git/config") || !rules.Excludes("sub/desktop.ini") {
		t.Error("loaded rules do not exclude configured artifacts")
	}
}

func TestLoadRulesInvalid(t *testing.T) {
	testCases := []struct {
		test string
		doc  string
	}{
		{
			test: "both-set",
			doc:  "- dir_prefix: a/\n  basename: b\n  reason: r\n",
		},
		{
			test: "neither-set",
			doc:  "- reason: r\n",
		},
		{
			test: "missing-reason",
			doc:  "- basename: b\n",
		},
		{
			test: "not-yaml",
			doc:  "{{{",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.test, func(t *testing.T) {
			if _, err := LoadRules(strings.NewReader(tc.doc)); err == nil {
				t.Fatalf("LoadRules(%q) = nil error, want error", tc.doc)
			}
		})
	}
}
