// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package folders

import (
	"io"
	"path"
	"slices"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Rules describes source-archive entries that must not become folder-name
// candidates: OS file-browser artifacts that carry no user content.
type Rules struct {
	// DirPrefixes excludes any entry whose archive path starts with one of
	// these prefixes. Prefixes are matched against the raw entry path and
	// should end with '/'.
	DirPrefixes []string `yaml:"dir_prefixes"`
	// Basenames excludes any entry whose final path segment equals one of
	// these names exactly.
	Basenames []string `yaml:"basenames"`
}

// DefaultRules excludes the macOS resource-fork sidecar directory and the
// common OS-generated metadata files.
func DefaultRules() Rules {
	return Rules{
		DirPrefixes: []string{"__MACOSX/"},
		Basenames:   []string{".DS_Store", "Thumbs.db"},
	}
}

// Excludes reports whether the archive entry at the given path is a system
// artifact under these rules.
func (r Rules) Excludes(entryPath string) bool {
	for _, prefix := range r.DirPrefixes {
		if len(entryPath) >= len(prefix) && entryPath[:len(prefix)] == prefix {
			return true
		}
	}
	return slices.Contains(r.Basenames, path.Base(entryPath))
}

// RuleEntry is one user-supplied exclusion, as read from a rules file.
// Exactly one of DirPrefix or Basename must be set.
type RuleEntry struct {
	DirPrefix string `yaml:"dir_prefix,omitempty"`
	Basename  string `yaml:"basename,omitempty"`
	Reason    string `yaml:"reason"`
}

// Validate checks that the entry names exactly one exclusion and a reason.
func (ent RuleEntry) Validate() error {
	if (ent.DirPrefix != "") == (ent.Basename != "") {
		return errors.New("exactly one of dir_prefix or basename must be set")
	}
	if ent.Reason == "" {
		return errors.New("no reason provided")
	}
	return nil
}

// LoadRules reads a yaml list of RuleEntry values and merges them onto the
// default rule set.
func LoadRules(r io.Reader) (Rules, error) {
	var entries []RuleEntry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		return Rules{}, errors.Wrap(err, "decoding rules")
	}
	rules := DefaultRules()
	for i, ent := range entries {
		if err := ent.Validate(); err != nil {
			return Rules{}, errors.Wrapf(err, "validating rule %d", i)
		}
		if ent.DirPrefix != "" {
			rules.DirPrefixes = append(rules.DirPrefixes, ent.DirPrefix)
		} else {
			rules.Basenames = append(rules.Basenames, ent.Basename)
		}
	}
	return rules, nil
}
