// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package folders turns lists of names into a zip of per-name folders.
//
// Names may come from a caller-supplied string list or from the file entries
// of an uploaded zip. Each name becomes one top-level folder in the output
// archive, materialized with a zero-byte marker entry so that extraction
// tools which skip directory-only records still create the folder.
package folders

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fallback replaces names that are empty after normalization.
const Fallback = "Untitled"

// forbidden characters are invalid in path segments on at least one major
// filesystem. Each occurrence is replaced, not collapsed.
const forbidden = `\/:*?"<>|`

// Sanitize normalizes a raw name into a safe, single path segment.
//
// The steps run in a fixed order: NFKC normalization, whitespace trim,
// per-character substitution of forbidden characters and ASCII control bytes
// with '-', then removal of trailing spaces and periods. Trailing-character
// removal runs last because substitution can itself leave a trailing '-',
// which is kept, while a trailing '.' from the original name must not
// survive (some filesystems drop or reject it). A name that ends up empty
// becomes Fallback.
func Sanitize(raw string) string {
	name := strings.TrimSpace(norm.NFKC.String(raw))
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(forbidden, r) {
			b.WriteByte('-')
		} else {
			b.WriteRune(r)
		}
	}
	name = strings.TrimRight(b.String(), " .")
	if name == "" {
		return Fallback
	}
	return name
}

// clean applies the configured normalization level. With sanitization off,
// only whitespace trimming and the empty-name fallback apply.
func clean(raw string, sanitize bool) string {
	if sanitize {
		return Sanitize(raw)
	}
	name := strings.TrimSpace(raw)
	if name == "" {
		return Fallback
	}
	return name
}

// Registry tracks folder names already claimed within one build invocation.
// It is not safe for concurrent use; each build owns its own Registry.
type Registry map[string]bool

// NewRegistry returns an empty Registry.
func NewRegistry() Registry {
	return make(Registry)
}

// MakeUnique claims name within the registry. The first use of a name is
// returned unchanged; later uses probe "name (2)", "name (3)", ... and
// return the first unclaimed candidate.
func (r Registry) MakeUnique(name string) string {
	candidate := name
	for i := 2; r[candidate]; i++ {
		candidate = fmt.Sprintf("%s (%d)", name, i)
	}
	r[candidate] = true
	return candidate
}
