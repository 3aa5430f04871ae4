// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package folders

import (
	"archive/zip"
	"io"
	"iter"
	"path"
	"strings"

	"github.com/google/folderzip/internal/iterx"
	"github.com/google/folderzip/pkg/archive"
	"github.com/pkg/errors"
)

// SourceEntry is one folder-name candidate drawn from a source archive.
type SourceEntry struct {
	// Basename is the entry's final path segment, extension included.
	Basename string
	// Stem is the Basename with its final extension removed; it feeds the
	// folder naming algorithm.
	Stem string
	// Open returns the entry's payload. The payload is not materialized
	// until Open is called.
	Open func() (io.ReadCloser, error)
}

var errDone = errors.New("no more entries")

type zipCandidates struct {
	files []*zip.File
	rules Rules
	pos   int
}

func (it *zipCandidates) Next() (SourceEntry, error) {
	for it.pos < len(it.files) {
		f := it.files[it.pos]
		it.pos++
		if f.FileInfo().IsDir() {
			continue
		}
		if it.rules.Excludes(f.Name) {
			continue
		}
		base := path.Base(f.Name)
		return SourceEntry{
			Basename: base,
			Stem:     Stem(base),
			Open:     func() (io.ReadCloser, error) { return f.Open() },
		}, nil
	}
	return SourceEntry{}, errDone
}

// Candidates lists folder-name candidates from a source zip in stored entry
// order. Directory entries and system artifacts (per rules) are skipped.
// The sequence reads from the archive lazily and cannot be restarted; call
// Candidates again to re-read from the beginning.
func Candidates(r io.Reader, rules Rules) (iter.Seq2[SourceEntry, error], error) {
	zr, err := archive.OpenZip(r)
	if err != nil {
		return nil, err
	}
	return iterx.ToSeq2(&zipCandidates{files: zr.File, rules: rules}, errDone), nil
}

// Stem returns basename with its final extension removed. A leading-dot name
// with no other extension (".DS_Store") is its own stem.
func Stem(basename string) string {
	ext := path.Ext(basename)
	if ext == "" || ext == basename {
		return basename
	}
	return strings.TrimSuffix(basename, ext)
}
