// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package folders

import (
	"archive/zip"
	"bytes"
	"io"
	"iter"
	"path"

	"github.com/pkg/errors"
)

// Marker is the zero-byte placeholder written inside every folder so that
// extraction tools which ignore directory-only records still create it.
const Marker = ".keep"

// Delivery constants for collaborators that hand the archive to a user.
const (
	DownloadName = "Folders.zip"
	ContentType  = "application/zip"
)

// Options configures one build invocation.
type Options struct {
	// Sanitize applies the full normalization pipeline to each candidate
	// name. When false, only whitespace trimming and the empty-name
	// fallback apply. Uniqueness always applies.
	Sanitize bool
	// IncludeContent copies each source payload into its folder alongside
	// the marker entry. Only meaningful for source-entry builds.
	IncludeContent bool
}

// builder owns the in-progress output archive and the name registry for a
// single build invocation.
type builder struct {
	zw   *zip.Writer
	reg  Registry
	opts Options
}

func newBuilder(buf *bytes.Buffer, opts Options) *builder {
	return &builder{zw: zip.NewWriter(buf), reg: NewRegistry(), opts: opts}
}

func (b *builder) claim(raw string) string {
	return b.reg.MakeUnique(clean(raw, b.opts.Sanitize))
}

func (b *builder) writeMarker(folder string) error {
	_, err := b.zw.Create(folder + "/" + Marker)
	return errors.Wrapf(err, "writing marker for %q", folder)
}

// BuildFromNames builds a zip with one empty folder per name, in input
// order. Empty names are skipped outright: no folder, no registry claim.
// Individual malformed names never fail the build; they resolve to
// "Untitled" and its uniquified variants.
func BuildFromNames(names []string, opts Options) ([]byte, error) {
	buf := new(bytes.Buffer)
	b := newBuilder(buf, opts)
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := b.writeMarker(b.claim(name)); err != nil {
			return nil, err
		}
	}
	if err := b.zw.Close(); err != nil {
		return nil, errors.Wrap(err, "finalizing archive")
	}
	return buf.Bytes(), nil
}

// BuildFromSource builds a zip with one folder per source entry, named after
// the entry's stem. When opts.IncludeContent is set, the original payload is
// written into the folder under its unmodified basename. Any entry read
// failure fails the whole build; no partial archive is returned.
func BuildFromSource(entries iter.Seq2[SourceEntry, error], opts Options) ([]byte, error) {
	buf := new(bytes.Buffer)
	b := newBuilder(buf, opts)
	for ent, err := range entries {
		if err != nil {
			return nil, errors.Wrap(err, "reading source entry")
		}
		folder := b.claim(ent.Stem)
		if err := b.writeMarker(folder); err != nil {
			return nil, err
		}
		if !b.opts.IncludeContent {
			continue
		}
		if err := b.writePayload(folder, ent); err != nil {
			return nil, err
		}
	}
	if err := b.zw.Close(); err != nil {
		return nil, errors.Wrap(err, "finalizing archive")
	}
	return buf.Bytes(), nil
}

func (b *builder) writePayload(folder string, ent SourceEntry) error {
	rc, err := ent.Open()
	if err != nil {
		return errors.Wrapf(err, "opening %q", ent.Basename)
	}
	defer rc.Close()
	w, err := b.zw.Create(folder + "/" + ent.Basename)
	if err != nil {
		return errors.Wrapf(err, "creating payload entry for %q", ent.Basename)
	}
	if _, err := io.Copy(w, rc); err != nil {
		return errors.Wrapf(err, "copying %q", ent.Basename)
	}
	return nil
}

// BuildFromZip reads a source archive and rebuilds it as one folder per
// surviving file entry.
func BuildFromZip(r io.Reader, rules Rules, opts Options) ([]byte, error) {
	entries, err := Candidates(r, rules)
	if err != nil {
		return nil, err
	}
	return BuildFromSource(entries, opts)
}

// NamedPayload pairs a file's basename with its content, for callers that
// hold loose files rather than an archive.
type NamedPayload struct {
	Basename string
	Data     []byte
}

// BuildFromFiles builds a folder-per-file zip from loose files. Basenames
// are reduced to their final path segment before naming.
func BuildFromFiles(files []NamedPayload, opts Options) ([]byte, error) {
	entries := func(yield func(SourceEntry, error) bool) {
		for _, f := range files {
			base := path.Base(f.Basename)
			ent := SourceEntry{
				Basename: base,
				Stem:     Stem(base),
				Open: func() (io.ReadCloser, error) {
					return io.NopCloser(bytes.NewReader(f.Data)), nil
				},
			}
			if !yield(ent, nil) {
				return
			}
		}
	}
	return BuildFromSource(entries, opts)
}
