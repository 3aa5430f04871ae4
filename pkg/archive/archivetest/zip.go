// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package archivetest builds fixture archives for tests.
package archivetest

import (
	"archive/zip"
	"bytes"
	"io"

	"github.com/google/folderzip/pkg/archive"
)

// ZipFile serializes the given entries into an in-memory zip archive.
func ZipFile(entries []archive.ZipEntry) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, entry := range entries {
		fw, err := zw.CreateHeader(entry.FileHeader)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(entry.Body); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}

// Entries reads back all entries of a serialized zip archive.
func Entries(b []byte) ([]archive.ZipEntry, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, err
	}
	var entries []archive.ZipEntry
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		entries = append(entries, archive.ZipEntry{FileHeader: &f.FileHeader, Body: body})
	}
	return entries, nil
}
