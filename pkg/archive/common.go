// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package archive provides zip container plumbing for folder archive construction.
package archive

import (
	"path/filepath"
	"strings"
)

// Format represents the container types of source uploads.
type Format int

// Format constants specify the container type of an input file.
const (
	UnknownFormat Format = iota
	ZipFormat
	RawFormat
)

// FormatForPath guesses the container format from a file path's extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return ZipFormat
	case "":
		return UnknownFormat
	default:
		return RawFormat
	}
}
