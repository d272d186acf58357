package domain

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is part of the identifier format, not a security boundary
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// ContentIdentifierLength is the length of a hex encoded content identifier.
const ContentIdentifierLength = 40

// dottedDecimalSplit holds the hex widths of the three dotted-decimal components.
var dottedDecimalSplit = [3]int{14, 14, 12}

// FileChecksum is the recorded checksum of one cookbook file.
type FileChecksum struct {
	// Checksum is the lower-case hex MD5 of the file content.
	Checksum string `json:"checksum"`
}

// Identifiers describes a cookbook's content independently of file metadata
// and traversal order.
type Identifiers struct {
	// Path is the cookbook root the identifiers were computed for.
	Path string

	// SemverVersion is the version declared in the cookbook metadata, empty if none.
	SemverVersion string

	// Files maps "/"-separated paths relative to Path to their checksums.
	Files map[string]FileChecksum

	FingerprintText         string
	ContentIdentifier       string
	DottedDecimalIdentifier string
}

// NewIdentifiers derives the fingerprint text, content identifier and
// dotted-decimal identifier from per-file checksums.
func NewIdentifiers(path, semverVersion string, files map[string]FileChecksum) (*Identifiers, error) {
	text := FingerprintText(files)
	id := ContentIdentifier(text)
	dotted, err := DottedDecimal(id)
	if err != nil {
		return nil, err
	}
	return &Identifiers{
		Path:                    path,
		SemverVersion:           semverVersion,
		Files:                   files,
		FingerprintText:         text,
		ContentIdentifier:       id,
		DottedDecimalIdentifier: dotted,
	}, nil
}

// Version returns the declared version, or the dotted-decimal identifier when
// the cookbook declares none.
func (i *Identifiers) Version() string {
	if i.SemverVersion != "" {
		return i.SemverVersion
	}
	return i.DottedDecimalIdentifier
}

// FingerprintText renders one "path:checksum\n" line per file, sorted by path.
func FingerprintText(files map[string]FileChecksum) string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	var b strings.Builder
	for _, p := range paths {
		b.WriteString(p)
		b.WriteByte(':')
		b.WriteString(files[p].Checksum)
		b.WriteByte('\n')
	}
	return b.String()
}

// ContentIdentifier returns the hex SHA-1 of the fingerprint text.
func ContentIdentifier(fingerprintText string) string {
	sum := sha1.Sum([]byte(fingerprintText)) //nolint:gosec // identifier format
	return hex.EncodeToString(sum[:])
}

// DottedDecimal re-encodes a 40 character hex digest as three decimal
// integers taken from its 14, 14 and 12 character slices, joined with dots.
func DottedDecimal(digest string) (string, error) {
	if len(digest) != ContentIdentifierLength {
		return "", zerr.With(zerr.Wrap(ErrInvalidDigest, "cannot encode digest"), "digest", digest)
	}

	parts := make([]string, 0, len(dottedDecimalSplit))
	offset := 0
	for _, width := range dottedDecimalSplit {
		n, err := strconv.ParseUint(digest[offset:offset+width], 16, 64)
		if err != nil {
			return "", zerr.With(fmt.Errorf("%w: %w", ErrInvalidDigest, err), "digest", digest)
		}
		parts = append(parts, strconv.FormatUint(n, 10))
		offset += width
	}
	return strings.Join(parts, "."), nil
}
