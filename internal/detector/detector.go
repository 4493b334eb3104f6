// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

// Pattern matches one known physical layout of an access key in extracted
// document text. Implementations return raw (pre-normalization) candidate
// strings; they never validate.
type Pattern interface {
	Name() string
	Scan(text string) []string
}

// KeyValidator decides whether a digit-string candidate is a plausible
// fiscal-document access key.
type KeyValidator interface {
	Validate(candidate string) bool

	// Checks exposes the individual rule outcomes behind a decision so the
	// rejection path stays inspectable in tests and debug output.
	Checks(candidate string) (bool, map[string]bool)
}

// TextExtractor produces best-effort extracted text for a document. An error
// means the document could not be read at all; partial text with a nil error
// is the common case for image-heavy PDFs.
type TextExtractor interface {
	ExtractText(filePath string) (string, error)
}

// DocumentResult associates one processed document with its validated access
// keys and the routing decision derived from them.
type DocumentResult struct {
	Filename string   // base name of the source document
	Keys     []string // validated 44-digit keys, deduplicated
	Routed   string   // destination path the file was copied to, if any
	Err      error    // extraction or routing problem; never aborts the batch
}

// HasKey reports whether the document yielded at least one validated key.
func (r DocumentResult) HasKey() bool {
	return len(r.Keys) > 0
}
