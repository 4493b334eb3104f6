// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"regexp"
	"sort"

	"chave-scan/internal/detector"
	"chave-scan/internal/observability"
)

// digitRunPattern locates maximal runs of 8 or more consecutive digits. Runs
// of 44+ digits feed the sliding-window fallback below.
var digitRunPattern = regexp.MustCompile(`\b\d{8,}\b`)

// Scanner discovers access-key candidates in raw document text and reduces
// them to a validated key set. It is stateless between documents and safe for
// concurrent use.
type Scanner struct {
	patterns  []detector.Pattern
	validator detector.KeyValidator
	observer  *observability.StandardObserver
}

// New creates a Scanner running the default pattern battery against the
// given validator.
func New(validator detector.KeyValidator) *Scanner {
	return &Scanner{
		patterns:  DefaultPatterns(),
		validator: validator,
	}
}

// NewWithPatterns creates a Scanner with an explicit pattern list. Used by
// tests to exercise patterns in isolation.
func NewWithPatterns(patterns []detector.Pattern, validator detector.KeyValidator) *Scanner {
	return &Scanner{
		patterns:  patterns,
		validator: validator,
	}
}

// SetObserver sets the observability component.
func (s *Scanner) SetObserver(observer *observability.StandardObserver) {
	s.observer = observer
}

// FindCandidates applies every pattern plus the sliding-window fallback to
// text and returns the union of normalized candidates. No validation happens
// here; the set may contain strings of any length.
func (s *Scanner) FindCandidates(text string) map[string]struct{} {
	candidates := make(map[string]struct{})

	for _, p := range s.patterns {
		for _, c := range p.Scan(text) {
			candidates[c] = struct{}{}
		}
	}

	// Fallback for layouts no explicit pattern covers: every 44-digit window
	// of every long digit run. Deliberately permissive; the validator is the
	// only correctness gate.
	for _, run := range digitRunPattern.FindAllString(text, -1) {
		if len(run) < KeyLength {
			continue
		}
		for i := 0; i+KeyLength <= len(run); i++ {
			candidates[run[i:i+KeyLength]] = struct{}{}
		}
	}

	return candidates
}

// ExtractKeys runs the full discovery pipeline on one document's text:
// pattern scan, sliding-window augmentation, deduplication and validation.
// The returned keys are sorted so downstream report rows are deterministic.
func (s *Scanner) ExtractKeys(text string) []string {
	var finishTiming func(bool, map[string]interface{})
	if s.observer != nil {
		finishTiming = s.observer.StartTiming("scanner", "extract_keys", "")
	}

	candidates := s.FindCandidates(text)

	var keys []string
	for candidate := range candidates {
		if len(candidate) != KeyLength {
			continue
		}
		if s.validator.Validate(candidate) {
			keys = append(keys, candidate)
		}
	}
	sort.Strings(keys)

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"candidate_count": len(candidates),
			"key_count":       len(keys),
			"content_length":  len(text),
		})
	}

	return keys
}
