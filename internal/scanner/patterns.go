// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"regexp"

	"chave-scan/internal/detector"
)

// KeyLength is the number of digits in a fiscal-document access key.
const KeyLength = 44

// captureMode selects which part of a regex match becomes the raw candidate.
type captureMode int

const (
	// captureWhole uses the entire match text.
	captureWhole captureMode = iota
	// captureGroup uses the first capture group.
	captureGroup
	// captureSplit concatenates two capture groups (key broken across a line
	// break). The result is only kept when it normalizes to exactly 44 digits.
	captureSplit
)

// regexPattern is a single pattern matcher tuned to one real-world key layout.
type regexPattern struct {
	name string
	re   *regexp.Regexp
	mode captureMode
}

func (p *regexPattern) Name() string { return p.name }

// Scan returns the normalized candidates this pattern finds in text.
// Candidates with the wrong digit count are kept for whole/group captures
// (the validator rejects them) but discarded for split captures, matching
// the layouts these patterns were tuned against.
func (p *regexPattern) Scan(text string) []string {
	var out []string
	for _, m := range p.re.FindAllStringSubmatch(text, -1) {
		var raw string
		switch p.mode {
		case captureWhole:
			raw = m[0]
		case captureGroup:
			if len(m) < 2 {
				continue
			}
			raw = m[1]
		case captureSplit:
			if len(m) < 3 {
				continue
			}
			raw = m[1] + m[2]
		}

		clean := Normalize(raw)
		if p.mode == captureSplit && len(clean) != KeyLength {
			continue
		}
		out = append(out, clean)
	}
	return out
}

// tenGroups matches ten whitespace-separated groups of four digits, the
// common visual grouping on DANFE printouts and utility bills.
const tenGroups = `\d{4}\s+\d{4}\s+\d{4}\s+\d{4}\s+\d{4}\s+\d{4}\s+\d{4}\s+\d{4}\s+\d{4}\s+\d{4}`

// DefaultPatterns returns the battery of pattern matchers applied to every
// document, in a fixed order. Each covers a layout observed on real fiscal
// documents; results are unioned, so overlap between patterns is harmless.
func DefaultPatterns() []detector.Pattern {
	return []detector.Pattern{
		// Canonical unbroken 44-digit key.
		&regexPattern{
			name: "contiguous-44",
			re:   regexp.MustCompile(`\b\d{44}\b`),
			mode: captureWhole,
		},
		// Ten 4-digit groups plus an optional short trailing group.
		&regexPattern{
			name: "spaced-groups",
			re:   regexp.MustCompile(`\b(` + tenGroups + `\s+\d{0,4})\b`),
			mode: captureGroup,
		},
		// Groups separated by dots, hyphens or whitespace in any mix.
		&regexPattern{
			name: "block-separated",
			re: regexp.MustCompile(`\b(\d{4}[.\s-]*\d{4}[.\s-]*\d{4}[.\s-]*\d{4}[.\s-]*\d{4}[.\s-]*` +
				`\d{4}[.\s-]*\d{4}[.\s-]*\d{4}[.\s-]*\d{4}[.\s-]*\d{4}[.\s-]*\d{4})\b`),
			mode: captureGroup,
		},
		// "Chave de acesso" label, ten groups, then the last group on its own
		// line. Seen on Energisa utility bills.
		&regexPattern{
			name: "labeled-two-line",
			re:   regexp.MustCompile(`(?i)chave\s+de\s+acesso\s*:?\s*\n?\s*(` + tenGroups + `)\s*\n\s*(\d{4})`),
			mode: captureSplit,
		},
		// Same two-line shape without the label, anywhere in the text.
		&regexPattern{
			name: "two-line",
			re:   regexp.MustCompile(`\b(` + tenGroups + `)\s*\n\s*(\d{4})\b`),
			mode: captureSplit,
		},
		// Eleven groups on one logical line. Seen on Dcelt bills.
		&regexPattern{
			name: "eleven-groups",
			re:   regexp.MustCompile(`\b(` + tenGroups + `\s+\d{4})\b`),
			mode: captureGroup,
		},
	}
}
