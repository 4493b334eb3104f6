// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package accesskey

import (
	"strconv"
	"strings"
)

// KeyLength is the number of digits in a fiscal-document access key.
const KeyLength = 44

// Federative-unit codes occupy positions 0-1 of the key and identify the
// Brazilian state of issuance.
const (
	minUFCode = 10
	maxUFCode = 53
)

// documentModels maps the two-digit model field (positions 20-21) to the
// fiscal document type it identifies.
var documentModels = map[int]string{
	55: "NF-e",
	65: "NFC-e",
	57: "CT-e",
	66: "NF3e",
}

// Validator applies structural rules to 44-digit candidates to separate
// genuine access keys from incidental digit runs. It holds no state and is
// safe for concurrent use.
//
// Acceptance is a disjunction of two independent paths:
//
//  1. Utility-prefix path: keys starting with "50" (an observed regional
//     utility family, UF code for Mato Grosso do Sul) are accepted on digit
//     diversity alone, because some of these keys carry model codes the
//     structural path does not recognize.
//  2. Structural path: UF code, AAMM issue date, taxpayer-field diversity,
//     document model and overall digit diversity must all check out.
//
// The paths must not be merged; collapsing them would drop real utility keys.
type Validator struct{}

// NewValidator returns a Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate reports whether candidate is a plausible access key. Candidates
// whose length differs from 44 are always rejected. Any field that fails to
// parse rejects the candidate; no error is ever surfaced.
func (v *Validator) Validate(candidate string) bool {
	ok, _ := v.Checks(candidate)
	return ok
}

// Checks validates candidate and returns the outcome of each individual rule
// so callers can inspect why a candidate was rejected.
func (v *Validator) Checks(candidate string) (bool, map[string]bool) {
	checks := map[string]bool{
		"length":          false,
		"utility_prefix":  false,
		"uf_code":         false,
		"issue_date":      false,
		"taxpayer_field":  false,
		"document_model":  false,
		"digit_diversity": false,
	}

	if len(candidate) != KeyLength {
		return false, checks
	}
	checks["length"] = true

	utility := v.hasUtilityPrefix(candidate)
	checks["utility_prefix"] = utility

	structural := v.passesStructuralChecks(candidate, checks)

	return utility || structural, checks
}

// hasUtilityPrefix implements the special-case acceptance path for the "50"
// key family. Digit diversity above 5 is the only plausibility signal used.
func (v *Validator) hasUtilityPrefix(key string) bool {
	return strings.HasPrefix(key, "50") && distinctChars(key) > 5
}

// passesStructuralChecks implements the generic acceptance path. Each rule
// records its outcome in checks; evaluation stops at the first failure.
func (v *Validator) passesStructuralChecks(key string, checks map[string]bool) bool {
	// Positions 0-1: federative-unit code.
	uf, err := strconv.Atoi(key[0:2])
	if err != nil || uf < minUFCode || uf > maxUFCode {
		return false
	}
	checks["uf_code"] = true

	// Positions 2-5: AAMM issue date.
	year, err := strconv.Atoi(key[2:4])
	if err != nil || year < 0 || year > 99 {
		return false
	}
	month, err := strconv.Atoi(key[4:6])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	checks["issue_date"] = true

	// Positions 6-19: CNPJ/CPF field. One or two distinct digits means a
	// placeholder, not a taxpayer number.
	if distinctChars(key[6:20]) <= 2 {
		return false
	}
	checks["taxpayer_field"] = true

	// Positions 20-21: document model.
	model, err := strconv.Atoi(key[20:22])
	if err != nil {
		return false
	}
	if _, ok := documentModels[model]; !ok {
		return false
	}
	checks["document_model"] = true

	// Degenerate keys built from a handful of digits are placeholders.
	if distinctChars(key) <= 5 {
		return false
	}
	checks["digit_diversity"] = true

	return true
}

// ModelName returns the fiscal document type encoded in a validated key, or
// an empty string when the model field is unknown.
func ModelName(key string) string {
	if len(key) != KeyLength {
		return ""
	}
	model, err := strconv.Atoi(key[20:22])
	if err != nil {
		return ""
	}
	return documentModels[model]
}

// distinctChars counts the distinct byte values in s.
func distinctChars(s string) int {
	var seen [256]bool
	count := 0
	for i := 0; i < len(s); i++ {
		if !seen[s[i]] {
			seen[s[i]] = true
			count++
		}
	}
	return count
}
