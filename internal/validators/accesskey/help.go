// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package accesskey

import "chave-scan/internal/help"

// GetCheckInfo returns standardized information about the access-key check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "ACCESS_KEY",
		ShortDescription: "Detects 44-digit Brazilian fiscal-document access keys",
		DetailedDescription: `The ACCESS_KEY check detects "chave de acesso" identifiers printed on Brazilian fiscal documents (NF-e, NFC-e, CT-e, NF3e).

A battery of layout patterns discovers candidate digit sequences: the canonical unbroken 44-digit run, keys printed as 4-digit groups with space, dot or hyphen separators, two-line utility-bill layouts (with or without the "chave de acesso" label) and an eleven-group single-line variant. A sliding-window pass over long digit runs catches layouts no pattern anticipates.

Candidates are then validated structurally: federative-unit code, AAMM issue date, taxpayer-field diversity, document model and overall digit diversity. Keys of the "50" utility family bypass the structural rules and are accepted on digit diversity alone.`,

		Patterns: []string{
			"44 consecutive digits (canonical layout)",
			"Ten 4-digit groups plus optional trailing group, whitespace separated",
			"4-digit groups with dot / hyphen / whitespace separators",
			"Ten groups, line break, final group (utility bill layout, optionally labeled)",
			"Eleven 4-digit groups on one line",
			"Sliding 44-digit window over runs of 44+ digits",
		},

		ValidationRules: []string{
			"Length must be exactly 44 digits",
			"Federative-unit code (positions 1-2) in 10-53",
			"AAMM issue date: month 01-12",
			"Taxpayer field (positions 7-20) must not be a repeated-digit placeholder",
			"Document model must be 55 (NF-e), 65 (NFC-e), 57 (CT-e) or 66 (NF3e)",
			"More than 5 distinct digits across the key",
			"Keys starting with 50: accepted on digit diversity alone",
		},

		Examples: []string{
			"chave-scan --input ./faturas",
			"chave-scan --input ./faturas --debug",
		},
	}
}
