// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scanner

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty input", "", ""},
		{"digits only", "123456", "123456"},
		{"spaces removed", "1234 5678 9012", "123456789012"},
		{"dots and hyphens removed", "1234.5678-9012", "123456789012"},
		{"line breaks removed", "1234\n5678\r\n9012", "123456789012"},
		{"letters removed", "abc123def456", "123456"},
		{"no digits at all", "chave de acesso", ""},
		{"order preserved", "9a8b7c", "987"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalize_OnlyDigitsInOutput(t *testing.T) {
	out := Normalize("x1 y2\tz3\n4.5-6")
	for i := 0; i < len(out); i++ {
		if out[i] < '0' || out[i] > '9' {
			t.Fatalf("output contains non-digit byte %q", out[i])
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"", "1234 5678", "abc", "12.34-56\n78"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
