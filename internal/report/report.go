// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package report serializes extraction results into the semicolon-delimited
// layout consumed by downstream reconciliation spreadsheets.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chave-scan/internal/detector"
)

// NoKeySentinel is written in place of an access key for documents that
// yielded none; keyless documents still get exactly one report row.
const NoKeySentinel = "NENHUMA CHAVE ENCONTRADA"

// headerFields is the fixed header row of the delimited report.
var headerFields = []string{"Empresa", "Numero Doc", "Filial", "Nome Arquivo", "Chave de Acesso"}

const delimiter = ";"

// RunMetadata carries the run-level figures written at the top of the report.
type RunMetadata struct {
	Timestamp time.Time
	Processed int
	WithKeys  int
}

// Format renders the delimited report: run metadata, header row, a dashed
// separator, then one row per key (or one sentinel row per keyless document).
func Format(results []detector.DocumentResult, meta RunMetadata) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Data da extração: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total de arquivos processados: %d\n", meta.Processed)
	fmt.Fprintf(&b, "Arquivos com chaves encontradas: %d\n\n", meta.WithKeys)

	b.WriteString(strings.Join(headerFields, delimiter))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", 100))
	b.WriteString("\n")

	for _, result := range results {
		company, docNumber, branch := splitIdentifier(result.Filename)

		if !result.HasKey() {
			b.WriteString(row(company, docNumber, branch, result.Filename, NoKeySentinel))
			continue
		}
		for _, key := range result.Keys {
			b.WriteString(row(company, docNumber, branch, result.Filename, key))
		}
	}

	return b.String()
}

// FormatJSON renders the same results as indented JSON for machine consumers.
func FormatJSON(results []detector.DocumentResult, meta RunMetadata) (string, error) {
	type documentEntry struct {
		Filename string   `json:"filename"`
		Company  string   `json:"company,omitempty"`
		Document string   `json:"document_number,omitempty"`
		Branch   string   `json:"branch,omitempty"`
		Keys     []string `json:"access_keys"`
	}
	type jsonReport struct {
		ExtractedAt string          `json:"extracted_at"`
		Processed   int             `json:"files_processed"`
		WithKeys    int             `json:"files_with_keys"`
		Documents   []documentEntry `json:"documents"`
	}

	out := jsonReport{
		ExtractedAt: meta.Timestamp.Format(time.RFC3339),
		Processed:   meta.Processed,
		WithKeys:    meta.WithKeys,
		Documents:   make([]documentEntry, 0, len(results)),
	}
	for _, result := range results {
		company, docNumber, branch := splitIdentifier(result.Filename)
		keys := result.Keys
		if keys == nil {
			keys = []string{}
		}
		out.Documents = append(out.Documents, documentEntry{
			Filename: result.Filename,
			Company:  company,
			Document: docNumber,
			Branch:   branch,
			Keys:     keys,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing report: %w", err)
	}
	return string(data), nil
}

// WriteFile writes content to path, creating the parent directory if needed.
func WriteFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(filepath.Clean(path), []byte(content), 0600); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// row renders one delimited report row.
func row(fields ...string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = escapeField(f)
	}
	return strings.Join(escaped, delimiter) + "\n"
}

// splitIdentifier derives company, document number and branch from a source
// filename of the form EMPRESA_NUMERO_<...>_FILIAL.pdf. Missing segments
// yield empty fields rather than errors.
func splitIdentifier(filename string) (company, docNumber, branch string) {
	parts := strings.Split(filename, "_")
	if len(parts) > 0 {
		company = parts[0]
	}
	if len(parts) > 1 {
		docNumber = parts[1]
	}
	if len(parts) > 3 {
		branch = strings.TrimSuffix(strings.TrimSuffix(parts[3], ".pdf"), ".PDF")
	}
	return company, docNumber, branch
}

// escapeField escapes a field for the delimited format and neutralizes
// spreadsheet formula injection.
func escapeField(field string) string {
	if len(field) > 0 {
		first := field[0]
		if first == '=' || first == '+' || first == '-' || first == '@' {
			field = "'" + field
		}
	}

	if strings.ContainsAny(field, delimiter+"\"\n\r") {
		escaped := strings.ReplaceAll(field, "\"", "\"\"")
		return fmt.Sprintf("\"%s\"", escaped)
	}
	return field
}
