// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pdftext extracts the text layer of PDF invoices. Extraction is
// best effort: fiscal documents come from dozens of emitters and some carry
// only a partial or broken text layer. Callers treat an error as "no text",
// never as a batch failure.
package pdftext

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/sync/errgroup"
)

// maxPages caps per-document work; invoices are short and anything beyond
// this is almost certainly not a fiscal document.
const maxPages = 50

// pageWorkers bounds concurrent page extraction within one document.
const pageWorkers = 4

// Extractor pulls text out of PDF files using ledongthuc/pdf, with a pdfcpu
// validation probe to tell corrupt files from unsupported ones.
type Extractor struct {
	pdfConfig *model.Configuration
}

// NewExtractor returns an Extractor with a relaxed pdfcpu configuration,
// since real-world invoices are frequently malformed.
func NewExtractor() *Extractor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Extractor{pdfConfig: conf}
}

// ExtractText returns the text layer of the PDF at filePath, including
// AcroForm field values (utility bills often place the access key in a form
// field rather than the page stream). Page order is preserved.
func (e *Extractor) ExtractText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", e.classifyOpenError(filePath, err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	if pageCount > maxPages {
		pageCount = maxPages
	}

	pageTexts := make([]string, pageCount+1)
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(pageWorkers)

	for i := 1; i <= pageCount; i++ {
		pageNum := i
		g.Go(func() error {
			p := r.Page(pageNum)
			if p.V.IsNull() {
				return nil // skip null pages, keep the rest
			}
			text, err := pageText(p)
			if err != nil {
				return nil // a failed page must not sink the document
			}
			mu.Lock()
			pageTexts[pageNum] = text
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // page goroutines never return errors

	var buf bytes.Buffer
	for i := 1; i <= pageCount; i++ {
		if pageTexts[i] == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(pageTexts[i])
	}

	if formText := formFieldText(r); formText != "" {
		buf.WriteString("\n")
		buf.WriteString(formText)
	}

	return tidyText(buf.String()), nil
}

// classifyOpenError probes an unreadable file with pdfcpu so the caller's log
// line can say whether the PDF is corrupt or simply not parseable by the
// text-layer reader.
func (e *Extractor) classifyOpenError(filePath string, openErr error) error {
	if verr := api.ValidateFile(filePath, e.pdfConfig); verr != nil {
		return fmt.Errorf("corrupt or non-PDF file: %v", openErr)
	}
	return fmt.Errorf("valid PDF but text layer unreadable: %v", openErr)
}

// pageText extracts one page using row-based positioning, falling back to
// plain text extraction when row data is unavailable.
func pageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}

	sorted := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sorted = append(sorted, row)
		}
	}
	// Top-to-bottom reading order.
	sort.Slice(sorted, func(i, j int) bool {
		return averageY(sorted[i].Content) < averageY(sorted[j].Content)
	})

	var buf bytes.Buffer
	for _, row := range sorted {
		line := joinRow(row.Content)
		if strings.TrimSpace(line) != "" {
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}

// averageY is the mean Y coordinate of a row's text elements.
func averageY(elements []pdf.Text) float64 {
	if len(elements) == 0 {
		return 0
	}
	var total float64
	for _, el := range elements {
		total += el.Y
	}
	return total / float64(len(elements))
}

// joinRow rebuilds one visual line from positioned text elements, inserting
// spaces where the horizontal gap between elements exceeds a fraction of the
// font size. Keys printed as spaced 4-digit groups depend on this: collapsing
// the gaps would merge groups, widening them would split digits.
func joinRow(elements []pdf.Text) string {
	if len(elements) == 0 {
		return ""
	}

	sorted := make([]pdf.Text, len(elements))
	copy(sorted, elements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var buf bytes.Buffer
	for i, el := range sorted {
		buf.WriteString(el.S)
		if i == len(sorted)-1 {
			break
		}

		gap := sorted[i+1].X - (el.X + el.W)
		fontSize := el.FontSize
		if fontSize <= 0 {
			fontSize = 12
		}
		if gap > fontSize*0.2 {
			buf.WriteString(" ")
		}
	}
	return buf.String()
}

// formFieldText collects AcroForm field values as "name: value" lines.
func formFieldText(r *pdf.Reader) string {
	root := r.Trailer().Key("Root")
	if root.IsNull() {
		return ""
	}
	acroForm := root.Key("AcroForm")
	if acroForm.IsNull() {
		return ""
	}
	fields := acroForm.Key("Fields")
	if fields.IsNull() || fields.Kind() != pdf.Array {
		return ""
	}

	var buf bytes.Buffer
	for i := 0; i < fields.Len(); i++ {
		field := fields.Index(i)
		if field.IsNull() || field.Kind() != pdf.Dict {
			continue
		}
		name, value := fieldNameValue(field)
		if name != "" && value != "" {
			fmt.Fprintf(&buf, "%s: %s\n", name, value)
		}
	}
	return buf.String()
}

// fieldNameValue reads one form field's name and value, trying the default
// value when no value is set.
func fieldNameValue(field pdf.Value) (string, string) {
	var name, value string

	if t := field.Key("T"); !t.IsNull() && t.Kind() == pdf.String {
		name = t.Text()
	}

	for _, key := range []string{"V", "DV"} {
		v := field.Key(key)
		if v.IsNull() {
			continue
		}
		switch v.Kind() {
		case pdf.String:
			value = v.Text()
		case pdf.Name:
			value = v.Name()
		}
		if value != "" {
			break
		}
	}

	return name, value
}

// tidyText trims per-line whitespace, drops blank lines and collapses runs
// of spaces within lines. Line breaks are preserved: the two-line key
// patterns rely on them.
func tidyText(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.ReplaceAll(line, "\t", " ")
		for strings.Contains(line, "  ") {
			line = strings.ReplaceAll(line, "  ", " ")
		}
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
