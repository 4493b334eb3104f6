// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package processor drives the per-document pipeline: extract text, discover
// and validate access keys, route the file, accumulate results. Documents are
// independent, so the batch fans out across a bounded worker group; only
// result accumulation is synchronized.
package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"chave-scan/internal/detector"
	"chave-scan/internal/observability"
	"chave-scan/internal/router"
	"chave-scan/internal/scanner"
)

// Options holds the resolved settings for one run. Defaults are applied by
// the caller; the processor never consults global state.
type Options struct {
	InputDir string
	Workers  int
	Debug    bool
	Quiet    bool
}

// Summary aggregates one run's results and counters.
type Summary struct {
	StartedAt time.Time
	Processed int
	WithKeys  int
	Results   []detector.DocumentResult
}

// Processor runs the extraction pipeline over a directory of PDFs.
type Processor struct {
	opts      Options
	extractor detector.TextExtractor
	scanner   *scanner.Scanner
	router    *router.FileRouter
	observer  *observability.StandardObserver
	progress  func(format string, args ...interface{})
}

// New creates a Processor. The extractor and router are injected so the
// pipeline can run fully in memory under test.
func New(opts Options, extractor detector.TextExtractor, keyScanner *scanner.Scanner, fileRouter *router.FileRouter) *Processor {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	level := observability.ObservabilityMetrics
	if opts.Debug {
		level = observability.ObservabilityDebug
	}

	p := &Processor{
		opts:      opts,
		extractor: extractor,
		scanner:   keyScanner,
		router:    fileRouter,
		observer:  observability.NewStandardObserver(level, os.Stderr),
	}
	p.progress = func(format string, args ...interface{}) {
		if !opts.Quiet {
			fmt.Fprintf(os.Stderr, format, args...)
		}
	}
	return p
}

// Run processes every PDF in the input directory. A missing input directory
// is the only fatal condition; every per-document failure is recorded on its
// DocumentResult and the batch continues.
func (p *Processor) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{StartedAt: time.Now()}

	files, err := listPDFs(p.opts.InputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		p.progress("Nenhum arquivo PDF encontrado em %s\n", p.opts.InputDir)
		return summary, nil
	}
	p.progress("Encontrados %d arquivos PDF para processar.\n", len(files))

	if p.router != nil {
		if err := p.router.EnsureDirs(); err != nil {
			return nil, err
		}
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for _, file := range files {
		filePath := file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result := p.processDocument(filePath)

			mu.Lock()
			summary.Results = append(summary.Results, result)
			summary.Processed++
			if result.HasKey() {
				summary.WithKeys++
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Worker completion order is nondeterministic; report rows should not be.
	sort.Slice(summary.Results, func(i, j int) bool {
		return summary.Results[i].Filename < summary.Results[j].Filename
	})

	return summary, nil
}

// processDocument runs one document through the pipeline. Extraction
// failures degrade to empty text; routing failures are recorded but do not
// influence the key outcome.
func (p *Processor) processDocument(filePath string) detector.DocumentResult {
	finishTiming := p.observer.StartTiming("processor", "process_document", filePath)

	result := detector.DocumentResult{Filename: filepath.Base(filePath)}

	text, err := p.extractor.ExtractText(filePath)
	if err != nil {
		p.progress("Aviso: falha ao extrair texto de %s: %v\n", result.Filename, err)
		result.Err = err
		text = ""
	}

	result.Keys = p.scanner.ExtractKeys(text)
	if result.HasKey() {
		p.progress("%s: %d chave(s) válida(s) encontrada(s)\n", result.Filename, len(result.Keys))
	} else {
		p.progress("%s: nenhuma chave válida encontrada\n", result.Filename)
	}

	if p.router != nil {
		dest, err := p.router.Route(filePath, result.HasKey())
		if err != nil {
			p.progress("Aviso: falha ao copiar %s: %v\n", result.Filename, err)
			if result.Err == nil {
				result.Err = err
			}
		} else {
			result.Routed = dest
		}
	}

	finishTiming(result.Err == nil, map[string]interface{}{
		"key_count": len(result.Keys),
	})
	return result
}

// listPDFs returns the full paths of the PDF files directly inside dir.
func listPDFs(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("input directory %s not found: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
