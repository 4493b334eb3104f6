// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"chave-scan/internal/config"
	"chave-scan/internal/detector"
	"chave-scan/internal/extractor/pdftext"
	"chave-scan/internal/help"
	"chave-scan/internal/processor"
	"chave-scan/internal/report"
	"chave-scan/internal/router"
	"chave-scan/internal/scanner"
	"chave-scan/internal/validators/accesskey"
	"chave-scan/internal/version"
)

// configFlags holds command line flag values
type configFlags struct {
	inputDir    string
	withKeyDir  string
	noKeyDir    string
	reportFile  string
	format      string
	configFile  string
	workers     int
	verbose     bool
	debug       bool
	noColor     bool
	quiet       bool
	showVersion bool
	showHelp    bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	inputDir   string
	withKeyDir string
	noKeyDir   string
	reportFile string
	format     string
	workers    int
	verbose    bool
	debug      bool
	noColor    bool
	quiet      bool
}

func main() {
	flags := &configFlags{}
	flag.StringVar(&flags.inputDir, "input", "", "Directory containing the PDFs to process")
	flag.StringVar(&flags.withKeyDir, "with-key-dir", "", "Destination directory for PDFs with a validated key")
	flag.StringVar(&flags.noKeyDir, "no-key-dir", "", "Destination directory for PDFs without a key")
	flag.StringVar(&flags.reportFile, "output", "", "Path of the extraction report")
	flag.StringVar(&flags.format, "format", "", "Report format: delimited, json")
	flag.StringVar(&flags.configFile, "config", "", "Path to configuration file (YAML)")
	flag.IntVar(&flags.workers, "workers", 0, "Number of documents processed concurrently")
	flag.BoolVar(&flags.verbose, "verbose", false, "Display every extracted key on the summary")
	flag.BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.quiet, "quiet", false, "Suppress per-document progress output")
	flag.BoolVar(&flags.showVersion, "version", false, "Show version information")
	flag.BoolVar(&flags.showHelp, "help", false, "Show help message")
	flag.Parse()

	if flags.showVersion {
		fmt.Println(version.Info())
		return
	}

	keyValidator := accesskey.NewValidator()

	helpSystem := help.NewSystem(flags.noColor)
	helpSystem.RegisterProvider(keyValidator)

	if flags.showHelp {
		if topic := flag.Arg(0); topic != "" {
			if !helpSystem.ShowCheckHelp(topic) {
				os.Exit(1)
			}
			return
		}
		helpSystem.ShowGeneralHelp()
		return
	}

	// Bare invocation from a terminal: show the interactive introduction and
	// wait for acknowledgment before processing the current directory.
	interactive := len(os.Args) == 1 && isTerminal(os.Stdin)
	if interactive {
		helpSystem.ShowInteractiveIntro()
	}

	configPath := flags.configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg := config.LoadConfigOrDefault(configPath)

	final := resolveConfiguration(cfg, flags)
	if final.noColor {
		color.NoColor = true
	}

	if err := run(final); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if interactive {
		waitForExit()
	}
}

// run executes one extraction batch with the resolved configuration.
func run(final *finalConfiguration) error {
	keyValidator := accesskey.NewValidator()
	keyScanner := scanner.New(keyValidator)
	fileRouter := router.NewFileRouter(final.withKeyDir, final.noKeyDir, final.debug)
	extractor := pdftext.NewExtractor()

	proc := processor.New(processor.Options{
		InputDir: final.inputDir,
		Workers:  final.workers,
		Debug:    final.debug,
		Quiet:    final.quiet,
	}, extractor, keyScanner, fileRouter)

	summary, err := proc.Run(context.Background())
	if err != nil {
		return err
	}

	meta := report.RunMetadata{
		Timestamp: summary.StartedAt,
		Processed: summary.Processed,
		WithKeys:  summary.WithKeys,
	}

	var content string
	switch final.format {
	case "json":
		content, err = report.FormatJSON(summary.Results, meta)
		if err != nil {
			return err
		}
	default:
		content = report.Format(summary.Results, meta)
	}

	// A failed report write must not discard the summary the user already
	// paid for; print it and signal the failure through the exit code.
	reportErr := report.WriteFile(final.reportFile, content)

	printSummary(summary, final)
	if reportErr != nil {
		return reportErr
	}
	if !final.quiet {
		fmt.Printf("Resultados salvos em: %s\n", final.reportFile)
	}
	return nil
}

// printSummary prints the run totals and, in verbose mode, every key found.
func printSummary(summary *processor.Summary, final *finalConfiguration) {
	if final.quiet {
		return
	}

	header := color.New(color.FgBlue, color.Bold)
	fmt.Println()
	header.Println("Resumo:")
	fmt.Printf("Total de arquivos processados: %d\n", summary.Processed)
	fmt.Printf("Arquivos com chaves encontradas: %d\n", summary.WithKeys)
	fmt.Printf("Arquivos com chave copiados para: %s\n", final.withKeyDir)
	fmt.Printf("Arquivos sem chave copiados para: %s\n", final.noKeyDir)

	if final.verbose {
		item := color.New(color.FgCyan)
		for _, result := range summary.Results {
			for _, key := range result.Keys {
				item.Printf("%s: %s (%s)\n", result.Filename, key, accesskey.ModelName(key))
			}
		}
	}
	printFailures(summary.Results)
}

// printFailures lists documents that hit extraction or copy problems.
func printFailures(results []detector.DocumentResult) {
	warn := color.New(color.FgYellow)
	for _, result := range results {
		if result.Err != nil {
			warn.Printf("Aviso: %s: %v\n", result.Filename, result.Err)
		}
	}
}

// resolveConfiguration resolves final configuration values from config file
// defaults and command line flags. Flags that were explicitly set win.
func resolveConfiguration(cfg *config.Config, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{
		inputDir:   cfg.Defaults.InputDir,
		withKeyDir: cfg.Defaults.WithKeyDir,
		noKeyDir:   cfg.Defaults.NoKeyDir,
		reportFile: cfg.Defaults.ReportFile,
		format:     cfg.Defaults.Format,
		workers:    cfg.Defaults.Workers,
		verbose:    cfg.Defaults.Verbose,
		debug:      cfg.Defaults.Debug,
		noColor:    cfg.Defaults.NoColor,
		quiet:      cfg.Defaults.Quiet,
	}

	if isFlagSet("input") && flags.inputDir != "" {
		final.inputDir = flags.inputDir
	}
	if isFlagSet("with-key-dir") && flags.withKeyDir != "" {
		final.withKeyDir = flags.withKeyDir
	}
	if isFlagSet("no-key-dir") && flags.noKeyDir != "" {
		final.noKeyDir = flags.noKeyDir
	}
	if isFlagSet("output") && flags.reportFile != "" {
		final.reportFile = flags.reportFile
	}
	if isFlagSet("format") && flags.format != "" {
		final.format = flags.format
	}
	if isFlagSet("workers") && flags.workers > 0 {
		final.workers = flags.workers
	}
	if isFlagSet("verbose") {
		final.verbose = flags.verbose
	}
	if isFlagSet("debug") {
		final.debug = flags.debug
	}
	if isFlagSet("no-color") {
		final.noColor = flags.noColor
	}
	if isFlagSet("quiet") {
		final.quiet = flags.quiet
	}

	return final
}

// isFlagSet reports whether a flag was explicitly provided on the command line
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// waitForExit keeps the console window open when the tool was launched by
// double-click rather than from a shell.
func waitForExit() {
	fmt.Print("\nPressione ENTER para sair...")
	fmt.Scanln()
}
