// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// CheckInfo contains standardized information about a check
type CheckInfo struct {
	Name                string   // Name of the check (e.g., "ACCESS_KEY")
	ShortDescription    string   // Short description for the checks list
	DetailedDescription string   // Detailed description of what the check does
	Patterns            []string // Layouts the check recognizes
	ValidationRules     []string // Structural rules applied to candidates
	Examples            []string // Usage examples
}

// Provider defines the interface for help content providers
type Provider interface {
	GetCheckInfo() CheckInfo
}

// System manages help content for the application
type System struct {
	providers map[string]Provider
	colors    map[string]*color.Color
}

// NewSystem creates a new help system
func NewSystem(noColor bool) *System {
	if noColor {
		color.NoColor = true
	}

	return &System{
		providers: make(map[string]Provider),
		colors: map[string]*color.Color{
			"title":    color.New(color.FgWhite, color.Bold),
			"header":   color.New(color.FgBlue, color.Bold),
			"item":     color.New(color.FgCyan),
			"emphasis": color.New(color.FgWhite, color.Bold),
			"example":  color.New(color.FgMagenta),
			"negative": color.New(color.FgRed),
		},
	}
}

// RegisterProvider adds a help provider to the system
func (h *System) RegisterProvider(provider Provider) {
	info := provider.GetCheckInfo()
	h.providers[strings.ToLower(info.Name)] = provider
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Println("Chave Scan - Extrator de Chaves de Acesso de Documentos Fiscais")
	fmt.Println("===============================================================")
	fmt.Println()
	fmt.Println("Extracts 44-digit access keys (NFe, NFC-e, CT-e, NF3e) from PDF invoices,")
	fmt.Println("sorts the files into with-key / no-key folders and writes a delimited report.")
	fmt.Println()
	h.colors["header"].Println("USAGE:")
	fmt.Println("  chave-scan [options]")
	fmt.Println()

	h.colors["header"].Println("OPTIONS:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --input\t<path>\tDirectory containing the PDFs to process (default: current directory)")
	fmt.Fprintln(w, "  --with-key-dir\t<path>\tDestination for PDFs with a validated key (default: PDFs_Com_Chave)")
	fmt.Fprintln(w, "  --no-key-dir\t<path>\tDestination for PDFs without a key (default: PDFs_Sem_Chave)")
	fmt.Fprintln(w, "  --output\t<path>\tPath of the extraction report (default: chaves_extraidas.txt)")
	fmt.Fprintln(w, "  --format\t<format>\tReport format: delimited, json (default: delimited)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --workers\t<n>\tNumber of documents processed concurrently (default: 4)")
	fmt.Fprintln(w, "  --verbose\t\tDisplay every extracted key on the summary")
	fmt.Fprintln(w, "  --debug\t\tEnable debug logging of extraction and validation flow")
	fmt.Fprintln(w, "  --quiet\t\tSuppress per-document progress output")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	fmt.Fprintln(w, "  --help access_key\t\tShow detailed help for the access-key check")
	w.Flush()

	fmt.Println()
	h.colors["header"].Println("EXAMPLES:")
	h.colors["example"].Println("  chave-scan --input ./faturas")
	h.colors["example"].Println("  chave-scan --input ./faturas --output relatorio.txt --workers 8")
	h.colors["example"].Println("  chave-scan --input . --format json --quiet")
	fmt.Println()
	h.colors["header"].Println("CONFIGURATION:")
	fmt.Println("  Project config: chave-scan.yaml (in current directory)")
}

// ShowCheckHelp displays detailed help for a specific check
func (h *System) ShowCheckHelp(checkName string) bool {
	provider, exists := h.providers[strings.ToLower(checkName)]
	if !exists {
		h.colors["negative"].Printf("Error: Check '%s' not found.\n", checkName)
		return false
	}

	info := provider.GetCheckInfo()

	h.colors["title"].Printf("%s Check\n", info.Name)
	fmt.Println(strings.Repeat("=", len(info.Name)+6))
	fmt.Println()
	fmt.Println(info.DetailedDescription)
	fmt.Println()

	if len(info.Patterns) > 0 {
		h.colors["header"].Println("LAYOUTS DETECTED:")
		for _, pattern := range info.Patterns {
			fmt.Print("  - ")
			h.colors["item"].Println(pattern)
		}
		fmt.Println()
	}

	if len(info.ValidationRules) > 0 {
		h.colors["header"].Println("VALIDATION RULES:")
		for _, rule := range info.ValidationRules {
			fmt.Print("  - ")
			h.colors["item"].Println(rule)
		}
		fmt.Println()
	}

	if len(info.Examples) > 0 {
		h.colors["header"].Println("EXAMPLES:")
		for _, example := range info.Examples {
			fmt.Print("  ")
			h.colors["example"].Println(example)
		}
	}

	return true
}

// ShowInteractiveIntro prints the introduction shown when the tool runs with
// no arguments on a terminal, then waits for the user to press ENTER before
// the current directory is processed.
func (h *System) ShowInteractiveIntro() {
	h.colors["title"].Println("EXTRATOR DE CHAVES DE ACESSO DE DOCUMENTOS FISCAIS")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()
	fmt.Println("Este programa extrai chaves de acesso de documentos fiscais em PDF.")
	fmt.Println("Formatos de chave reconhecidos:")
	fmt.Println()
	fmt.Println("  - Chave padrão de NFe (44 dígitos contínuos)")
	fmt.Println("  - Formato Energisa (10 grupos de 4 + quebra de linha + 4 dígitos)")
	fmt.Println("  - Formato Dcelt (11 grupos de 4 dígitos)")
	fmt.Println("  - Outros formatos com espaços, pontos ou traços como separadores")
	fmt.Println()
	fmt.Println("Modo básico de uso:")
	fmt.Println("  1. Execute o programa na pasta onde estão os PDFs")
	fmt.Println("  2. Os arquivos serão processados automaticamente")
	fmt.Println("  3. Os resultados serão salvos e os arquivos separados em pastas")
	fmt.Println()
	fmt.Print("Pressione ENTER para continuar...")
	bufio.NewReader(os.Stdin).ReadString('\n')
	fmt.Println()
}
