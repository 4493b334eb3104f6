// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestRouter(t *testing.T) (*FileRouter, string, string) {
	t.Helper()
	base := t.TempDir()
	withKeyDir := filepath.Join(base, "PDFs_Com_Chave")
	noKeyDir := filepath.Join(base, "PDFs_Sem_Chave")
	return NewFileRouter(withKeyDir, noKeyDir, false), withKeyDir, noKeyDir
}

func writeSourceFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing source file: %v", err)
	}
	return path
}

func TestEnsureDirs(t *testing.T) {
	fr, withKeyDir, noKeyDir := newTestRouter(t)

	if err := fr.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	for _, dir := range []string{withKeyDir, noKeyDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %s to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("expected %s to be a directory", dir)
		}
	}
}

func TestEnsureDirs_Idempotent(t *testing.T) {
	fr, _, _ := newTestRouter(t)
	if err := fr.EnsureDirs(); err != nil {
		t.Fatalf("first EnsureDirs: %v", err)
	}
	if err := fr.EnsureDirs(); err != nil {
		t.Fatalf("second EnsureDirs: %v", err)
	}
}

func TestRoute_WithKey(t *testing.T) {
	fr, withKeyDir, _ := newTestRouter(t)
	if err := fr.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	src := writeSourceFile(t, "ACME_1_NF_001.pdf", "%PDF-1.4 conteudo")

	dest, err := fr.Route(src, true)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if dest != filepath.Join(withKeyDir, "ACME_1_NF_001.pdf") {
		t.Errorf("unexpected destination %s", dest)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading copied file: %v", err)
	}
	if string(data) != "%PDF-1.4 conteudo" {
		t.Errorf("copied content differs: %q", data)
	}
}

func TestRoute_WithoutKey(t *testing.T) {
	fr, _, noKeyDir := newTestRouter(t)
	if err := fr.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	src := writeSourceFile(t, "sem_chave.pdf", "vazio")

	dest, err := fr.Route(src, false)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if dest != filepath.Join(noKeyDir, "sem_chave.pdf") {
		t.Errorf("unexpected destination %s", dest)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("expected copy in no-key directory: %v", err)
	}
}

func TestRoute_SourceLeftInPlace(t *testing.T) {
	fr, _, _ := newTestRouter(t)
	if err := fr.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	src := writeSourceFile(t, "original.pdf", "dados")

	if _, err := fr.Route(src, true); err != nil {
		t.Fatalf("Route: %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("expected source file to remain: %v", err)
	}
}

func TestRoute_MissingSource(t *testing.T) {
	fr, _, _ := newTestRouter(t)
	if err := fr.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}

	if _, err := fr.Route(filepath.Join(t.TempDir(), "inexistente.pdf"), true); err == nil {
		t.Error("expected error routing a missing file")
	}
}
