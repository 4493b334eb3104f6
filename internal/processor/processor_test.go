// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chave-scan/internal/router"
	"chave-scan/internal/scanner"
	"chave-scan/internal/validators/accesskey"
)

const testKey = "35250812345678901234550123456789012345678901"

// fakeExtractor serves canned text per path so the pipeline runs without
// real PDFs.
type fakeExtractor struct {
	texts map[string]string
	errs  map[string]error
}

func (f *fakeExtractor) ExtractText(filePath string) (string, error) {
	name := filepath.Base(filePath)
	if err, ok := f.errs[name]; ok {
		return "", err
	}
	return f.texts[name], nil
}

type testEnv struct {
	inputDir   string
	withKeyDir string
	noKeyDir   string
}

func newTestEnv(t *testing.T, filenames ...string) testEnv {
	t.Helper()
	base := t.TempDir()
	env := testEnv{
		inputDir:   filepath.Join(base, "entrada"),
		withKeyDir: filepath.Join(base, "PDFs_Com_Chave"),
		noKeyDir:   filepath.Join(base, "PDFs_Sem_Chave"),
	}
	require.NoError(t, os.MkdirAll(env.inputDir, 0750))
	for _, name := range filenames {
		path := filepath.Join(env.inputDir, name)
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0600))
	}
	return env
}

func newTestProcessor(env testEnv, extractor *fakeExtractor) *Processor {
	opts := Options{InputDir: env.inputDir, Workers: 2, Quiet: true}
	keyScanner := scanner.New(accesskey.NewValidator())
	fileRouter := router.NewFileRouter(env.withKeyDir, env.noKeyDir, false)
	return New(opts, extractor, keyScanner, fileRouter)
}

func TestRun_RoutesByKeyPresence(t *testing.T) {
	env := newTestEnv(t, "ACME_1_NF_001.pdf", "ACME_2_NF_001.pdf")
	extractor := &fakeExtractor{texts: map[string]string{
		"ACME_1_NF_001.pdf": "NF-e autorizada. Chave de acesso: " + testKey,
		"ACME_2_NF_001.pdf": "Fatura sem chave de acesso.",
	}}

	summary, err := newTestProcessor(env, extractor).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.WithKeys)
	require.Len(t, summary.Results, 2)

	withKey := summary.Results[0]
	assert.Equal(t, "ACME_1_NF_001.pdf", withKey.Filename)
	assert.Equal(t, []string{testKey}, withKey.Keys)
	assert.FileExists(t, filepath.Join(env.withKeyDir, "ACME_1_NF_001.pdf"))

	noKey := summary.Results[1]
	assert.Equal(t, "ACME_2_NF_001.pdf", noKey.Filename)
	assert.Empty(t, noKey.Keys)
	assert.FileExists(t, filepath.Join(env.noKeyDir, "ACME_2_NF_001.pdf"))
}

func TestRun_ExtractionErrorRoutesToNoKey(t *testing.T) {
	env := newTestEnv(t, "corrompido.pdf")
	extractor := &fakeExtractor{errs: map[string]error{
		"corrompido.pdf": errors.New("file is corrupt"),
	}}

	summary, err := newTestProcessor(env, extractor).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Results, 1)
	result := summary.Results[0]
	assert.Error(t, result.Err)
	assert.Empty(t, result.Keys)
	assert.Equal(t, 0, summary.WithKeys)
	assert.FileExists(t, filepath.Join(env.noKeyDir, "corrompido.pdf"))
}

func TestRun_ResultsSortedByFilename(t *testing.T) {
	env := newTestEnv(t, "c.pdf", "a.pdf", "b.pdf")
	extractor := &fakeExtractor{}

	summary, err := newTestProcessor(env, extractor).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Results, 3)
	assert.Equal(t, "a.pdf", summary.Results[0].Filename)
	assert.Equal(t, "b.pdf", summary.Results[1].Filename)
	assert.Equal(t, "c.pdf", summary.Results[2].Filename)
}

func TestRun_IgnoresNonPDFEntries(t *testing.T) {
	env := newTestEnv(t, "nota.pdf", "NOTA2.PDF")
	require.NoError(t, os.WriteFile(filepath.Join(env.inputDir, "leia-me.txt"), []byte("x"), 0600))
	require.NoError(t, os.MkdirAll(filepath.Join(env.inputDir, "subpasta"), 0750))

	summary, err := newTestProcessor(env, &fakeExtractor{}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
}

func TestRun_EmptyDirectory(t *testing.T) {
	env := newTestEnv(t)

	summary, err := newTestProcessor(env, &fakeExtractor{}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Processed)
	assert.Empty(t, summary.Results)
}

func TestRun_MissingInputDirIsFatal(t *testing.T) {
	env := newTestEnv(t)
	env.inputDir = filepath.Join(env.inputDir, "inexistente")

	_, err := newTestProcessor(env, &fakeExtractor{}).Run(context.Background())
	assert.Error(t, err)
}

func TestRun_InputPathNotADirectory(t *testing.T) {
	env := newTestEnv(t)
	filePath := filepath.Join(env.inputDir, "arquivo.pdf")
	require.NoError(t, os.WriteFile(filePath, []byte("%PDF-1.4"), 0600))
	env.inputDir = filePath

	_, err := newTestProcessor(env, &fakeExtractor{}).Run(context.Background())
	assert.Error(t, err)
}

func TestRun_MultipleKeysSingleDocument(t *testing.T) {
	otherKey := "50231112345678901234990123456789012345678901"
	env := newTestEnv(t, "duas_chaves.pdf")
	extractor := &fakeExtractor{texts: map[string]string{
		"duas_chaves.pdf": "Chave 1: " + testKey + "\nChave 2: " + otherKey,
	}}

	summary, err := newTestProcessor(env, extractor).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Results, 1)
	assert.Len(t, summary.Results[0].Keys, 2)
	assert.Equal(t, 1, summary.WithKeys)
}
