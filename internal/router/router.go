// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"chave-scan/internal/observability"
)

// FileRouter copies processed documents into one of two destination
// directories depending on whether a validated access key was found.
type FileRouter struct {
	withKeyDir string
	noKeyDir   string
	observer   *observability.StandardObserver
}

// NewFileRouter creates a file router for the given destination directories.
func NewFileRouter(withKeyDir, noKeyDir string, debug bool) *FileRouter {
	level := observability.ObservabilityMetrics
	if debug {
		level = observability.ObservabilityDebug
	}
	return &FileRouter{
		withKeyDir: withKeyDir,
		noKeyDir:   noKeyDir,
		observer:   observability.NewStandardObserver(level, os.Stderr),
	}
}

// EnsureDirs creates both destination directories if they are absent.
func (fr *FileRouter) EnsureDirs() error {
	for _, dir := range []string{fr.withKeyDir, fr.noKeyDir} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating destination directory %s: %w", dir, err)
		}
	}
	return nil
}

// Route copies the document at srcPath into the with-key or no-key directory
// and returns the destination path. A copy failure affects only this
// document; the caller logs it and continues the batch.
func (fr *FileRouter) Route(srcPath string, hasKey bool) (string, error) {
	finishTiming := fr.observer.StartTiming("router", "route_file", srcPath)

	destDir := fr.noKeyDir
	if hasKey {
		destDir = fr.withKeyDir
	}
	destPath := filepath.Join(destDir, filepath.Base(srcPath))

	err := copyFile(srcPath, destPath)
	finishTiming(err == nil, map[string]interface{}{
		"has_key":     hasKey,
		"destination": destPath,
	})
	if err != nil {
		return "", fmt.Errorf("copying %s to %s: %w", srcPath, destPath, err)
	}
	return destPath, nil
}

// copyFile copies src to dst, preserving the source file mode.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(filepath.Clean(dst), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
