// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/kkp-generator/internal/kkp"
	"github.com/pdiddy/kkp-generator/pkg/types"
)

// defaultName is the base file name for written artifacts.
const defaultName = "KKP_Final_Rapi"

// readInput returns the contents of path, or stdin when path is empty or "-".
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// writeArtifacts writes the Word and PDF documents into dir and returns the
// paths written.
func writeArtifacts(dir, name string, art *kkp.Artifacts) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	files := []struct {
		ext  string
		data []byte
	}{
		{".docx", art.Docx},
		{".pdf", art.PDF},
	}
	var paths []string
	for _, f := range files {
		path := filepath.Join(dir, name+f.ext)
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// printDiagnostics lists recovered markup problems, one per line.
func printDiagnostics(w io.Writer, diags []types.Diagnostic) {
	for _, d := range diags {
		if d.Line > 0 {
			fmt.Fprintf(w, "  line %d: %s: %s\n", d.Line, d.Kind, d.Message)
		} else {
			fmt.Fprintf(w, "  %s: %s\n", d.Kind, d.Message)
		}
	}
}
