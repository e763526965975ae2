//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Sample groups targets that exercise the CLI on the files in testdata/.
type Sample mg.Namespace

const (
	sampleDraft    = "testdata/sample_draft.txt"
	sampleFindings = "testdata/sample_findings.txt"
)

// Render formats testdata/sample_draft.txt into output/documents without
// calling a model.
func (Sample) Render() error {
	mg.Deps(Build, Init)
	if err := sh.RunV(binPath, "render", sampleDraft, "--output-dir", "output/documents"); err != nil {
		return fmt.Errorf("rendering sample: %w", err)
	}
	return nil
}

// Dump prints the parsed blocks of the sample draft as YAML.
func (Sample) Dump() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "render", sampleDraft, "--dump")
}

// Generate drafts a KKP from testdata/sample_findings.txt. Needs an API key
// in .secrets/.
func (Sample) Generate() error {
	mg.Deps(Build, Init)
	if err := sh.RunV(binPath, "generate", sampleFindings, "--output-dir", "output/drafts"); err != nil {
		return fmt.Errorf("generating sample: %w", err)
	}
	return nil
}
