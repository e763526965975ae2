// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kkp-generator/internal/generate"
	"github.com/pdiddy/kkp-generator/internal/kkp"
)

var generateCmd = &cobra.Command{
	Use:   "generate [findings-file]",
	Short: "Draft a KKP from raw findings and render it",
	Long: `Generate sends the findings (from a file, or stdin when omitted or "-") to
the configured model, saves the marked-up draft, and renders it to Word and
PDF. Edit the saved draft and run render to regenerate the documents without
another model call.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("output-dir", ".", "directory for the draft and rendered documents")
	generateCmd.Flags().String("name", defaultName, "base file name for outputs")
	generateCmd.Flags().Bool("draft-only", false, "save the draft without rendering documents")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	findings, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("output-dir")
	name, _ := cmd.Flags().GetString("name")
	draftOnly, _ := cmd.Flags().GetBool("draft-only")

	svc, err := newService(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Generating draft with %s...\n", svc.Model())
	draft, err := svc.Draft(cmd.Context(), findings)
	if errors.Is(err, kkp.ErrEmptyFindings) {
		return fmt.Errorf("no findings provided")
	}
	if err != nil {
		return errors.New(generate.UserMessage(err))
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	draftPath := filepath.Join(outDir, name+".txt")
	if err := os.WriteFile(draftPath, []byte(draft), 0o644); err != nil {
		return fmt.Errorf("writing draft: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Draft saved to %s\n", draftPath)
	if draftOnly {
		return nil
	}

	art, err := svc.Render(draft)
	if err != nil {
		return err
	}
	paths, err := writeArtifacts(outDir, name, art)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", p)
	}
	if len(art.Diagnostics) > 0 {
		fmt.Fprintf(os.Stderr, "%d markup issue(s) recovered:\n", len(art.Diagnostics))
		printDiagnostics(os.Stderr, art.Diagnostics)
	}
	return nil
}
