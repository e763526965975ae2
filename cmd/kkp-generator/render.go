// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/kkp-generator/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render [draft-file]",
	Short: "Render an existing draft to Word and PDF",
	Long: `Render parses a marked-up draft (from a file, or stdin when omitted or "-")
and writes the Word and PDF documents. No model is called. With --dump the
parsed blocks and diagnostics are printed as YAML instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("output-dir", ".", "directory for rendered documents")
	renderCmd.Flags().String("name", defaultName, "base file name for outputs")
	renderCmd.Flags().Bool("dump", false, "print parsed blocks as YAML and exit")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	draft, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	svc, err := newService(cmd)
	if err != nil {
		return err
	}

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		return dumpDocument(cmd.OutOrStdout(), svc.Parse(draft))
	}

	outDir, _ := cmd.Flags().GetString("output-dir")
	name, _ := cmd.Flags().GetString("name")

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

func dumpDocument(w io.Writer, doc *types.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding blocks: %w", err)
	}
	return enc.Close()
}
