// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kkp-generator/internal/generate"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the offered AI models",
	Long: `Models prints the model allow-list. Other gemini-* and claude-* identifiers
are accepted by --model as well.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range generate.Models {
			marker := " "
			if m == generate.DefaultModel {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, m)
		}
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
