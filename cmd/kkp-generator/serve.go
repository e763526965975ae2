// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kkp-generator/internal/kkp"
	"github.com/pdiddy/kkp-generator/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser front end",
	Long: `Serve starts a local web page where the auditor enters an API key, picks a
model, pastes findings, edits the generated draft and downloads the Word and
PDF documents. API keys typed into the page are used for that request only.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	svc, err := kkp.New(cfg, kkp.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Serving on %s (Ctrl+C to stop)\n", cfg.Server.Addr)
	flagKey, _ := cmd.Flags().GetString("api-key")
	server := web.NewServer(svc, loadedSecrets, logger, web.WithAPIKey(flagKey))
	return server.ListenAndServe(ctx, cfg.Server.Addr)
}
