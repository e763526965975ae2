// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the kkp-generator CLI.
// It drafts KKP audit working papers with a hosted model and renders them
// as Word and PDF documents, from the command line or a local web page.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/kkp-generator/internal/generate"
	"github.com/pdiddy/kkp-generator/internal/kkp"
	"github.com/pdiddy/kkp-generator/internal/logging"
	"github.com/pdiddy/kkp-generator/internal/secrets"
	"github.com/pdiddy/kkp-generator/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logger is built from the log configuration before any command runs.
var logger = zap.NewNop()

// rootCmd is the base command for the kkp-generator CLI.
var rootCmd = &cobra.Command{
	Use:   "kkp-generator",
	Short: "Draft and format KKP audit working papers",
	Long: `kkp-generator turns raw audit findings into a Kertas Kerja Pemeriksaan (KKP).
A hosted model drafts the paper in a small marker grammar; the draft is then
rendered to Word (.docx) and PDF with the company letterhead.

Use generate for the full flow, render to format an edited draft without
calling the model, and serve for the browser front end.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secrets.DefaultDir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", secrets.Names(s))
		}

		l, err := logging.NewFactory().FromConfig(loadConfig().Log)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./kkp-generator.yaml or ~/.config/kkp-generator/kkp-generator.yaml)")
	pf.String("model", "", "AI model identifier (default "+generate.DefaultModel+")")
	pf.String("api-key", "", "API key for the model provider (default: from .secrets/)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: structured or console")

	_ = viper.BindPFlag("ai.model", pf.Lookup("model"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", pf.Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kkp-generator")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "kkp-generator"))
		}
	}

	viper.SetEnvPrefix("KKP_GENERATOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaults() {
	viper.SetDefault("ai.model", generate.DefaultModel)
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("log.level", string(logging.LevelInfo))
	viper.SetDefault("log.format", string(logging.FormatConsole))
	viper.SetDefault("document.letterhead", types.DefaultLetterhead)
	viper.SetDefault("document.font_family", "Arial")
	viper.SetDefault("document.font_size", 11)
	viper.SetDefault("document.title_font_size", 12)
}

// loadConfig reads the application configuration from viper. The API key is
// resolved separately by apiKey.
func loadConfig() types.AppConfig {
	return types.AppConfig{
		AI: types.AIConfig{
			Model:   viper.GetString("ai.model"),
			Timeout: viper.GetDuration("ai.timeout"),
			BaseURL: viper.GetString("ai.base_url"),
		},
		Prompt: types.PromptConfig{
			InstructionFile: viper.GetString("prompt.instruction_file"),
		},
		Markup: types.MarkupConfig{
			GrammarFile: viper.GetString("markup.grammar_file"),
		},
		Document: types.DocumentConfig{
			Letterhead:        viper.GetStringSlice("document.letterhead"),
			FontFamily:        viper.GetString("document.font_family"),
			FontSize:          viper.GetFloat64("document.font_size"),
			TitleFontSize:     viper.GetFloat64("document.title_font_size"),
			PDFDegradeJustify: viper.GetBool("document.pdf_degrade_justify"),
		},
		Server: types.ServerConfig{
			Addr: viper.GetString("server.addr"),
		},
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
	}
}

// apiKey returns the --api-key flag, or the stored key for model's provider.
// Unknown models yield an empty key; the generator reports them.
func apiKey(cmd *cobra.Command, model string) string {
	flag, _ := cmd.Flags().GetString("api-key")
	p, err := generate.ProviderFor(model)
	if err != nil {
		return flag
	}
	return secrets.Lookup(loadedSecrets, generate.SecretName(p), flag)
}

// newService builds the service for cmd with the resolved credential.
func newService(cmd *cobra.Command) (*kkp.Service, error) {
	cfg := loadConfig()
	cfg.AI.APIKey = apiKey(cmd, cfg.AI.Model)
	return kkp.New(cfg, kkp.WithLogger(logger))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
