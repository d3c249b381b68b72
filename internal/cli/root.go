// Package cli implements the lmchat command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buisihung11/langchain-basic/internal/config"
	"github.com/buisihung11/langchain-basic/internal/llm"
	vlog "github.com/buisihung11/langchain-basic/internal/log"
)

// Version is stamped by the build.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "lmchat",
	Short: "Chat and content-pipeline frontend for a local LLM server",
	Long:  `lmchat talks to an OpenAI-compatible server (LM Studio, llama.cpp, ...) for interactive chat and runs multi-step content generation pipelines against it.`,
}

// Execute runs the CLI with the given base context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lmchat %s\n", Version)
	},
}

// loadConfig resolves and validates configuration and initializes logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	vlog.Init(cfg.LogLevel)
	return cfg, nil
}

func newClient(cfg *config.Config) *llm.HTTPClient {
	return &llm.HTTPClient{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout(),
	}
}
