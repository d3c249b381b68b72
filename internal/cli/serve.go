package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buisihung11/langchain-basic/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:          "serve",
	Short:        "Serve the browser chat UI and pipeline API",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.ListenAddr = serveAddr
		}
		srv, err := server.New(cfg)
		if err != nil {
			return fmt.Errorf("building server: %w", err)
		}
		return srv.ListenAndServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (overrides config)")
}
