package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:          "models",
	Short:        "List the models loaded on the server",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		models, err := newClient(cfg).Models(cmd.Context())
		if err != nil {
			return err
		}
		for _, m := range models {
			marker := " "
			if m == cfg.Model {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, m)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
