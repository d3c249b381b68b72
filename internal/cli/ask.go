package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/buisihung11/langchain-basic/internal/llm"
)

var askCmd = &cobra.Command{
	Use:          "ask <message>",
	Short:        "Send a single message and print the reply",
	Example:      `lmchat ask "Explain quantum computing in simple terms"`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		messages := []llm.Message{
			{Role: llm.RoleSystem, Content: cfg.SystemMessage},
			{Role: llm.RoleUser, Content: strings.Join(args, " ")},
		}
		reply, err := newClient(cfg).Complete(cmd.Context(), messages, llm.Params{
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			var lerr *llm.Error
			if errors.As(err, &lerr) {
				fmt.Fprintln(os.Stderr, lerr.Hint())
			}
			return err
		}
		fmt.Println(reply)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
