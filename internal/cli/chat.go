package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/buisihung11/langchain-basic/internal/chat"
	"github.com/buisihung11/langchain-basic/internal/llm"
)

var chatModel string

var chatCmd = &cobra.Command{
	Use:          "chat",
	Short:        "Interactive chat with the model",
	Long:         "Start an interactive chat session. The full conversation history is sent on every turn.\nCommands: /reset clears the history, /exit quits.",
	SilenceUsage: true,
	RunE:         runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatModel, "model", "m", "", "Model id (overrides config)")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if chatModel != "" {
		cfg.Model = chatModel
	}

	session := chat.NewSession(newClient(cfg), llm.Params{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
	}, cfg.SystemMessage)

	fmt.Printf("Chatting with %s at %s. /reset clears history, /exit quits.\n", cfg.Model, cfg.BaseURL)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/exit":
			return nil
		case line == "/reset":
			session.Reset()
			fmt.Println("History cleared.")
			continue
		}

		_, err := session.SendStream(cmd.Context(), line, func(delta string) error {
			fmt.Print(delta)
			return nil
		})
		if err != nil {
			var lerr *llm.Error
			if errors.As(err, &lerr) {
				fmt.Fprintln(os.Stderr, lerr.Hint())
			} else {
				fmt.Fprintln(os.Stderr, err)
			}
			continue
		}
		fmt.Println()
	}
}
