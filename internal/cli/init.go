package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

const starterConfig = `# lmchat configuration
# Values here can be overridden per project in ./.lmchat/config.yaml
# and by LMCHAT_* environment variables.

base_url: http://localhost:1234
model: local-model
temperature: 0.7
timeout_seconds: 60

# LM Studio ignores the key; set a real one for remote servers.
api_key: lm-studio

system_message: "You are a helpful AI assistant. Be concise, friendly, and informative."

listen_addr: ":8080"
log_level: info
`

func runInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home dir: %w", err)
	}

	configDir := filepath.Join(home, ".lmchat")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config already exists: %s\n", configPath)
		return nil
	}

	if err := os.WriteFile(configPath, []byte(starterConfig), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Created %s\n", configPath)
	fmt.Println("Point base_url at your OpenAI-compatible server and run `lmchat doctor`.")
	return nil
}
