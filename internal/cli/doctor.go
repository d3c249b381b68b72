package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/buisihung11/langchain-basic/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and model server connectivity",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	allOK := true

	check := func(label string, ok bool, hint string) {
		if ok {
			fmt.Printf("✅ %s\n", label)
		} else {
			fmt.Printf("❌ %s — %s\n", label, hint)
			allOK = false
		}
	}

	cfg, cfgErr := config.Load()
	check("config loadable", cfgErr == nil, fmt.Sprintf("fix config: %v", cfgErr))
	if cfgErr != nil {
		return nil
	}

	validateErr := cfg.Validate()
	check("config valid", validateErr == nil, fmt.Sprintf("%v", validateErr))

	models, connErr := newClient(cfg).Models(cmd.Context())
	check(fmt.Sprintf("model server reachable at %s", cfg.BaseURL), connErr == nil,
		"start your LM Studio (or compatible) server and enable its local API")
	if connErr == nil {
		check(fmt.Sprintf("%d model(s) loaded", len(models)), len(models) > 0,
			"load a model in the server UI")
		check(fmt.Sprintf("configured model %q available", cfg.Model),
			slices.Contains(models, cfg.Model),
			fmt.Sprintf("pick one of: %v", models))
	}

	fmt.Println()
	if allOK {
		fmt.Println("All checks passed. lmchat is ready.")
	} else {
		fmt.Println("Some checks failed. Fix the issues above before chatting.")
	}
	return nil
}
