package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/buisihung11/langchain-basic/internal/assets"
	"github.com/buisihung11/langchain-basic/internal/llm"
	vlog "github.com/buisihung11/langchain-basic/internal/log"
	"github.com/buisihung11/langchain-basic/internal/pipeline"
	"github.com/buisihung11/langchain-basic/internal/run"
)

var (
	runTopic  string
	runTone   string
	runLength string
	runInputs []string
)

var runCmd = &cobra.Command{
	Use:          "run [pipeline]",
	Short:        "Run a content pipeline",
	Long:         "Run a multi-step pipeline (default: the content pipeline) against the model server.\nStep outputs and the final content package are saved under .lmchat/runs/.",
	Example:      `lmchat run --topic "AI in Healthcare" --tone casual --length "short (300-500 words)"`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runTopic, "topic", "t", "", "Content topic")
	runCmd.Flags().StringVar(&runTone, "tone", "professional", "Writing tone")
	runCmd.Flags().StringVar(&runLength, "length", "medium (500-800 words)", "Blog post length")
	runCmd.Flags().StringArrayVarP(&runInputs, "input", "i", nil, "Extra pipeline input as key=value (repeatable)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name := "content"
	if len(args) > 0 {
		name = args[0]
	}

	ppl, err := loadPipeline(name)
	if err != nil {
		return err
	}

	initial := map[string]string{}
	for _, kv := range runInputs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --input %q, expected key=value", kv)
		}
		initial[k] = v
	}
	if runTopic != "" {
		initial["topic"] = runTopic
	}
	if _, ok := initial["tone"]; !ok {
		initial["tone"] = runTone
	}
	if _, ok := initial["length"]; !ok {
		initial["length"] = runLength
	}

	var missing []string
	for _, k := range ppl.InputKeys() {
		if initial[k] == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing pipeline inputs: %s (use --topic or --input key=value)", strings.Join(missing, ", "))
	}

	r, err := run.New(name, initial["topic"])
	if err != nil {
		return fmt.Errorf("creating run: %w", err)
	}

	steps := ppl.Steps()
	modelFor := func(i int) string {
		if steps[i].Model != "" {
			return steps[i].Model
		}
		return cfg.Model
	}

	disp := pipeline.NewDisplay(initial["topic"])
	disp.Header()
	startTime := time.Now()

	started := make(map[int]time.Time)
	sink := func(i int, key string, st pipeline.Status, output string, serr error) {
		switch st {
		case pipeline.StatusStarted:
			started[i] = time.Now()
			disp.StepStart(key, modelFor(i))
		case pipeline.StatusCompleted:
			d := time.Since(started[i])
			disp.StepDone(key, modelFor(i), d, output)
			if err := r.WriteFile(key+".md", output); err != nil {
				vlog.Warn("failed to write step output", "key", key, "err", err)
			}
			if err := r.AddStepResult(run.StepResult{
				OutputKey:  key,
				Status:     "completed",
				DurationMS: d.Milliseconds(),
			}); err != nil {
				vlog.Warn("failed to save step result", "key", key, "err", err)
			}
		case pipeline.StatusFailed:
			disp.StepFailed(key, modelFor(i), serr)
			if err := r.AddStepResult(run.StepResult{
				OutputKey:  key,
				Status:     "failed",
				DurationMS: time.Since(started[i]).Milliseconds(),
				Error:      serr.Error(),
			}); err != nil {
				vlog.Warn("failed to save step result", "key", key, "err", err)
			}
		}
	}

	outputs, err := ppl.Run(cmd.Context(), newClient(cfg), llm.Params{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
	}, initial, sink)
	if err != nil {
		if ferr := r.Fail(err.Error()); ferr != nil {
			vlog.Warn("failed to update run meta", "err", ferr)
		}
		disp.Failed(err)
		return err
	}

	if err := r.Complete(); err != nil {
		vlog.Warn("failed to mark run complete", "err", err)
	}
	disp.Summary(len(steps), time.Since(startTime))

	if name == "content" {
		pkg := pipeline.ContentPackage(initial["topic"], outputs)
		if err := r.WriteFile("content_package.md", pkg); err != nil {
			vlog.Warn("failed to write content package", "err", err)
		} else {
			fmt.Printf("Content package saved to %s\n", filepath.Join(r.Dir, "content_package.md"))
		}
	}
	return nil
}

// loadPipeline resolves a pipeline by name through the assets override
// chain and validates it.
func loadPipeline(name string) (*pipeline.Pipeline, error) {
	data, err := assets.LoadPipeline(name)
	if err != nil {
		return nil, err
	}
	ppl, err := pipeline.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading pipeline %q: %w", name, err)
	}
	return ppl, nil
}
