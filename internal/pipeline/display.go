package pipeline

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Display renders step-by-step pipeline progress to a terminal. It is
// meant to be driven from a ProgressFunc on the run's goroutine.
type Display struct {
	w     io.Writer
	title string
	stop  chan struct{}
	done  chan struct{}
}

// NewDisplay creates a display that writes to stdout.
func NewDisplay(title string) *Display {
	return &Display{w: os.Stdout, title: title}
}

// modelColumnWidth is the fixed display width reserved for the model column.
var modelColumnWidth = 30

// ansiEscapeRe matches ANSI terminal escape sequences and C0/DEL control characters.
var ansiEscapeRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]|[\x00-\x1f\x7f]`)

// truncateModel sanitizes and truncates a model name to fit the model
// column, appending an ellipsis if truncation occurs.
func truncateModel(model string) string {
	model = ansiEscapeRe.ReplaceAllString(model, "")
	if utf8.RuneCountInString(model) <= modelColumnWidth {
		return model
	}
	runes := []rune(model)
	return string(runes[:modelColumnWidth-1]) + "…"
}

// Header prints the pipeline header.
func (d *Display) Header() {
	fmt.Fprintf(d.w, "\n🔗 lmchat — %s\n", d.title)
	fmt.Fprintln(d.w, strings.Repeat("─", 76))
}

// StepStart prints a step-in-progress line and starts an elapsed time
// ticker that rewrites the line in place once a second.
func (d *Display) StepStart(key, model string) {
	model = truncateModel(model)
	fmt.Fprintf(d.w, "⏳ %-14s %-30s running...", key, model)

	stop := make(chan struct{})
	done := make(chan struct{})
	d.stop = stop
	d.done = done
	start := time.Now()

	go func() {
		defer close(done)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fmt.Fprintf(d.w, "\r⏳ %-14s %-30s running... %.0fs",
					key, model, time.Since(start).Seconds())
			}
		}
	}()
}

// stopTicker stops the elapsed time goroutine and waits for it to finish.
func (d *Display) stopTicker() {
	if d.stop != nil {
		close(d.stop)
		<-d.done
		d.stop = nil
		d.done = nil
	}
}

// maxPreviewLines is the number of output lines shown after step completion.
const maxPreviewLines = 8

// StepDone prints a completed step line, overwriting the running line,
// followed by a short preview of the step's output.
func (d *Display) StepDone(key, model string, duration time.Duration, output string) {
	d.stopTicker()
	fmt.Fprintf(d.w, "\r✅ %-14s %-30s %.1fs%-20s\n", key, truncateModel(model), duration.Seconds(), "")

	if output == "" {
		return
	}
	lines := strings.Split(output, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	previewLines := lines
	truncated := false
	if len(lines) > maxPreviewLines {
		previewLines = lines[:maxPreviewLines]
		truncated = true
	}
	for _, l := range previewLines {
		fmt.Fprintf(d.w, "  │ %s\n", l)
	}
	if truncated {
		fmt.Fprintf(d.w, "  │ ... (%d more lines)\n", len(lines)-maxPreviewLines)
	}
}

// StepFailed prints a failed step line, overwriting the running line.
func (d *Display) StepFailed(key, model string, err error) {
	d.stopTicker()
	fmt.Fprintf(d.w, "\r❌ %-14s %-30s %s\n", key, truncateModel(model), err.Error())
}

// Summary prints the final run summary.
func (d *Display) Summary(steps int, totalDuration time.Duration) {
	fmt.Fprintln(d.w, strings.Repeat("─", 76))
	fmt.Fprintf(d.w, "✅ Done  %d steps  %.0fs\n\n", steps, totalDuration.Seconds())
}

// Failed prints a failure summary.
func (d *Display) Failed(err error) {
	fmt.Fprintln(d.w, strings.Repeat("─", 76))
	fmt.Fprintf(d.w, "❌ Failed: %s\n\n", err.Error())
}
