// Package run records pipeline executions under .lmchat/runs/.
package run

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Run is the on-disk record of a single pipeline execution.
type Run struct {
	ID   string
	Dir  string
	Meta Meta
}

// Meta holds run metadata, persisted to meta.json.
type Meta struct {
	StartedAt time.Time    `json:"started_at"`
	Pipeline  string       `json:"pipeline"`
	Topic     string       `json:"topic"`
	Status    string       `json:"status"` // "running" | "completed" | "failed"
	Steps     []StepResult `json:"steps"`
	Error     string       `json:"error,omitempty"`
}

// StepResult records the outcome of a single step.
type StepResult struct {
	OutputKey  string `json:"output_key"`
	Status     string `json:"status"` // "completed" | "failed"
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// New creates a run directory under .lmchat/runs/ and writes initial metadata.
func New(pipelineName, topic string) (*Run, error) {
	now := time.Now()
	id := fmt.Sprintf("%s-%03d-%s",
		now.Format("20060102-150405"),
		now.UnixMilli()%1000,
		sanitizeSlug(topic),
	)

	baseDir := filepath.Join(".lmchat", "runs")
	dir := filepath.Join(baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating run dir: %w", err)
	}

	r := &Run{
		ID:  id,
		Dir: dir,
		Meta: Meta{
			StartedAt: now,
			Pipeline:  pipelineName,
			Topic:     topic,
			Status:    "running",
		},
	}

	if err := r.SaveMeta(); err != nil {
		return nil, err
	}
	if err := updateLatestLink(baseDir, id); err != nil {
		return nil, err
	}
	return r, nil
}

// SaveMeta writes meta.json to the run directory.
func (r *Run) SaveMeta() error {
	data, err := json.MarshalIndent(r.Meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling meta: %w", err)
	}
	return os.WriteFile(filepath.Join(r.Dir, "meta.json"), data, 0644)
}

// AddStepResult appends a step result and persists the metadata.
func (r *Run) AddStepResult(sr StepResult) error {
	r.Meta.Steps = append(r.Meta.Steps, sr)
	return r.SaveMeta()
}

// Complete marks the run as completed.
func (r *Run) Complete() error {
	r.Meta.Status = "completed"
	return r.SaveMeta()
}

// Fail marks the run as failed with an error message.
func (r *Run) Fail(msg string) error {
	r.Meta.Status = "failed"
	r.Meta.Error = msg
	return r.SaveMeta()
}

// WriteFile writes content to a named file in the run directory.
func (r *Run) WriteFile(name, content string) error {
	return os.WriteFile(filepath.Join(r.Dir, name), []byte(content), 0644)
}

// ReadFile reads a named file from the run directory.
func (r *Run) ReadFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.Dir, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// updateLatestLink atomically updates the "latest" symlink.
func updateLatestLink(baseDir, id string) error {
	latestPath := filepath.Join(baseDir, "latest")
	tmpPath := latestPath + ".tmp"

	os.Remove(tmpPath)

	if err := os.Symlink(id, tmpPath); err != nil {
		return fmt.Errorf("creating temp symlink: %w", err)
	}
	if err := os.Rename(tmpPath, latestPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("updating latest symlink: %w", err)
	}
	return nil
}

var nonAlphanumRe = regexp.MustCompile(`[^a-z0-9]+`)

// sanitizeSlug converts a string to a directory-friendly slug.
func sanitizeSlug(s string) string {
	s = strings.ToLower(s)
	s = nonAlphanumRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 40 {
		s = strings.TrimRight(s[:40], "-")
	}
	if s == "" {
		s = "run"
	}
	return s
}
