package cli

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/buisihung11/langchain-basic/internal/config"
)

func TestStarterConfigIsValid(t *testing.T) {
	var cfg config.Config
	if err := yaml.Unmarshal([]byte(starterConfig), &cfg); err != nil {
		t.Fatalf("starter config must be valid YAML: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("starter config should validate: %v", err)
	}
	if cfg.BaseURL != "http://localhost:1234" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
}
