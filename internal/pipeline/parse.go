package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type stepDef struct {
	Output      string   `yaml:"output"`
	Model       string   `yaml:"model,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
	Inputs      []string `yaml:"inputs"`
	Template    string   `yaml:"template"`
}

type pipelineDef struct {
	Name   string    `yaml:"name"`
	Inputs []string  `yaml:"inputs"`
	Steps  []stepDef `yaml:"steps"`
}

// Parse decodes and validates a pipeline from YAML bytes.
func Parse(data []byte) (*Pipeline, error) {
	var def pipelineDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing pipeline: %w", err)
	}
	if def.Name == "" {
		return nil, fmt.Errorf("pipeline must have a name")
	}
	steps := make([]Step, len(def.Steps))
	for i, sd := range def.Steps {
		steps[i] = Step{
			OutputKey:   sd.Output,
			Template:    Template{Inputs: sd.Inputs, Body: sd.Template},
			Model:       sd.Model,
			Temperature: sd.Temperature,
		}
	}
	return New(def.Name, def.Inputs, steps)
}

// ParseFile reads and parses a pipeline YAML file.
func ParseFile(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pipeline file %s: %w", path, err)
	}
	return Parse(data)
}
