// Package pipeline executes an ordered list of prompt-templated
// completion calls, feeding each step's output into later steps.
package pipeline

import "fmt"

// Step is one prompt-to-completion unit. Model and Temperature, when
// set, override the run's default params for this step only.
type Step struct {
	OutputKey   string
	Template    Template
	Model       string
	Temperature *float64
}

// Pipeline is an immutable, validated sequence of steps. Declaration
// order is the execution order; it holds no per-run state, so one
// Pipeline may serve concurrent Run calls.
type Pipeline struct {
	name      string
	inputKeys []string
	steps     []Step
}

// New validates a definition and builds a Pipeline. All violations are
// collected into a single ConstructionError: unsatisfiable step inputs,
// duplicate or empty output keys, and template/input mismatches.
func New(name string, inputKeys []string, steps []Step) (*Pipeline, error) {
	var probs []string

	available := make(map[string]bool, len(inputKeys))
	for _, k := range inputKeys {
		available[k] = true
	}

	seen := make(map[string]bool, len(steps))
	for i, st := range steps {
		label := fmt.Sprintf("step %d (%s)", i, st.OutputKey)
		if st.OutputKey == "" {
			probs = append(probs, fmt.Sprintf("step %d: empty output key", i))
		} else if seen[st.OutputKey] {
			probs = append(probs, label+": duplicate output key")
		}
		seen[st.OutputKey] = true

		for _, p := range st.Template.problems() {
			probs = append(probs, label+": "+p)
		}
		for _, in := range st.Template.Inputs {
			if !available[in] {
				probs = append(probs, fmt.Sprintf("%s: requires %q, which is neither an initial input nor produced by an earlier step", label, in))
			}
		}

		available[st.OutputKey] = true
	}

	if len(probs) > 0 {
		return nil, &ConstructionError{Problems: probs}
	}

	p := &Pipeline{
		name:      name,
		inputKeys: append([]string(nil), inputKeys...),
		steps:     append([]Step(nil), steps...),
	}
	return p, nil
}

// Name returns the pipeline's name.
func (p *Pipeline) Name() string { return p.name }

// InputKeys returns the caller-supplied keys the pipeline needs.
func (p *Pipeline) InputKeys() []string {
	return append([]string(nil), p.inputKeys...)
}

// OutputKeys returns every step's output key in execution order.
func (p *Pipeline) OutputKeys() []string {
	keys := make([]string, len(p.steps))
	for i, st := range p.steps {
		keys[i] = st.OutputKey
	}
	return keys
}

// Steps returns a copy of the step list.
func (p *Pipeline) Steps() []Step {
	return append([]Step(nil), p.steps...)
}
