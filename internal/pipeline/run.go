package pipeline

import (
	"context"
	"fmt"

	"github.com/buisihung11/langchain-basic/internal/llm"
)

// Status of a step, as reported to the progress sink.
type Status string

const (
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ProgressFunc observes step transitions. It runs synchronously on the
// goroutine executing Run, immediately after each transition, so a
// blocking sink stalls the run. output carries the step's raw result
// for StatusCompleted; err is non-nil only for StatusFailed.
type ProgressFunc func(index int, outputKey string, status Status, output string, err error)

// Run executes the steps in declared order against client. Each run
// gets a fresh scratch map seeded from initial; a step's raw output is
// stored under its output key and may be referenced by later steps.
// The first failing step stops the run and is returned as a *StepError;
// no later step is attempted and no partial result is returned. On
// success the result holds exactly the output keys.
func (p *Pipeline) Run(ctx context.Context, client llm.Client, defaults llm.Params, initial map[string]string, sink ProgressFunc) (map[string]string, error) {
	for _, k := range p.inputKeys {
		if _, ok := initial[k]; !ok {
			return nil, fmt.Errorf("run: missing required input %q", k)
		}
	}

	scratch := make(map[string]string, len(initial)+len(p.steps))
	for k, v := range initial {
		scratch[k] = v
	}

	emit := func(i int, key string, st Status, output string, err error) {
		if sink != nil {
			sink(i, key, st, output, err)
		}
	}

	for i, st := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, &StepError{Index: i, OutputKey: st.OutputKey, Err: err}
		}

		emit(i, st.OutputKey, StatusStarted, "", nil)

		prompt, err := st.Template.Render(scratch)
		if err != nil {
			emit(i, st.OutputKey, StatusFailed, "", err)
			return nil, &StepError{Index: i, OutputKey: st.OutputKey, Err: err}
		}

		params := defaults
		if st.Model != "" {
			params.Model = st.Model
		}
		if st.Temperature != nil {
			params.Temperature = *st.Temperature
		}

		out, err := client.Complete(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, params)
		if err != nil {
			emit(i, st.OutputKey, StatusFailed, "", err)
			return nil, &StepError{Index: i, OutputKey: st.OutputKey, Err: err}
		}

		scratch[st.OutputKey] = out
		emit(i, st.OutputKey, StatusCompleted, out, nil)
	}

	results := make(map[string]string, len(p.steps))
	for _, st := range p.steps {
		results[st.OutputKey] = scratch[st.OutputKey]
	}
	return results, nil
}
