package pipeline

import (
	"fmt"
	"strings"
)

// ConstructionError reports every problem found while validating a
// pipeline definition, so a whole definition can be fixed in one pass.
type ConstructionError struct {
	Problems []string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("invalid pipeline: %s", strings.Join(e.Problems, "; "))
}

// MissingInputError means Render was asked for a key the scratch map
// does not hold. Construction-time validation makes this unreachable
// for validated pipelines; seeing one indicates a bug.
type MissingInputError struct {
	Key string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input %q", e.Key)
}

// StepError identifies the step at which a run stopped.
type StepError struct {
	Index     int
	OutputKey string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.OutputKey, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
