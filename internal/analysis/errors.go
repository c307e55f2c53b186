package analysis

import "fmt"

// ValidationError means the caller supplied no usable input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ErrTextRequired is returned when the text is missing or blank.
var ErrTextRequired = &ValidationError{Msg: "Text is required"}

// Failure stages for ModelResponseError.
const (
	StageGenerate = "generate"
	StageParse    = "parse"
	StageSchema   = "schema"
)

// ModelResponseError covers every failure past input validation: the model
// call itself, a non-JSON reply, or (in strict mode) a schema mismatch.
// Callers see one shape; Stage is for logs and metrics only.
type ModelResponseError struct {
	Stage string
	Err   error
}

func (e *ModelResponseError) Error() string {
	return fmt.Sprintf("analysis: %s: %v", e.Stage, e.Err)
}

func (e *ModelResponseError) Unwrap() error { return e.Err }

// Details is the diagnostic string relayed to the caller.
func (e *ModelResponseError) Details() string {
	return e.Err.Error()
}
