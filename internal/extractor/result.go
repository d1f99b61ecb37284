package extractor

import "fmt"

type Stage string

const (
	StageVocabulary Stage = "vocabulary"
	StageContext    Stage = "context"
)

// StageFailure records why a stage produced nothing. It never aborts the pipeline.
type StageFailure struct {
	Stage Stage
	Err   error
}

func (f *StageFailure) Error() string {
	return fmt.Sprintf("%s extraction failed: %v", f.Stage, f.Err)
}

func (f *StageFailure) Unwrap() error { return f.Err }

// Result is the outcome of one extraction stage: the items it produced, or
// an empty list plus the failure that caused it.
type Result[T any] struct {
	Items   []T
	Failure *StageFailure
}

func (r Result[T]) Failed() bool { return r.Failure != nil }

func succeeded[T any](items []T) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items}
}

func failed[T any](stage Stage, err error) Result[T] {
	return Result[T]{Items: []T{}, Failure: &StageFailure{Stage: stage, Err: err}}
}
