package progress

import (
	"context"

	"github.com/abhisek/gopherlings/internal/exercise"
)

// Outcome reports whether exercises remain after completing one.
type Outcome int

const (
	ExercisesPending Outcome = iota // At least one exercise still needs work
	AllDone                         // Every exercise passed the verification pass
)

func (o Outcome) String() string {
	if o == AllDone {
		return "all-done"
	}
	return "pending"
}

// Runner executes a single exercise.
// A false result means the exercise failed; an error means it could not be run at all.
type Runner interface {
	Run(ctx context.Context, ex *exercise.Exercise) (bool, error)
}

// Reporter receives verification pass progress.
type Reporter interface {
	// VerifyStarted is called once before the first exercise is re-run.
	VerifyStarted() error

	// ExerciseStarted is called before each exercise run.
	ExerciseStarted(ex *exercise.Exercise) error

	// ExerciseFinished is called after each exercise run with its result.
	ExerciseFinished(ex *exercise.Exercise, ok bool) error

	// AllDone is called when every exercise passed.
	AllDone(finalMessage string) error
}

// nopReporter stands in when the caller passes no reporter.
type nopReporter struct{}

func (nopReporter) VerifyStarted() error { return nil }
func (nopReporter) ExerciseStarted(*exercise.Exercise) error { return nil }
func (nopReporter) ExerciseFinished(*exercise.Exercise, bool) error { return nil }
func (nopReporter) AllDone(string) error { return nil }
