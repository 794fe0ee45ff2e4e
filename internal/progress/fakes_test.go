package progress

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/abhisek/gopherlings/internal/exercise"
)

// memBackend keeps state in memory and counts saves.
type memBackend struct {
	data    []byte
	present bool
	saves   int
	saveErr error
}

func (b *memBackend) Load(dst []byte) ([]byte, error) {
	if !b.present {
		return dst, fs.ErrNotExist
	}
	return append(dst, b.data...), nil
}

func (b *memBackend) Save(data []byte) error {
	b.saves++
	if b.saveErr != nil {
		return b.saveErr
	}
	b.data = append(b.data[:0], data...)
	b.present = true
	return nil
}

func (b *memBackend) Remove() error {
	b.data = nil
	b.present = false
	return nil
}

func (b *memBackend) String() string { return "mem" }

func newMemBackend(content string) *memBackend {
	return &memBackend{data: []byte(content), present: true}
}

// fakeRunner fails the named exercises and records the run order.
type fakeRunner struct {
	failing map[string]bool
	err     error
	ran     []string
}

func (r *fakeRunner) Run(_ context.Context, ex *exercise.Exercise) (bool, error) {
	r.ran = append(r.ran, ex.Name)
	if r.err != nil {
		return false, r.err
	}
	return !r.failing[ex.Name], nil
}

// recordingReporter records every notification as a short event string.
type recordingReporter struct {
	events []string
}

func (r *recordingReporter) VerifyStarted() error {
	r.events = append(r.events, "verify")
	return nil
}

func (r *recordingReporter) ExerciseStarted(ex *exercise.Exercise) error {
	r.events = append(r.events, "running "+ex.Name)
	return nil
}

func (r *recordingReporter) ExerciseFinished(ex *exercise.Exercise, ok bool) error {
	if ok {
		r.events = append(r.events, "ok "+ex.Name)
	} else {
		r.events = append(r.events, "FAILED "+ex.Name)
	}
	return nil
}

func (r *recordingReporter) AllDone(finalMessage string) error {
	r.events = append(r.events, "done "+finalMessage)
	return nil
}

var errWrite = errors.New("disk full")

func registry(names ...string) *exercise.Registry {
	descs := make([]exercise.Descriptor, len(names))
	for i, n := range names {
		descs[i] = exercise.Descriptor{
			Name: n,
			Path: fmt.Sprintf("exercises/%s", n),
			Mode: exercise.ModeRun,
		}
	}
	return exercise.NewRegistry(descs)
}

// stateText builds a state file body.
func stateText(current string, done ...string) string {
	var b strings.Builder
	b.WriteString(current)
	b.WriteString("\n\n")
	for _, d := range done {
		b.WriteString(d)
		b.WriteString("\n")
	}
	return b.String()
}

func doneNames(t *Tracker) []string {
	var out []string
	for _, ex := range t.Exercises() {
		if ex.Done {
			out = append(out, ex.Name)
		}
	}
	return out
}
