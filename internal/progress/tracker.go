package progress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/gopherlings/internal/exercise"
)

var (
	ErrIndexOutOfRange  = errors.New("exercise index out of range")
	ErrExerciseNotFound = errors.New("no exercise found")
	ErrNoRunner         = errors.New("no exercise runner configured")
)

// Options configures a Tracker.
type Options struct {
	Backend        Backend // Defaults to a FileBackend at DefaultStateFile
	Runner         Runner  // Required for the verification pass
	Logger         *zap.Logger
	WelcomeMessage string
	FinalMessage   string
}

// Tracker owns the learner's progress through a registry: the current
// exercise, the done count, and the persisted state.
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	reg     *exercise.Registry
	current int
	nDone   int

	backend Backend
	runner  Runner
	logger  *zap.Logger

	welcome string
	final   string

	// restored is true when a well-formed state was loaded at construction.
	restored bool

	buf []byte
}

// New builds a Tracker for reg and restores any persisted progress.
// Unreadable or malformed state leaves the first exercise current and
// nothing done. New panics if reg is empty.
func New(reg *exercise.Registry, opts Options) *Tracker {
	if reg.Len() == 0 {
		panic("progress: empty exercise registry")
	}
	t := &Tracker{
		reg:     reg,
		backend: opts.Backend,
		runner:  opts.Runner,
		logger:  opts.Logger,
		welcome: opts.WelcomeMessage,
		final:   opts.FinalMessage,
		buf:     make([]byte, 0, 2048),
	}
	if t.backend == nil {
		t.backend = NewFileBackend(DefaultStateFile)
	}
	if t.logger == nil {
		t.logger = zap.NewNop()
	}
	t.reconcile()
	return t
}

// reconcile restores state from the backend.
//
// Format: current exercise name, a separator line, then one done exercise
// name per line up to the first empty line.
func (t *Tracker) reconcile() {
	t.buf = t.buf[:0]
	t.nDone = 0

	var err error
	t.buf, err = t.backend.Load(t.buf)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			t.logger.Debug("no saved progress", zap.Stringer("state", t.backend))
		} else {
			t.logger.Warn("read saved progress", zap.Stringer("state", t.backend), zap.Error(err))
		}
		return
	}

	lines := bytes.Split(t.buf, []byte{'\n'})
	if len(lines) < 2 {
		t.logger.Debug("malformed saved progress ignored", zap.Stringer("state", t.backend))
		return
	}
	currentName := lines[0]

	doneNames := make(map[string]struct{}, t.reg.Len())
	for _, line := range lines[2:] {
		if len(line) == 0 {
			break
		}
		doneNames[string(line)] = struct{}{}
	}

	for i := range t.reg.All() {
		ex := t.reg.At(i)
		if _, ok := doneNames[ex.Name]; ok {
			ex.Done = true
			t.nDone++
		}
		if ex.Name == string(currentName) {
			t.current = i
		}
	}
	t.restored = true

	t.logger.Debug("restored progress",
		zap.Stringer("state", t.backend),
		zap.String("current", t.Current().Name),
		zap.Int("done", t.nDone))
}

// Restored reports whether saved progress was found at construction.
func (t *Tracker) Restored() bool {
	return t.restored
}

// CurrentIndex returns the index of the current exercise.
func (t *Tracker) CurrentIndex() int {
	return t.current
}

// Current returns the current exercise.
func (t *Tracker) Current() *exercise.Exercise {
	return t.reg.At(t.current)
}

// Exercises returns all exercises in curriculum order.
func (t *Tracker) Exercises() []exercise.Exercise {
	return t.reg.All()
}

// NDone returns the number of done exercises.
func (t *Tracker) NDone() int {
	return t.nDone
}

// WelcomeMessage returns the curriculum's welcome message.
func (t *Tracker) WelcomeMessage() string {
	return t.welcome
}

// FinalMessage returns the message shown once everything is done.
func (t *Tracker) FinalMessage() string {
	return t.final
}

// SetCurrentByIndex makes the exercise at ind current and persists.
func (t *Tracker) SetCurrentByIndex(ind int) error {
	if ind < 0 || ind >= t.reg.Len() {
		return fmt.Errorf("%w: %d (have %d exercises)", ErrIndexOutOfRange, ind, t.reg.Len())
	}
	t.current = ind
	return t.write()
}

// SetCurrentByName makes the named exercise current and persists.
func (t *Tracker) SetCurrentByName(name string) error {
	ind, ok := t.reg.Index(name)
	if !ok {
		return fmt.Errorf("%w for %q", ErrExerciseNotFound, name)
	}
	t.current = ind
	return t.write()
}

// SetPending marks the exercise at ind as not done. It only persists when
// the exercise was done.
func (t *Tracker) SetPending(ind int) error {
	if ind < 0 || ind >= t.reg.Len() {
		return fmt.Errorf("%w: %d (have %d exercises)", ErrIndexOutOfRange, ind, t.reg.Len())
	}
	ex := t.reg.At(ind)
	if !ex.Done {
		return nil
	}
	ex.Done = false
	t.nDone--
	return t.write()
}

// nextPendingIndex searches after the current exercise first, then wraps
// around to the start. The current exercise itself is never returned.
func (t *Tracker) nextPendingIndex() (int, bool) {
	all := t.reg.All()
	for i := t.current + 1; i < len(all); i++ {
		if !all[i].Done {
			return i, true
		}
	}
	for i := 0; i < t.current; i++ {
		if !all[i].Done {
			return i, true
		}
	}
	return 0, false
}

// MarkCurrentDoneAndAdvance marks the current exercise done and moves to
// the next pending one.
//
// When no pending exercise is left, every exercise is re-run in order. The
// first failure is reset to pending and made current; if all pass the
// result is AllDone. A nil rep runs the pass without reporting.
func (t *Tracker) MarkCurrentDoneAndAdvance(ctx context.Context, rep Reporter) (Outcome, error) {
	ex := t.Current()
	if !ex.Done {
		ex.Done = true
		t.nDone++
	}

	if next, ok := t.nextPendingIndex(); ok {
		if err := t.SetCurrentByIndex(next); err != nil {
			return ExercisesPending, err
		}
		return ExercisesPending, nil
	}

	// Save the last completion before the pass so a killed run keeps it.
	if err := t.write(); err != nil {
		return ExercisesPending, err
	}
	return t.verifyAll(ctx, rep)
}

func (t *Tracker) verifyAll(ctx context.Context, rep Reporter) (Outcome, error) {
	if t.runner == nil {
		return ExercisesPending, ErrNoRunner
	}
	if rep == nil {
		rep = nopReporter{}
	}

	log := t.logger.With(zap.String("pass", uuid.NewString()))
	log.Debug("verifying all exercises", zap.Int("exercises", t.reg.Len()))

	if err := rep.VerifyStarted(); err != nil {
		return ExercisesPending, err
	}

	for i := range t.reg.All() {
		ex := t.reg.At(i)
		if err := rep.ExerciseStarted(ex); err != nil {
			return ExercisesPending, err
		}

		ok, err := t.runner.Run(ctx, ex)
		if err != nil {
			return ExercisesPending, fmt.Errorf("run %s: %w", ex, err)
		}
		if err := rep.ExerciseFinished(ex, ok); err != nil {
			return ExercisesPending, err
		}
		if ok {
			continue
		}

		log.Debug("regression found", zap.String("exercise", ex.Name), zap.Int("index", i))
		t.current = i
		// No pending exercise was found, so this one is known to be done.
		ex.Done = false
		t.nDone--
		if err := t.write(); err != nil {
			return ExercisesPending, err
		}
		return ExercisesPending, nil
	}

	log.Debug("all exercises verified")
	if err := rep.AllDone(t.final); err != nil {
		return AllDone, err
	}
	return AllDone, nil
}

// Forget removes the persisted state. In-memory progress is unchanged.
func (t *Tracker) Forget() error {
	if err := t.backend.Remove(); err != nil {
		return fmt.Errorf("remove state %s: %w", t.backend, err)
	}
	return nil
}

// write persists the current exercise and every done exercise. A failed
// write leaves the in-memory change in place.
func (t *Tracker) write() error {
	t.buf = t.buf[:0]
	t.buf = append(t.buf, t.Current().Name...)
	t.buf = append(t.buf, '\n', '\n')
	for i := range t.reg.All() {
		ex := t.reg.At(i)
		if ex.Done {
			t.buf = append(t.buf, ex.Name...)
			t.buf = append(t.buf, '\n')
		}
	}

	if err := t.backend.Save(t.buf); err != nil {
		t.logger.Warn("persist progress", zap.Stringer("state", t.backend), zap.Error(err))
		return fmt.Errorf("write state %s: %w", t.backend, err)
	}
	t.logger.Debug("persisted progress",
		zap.Stringer("state", t.backend),
		zap.String("current", t.Current().Name),
		zap.Int("done", t.nDone))
	return nil
}
