package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/gopherlings/internal/exercise"
)

// Result is the outcome of one exercise run.
type Result struct {
	Success  bool
	ExitCode int
	Output   []byte
	Duration time.Duration
}

// Runner executes exercises with the go toolchain.
type Runner struct {
	goBin  string
	dir    string
	output io.Writer
	logger *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithGoBin sets the go executable. Defaults to "go" on PATH.
func WithGoBin(bin string) Option {
	return func(r *Runner) { r.goBin = bin }
}

// WithDir sets the directory exercises are resolved against.
func WithDir(dir string) Option {
	return func(r *Runner) { r.dir = dir }
}

// WithOutput copies the toolchain output of every run to w as it happens.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.output = w }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{goBin: "go", logger: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Args returns the go command arguments for ex.
func Args(ex *exercise.Exercise) ([]string, error) {
	pkg := "./" + ex.Path
	switch ex.Mode {
	case exercise.ModeRun:
		return []string{"run", pkg}, nil
	case exercise.ModeTest:
		return []string{"test", "-count=1", pkg}, nil
	case exercise.ModeBuild:
		return []string{"vet", pkg}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q for %s", ex.Mode, ex)
	}
}

// Exec runs ex and captures its combined output. A non-zero exit status is
// a failed Result, not an error; an error means the toolchain could not be
// started. There is no timeout beyond ctx.
func (r *Runner) Exec(ctx context.Context, ex *exercise.Exercise) (*Result, error) {
	args, err := Args(ex)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	var out io.Writer = &buf
	if r.output != nil {
		out = io.MultiWriter(&buf, r.output)
	}

	cmd := exec.CommandContext(ctx, r.goBin, args...)
	cmd.Dir = r.dir
	cmd.Stdout = out
	cmd.Stderr = out

	start := time.Now()
	err = cmd.Run()
	res := &Result{Output: buf.Bytes(), Duration: time.Since(start)}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.Success = true
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return nil, fmt.Errorf("start %s: %w", r.goBin, err)
	}

	r.logger.Debug("exercise run",
		zap.String("exercise", ex.Name),
		zap.String("mode", string(ex.Mode)),
		zap.Bool("success", res.Success),
		zap.Int("exit_code", res.ExitCode),
		zap.Duration("duration", res.Duration))
	return res, nil
}

// Run reports whether ex passes.
func (r *Runner) Run(ctx context.Context, ex *exercise.Exercise) (bool, error) {
	res, err := r.Exec(ctx, ex)
	if err != nil {
		return false, err
	}
	return res.Success, nil
}
