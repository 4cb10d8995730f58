// Package pipeline runs an ordered list of build steps and stops at the
// first one that fails.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/Alia5/hlsbuild/internal/log"
)

// Step is either a shell command or an in-process action. Exactly one of
// Command and Action is set.
type Step struct {
	Name    string
	Dir     string
	Command string
	Action  func(ctx context.Context) error
}

// StepError reports the step that stopped the pipeline.
type StepError struct {
	Step     string
	Command  string
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("step %s: %v", e.Step, e.Err)
	}
	if e.ExitCode > 0 {
		return fmt.Sprintf("step %s: %q exited with status %d", e.Step, e.Command, e.ExitCode)
	}
	return fmt.Sprintf("step %s: %q: %v", e.Step, e.Command, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Runner executes steps one at a time.
type Runner struct {
	// Shell is the interpreter prefix, default {"sh", "-c"}.
	Shell  []string
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	// Output receives a copy of every child's stdout and stderr.
	Output log.OutputLogger
	// DryRun prints the commands without running anything.
	DryRun bool
}

// NewRunner returns a Runner writing to the process's stdout and stderr.
func NewRunner(logger *slog.Logger, output log.OutputLogger) *Runner {
	return &Runner{
		Shell:  []string{"sh", "-c"},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
		Output: output,
	}
}

// Run executes steps in order. It returns nil when every step succeeded and
// a *StepError for the first one that did not; later steps are not started
// and nothing already produced is cleaned up.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	logger := r.logger()
	start := time.Now()
	for i, s := range steps {
		if err := r.runStep(ctx, s); err != nil {
			logger.Error("Build step failed", "step", s.Name, "index", i+1, "of", len(steps), "error", err)
			return err
		}
	}
	logger.Info("All build steps succeeded", "steps", len(steps), "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func (r *Runner) runStep(ctx context.Context, s Step) error {
	logger := r.logger()

	if s.Action != nil {
		logger.Info("Running step", "step", s.Name)
		if r.DryRun {
			return nil
		}
		if err := s.Action(ctx); err != nil {
			return &StepError{Step: s.Name, ExitCode: -1, Err: err}
		}
		return nil
	}

	// The command line is echoed before it runs; on failure it is the only
	// hint of what went wrong.
	_, _ = fmt.Fprintln(r.stdout(), "Running ", s.Command)
	logger.Info("Running step", "step", s.Name, "dir", s.Dir, "command", s.Command)
	if r.DryRun {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return &StepError{Step: s.Name, Command: s.Command, ExitCode: -1, Err: err}
	}

	shell := r.Shell
	if len(shell) == 0 {
		shell = []string{"sh", "-c"}
	}
	args := append(append([]string{}, shell[1:]...), s.Command)
	cmd := exec.CommandContext(ctx, shell[0], args...)
	cmd.Dir = s.Dir
	cmd.Stdout = r.tee(s.Name, false, r.stdout())
	cmd.Stderr = r.tee(s.Name, true, r.stderr())
	setProcessGroup(cmd)

	err := cmd.Run()
	if err == nil {
		logger.Debug("Step finished", "step", s.Name)
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}

	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &StepError{Step: s.Name, Command: s.Command, ExitCode: code, Err: err}
}

func (r *Runner) tee(step string, stderr bool, w io.Writer) io.Writer {
	if r.Output == nil {
		return w
	}
	return io.MultiWriter(w, log.StepWriter(r.Output, step, stderr))
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout == nil {
		return io.Discard
	}
	return r.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr == nil {
		return io.Discard
	}
	return r.Stderr
}

// Commands turns plain shell strings into steps named after their position.
func Commands(dir string, cmds ...string) []Step {
	steps := make([]Step, 0, len(cmds))
	for i, c := range cmds {
		steps = append(steps, Step{Name: fmt.Sprintf("cmd-%d", i+1), Dir: dir, Command: c})
	}
	return steps
}
