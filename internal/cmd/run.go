package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/hlsbuild/internal/log"
	"github.com/Alia5/hlsbuild/internal/pipeline"
)

type Run struct {
	Commands []string `arg:"" help:"Shell commands, run in order"`
	Dir      string   `help:"Working directory for every command" env:"HLSBUILD_RUN_DIR"`
	DryRun   bool     `help:"Print the commands without running them"`
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, output log.OutputLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(logger, output)
	runner.DryRun = r.DryRun
	return runner.Run(ctx, pipeline.Commands(r.Dir, r.Commands...))
}
