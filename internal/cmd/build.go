package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/hlsbuild/internal/log"
	"github.com/Alia5/hlsbuild/internal/pipeline"
	"github.com/Alia5/hlsbuild/internal/stencil"
)

type Build struct {
	Header `embed:""`

	App    pipeline.App `embed:"" prefix:"app."`
	DryRun bool         `help:"Print the commands without running them"`
}

// Run is called by Kong when the build command is executed.
func (b *Build) Run(logger *slog.Logger, output log.OutputLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(logger, output)
	runner.DryRun = b.DryRun
	return b.build(ctx, logger, runner)
}

func (b *Build) build(ctx context.Context, logger *slog.Logger, runner *pipeline.Runner) error {
	// Resolve the manifest up front so a bad selection fails before make runs.
	h, err := b.Header.resolve(b.App)
	if err != nil {
		return err
	}

	logger.Info("Starting build", "app", b.App.Name, "dir", b.App.AppDir(), "header", h.path)
	writeHeader := func(context.Context) error {
		artifact, err := stencil.WriteHeader(h.path, h.decls, h.rev)
		if err != nil {
			return err
		}
		logger.Debug("Wrote header", "path", h.path, "digest", stencil.Digest(artifact))
		return nil
	}
	return runner.Run(ctx, pipeline.Plan(b.App, writeHeader))
}
