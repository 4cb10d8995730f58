package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/hlsbuild/internal/pipeline"
	"github.com/Alia5/hlsbuild/internal/stencil"
)

type Gen struct {
	Header `embed:""`

	App    pipeline.App `embed:"" prefix:"app."`
	Check  bool         `help:"Fail if the header on disk differs from what would be generated"`
	Stdout bool         `help:"Print the header instead of writing it"`
}

// Run is called by Kong when the gen command is executed.
func (g *Gen) Run(logger *slog.Logger) error {
	return g.generate(logger, os.Stdout)
}

func (g *Gen) generate(logger *slog.Logger, w io.Writer) error {
	h, err := g.Header.resolve(g.App)
	if err != nil {
		return err
	}

	switch {
	case g.Stdout:
		_, err := io.WriteString(w, stencil.Generate(h.decls, h.rev))
		return err
	case g.Check:
		fresh, onDisk, err := stencil.CheckHeader(h.path, h.decls, h.rev)
		if err != nil {
			return err
		}
		if !fresh {
			want := stencil.Digest(stencil.Generate(h.decls, h.rev))
			return fmt.Errorf("%s is out of date (digest %s, expected %s); run 'hlsbuild gen'", h.path, onDisk, want)
		}
		logger.Info("Header is up to date", "path", h.path, "digest", onDisk)
		return nil
	}

	artifact, err := stencil.WriteHeader(h.path, h.decls, h.rev)
	if err != nil {
		return err
	}
	logger.Info("Generated header",
		"path", h.path,
		"decls", len(h.decls),
		"revision", h.rev.Name,
		"digest", stencil.Digest(artifact))
	return nil
}
