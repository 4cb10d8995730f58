package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/hlsbuild/internal/manifest"
	"github.com/Alia5/hlsbuild/internal/stencil"
)

// ManifestCommand groups manifest-related subcommands.
type ManifestCommand struct {
	Dump  ManifestDump  `cmd:"" help:"Print the built-in manifest of an application"`
	Check ManifestCheck `cmd:"" help:"Validate a manifest file"`
}

// ManifestDump prints a built-in selection so it can be copied and edited.
type ManifestDump struct {
	App    string `arg:"" help:"Application name"`
	Format string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
}

// Run is called by Kong when the manifest dump command is executed.
func (c *ManifestDump) Run() error {
	return c.dump(os.Stdout)
}

func (c *ManifestDump) dump(w io.Writer) error {
	m, ok := manifest.Builtin(c.App)
	if !ok {
		return fmt.Errorf("no built-in manifest for app '%s'", c.App)
	}
	data, err := m.Marshal(c.Format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ManifestCheck loads a manifest and reports what it declares.
type ManifestCheck struct {
	Path string `arg:"" help:"Manifest file" type:"existingfile"`
}

// Run is called by Kong when the manifest check command is executed.
func (c *ManifestCheck) Run(logger *slog.Logger) error {
	m, err := manifest.Load(c.Path)
	if err != nil {
		return err
	}
	decls, err := m.Decls()
	if err != nil {
		return err
	}
	if _, err := stencil.LookupRevision(m.Revision); err != nil {
		return err
	}
	for _, d := range decls {
		logger.Debug("Declaration", "name", d.Name(), "kind", fmt.Sprintf("%T", d))
	}
	logger.Info("Manifest is valid", "app", m.App, "decls", len(decls))
	return nil
}
