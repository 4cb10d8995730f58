package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/Alia5/hlsbuild/internal/manifest"
	"github.com/Alia5/hlsbuild/internal/pipeline"
	"github.com/Alia5/hlsbuild/internal/stencil"
)

// Header selects what goes into an application's generated header and where it is written.
type Header struct {
	Manifest string `help:"Declaration manifest (JSON, YAML or TOML); defaults to the built-in selection for the app" env:"HLSBUILD_MANIFEST"`
	Revision string `help:"Member set revision (full, compact, stub); overrides the manifest" env:"HLSBUILD_REVISION"`
	Output   string `help:"Header path; defaults to <app-dir>/gen_classes.h" env:"HLSBUILD_OUTPUT"`
}

type resolvedHeader struct {
	decls []stencil.Decl
	rev   stencil.Revision
	path  string
}

func (h *Header) resolve(app pipeline.App) (*resolvedHeader, error) {
	var m *manifest.Manifest
	if h.Manifest != "" {
		loaded, err := manifest.Load(h.Manifest)
		if err != nil {
			return nil, err
		}
		m = loaded
	} else {
		builtin, ok := manifest.Builtin(app.Name)
		if !ok {
			return nil, fmt.Errorf("no manifest given and no built-in selection for app '%s'", app.Name)
		}
		m = builtin
	}

	decls, err := m.Decls()
	if err != nil {
		return nil, err
	}

	revName := m.Revision
	if h.Revision != "" {
		revName = h.Revision
	}
	rev, err := stencil.LookupRevision(revName)
	if err != nil {
		return nil, err
	}

	path := h.Output
	if path == "" {
		path = filepath.Join(app.AppDir(), stencil.HeaderFileName)
	}
	return &resolvedHeader{decls: decls, rev: rev, path: path}, nil
}
