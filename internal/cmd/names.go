package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Alia5/hlsbuild/internal/manifest"
	"github.com/Alia5/hlsbuild/internal/stencil"
)

// Names prints the class names a value type and its companions render to.
type Names struct {
	Kind    string `arg:"" help:"Value type kind" enum:"axi_packed,packed,plain"`
	Type    string `arg:"" help:"Element type token, used verbatim"`
	Extents []int  `arg:"" help:"The two extents"`
	To      []int  `help:"Extents of a line buffer's output stencil (same kind and type)"`
	Bounds  []int  `help:"Line buffer bounds" default:"1,1"`
}

// Run is called by Kong when the names command is executed.
func (n *Names) Run() error {
	return n.print(os.Stdout)
}

func (n *Names) print(w io.Writer) error {
	d, err := manifest.Entry{Kind: n.Kind, Type: n.Type, Extents: n.Extents}.Decl()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "class:  %s\nstream: %s\n", d.Name(), stencil.StreamName(d.Name())); err != nil {
		return err
	}

	if len(n.To) == 0 {
		return nil
	}
	lb, err := manifest.Entry{
		Kind:   manifest.KindLineBuffer,
		In:     &manifest.Ref{Name: d.Name()},
		Out:    &manifest.Ref{Kind: n.Kind, Type: n.Type, Extents: n.To},
		Bounds: n.Bounds,
	}.Decl()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "linebuffer: %s\n", lb.Name())
	return err
}
