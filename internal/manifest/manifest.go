// Package manifest loads the ordered list of class declarations that make up
// an application's generated header.
//
// A manifest is YAML, TOML or JSON; the loader is picked from the file
// extension. Entries are rendered in the order they are listed.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alia5/hlsbuild/internal/stencil"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Entry kinds.
const (
	KindAxiPacked  = "axi_packed"
	KindPacked     = "packed"
	KindPlain      = "plain"
	KindStream     = "stream"
	KindLineBuffer = "linebuffer"
	KindRAM        = "ram"
	KindTypedef    = "typedef"
)

type Manifest struct {
	App      string  `json:"app" yaml:"app" toml:"app"`
	Revision string  `json:"revision,omitempty" yaml:"revision,omitempty" toml:"revision,omitempty"`
	Entries  []Entry `json:"decls" yaml:"decls" toml:"decls"`
}

// Ref names a value type either literally or by its parts.
type Ref struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Kind    string `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Extents []int  `json:"extents,omitempty" yaml:"extents,omitempty" toml:"extents,omitempty"`
}

// Entry is one declaration. Which fields are read depends on Kind.
type Entry struct {
	Kind    string `json:"kind" yaml:"kind" toml:"kind"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Extents []int  `json:"extents,omitempty" yaml:"extents,omitempty" toml:"extents,omitempty"`

	// stream
	Elem string `json:"elem,omitempty" yaml:"elem,omitempty" toml:"elem,omitempty"`
	Of   *Ref   `json:"of,omitempty" yaml:"of,omitempty" toml:"of,omitempty"`

	// linebuffer
	In     *Ref  `json:"in,omitempty" yaml:"in,omitempty" toml:"in,omitempty"`
	Out    *Ref  `json:"out,omitempty" yaml:"out,omitempty" toml:"out,omitempty"`
	Bounds []int `json:"bounds,omitempty" yaml:"bounds,omitempty" toml:"bounds,omitempty"`

	// ram
	Depth int `json:"depth,omitempty" yaml:"depth,omitempty" toml:"depth,omitempty"`

	// typedef
	Target string `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	Alias  string `json:"alias,omitempty" yaml:"alias,omitempty" toml:"alias,omitempty"`
}

// Load reads a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", filepath.Base(path), err)
	}
	return m, nil
}

// FormatFromPath maps a file extension to "json", "yaml" or "toml".
// Unknown extensions are treated as JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}

// Parse decodes a manifest in the given format.
func Parse(data []byte, format string) (*Manifest, error) {
	var m Manifest
	var err error
	switch format {
	case "json":
		err = json.Unmarshal(data, &m)
	case "yaml":
		err = yaml.Unmarshal(data, &m)
	case "toml":
		err = toml.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", format)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Marshal encodes the manifest in the given format.
func (m *Manifest) Marshal(format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(m, "", "  ")
	case "yaml":
		return yaml.Marshal(m)
	case "toml":
		return toml.Marshal(*m)
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", format)
	}
}

// Decls converts the entries into declarations, in order.
// All entry errors are reported together.
func (m *Manifest) Decls() ([]stencil.Decl, error) {
	decls := make([]stencil.Decl, 0, len(m.Entries))
	var errs []error
	for i, e := range m.Entries {
		d, err := e.Decl()
		if err != nil {
			errs = append(errs, fmt.Errorf("decl %d (%s): %w", i, e.Kind, err))
			continue
		}
		decls = append(decls, d)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return decls, nil
}

// Decl converts a single entry.
func (e Entry) Decl() (stencil.Decl, error) {
	switch e.Kind {
	case KindAxiPacked, KindPacked, KindPlain:
		return valueDecl(e.Kind, e.Type, e.Extents)
	case KindStream:
		elem, err := resolve(e.Elem, e.Of, "elem")
		if err != nil {
			return nil, err
		}
		return stencil.Stream{Elem: elem}, nil
	case KindLineBuffer:
		in, err := resolve("", e.In, "in")
		if err != nil {
			return nil, err
		}
		out, err := resolve("", e.Out, "out")
		if err != nil {
			return nil, err
		}
		b, err := pair(e.Bounds, "bounds")
		if err != nil {
			return nil, err
		}
		return stencil.LineBuffer{In: in, Out: out, B0: b[0], B1: b[1]}, nil
	case KindRAM:
		if e.Depth <= 0 {
			return nil, fmt.Errorf("depth must be positive, got %d", e.Depth)
		}
		return stencil.Memory{Type: e.Type, Depth: e.Depth}, nil
	case KindTypedef:
		if e.Target == "" || e.Alias == "" {
			return nil, errors.New("typedef needs target and alias")
		}
		return stencil.Typedef{Target: e.Target, Alias: e.Alias}, nil
	case "":
		return nil, errors.New("missing kind")
	default:
		return nil, fmt.Errorf("unknown kind '%s'", e.Kind)
	}
}

// valueDecl passes the type token through unchecked, empty included.
func valueDecl(kind, typ string, extents []int) (stencil.Decl, error) {
	ext, err := pair(extents, "extents")
	if err != nil {
		return nil, err
	}
	x := stencil.Extents{E0: ext[0], E1: ext[1]}
	switch kind {
	case KindAxiPacked:
		return stencil.BusPacked{Type: typ, Extents: x}, nil
	case KindPacked:
		return stencil.Packed{Type: typ, Extents: x}, nil
	case KindPlain:
		return stencil.Plain{Type: typ, Extents: x}, nil
	default:
		return nil, fmt.Errorf("'%s' is not a value type", kind)
	}
}

// resolve returns the literal name if given, else the rendered name of ref.
func resolve(literal string, ref *Ref, field string) (string, error) {
	if literal != "" {
		return literal, nil
	}
	if ref == nil {
		return "", fmt.Errorf("missing %s", field)
	}
	if ref.Name != "" {
		return ref.Name, nil
	}
	d, err := valueDecl(ref.Kind, ref.Type, ref.Extents)
	if err != nil {
		return "", fmt.Errorf("%s: %w", field, err)
	}
	return d.Name(), nil
}

func pair(v []int, field string) ([2]int, error) {
	if len(v) != 2 {
		return [2]int{}, fmt.Errorf("%s must have 2 values, got %d", field, len(v))
	}
	if v[0] <= 0 || v[1] <= 0 {
		return [2]int{}, fmt.Errorf("%s must be positive, got %v", field, v)
	}
	return [2]int{v[0], v[1]}, nil
}
