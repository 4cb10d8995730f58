package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Alia5/hlsbuild/internal/pipeline"
	"github.com/Alia5/hlsbuild/internal/stencil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testApp(dir string) pipeline.App {
	return pipeline.App{
		Name:         "pointwise",
		Dir:          dir,
		MakeTarget:   "design-vhls",
		Compiler:     "true",
		Std:          "c++11",
		IROpt:        "-O1",
		BitcodeOpt:   "-O0",
		TestbenchOpt: "-O1",
		Design:       "bin/vhls_target.cpp",
		Testbench:    "target_tb.cpp",
		Executable:   "true",
	}
}

func TestGenWritesHeader(t *testing.T) {
	dir := t.TempDir()
	g := &Gen{App: testApp(dir)}

	require.NoError(t, g.generate(testLogger(), io.Discard))

	data, err := os.ReadFile(filepath.Join(dir, stencil.HeaderFileName))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "class AxiPackedStencil_uint16_t_1_1_ {\n"))
	assert.Contains(t, string(data), "class hls_stream_AxiPackedStencil_uint16_t_1_1__ {")
}

func TestGenStdout(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	g := &Gen{App: testApp(dir), Stdout: true, Header: Header{Revision: "compact"}}

	require.NoError(t, g.generate(testLogger(), &out))
	assert.Contains(t, out.String(), "class PackedStencil_uint16_t_1_1_ {")
	assert.Contains(t, out.String(), "void set_last(bool l)")
	assert.NotContains(t, out.String(), "void set(")
	assert.NoFileExists(t, filepath.Join(dir, stencil.HeaderFileName))
}

func TestGenCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "classes.h")

	g := &Gen{App: testApp(dir), Header: Header{Output: path}}
	require.NoError(t, g.generate(testLogger(), io.Discard))

	g.Check = true
	require.NoError(t, g.generate(testLogger(), io.Discard))

	require.NoError(t, os.WriteFile(path, []byte("// edited\n"), 0o644))
	err := g.generate(testLogger(), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path+" is out of date (digest "+stencil.Digest("// edited\n")+", expected ")
	assert.True(t, strings.HasSuffix(err.Error(), "; run 'hlsbuild gen'"))
}

func TestGenManifestFile(t *testing.T) {
	dir := t.TempDir()
	mf := filepath.Join(dir, "blur.yaml")
	require.NoError(t, os.WriteFile(mf, []byte(`app: blur
revision: stub
decls:
  - kind: ram
    type: int32_t
    depth: 8
`), 0o644))

	var out bytes.Buffer
	app := testApp(dir)
	app.Name = "blur"
	g := &Gen{App: app, Stdout: true, Header: Header{Manifest: mf}}
	require.NoError(t, g.generate(testLogger(), &out))
	assert.Equal(t, "class ram_int32_t_8 {};\n\n", out.String())
}

func TestGenErrors(t *testing.T) {
	app := testApp(t.TempDir())
	app.Name = "unknown"

	err := (&Gen{App: app}).generate(testLogger(), io.Discard)
	assert.EqualError(t, err, "no manifest given and no built-in selection for app 'unknown'")

	err = (&Gen{App: testApp(t.TempDir()), Header: Header{Revision: "v0"}}).generate(testLogger(), io.Discard)
	assert.ErrorContains(t, err, "unknown revision 'v0'")
}

func TestBuildDryRun(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	runner := pipeline.NewRunner(testLogger(), nil)
	runner.Stdout = &out
	runner.DryRun = true

	b := &Build{App: testApp(dir)}
	require.NoError(t, b.build(context.Background(), testLogger(), runner))

	assert.Equal(t, 5, strings.Count(out.String(), "Running "))
	assert.Contains(t, out.String(), "Running  make design-vhls\n")
	assert.NoFileExists(t, filepath.Join(dir, stencil.HeaderFileName))
}

func TestBuildStopsBeforeHeader(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	runner := pipeline.NewRunner(testLogger(), nil)
	runner.Stdout = &out
	runner.Stderr = io.Discard

	app := testApp(dir)
	app.MakeTarget = "design-vhls; exit 3"
	b := &Build{App: app}
	err := b.build(context.Background(), testLogger(), runner)

	var stepErr *pipeline.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, pipeline.StepDesign, stepErr.Step)
	assert.NoFileExists(t, filepath.Join(dir, stencil.HeaderFileName))
	assert.Equal(t, 1, strings.Count(out.String(), "Running "))
}

func TestBuildWritesHeaderBeforeCompiling(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Makefile"), []byte("design-vhls:\n\t@true\n"), 0o644))

	runner := pipeline.NewRunner(testLogger(), nil)
	runner.Stdout = io.Discard
	runner.Stderr = io.Discard

	app := testApp(dir)
	header := filepath.Join(dir, stencil.HeaderFileName)
	// The IR step only succeeds once the header exists.
	app.Compiler = "test -f " + header + " && true"
	app.Executable = "exit 5"

	err := (&Build{App: app}).build(context.Background(), testLogger(), runner)
	var stepErr *pipeline.StepError
	require.ErrorAs(t, err, &stepErr)
	if stepErr.Step == pipeline.StepDesign {
		t.Skip("make not available")
	}
	assert.Equal(t, pipeline.StepRun, stepErr.Step)
	assert.Equal(t, 5, stepErr.ExitCode)
	assert.FileExists(t, header)
}

func TestNamesPrint(t *testing.T) {
	var out bytes.Buffer
	n := &Names{Kind: "packed", Type: "int32_t", Extents: []int{1, 1}, To: []int{3, 3}, Bounds: []int{62, 62}}

	require.NoError(t, n.print(&out))
	assert.Equal(t, "class:  PackedStencil_int32_t_1_1_\n"+
		"stream: hls_stream_PackedStencil_int32_t_1_1__\n"+
		"linebuffer: linebuffer_hls_stream_PackedStencil_int32_t_1_1___to_hls_stream_PackedStencil_int32_t_3_3___bnds_62_62\n",
		out.String())

	err := (&Names{Kind: "plain", Type: "int", Extents: []int{1}}).print(&out)
	assert.EqualError(t, err, "extents must have 2 values, got 1")
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestNamesPrintWriteError(t *testing.T) {
	closed := errors.New("stdout closed")

	err := (&Names{Kind: "packed", Type: "int32_t", Extents: []int{1, 1}}).print(failingWriter{closed})
	assert.ErrorIs(t, err, closed)

	err = (&ManifestDump{App: "pointwise", Format: "yaml"}).dump(failingWriter{closed})
	assert.ErrorIs(t, err, closed)
}

func TestManifestDump(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&ManifestDump{App: "pointwise", Format: "json"}).dump(&out))

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "pointwise", got["app"])

	err := (&ManifestDump{App: "nope", Format: "yaml"}).dump(&out)
	assert.EqualError(t, err, "no built-in manifest for app 'nope'")
}

func TestConfigInit(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "cfg", "build.yaml")
	c := &ConfigInit{Command: "build", Format: "yaml", Output: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	app, ok := got["app"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "design-vhls", app["make_target"])
	assert.Equal(t, "-O1", app["ir_opt"])
	assert.Equal(t, false, got["dry_run"])
	assert.Contains(t, got, "manifest")

	err = c.Run()
	assert.EqualError(t, err, "destination exists; use --force to overwrite")

	c.Force = true
	assert.NoError(t, c.Run())
}

func TestDefaultValueForField(t *testing.T) {
	type sample struct {
		Name  string `default:"pointwise"`
		Quiet bool   `default:"true"`
		Bad   bool   `default:"maybe"`
		Count int    `default:"3"`
		App   struct {
			Dir string
		}
	}
	typ := reflect.TypeOf(sample{})

	type testCase struct {
		field    string
		expected any
	}
	testCases := []testCase{
		{field: "Name", expected: "pointwise"},
		{field: "Quiet", expected: true},
		{field: "Bad", expected: false},
		{field: "Count", expected: nil},
		{field: "App", expected: map[string]any{"dir": ""}},
	}
	for _, tc := range testCases {
		t.Run(tc.field, func(t *testing.T) {
			f, ok := typ.FieldByName(tc.field)
			require.True(t, ok)
			assert.Equal(t, tc.expected, defaultValueForField(f.Type, f.Tag.Get("default")))
		})
	}

	assert.NotContains(t, buildMapFromStruct(typ), "count")
}
