package pipeline

import (
	"context"
	"path/filepath"
	"strings"
)

// App describes one application's build: where it lives and how the
// toolchain is invoked against it.
type App struct {
	Name         string `help:"Application name" default:"pointwise" env:"HLSBUILD_APP"`
	Dir          string `help:"Application directory; empty resolves to <apps-root>/<name>" env:"HLSBUILD_APP_DIR"`
	AppsRoot     string `help:"Directory holding all applications" default:"./apps/hardware_benchmarks/apps" env:"HLSBUILD_APPS_ROOT"`
	MakeTarget   string `help:"make target that generates the design" default:"design-vhls" env:"HLSBUILD_MAKE_TARGET"`
	Compiler     string `help:"C++ compiler" default:"clang++" env:"HLSBUILD_CXX"`
	Std          string `help:"C++ language standard" default:"c++11" env:"HLSBUILD_STD"`
	IROpt        string `name:"ir-opt" help:"Optimization level for the textual IR" default:"-O1" env:"HLSBUILD_IR_OPT"`
	BitcodeOpt   string `help:"Optimization level for the bitcode" default:"-O0" env:"HLSBUILD_BITCODE_OPT"`
	TestbenchOpt string `help:"Optimization level for the testbench" default:"-O1" env:"HLSBUILD_TESTBENCH_OPT"`
	Design       string `help:"Generated design source, relative to the app directory" default:"bin/vhls_target.cpp" env:"HLSBUILD_DESIGN"`
	Testbench    string `help:"Testbench source, relative to the app directory" default:"target_tb.cpp" env:"HLSBUILD_TESTBENCH"`
	Executable   string `help:"Testbench executable the compiler produces" default:"./a.out" env:"HLSBUILD_EXECUTABLE"`
}

// AppDir returns the application directory.
func (a App) AppDir() string {
	if a.Dir != "" {
		return a.Dir
	}
	return filepath.Join(a.AppsRoot, a.Name)
}

// Step names, in pipeline order.
const (
	StepDesign    = "design"
	StepHeader    = "header"
	StepIR        = "ir"
	StepBitcode   = "bitcode"
	StepTestbench = "testbench"
	StepRun       = "run"
)

// Plan returns the fixed build sequence for app. writeHeader is the
// in-process step that renders the stub header into the app directory.
func Plan(app App, writeHeader func(ctx context.Context) error) []Step {
	dir := app.AppDir()
	design := quote(filepath.Join(dir, app.Design))
	include := "-I " + quote(dir+string(filepath.Separator))
	cxx := app.Compiler + " -std=" + app.Std

	return []Step{
		{Name: StepDesign, Dir: dir, Command: "make " + app.MakeTarget},
		{Name: StepHeader, Action: writeHeader},
		{Name: StepIR, Command: join(cxx, app.IROpt, "-c -S -emit-llvm", design, include)},
		{Name: StepBitcode, Command: join(cxx, app.BitcodeOpt, "-c -emit-llvm", design, include)},
		{Name: StepTestbench, Command: join(cxx, app.TestbenchOpt, quote(filepath.Join(dir, app.Testbench)), design, include)},
		{Name: StepRun, Command: app.Executable},
	}
}

func join(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// quote single-quotes s for sh when it holds anything but plain path characters.
func quote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./+=:,@", r)) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
