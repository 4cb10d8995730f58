package config

import (
	"github.com/Alia5/hlsbuild/internal/cmd"

	"github.com/alecthomas/kong"
)

// CLI is the root kong command tree.
type CLI struct {
	Config  string           `help:"Path to a JSON, YAML or TOML configuration file" env:"HLSBUILD_CONFIG"`
	Version kong.VersionFlag `help:"Print version and exit"`
	Log     Log              `embed:"" prefix:"log."`

	Gen       cmd.Gen             `cmd:"" help:"Render the stub class header for an application"`
	Build     cmd.Build           `cmd:"" help:"Generate the design, render the header, compile and run the testbench"`
	Run       cmd.Run             `cmd:"" help:"Run shell commands in order, stopping at the first failure"`
	Names     cmd.Names           `cmd:"" help:"Print the class names derived for a value type"`
	Manifest  cmd.ManifestCommand `cmd:"" help:"Inspect declaration manifests"`
	ConfigCmd cmd.ConfigCommand   `cmd:"" name:"config" help:"Configuration helpers"`
}

type Log struct {
	Level      string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"HLSBUILD_LOG_LEVEL"`
	File       string `help:"Also write logs to this file" env:"HLSBUILD_LOG_FILE"`
	Format     string `help:"Console log format" default:"auto" enum:"auto,text,json" env:"HLSBUILD_LOG_FORMAT"`
	OutputFile string `help:"Copy the output of external commands to this file" env:"HLSBUILD_LOG_OUTPUT_FILE"`
}
