package main

import (
	"os"
	"strings"

	"github.com/Alia5/hlsbuild/internal/config"
	"github.com/Alia5/hlsbuild/internal/configpaths"
	"github.com/Alia5/hlsbuild/internal/log"
	"github.com/Alia5/hlsbuild/internal/version"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	v, err := version.Get()
	if err != nil {
		v = version.Version
	}

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("hlsbuild"),
		kong.Description("HLS stub header generator and testbench build driver"),
		kong.UsageOnError(),
		kong.Vars{"version": v},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File, cli.Log.Format)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var output log.OutputLogger
	if cli.Log.OutputFile != "" {
		f, err := os.OpenFile(cli.Log.OutputFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open command output log", "file", cli.Log.OutputFile, "error", err)
			output = log.NewOutput(nil)
		} else {
			output = log.NewOutput(f)
			closeFiles = append(closeFiles, f)
		}
	} else if cli.Log.Level == "trace" {
		output = log.NewOutput(os.Stderr)
	} else {
		output = log.NewOutput(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(output, (*log.OutputLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("HLSBUILD_CONFIG"); v != "" {
		return v
	}
	return ""
}
