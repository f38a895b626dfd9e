// Package main provides the CLI entrypoint for rxgen.
//
// rxgen reads a C# compilation model, finds members carrying ReactiveUI
// generation markers and writes the partial declarations that implement them.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"rxgen/internal/cmd"
	"rxgen/internal/configpaths"
	"rxgen/internal/logging"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("rxgen"),
		kong.Description("ReactiveUI companion code generator"),
		kong.UsageOnError(),
		kong.DefaultEnvars("RXGEN"),
		// Flags and environment override configuration values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := logging.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}

	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctx.Bind(logger)
	ctx.BindTo(runCtx, (*context.Context)(nil))

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

	return os.Getenv("RXGEN_CONFIG")
}
