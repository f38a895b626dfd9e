package cmd

import (
	"context"
	"log/slog"

	"rxgen/internal/gen"
	"rxgen/internal/pipeline"
)

// Gen writes the generated units to an output directory.
type Gen struct {
	ModelFlags

	Out         string `help:"Output directory for generated units" default:"./Generated" type:"path" env:"RXGEN_OUT"`
	Comments    bool   `help:"Emit summary comments" default:"true" negatable:""`
	Attributes  bool   `help:"Also emit the marker attribute definitions"`
	Concurrency int    `help:"Parallel build and emit workers (0 uses GOMAXPROCS)" default:"0"`
}

// Run is called by Kong when the gen command is executed.
func (g *Gen) Run(ctx context.Context, logger *slog.Logger) error {
	logger.Info("generating", "model", g.Model, "out", g.Out)

	res, err := g.run(ctx, logger, pipeline.Options{
		GenerateComments: g.Comments,
		EmitAttributes:   g.Attributes,
		Concurrency:      g.Concurrency,
	})
	if res != nil {
		report(logger, &res.Diagnostics)
	}

	if err != nil {
		return err
	}

	written, err := gen.WriteFiles(res.Files, g.Out)
	if err != nil {
		return err
	}

	logger.Info("wrote generated units", "written", written, "unchanged", len(res.Files)-written)

	return nil
}
