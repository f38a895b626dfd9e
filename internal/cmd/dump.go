package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/davecgh/go-spew/spew"

	"rxgen/internal/pipeline"
)

// Dump prints the descriptors of a model.
type Dump struct {
	ModelFlags

	Stdout io.Writer `kong:"-"`
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Run is called by Kong when the dump command is executed.
func (d *Dump) Run(ctx context.Context, logger *slog.Logger) error {
	res, err := d.run(ctx, logger, pipeline.Options{})
	if err != nil {
		return err
	}

	dumpConfig.Fdump(stdout(d.Stdout), res.Descriptors)

	return nil
}
