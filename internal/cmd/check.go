package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"rxgen/internal/pipeline"
)

// Check runs a full pass and prints its diagnostics.
type Check struct {
	ModelFlags

	Strict bool      `help:"Fail on warnings as well as errors"`
	Stdout io.Writer `kong:"-"`
}

// Run is called by Kong when the check command is executed.
func (c *Check) Run(ctx context.Context, logger *slog.Logger) error {
	w := stdout(c.Stdout)

	res, err := c.run(ctx, logger, pipeline.Options{})
	if res != nil {
		for _, d := range res.Diagnostics.All() {
			fprintln(w, d.Severity.String()+":", d.String())
		}
	}

	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%d units, %d descriptors, %d warnings\n",
		len(res.Files), len(res.Descriptors), len(res.Diagnostics.Warnings))

	if c.Strict && len(res.Diagnostics.Warnings) > 0 {
		return fmt.Errorf("%d warnings", len(res.Diagnostics.Warnings))
	}

	return nil
}
