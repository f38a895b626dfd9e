package cmd

import (
	"io"
	"log/slog"

	"rxgen/internal/config"
	"rxgen/internal/gen"
)

// Attributes prints or writes the marker attribute definitions.
type Attributes struct {
	Out    string             `help:"Write the definitions to this directory instead of stdout" type:"path"`
	Conv   config.Conventions `embed:"" prefix:"conv."`
	Stdout io.Writer          `kong:"-"`
}

// Run is called by Kong when the attributes command is executed.
func (a *Attributes) Run(logger *slog.Logger) error {
	cfg := gen.DefaultGeneratorConfig()
	cfg.Conventions = a.Conv.WithDefaults()
	cfg.EmitAttributes = true

	files, err := gen.NewGenerator(cfg).AttributeFiles()
	if err != nil {
		return err
	}

	if a.Out != "" {
		written, err := gen.WriteFiles(files, a.Out)
		if err != nil {
			return err
		}

		logger.Info("wrote attribute definitions", "out", a.Out, "written", written)

		return nil
	}

	w := stdout(a.Stdout)
	for _, f := range files {
		fprintln(w, "// "+f.Filename)
		_, _ = w.Write(f.Content)
	}

	return nil
}
