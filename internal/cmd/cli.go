// Package cmd holds the kong command tree of the rxgen CLI.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"rxgen/internal/analyze"
	"rxgen/internal/config"
	"rxgen/internal/diagnostic"
	"rxgen/internal/pipeline"
	"rxgen/internal/plan"
)

// CLI is the root command.
type CLI struct {
	Config string   `help:"Configuration file (.json, .yaml, .yml or .toml)" type:"path" placeholder:"FILE"`
	Log    LogFlags `embed:"" prefix:"log."`

	Gen          Gen           `cmd:"" help:"Generate companion units from a compilation model"`
	Check        Check         `cmd:"" help:"Report diagnostics without writing files"`
	Dump         Dump          `cmd:"" help:"Print the descriptors built from a compilation model"`
	Attributes   Attributes    `cmd:"" help:"Print or write the marker attribute definitions"`
	Suppressions Suppressions  `cmd:"" help:"List the diagnostic suppressions shipped with the generator"`
	ConfigCmd    ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}

// LogFlags configure logging.
type LogFlags struct {
	Level string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error"`
	File  string `help:"Also write logs to this file" type:"path"`
}

// ModelFlags are shared by every command that reads a compilation model.
type ModelFlags struct {
	Model           string             `arg:"" help:"Compilation model file (.yaml, .yml or .toml)" type:"existingfile"`
	ConventionsFile string             `name:"conventions" help:"Conventions file replacing the conv.* settings" type:"existingfile" optional:""`
	Family          []string           `help:"Generation families to run" default:"ObservableAsProperty,ReactiveCommand"`
	Conv            config.Conventions `embed:"" prefix:"conv."`
}

// conventions returns the effective conventions.
func (m *ModelFlags) conventions() (config.Conventions, error) {
	if m.ConventionsFile == "" {
		return m.Conv.WithDefaults(), nil
	}

	return config.LoadFile(m.ConventionsFile)
}

func (m *ModelFlags) families() ([]plan.Family, error) {
	if len(m.Family) == 0 {
		return plan.Families, nil
	}

	out := make([]plan.Family, 0, len(m.Family))

	for _, name := range m.Family {
		f, err := plan.ParseFamily(name)
		if err != nil {
			return nil, err
		}

		out = append(out, f)
	}

	return out, nil
}

// run loads the model and executes one pass.
func (m *ModelFlags) run(ctx context.Context, logger *slog.Logger, opts pipeline.Options) (*pipeline.Result, error) {
	conv, err := m.conventions()
	if err != nil {
		return nil, err
	}

	families, err := m.families()
	if err != nil {
		return nil, err
	}

	compilation, err := analyze.LoadFile(m.Model)
	if err != nil {
		return nil, err
	}

	logger.Debug("loaded compilation model", "model", m.Model, "types", len(compilation.Types()))

	opts.Conventions = conv
	opts.Families = families
	opts.Logger = logger

	return pipeline.Run(ctx, compilation, opts)
}

// report logs diagnostics: errors and warnings at their level, infos at debug.
func report(logger *slog.Logger, diags *diagnostic.Diagnostics) {
	for _, d := range diags.Errors {
		logger.Error(d.String(), "code", d.Code)
	}

	for _, d := range diags.Warnings {
		logger.Warn(d.String(), "code", d.Code)
	}

	for _, d := range diags.Infos {
		logger.Debug(d.String(), "code", d.Code)
	}
}

func stdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}

	return w
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
