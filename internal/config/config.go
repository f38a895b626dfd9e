// Package config holds the runtime-library conventions the generator matches
// against and emits. Defaults target ReactiveUI and System.Reactive.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Marker metadata names of the built-in generation families.
const (
	ObservableAsPropertyMarker = "ReactiveUI.SourceGenerators.ObservableAsPropertyAttribute"
	ReactiveCommandMarker      = "ReactiveUI.SourceGenerators.ReactiveCommandAttribute"
)

// Conventions names every runtime type and member generated code binds to.
// Type names are namespace-qualified without the global:: alias.
type Conventions struct {
	// StreamType is the generic definition a source must derive from to be stream-shaped.
	StreamType string `yaml:"stream_type" toml:"stream_type" json:"stream_type" help:"Stream type definition matched through the base-type chain" default:"System.IObservable"`
	// HelperType holds the latest value observed from a stream.
	HelperType string `yaml:"helper_type" toml:"helper_type" json:"helper_type" help:"Helper field type" default:"ReactiveUI.ObservableAsPropertyHelper"`
	// ToPropertyMethod converts a stream into a HelperType.
	ToPropertyMethod string `yaml:"to_property_method" toml:"to_property_method" json:"to_property_method" help:"Extension method wiring a stream into a helper" default:"ToProperty"`
	// SnapshotSource lifts a plain value into a single-element stream.
	SnapshotSource string `yaml:"snapshot_source" toml:"snapshot_source" json:"snapshot_source" help:"Factory lifting a plain value into a stream" default:"System.Reactive.Linq.Observable.Return"`
	// PropertyInitializer is the generated method wiring every helper.
	PropertyInitializer string `yaml:"property_initializer" toml:"property_initializer" json:"property_initializer" help:"Generated initializer for observable properties" default:"InitializeOAPH"`
	// CommandType is the generic command type.
	CommandType string `yaml:"command_type" toml:"command_type" json:"command_type" help:"Command type" default:"ReactiveUI.ReactiveCommand"`
	// CommandInitializer is the generated method creating every command.
	CommandInitializer string `yaml:"command_initializer" toml:"command_initializer" json:"command_initializer" help:"Generated initializer for commands" default:"InitializeCommands"`
	// UnitType stands in for void parameters and results.
	UnitType string `yaml:"unit_type" toml:"unit_type" json:"unit_type" help:"Unit type for void parameters and results" default:"System.Reactive.Unit"`
	// TaskType is the awaitable definition recognised on command methods.
	TaskType string `yaml:"task_type" toml:"task_type" json:"task_type" help:"Awaitable type recognised on command methods" default:"System.Threading.Tasks.Task"`
	// PropertyMarker and CommandMarker are the marker attribute metadata names.
	PropertyMarker string `yaml:"property_marker" toml:"property_marker" json:"property_marker" help:"ObservableAsProperty marker metadata name" default:"ReactiveUI.SourceGenerators.ObservableAsPropertyAttribute"`
	CommandMarker  string `yaml:"command_marker" toml:"command_marker" json:"command_marker" help:"ReactiveCommand marker metadata name" default:"ReactiveUI.SourceGenerators.ReactiveCommandAttribute"`
}

// Default returns the ReactiveUI conventions.
func Default() Conventions {
	return Conventions{
		StreamType:          "System.IObservable",
		HelperType:          "ReactiveUI.ObservableAsPropertyHelper",
		ToPropertyMethod:    "ToProperty",
		SnapshotSource:      "System.Reactive.Linq.Observable.Return",
		PropertyInitializer: "InitializeOAPH",
		CommandType:         "ReactiveUI.ReactiveCommand",
		CommandInitializer:  "InitializeCommands",
		UnitType:            "System.Reactive.Unit",
		TaskType:            "System.Threading.Tasks.Task",
		PropertyMarker:      ObservableAsPropertyMarker,
		CommandMarker:       ReactiveCommandMarker,
	}
}

// WithDefaults returns c with every empty field taken from Default.
func (c Conventions) WithDefaults() Conventions {
	d := Default()
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}

	fill(&c.StreamType, d.StreamType)
	fill(&c.HelperType, d.HelperType)
	fill(&c.ToPropertyMethod, d.ToPropertyMethod)
	fill(&c.SnapshotSource, d.SnapshotSource)
	fill(&c.PropertyInitializer, d.PropertyInitializer)
	fill(&c.CommandType, d.CommandType)
	fill(&c.CommandInitializer, d.CommandInitializer)
	fill(&c.UnitType, d.UnitType)
	fill(&c.TaskType, d.TaskType)
	fill(&c.PropertyMarker, d.PropertyMarker)
	fill(&c.CommandMarker, d.CommandMarker)

	return c
}

// Validate checks that names are usable in generated code.
func (c Conventions) Validate() error {
	var errs []error

	check := func(field, v string) {
		switch {
		case strings.TrimSpace(v) == "":
			errs = append(errs, fmt.Errorf("%s is empty", field))
		case strings.ContainsAny(v, " <>,;"):
			errs = append(errs, fmt.Errorf("%s %q must be a plain qualified name", field, v))
		}
	}

	check("stream_type", c.StreamType)
	check("helper_type", c.HelperType)
	check("to_property_method", c.ToPropertyMethod)
	check("snapshot_source", c.SnapshotSource)
	check("property_initializer", c.PropertyInitializer)
	check("command_type", c.CommandType)
	check("command_initializer", c.CommandInitializer)
	check("unit_type", c.UnitType)
	check("task_type", c.TaskType)
	check("property_marker", c.PropertyMarker)
	check("command_marker", c.CommandMarker)

	return errors.Join(errs...)
}

// LoadFile reads conventions from a YAML or TOML file; missing keys keep their defaults.
func LoadFile(path string) (Conventions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Conventions{}, fmt.Errorf("failed to read conventions %s: %w", path, err)
	}

	var c Conventions
	if strings.HasSuffix(strings.ToLower(path), ".toml") {
		err = toml.Unmarshal(data, &c)
	} else {
		err = yaml.Unmarshal(data, &c)
	}

	if err != nil {
		return Conventions{}, fmt.Errorf("failed to parse conventions %s: %w", path, err)
	}

	c = c.WithDefaults()

	return c, c.Validate()
}
