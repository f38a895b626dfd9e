package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"rxgen/internal/config"
	"rxgen/internal/configpaths"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file holding every default.
type ConfigInit struct {
	Format string `help:"Output format" enum:"json,yaml,yml,toml" default:"yaml"`
	Output string `help:"Destination file path (defaults to rxgen.<ext> in the current directory)" type:"path"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

// fileConfig mirrors the flag tree as configuration keys. Nested sections
// match the log.* and conv.* flag prefixes.
type fileConfig struct {
	Log        fileLog            `json:"log" yaml:"log" toml:"log"`
	Conv       config.Conventions `json:"conv" yaml:"conv" toml:"conv"`
	Out        string             `json:"out" yaml:"out" toml:"out"`
	Comments   bool               `json:"comments" yaml:"comments" toml:"comments"`
	Attributes bool               `json:"attributes" yaml:"attributes" toml:"attributes"`
}

type fileLog struct {
	Level string `json:"level" yaml:"level" toml:"level"`
	File  string `json:"file" yaml:"file" toml:"file"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Log:      fileLog{Level: "info"},
		Conv:     config.Default(),
		Out:      "./Generated",
		Comments: true,
	}
}

// Run writes the template.
func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	dest := c.Output
	if dest == "" {
		dest = "rxgen." + configpaths.Extension(format)
	}

	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}

	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	data, err := marshalConfig(defaultFileConfig(), format)
	if err != nil {
		return err
	}

	return os.WriteFile(dest, data, 0o644)
}

func marshalConfig(cfg fileConfig, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(cfg)
	case "toml":
		return toml.Marshal(cfg)
	default:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}

		return append(data, '\n'), nil
	}
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}
