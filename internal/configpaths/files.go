// Package configpaths locates rxgen configuration files.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// appName is the directory and base file name used for configuration.
const appName = "rxgen"

// DefaultConfigDir returns the platform-specific configuration directory.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, appName), nil
		}

		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}

		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", appName), nil
		}

		return "", errors.New("HOME not set")
	}
}

// Extension returns the file extension for a config format name.
// Unknown formats map to "json".
func Extension(format string) string {
	switch format {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return "json"
	}
}

// DefaultConfigPath returns the default config file path for the given format.
func DefaultConfigPath(format string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, appName+"."+Extension(format)), nil
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// ConfigCandidatePaths builds candidate paths for config files per format,
// highest priority first. A userPath is routed to the loader matching its
// extension and placed before every default location.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	addDir := func(dir string) {
		add(&jsonPaths, filepath.Join(dir, appName+".json"))
		add(&yamlPaths, filepath.Join(dir, appName+".yaml"))
		add(&yamlPaths, filepath.Join(dir, appName+".yml"))
		add(&tomlPaths, filepath.Join(dir, appName+".toml"))
	}

	if wd, err := os.Getwd(); err == nil {
		addDir(wd)
	}

	if dir, err := DefaultConfigDir(); err == nil {
		addDir(dir)
	}

	return jsonPaths, yamlPaths, tomlPaths
}
