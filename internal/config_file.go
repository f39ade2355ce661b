package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileConfig holds the optional defaults read from the idfdock config file.
type FileConfig struct {
	Runtime      string   `toml:"runtime" yaml:"runtime"`
	Image        string   `toml:"image" yaml:"image"`
	Container    string   `toml:"container" yaml:"container"`
	Python       string   `toml:"python" yaml:"python"`
	IDFPath      string   `toml:"idf_path" yaml:"idf_path"`
	CcacheDir    string   `toml:"ccache_dir" yaml:"ccache_dir"`
	Privileged   bool     `toml:"privileged" yaml:"privileged"`
	PortPatterns []string `toml:"port_patterns" yaml:"port_patterns"`
}

// ConfigFilePaths returns the candidate config files in lookup order.
// IDFDOCK_CONFIG, when set, is the only candidate.
func ConfigFilePaths(lookup map[string]string, host Host) []string {
	if path := lookup["IDFDOCK_CONFIG"]; path != "" {
		return []string{ExpandPath(path, host)}
	}

	// XDG_CONFIG_HOME is not consulted on macOS, matching os.UserConfigDir.
	var configDir string
	if host.OS != "darwin" {
		configDir = lookup["XDG_CONFIG_HOME"]
	}
	if configDir == "" {
		configDir = userConfigDir(host)
	}
	if configDir == "" {
		return nil
	}

	return []string{
		filepath.Join(configDir, "idfdock", "config.toml"),
		filepath.Join(configDir, "idfdock", "config.yaml"),
	}
}

func userConfigDir(host Host) string {
	if host.HomeDir == "" {
		return ""
	}
	if host.OS == "darwin" {
		return filepath.Join(host.HomeDir, "Library", "Application Support")
	}
	return filepath.Join(host.HomeDir, ".config")
}

// LoadFileConfig reads the first candidate that exists. Missing files are
// skipped; an unreadable or malformed file is an error. The returned path is
// empty when no file was found.
func LoadFileConfig(paths []string) (FileConfig, string, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return FileConfig{}, path, fmt.Errorf("failed to read config file %q: %w", path, err)
		}

		config, err := decodeFileConfig(path, data)
		if err != nil {
			return FileConfig{}, path, err
		}
		return config, path, nil
	}

	return FileConfig{}, "", nil
}

func decodeFileConfig(path string, data []byte) (FileConfig, error) {
	var config FileConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &config); err != nil {
			return FileConfig{}, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return FileConfig{}, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	default:
		return FileConfig{}, fmt.Errorf("unsupported config file %q: expected a .toml, .yaml or .yml extension", path)
	}

	return config, nil
}
