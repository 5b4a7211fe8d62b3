// Package config loads the user configuration of the netfile CLI.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const appName = "netfile"

// Config holds user preferences read from config.toml.
type Config struct {
	// NetPath is the directory the network browser opens in. It may be a
	// file:// URI or start with ~.
	NetPath string `toml:"net_path"`

	// FollowCWD moves the browse directory to the parent of each network
	// that is picked.
	FollowCWD bool `toml:"follow_cwd"`

	// LogLevel is "debug", "info", "warn" or "error".
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		NetPath:   "~/",
		FollowCWD: true,
		LogLevel:  "info",
	}
}

// Path returns the location of config.toml, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration at path. A missing file yields the
// defaults; keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("parse config: unknown keys %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// LoadDefault loads the configuration from [Path].
func LoadDefault() (*Config, error) {
	path, err := Path()
	if err != nil {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// BrowseDir returns NetPath as a local directory.
func (c *Config) BrowseDir() (string, error) {
	return TranslateFileURI(c.NetPath)
}

// TranslateFileURI turns a file:// URI or a ~-relative path into a clean
// local path. Other paths are only cleaned.
func TranslateFileURI(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(s, "file://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", fmt.Errorf("parse %q: %w", s, err)
		}
		if u.Host != "" && u.Host != "localhost" {
			return "", fmt.Errorf("%q is not a local file", s)
		}
		s = u.Path
	}

	if s == "~" || strings.HasPrefix(s, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %q: %w", s, err)
		}
		s = filepath.Join(home, strings.TrimPrefix(s, "~"))
	}
	return filepath.Clean(s), nil
}
