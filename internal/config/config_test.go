package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.NetPath != "~/" || !cfg.FollowCWD || cfg.LogLevel != "info" {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
		wantErr string
	}{
		{
			name:    "all keys",
			content: "net_path = \"file:///data/nets\"\nfollow_cwd = false\nlog_level = \"debug\"\n",
			want:    Config{NetPath: "file:///data/nets", FollowCWD: false, LogLevel: "debug"},
		},
		{
			name:    "partial keeps defaults",
			content: "log_level = \"warn\"\n",
			want:    Config{NetPath: "~/", FollowCWD: true, LogLevel: "warn"},
		},
		{
			name:    "empty file",
			content: "",
			want:    *DefaultConfig(),
		},
		{
			name:    "unknown key",
			content: "net_path = \"~/\"\ncolor = true\n",
			wantErr: "unknown keys color",
		},
		{
			name:    "bad syntax",
			content: "net_path = \n",
			wantErr: "parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if *cfg != tt.want {
				t.Errorf("Load() = %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	want := filepath.Join("/tmp/custom-config", appName, "config.toml")
	if path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}
}

func TestPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", appName, "config.toml")
	if path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}
}

func TestTranslateFileURI(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"file:///data/nets", "/data/nets", false},
		{"file://localhost/data/nets/", "/data/nets", false},
		{"file:///data/my%20nets", "/data/my nets", false},
		{"file://server/share", "", true},
		{"~", home, false},
		{"~/", home, false},
		{"~/nets/../nets", filepath.Join(home, "nets"), false},
		{"/tmp//nets/", "/tmp/nets", false},
		{"relative/dir", "relative/dir", false},
		{"  ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := TranslateFileURI(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TranslateFileURI(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("TranslateFileURI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBrowseDir(t *testing.T) {
	cfg := &Config{NetPath: "file:///srv/nets"}
	dir, err := cfg.BrowseDir()
	if err != nil {
		t.Fatalf("BrowseDir() error: %v", err)
	}
	if dir != "/srv/nets" {
		t.Errorf("BrowseDir() = %q, want /srv/nets", dir)
	}
}
