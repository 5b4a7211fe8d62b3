package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/netfile/pkg/errors"
	"github.com/matzehuels/netfile/pkg/netfile"
	"github.com/matzehuels/netfile/pkg/platform"
)

// isolateConfig points config lookup at an empty directory.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func testEnv() netfile.Env {
	return netfile.Env{
		AppVersion: "0.5.0",
		Platform:   platform.Static{"OS": "linux"},
		Now:        func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

func writeNetwork(t *testing.T, codec *netfile.Codec, doc netfile.Document) string {
	t.Helper()
	data, err := codec.Marshal(doc, testEnv())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "session.net")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func oneNode() netfile.Document {
	doc := netfile.NewDocument()
	doc.Nodes()[netfile.KeyNodeList] = []any{map[string]any{"name": "Sum"}}
	return doc
}

func run(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"info", "upgrade", "versions", "browse", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestUpgradeCommand(t *testing.T) {
	isolateConfig(t)
	in := writeNetwork(t, netfile.V2(), oneNode())
	out := filepath.Join(t.TempDir(), "upgraded")

	if err := run(t, New(io.Discard, LogInfo), "upgrade", in, "-o", out); err != nil {
		t.Fatalf("upgrade error: %v", err)
	}

	s, err := netfile.SniffFile(out + netfile.Extension)
	if err != nil {
		t.Fatalf("SniffFile() error: %v", err)
	}
	if s.Tag != "3" {
		t.Errorf("upgraded tag = %q, want 3", s.Tag)
	}

	orig, err := netfile.SniffFile(in)
	if err != nil || orig.Tag != "2" {
		t.Errorf("input was modified: tag %q, err %v", orig.Tag, err)
	}
}

func TestUpgradeInPlace(t *testing.T) {
	isolateConfig(t)
	in := writeNetwork(t, netfile.V1(), oneNode())

	if err := run(t, New(io.Discard, LogInfo), "upgrade", in); err != nil {
		t.Fatalf("upgrade error: %v", err)
	}
	s, err := netfile.SniffFile(in)
	if err != nil {
		t.Fatalf("SniffFile() error: %v", err)
	}
	if s.Tag != "3" {
		t.Errorf("tag = %q, want 3", s.Tag)
	}
	node := s.Raw.NodeList()[0].(map[string]any)
	if node[netfile.KeyNodeWallTime] != "0" {
		t.Errorf("v1 upgrade not applied: %v", node)
	}
}

func TestUpgradeSkipsEmptyNetwork(t *testing.T) {
	isolateConfig(t)
	in := writeNetwork(t, netfile.V2(), netfile.NewDocument())
	out := filepath.Join(t.TempDir(), "empty.net")

	if err := run(t, New(io.Discard, LogInfo), "upgrade", in, "-o", out); err != nil {
		t.Fatalf("upgrade error: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("empty network should not be saved")
	}
}

func TestInfoCommandErrors(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.net")
	if err := os.WriteFile(garbage, []byte("not a network"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join(dir, "missing.net"), errors.ErrCodeNotFound},
		{"garbage", garbage, errors.ErrCodeUnreadable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t, New(io.Discard, LogInfo), "info", tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("info error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestInfoCommandLoads(t *testing.T) {
	isolateConfig(t)
	in := writeNetwork(t, netfile.V3(), oneNode())
	if err := run(t, New(io.Discard, LogInfo), "info", in); err != nil {
		t.Errorf("info error: %v", err)
	}
}

func TestConfigLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		content string
		start   log.Level
		want    log.Level
	}{
		{"config raises level", "log_level = \"warn\"\n", log.InfoLevel, log.WarnLevel},
		{"verbose wins", "log_level = \"warn\"\n", log.DebugLevel, log.DebugLevel},
		{"bad level ignored", "log_level = \"loud\"\n", log.InfoLevel, log.InfoLevel},
		{"no config", "", log.InfoLevel, log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolateConfig(t)
			if tt.content != "" {
				if err := os.MkdirAll(filepath.Join(dir, appName), 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join(dir, appName, "config.toml"), []byte(tt.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			c := New(io.Discard, tt.start)
			if err := run(t, c, "versions"); err != nil {
				t.Fatalf("versions error: %v", err)
			}
			if got := c.Logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvalidConfigFailsCommand(t *testing.T) {
	dir := isolateConfig(t)
	if err := os.MkdirAll(filepath.Join(dir, appName), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, appName, "config.toml"), []byte("net_path = \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := run(t, New(io.Discard, LogInfo), "versions")
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Errorf("error = %v, want parse config failure", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	isolateConfig(t)
	root := New(io.Discard, LogInfo).RootCommand()

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(buf.String(), appName) {
		t.Error("completion script should mention the command name")
	}
}

func TestIsSaveEvent(t *testing.T) {
	target := "/data/nets/session.net"
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"rename onto target", fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{"in-place write", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"moved away", fsnotify.Event{Name: target, Op: fsnotify.Rename}, true},
		{"chmod only", fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{"removed", fsnotify.Event{Name: target, Op: fsnotify.Remove}, false},
		{"staging file", fsnotify.Event{Name: "/data/nets/.session.net.1234.tmp", Op: fsnotify.Write}, false},
		{"other network", fsnotify.Event{Name: "/data/nets/other.net", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSaveEvent(tt.event, target); got != tt.want {
				t.Errorf("isSaveEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestWatchInfoStopsWithContext(t *testing.T) {
	in := writeNetwork(t, netfile.V3(), oneNode())
	c := New(io.Discard, LogInfo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.watchInfo(ctx, in, time.Millisecond); err != nil {
		t.Errorf("watchInfo() error: %v", err)
	}
}
