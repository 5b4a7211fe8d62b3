package netfile

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	pickle "github.com/kisielk/og-rek"

	"github.com/matzehuels/netfile/pkg/platform"
)

var testNow = time.Date(2026, time.October, 18, 14, 3, 1, 0, time.UTC)

func testEnv() Env {
	return Env{
		AppVersion: "0.6.0",
		Platform:   platform.Static{"OS": "linux", "NUM_CPUS": "8"},
		Now:        func() time.Time { return testNow },
	}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func bufferLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
}

// sampleDoc returns a current-shaped network with one node, one macro node
// and a spread of value types.
func sampleDoc() Document {
	return Document{
		KeyNodes: map[string]any{
			KeyNodeList: []any{
				map[string]any{
					"name":             "ReadImage",
					"id":               int64(140230441),
					"pos":              []any{int64(120), int64(-40)},
					"scale":            1.5,
					"origin":           []any{0.0, -40.0, 1.0},
					"enabled":          true,
					"widget_settings":  nil,
					KeyNodeMatch:       "core.fileIO.ReadImage",
					KeyNodeWallTime:    "0.25",
					KeyNodeAvgWallTime: "0.2",
					KeyNodeStdWallTime: "0.01",
				},
			},
			KeyMacroList: []any{
				map[string]any{"label": "Recon", "nodes": []any{}},
			},
		},
		KeyLayouts: map[string]any{"widgets": []any{"a", "b"}},
	}
}

// stripProvenance removes the keys every encode regenerates.
func stripProvenance(d Document) Document {
	out := d.Clone()
	for _, k := range []string{KeyNetworkVersion, KeyAppVersion, KeyHeader, KeyDateTime, KeyPlatform} {
		delete(out, k)
	}
	return out
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// pickleBytes pickles v the way an external writer would, without stamping.
func pickleBytes(t *testing.T, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := pickle.NewEncoderWithConfig(&buf, &pickle.EncoderConfig{Protocol: 2, StrictUnicode: true})
	if err := enc.Encode(v); err != nil {
		t.Fatalf("pickle: %v", err)
	}
	return buf.Bytes()
}

// beta1Pickle is a protocol 0 pickle of the kind the first released
// version wrote: no NETWORK_VERSION, one node without match key or timing
// fields, and Python 2 byte strings throughout.
const beta1Pickle = "(dp0\nS'nodes'\np1\n(dp2\nS'nodes'\np3\n(lp4\n(dp5\nasS'macroNodes'\np6\n(lp7\nssS'layouts'\np8\nNs."
