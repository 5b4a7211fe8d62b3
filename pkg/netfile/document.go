package netfile

import (
	"fmt"
	"math"
	"strconv"
)

// Extension is the filename suffix every saved network carries.
const Extension = ".net"

// OldestTag is assumed for files that carry no version tag. The earliest
// released format predates the tagging convention.
const OldestTag = "1"

// Top-level keys of the canonical structure.
const (
	KeyNodes          = "nodes"
	KeyLayouts        = "layouts"
	KeyNetworkVersion = "NETWORK_VERSION"
	KeyAppVersion     = "GPI_VERSION"
	KeyHeader         = "HEADER"
	KeyDateTime       = "DATETIME"
	KeyWallTime       = "WALLTIME"
	KeyPortMemory     = "TOTAL_PMEM"
	KeyPlatform       = "PLATFORM"
)

// Keys inside the "nodes" mapping.
const (
	KeyNodeList  = "nodes"
	KeyMacroList = "macroNodes"
)

// Per-node keys filled in by the version 1 upgrade.
const (
	KeyNodeMatch       = "key"
	KeyNodeWallTime    = "walltime"
	KeyNodeAvgWallTime = "avgwalltime"
	KeyNodeStdWallTime = "stdwalltime"
)

// HeaderText is the static header string stamped on every save.
const HeaderText = "This is a GPI Network File"

// Document is the canonical in-memory network description.
//
// Values are restricted to a JSON-like set: string, int64, float64, bool,
// nil, []any and map[string]any. Both on-disk families decode into exactly
// these types so a document compares equal regardless of where it came from.
type Document map[string]any

// NewDocument returns an empty, current-shaped document.
func NewDocument() Document {
	return Document{
		KeyNodes: map[string]any{
			KeyNodeList:  []any{},
			KeyMacroList: []any{},
		},
		KeyLayouts: nil,
	}
}

// Tag returns the document's version tag and whether one was present.
// Integral numbers are accepted so files written by other tools resolve.
// Any other value still counts as a tag; it just names no known version.
func (d Document) Tag() (string, bool) {
	v, ok := d[KeyNetworkVersion]
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<63 {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'g', -1, 64), true
	case nil:
		return "None", true
	}
	return fmt.Sprint(v), true
}

// Nodes returns the "nodes" mapping, or nil when absent.
func (d Document) Nodes() map[string]any {
	n, _ := d[KeyNodes].(map[string]any)
	return n
}

// NodeList returns the node entries.
func (d Document) NodeList() []any {
	l, _ := d.Nodes()[KeyNodeList].([]any)
	return l
}

// MacroNodeList returns the macro-node entries.
func (d Document) MacroNodeList() []any {
	l, _ := d.Nodes()[KeyMacroList].([]any)
	return l
}

// IsEmpty reports whether the network has neither nodes nor macro nodes.
func (d Document) IsEmpty() bool {
	return len(d.NodeList()) == 0 && len(d.MacroNodeList()) == 0
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return Document(cloneMap(d))
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Document:
		return cloneMap(t)
	case map[string]any:
		return cloneMap(t)
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case int:
		return int64(t)
	}
	return v
}
