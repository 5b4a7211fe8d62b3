package netfile

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// Info summarizes the provenance fields a document happens to carry.
// Every field is optional; absent ones stay empty.
type Info struct {
	Version        string
	VersionAssumed bool
	AppVersion     string
	Saved          string
	WallTime       string
	PortMemory     string
	Platform       [][2]string
	Nodes          int
	MacroNodes     int
}

// Describe reads the provenance of doc without requiring any of it.
func Describe(doc Document) Info {
	info := Info{
		Nodes:      len(doc.NodeList()),
		MacroNodes: len(doc.MacroNodeList()),
	}
	if tag, ok := doc.Tag(); ok {
		info.Version = tag
	} else {
		info.Version = OldestTag
		info.VersionAssumed = true
	}
	if v, ok := doc[KeyAppVersion]; ok && v != nil {
		info.AppVersion = fmt.Sprint(v)
	}
	if v, ok := doc[KeyDateTime]; ok && v != nil {
		info.Saved = fmt.Sprint(v)
	}
	if secs, ok := toFloat(doc[KeyWallTime]); ok {
		info.WallTime = HumanDuration(secs)
	}
	if n, ok := toFloat(doc[KeyPortMemory]); ok && n >= 0 {
		info.PortMemory = humanize.IBytes(uint64(n))
	}
	if table, ok := doc[KeyPlatform].(map[string]any); ok {
		keys := make([]string, 0, len(table))
		for k := range table {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			info.Platform = append(info.Platform, [2]string{k, fmt.Sprint(table[k])})
		}
	}
	return info
}

// Rows returns the summary as label/value pairs in display order.
func (i Info) Rows() [][2]string {
	var rows [][2]string
	if i.VersionAssumed {
		rows = append(rows, [2]string{"assumed net-version", i.Version})
	} else {
		rows = append(rows, [2]string{"net-version", i.Version})
	}
	optional := [][2]string{
		{"saved with gpi-version", i.AppVersion},
		{"date saved", i.Saved},
		{"wall time", i.WallTime},
		{"total port mem", i.PortMemory},
	}
	for _, r := range optional {
		if r[1] != "" {
			rows = append(rows, r)
		}
	}
	return append(rows, i.Platform...)
}

// KeyVals flattens Rows into alternating keys and values for structured
// logging.
func (i Info) KeyVals() []any {
	rows := i.Rows()
	kv := make([]any, 0, 2*len(rows))
	for _, r := range rows {
		kv = append(kv, r[0], r[1])
	}
	return kv
}

// HumanDuration formats a number of seconds for display.
func HumanDuration(secs float64) string {
	d := time.Duration(secs * float64(time.Second))
	switch {
	case d < time.Millisecond:
		return d.String()
	case d < time.Minute:
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case float64:
		return t, !math.IsNaN(t)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil && !math.IsNaN(f)
	}
	return 0, false
}
