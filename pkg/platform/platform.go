// Package platform reports a snapshot of the host's OS and runtime
// capabilities.
//
// The snapshot is stamped into saved networks as the PLATFORM table so a
// reader can tell which machine produced a file. Values are strings so the
// table survives every on-disk format unchanged.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
)

// Provider supplies the platform-info table written on save.
type Provider interface {
	Table() map[string]string
}

// Host is the Provider for the running process.
type Host struct{}

// Table returns OS, architecture, CPU and runtime details for this host.
// On unix systems it also includes the kernel name, release and machine.
func (Host) Table() map[string]string {
	t := map[string]string{
		"OS":         runtime.GOOS,
		"ARCH":       runtime.GOARCH,
		"NUM_CPUS":   strconv.Itoa(runtime.NumCPU()),
		"GO_VERSION": runtime.Version(),
	}
	if host, err := os.Hostname(); err == nil {
		t["HOSTNAME"] = host
	}
	for k, v := range uname() {
		t[k] = v
	}
	return t
}

// Static is a fixed table, useful for tests and reproducible output.
type Static map[string]string

// Table returns a copy of the static table.
func (s Static) Table() map[string]string {
	out := make(map[string]string, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// InOSX reports whether the process runs on macOS.
func InOSX() bool { return runtime.GOOS == "darwin" }

// InLinux reports whether the process runs on Linux.
func InLinux() bool { return runtime.GOOS == "linux" }

// MediaDirs lists mounted removable-media directories as file:// URIs.
// macOS uses /Volumes; Linux uses /media, falling back to /mnt.
func MediaDirs() []string {
	switch {
	case InOSX():
		return listMedia("/Volumes")
	case InLinux():
		return listMedia("/media", "/mnt")
	}
	return nil
}

// listMedia returns the entries of the first root that is a directory.
func listMedia(roots ...string) []string {
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil
		}
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, "file://"+filepath.ToSlash(filepath.Join(root, e.Name())))
		}
		sort.Strings(out)
		return out
	}
	return nil
}
