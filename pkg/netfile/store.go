package netfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/netfile/pkg/errors"
	"github.com/matzehuels/netfile/pkg/observability"
)

// Store loads networks in any known format and saves them in the latest.
//
// A Store holds no document state between calls. Each Load or Save runs
// its file I/O to completion before returning.
type Store struct {
	Registry *Registry
	Env      Env
	Logger   *log.Logger

	latest *Codec
}

// NewStore creates a store over the given registry.
// If registry is nil, [DefaultRegistry] is used.
// If logger is nil, log.Default() is used.
func NewStore(registry *Registry, env Env, logger *log.Logger) *Store {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		Registry: registry,
		Env:      env.withDefaults(),
		Logger:   logger,
		latest:   registry.Latest(),
	}
}

// LatestVersionTag returns the tag every save is written with.
func (s *Store) LatestVersionTag() string {
	return s.latest.Tag
}

// Load reads the network at path and returns it in current shape.
//
// Load returns NOT_FOUND when path is not a regular file, UNREADABLE when
// no format parses it or the result is not a network description, and
// UNKNOWN_VERSION when no codec handles its tag. Every failure is logged;
// callers should keep their prior state. Load never writes.
func (s *Store) Load(path string) (doc Document, err error) {
	start := time.Now()
	var tag string
	defer func() {
		observability.Document().OnLoad(path, tag, time.Since(start), err)
	}()

	info, statErr := os.Stat(path)
	if statErr != nil || !info.Mode().IsRegular() {
		s.Logger.Error("not a valid filename, skipping", "file", path)
		if statErr == nil {
			return nil, errors.New(errors.ErrCodeNotFound, "%s is not a regular file", path)
		}
		return nil, errors.Wrap(errors.ErrCodeNotFound, statErr, "%s is not a valid filename", path)
	}

	sniffed, err := SniffFile(path)
	if err != nil {
		s.Logger.Error("network file cannot be read; it is either corrupted, permissions are not set, "+
			"or it contains serialized objects that are version specific",
			"file", path, "err", err)
		return nil, err
	}
	tag = sniffed.Tag

	if sniffed.Preamble != "" {
		if _, ptag, ok := ParsePreamble(sniffed.Preamble); ok && CompareTags(ptag, tag) != 0 {
			s.Logger.Warn("preamble disagrees with file contents, trusting contents",
				"file", path, "preamble", ptag, "contents", tag)
		}
	}
	if CompareTags(tag, s.latest.Tag) != 0 {
		s.Logger.Warn("this network was saved in an older format, please re-save this network",
			"file", path, "version", tag, "latest", s.latest.Tag)
	}

	codec, ok := s.Registry.Resolve(tag)
	if !ok {
		s.Logger.Error("network version cannot be determined, skipping", "file", path, "version", tag)
		return nil, errors.New(errors.ErrCodeUnknownVersion, "no codec for network version %q in %s", tag, path)
	}

	if err := errors.ValidateDocument(sniffed.Raw); err != nil {
		s.Logger.Error("not a network description", "file", path, "err", err)
		return nil, errors.Wrap(errors.ErrCodeUnreadable, err, "%s is not a network description", path)
	}

	return codec.Decode(sniffed.Raw, s.Logger), nil
}

// Save writes doc to path with the latest codec, appending [Extension]
// when path lacks it. Documents are never down-converted.
//
// The file is written to a staging file in the same directory and renamed
// over the target, so a failed save leaves any existing file intact. All
// failures are logged and returned as SAVE_FAILED.
func (s *Store) Save(path string, doc Document) (err error) {
	start := time.Now()
	defer func() {
		observability.Document().OnSave(path, s.latest.Tag, time.Since(start), err)
	}()

	if err := errors.ValidateFilename(path); err != nil {
		s.Logger.Error("saving network failed", "file", path, "err", err)
		return errors.Wrap(errors.ErrCodeSaveFailed, err, "saving network failed")
	}
	path = NormalizePath(path)

	if err := errors.ValidateDocument(doc); err != nil {
		s.Logger.Error("saving network failed", "file", path, "err", err)
		return errors.Wrap(errors.ErrCodeSaveFailed, err, "saving network %s failed", path)
	}

	raw := s.latest.Encode(doc, s.Env)
	if err := writeStaged(path, func(w io.Writer) error {
		return s.latest.Write(w, raw, s.Env)
	}); err != nil {
		s.Logger.Error("saving network failed", "file", path, "err", err)
		return errors.Wrap(errors.ErrCodeSaveFailed, err, "saving network %s failed", path)
	}

	s.Logger.Info("network saved", "file", path, "version", s.latest.Tag)
	return nil
}

// NormalizePath appends [Extension] to path unless it already ends with it.
func NormalizePath(path string) string {
	if strings.HasSuffix(path, Extension) {
		return path
	}
	return path + Extension
}

// stagingPath names a hidden sibling of path that no other save will pick.
func stagingPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")
}

// writeStaged writes through a staging file and renames it onto path.
// The staging file is removed on every failure path.
func writeStaged(path string, write func(io.Writer) error) (err error) {
	tmp := stagingPath(path)
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if info, statErr := os.Stat(path); statErr == nil && info.Mode().IsRegular() {
		_ = f.Chmod(info.Mode().Perm())
	}

	bw := bufio.NewWriter(f)
	if err = write(bw); err == nil {
		err = bw.Flush()
	}
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename onto %s: %w", path, err)
	}
	return nil
}
