package netfile

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/netfile/pkg/errors"
)

// Sniffed is the result of probing a file's bytes.
type Sniffed struct {
	// Raw is the decoded top-level mapping, not yet upgraded.
	Raw Document

	// Tag is the version tag, OldestTag when the file carries none.
	Tag string

	// Tagged reports whether the file carried an explicit tag.
	Tagged bool

	// Family names the serialization family that parsed the file.
	Family string

	// Preamble is the first line of a text file, empty otherwise.
	Preamble string
}

// probes are tried in order; the first family that parses wins. Text comes
// first because a pickle never parses as JSON, while serialization-level
// validity is the only test there is for the legacy family.
var probes = []Family{Text, Legacy}

// Sniff determines the serialization family of data and decodes it.
//
// It returns an UNREADABLE error when no family parses the data or when the
// parsed value is not a mapping.
func Sniff(data []byte) (*Sniffed, error) {
	var (
		v      any
		family Family
		failed []error
	)
	for _, f := range probes {
		out, err := f.Unmarshal(data)
		if err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", f.Name, err))
			continue
		}
		v, family = out, f
		break
	}
	if family.Name == "" {
		return nil, errors.Wrap(errors.ErrCodeUnreadable, stderrors.Join(failed...),
			"not a network file in any known format")
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnreadable,
			"no description dictionary found, this is probably not a network file")
	}

	s := &Sniffed{Raw: Document(m), Family: family.Name}
	if tag, ok := s.Raw.Tag(); ok {
		s.Tag, s.Tagged = tag, true
	} else {
		s.Tag = OldestTag
	}
	if family.Name == Text.Name {
		line, _ := splitPreamble(data)
		s.Preamble = strings.TrimSpace(string(line))
	}
	return s, nil
}

// SniffFile reads path and sniffs its contents.
func SniffFile(path string) (*Sniffed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnreadable, err, "read %s", path)
	}
	return Sniff(data)
}
