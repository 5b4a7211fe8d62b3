package netfile

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netfile/pkg/buildinfo"
	"github.com/matzehuels/netfile/pkg/platform"
)

// Family is a serialization family: how a raw tree maps to and from bytes.
//
// Unmarshal must return an error rather than a partial tree when the input
// does not belong to the family; the sniffer relies on that to try the next
// family.
type Family struct {
	Name      string
	Unmarshal func(data []byte) (any, error)
	Marshal   func(w io.Writer, raw Document, preamble string) error
}

// Env supplies the provenance stamped into a document on encode.
// Zero fields fall back to the running process: [buildinfo.Version],
// [platform.Host] and [time.Now].
type Env struct {
	AppVersion string
	Platform   platform.Provider
	Now        func() time.Time
}

func (e Env) withDefaults() Env {
	if e.AppVersion == "" {
		e.AppVersion = buildinfo.Version
	}
	if e.Platform == nil {
		e.Platform = platform.Host{}
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	return e
}

// Codec reads and writes one historical format revision.
//
// Newer revisions are built by composing the stamping helpers of older ones
// and swapping the family, not by wrapping older codecs.
type Codec struct {
	// Tag is the numeral version string written as NETWORK_VERSION.
	Tag string

	// Family is the byte-level encoding of this revision.
	Family Family

	// Stamp writes provenance metadata into an outgoing raw tree.
	Stamp func(raw Document, tag string, env Env)

	// Upgrade brings a freshly decoded tree to the current shape in place.
	Upgrade func(doc Document, logger *log.Logger)

	// Preamble returns the first line of a text file, if the family has one.
	Preamble func(tag string, env Env) string
}

// Encode returns a stamped copy of doc ready for writing. doc is not
// modified.
func (c *Codec) Encode(doc Document, env Env) Document {
	raw := doc.Clone()
	if raw == nil {
		raw = Document{}
	}
	if c.Stamp != nil {
		c.Stamp(raw, c.Tag, env.withDefaults())
	}
	return raw
}

// Decode upgrades a raw tree read from disk into the canonical structure.
// The tree is modified in place and returned.
func (c *Codec) Decode(raw Document, logger *log.Logger) Document {
	if logger == nil {
		logger = log.Default()
	}
	if c.Upgrade != nil {
		c.Upgrade(raw, logger)
	}
	return raw
}

// Write serializes an encoded raw tree with this codec's family.
func (c *Codec) Write(w io.Writer, raw Document, env Env) error {
	var preamble string
	if c.Preamble != nil {
		preamble = c.Preamble(c.Tag, env.withDefaults())
	}
	if err := c.Family.Marshal(w, raw, preamble); err != nil {
		return fmt.Errorf("network v%s: %w", c.Tag, err)
	}
	return nil
}

// Marshal encodes doc and returns the bytes of a complete file.
func (c *Codec) Marshal(doc Document, env Env) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Write(&buf, c.Encode(doc, env), env); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
