// Package netfile loads and saves versioned network descriptions.
//
// # Overview
//
// A network file describes a node graph: its nodes, macro nodes, layouts
// and some provenance. Three historical format revisions exist, spread
// over two serialization families:
//
//   - v1, v2: a pickled nested dict ("legacy binary" family)
//   - v3: UTF-8 JSON behind a one-line preamble ("structured text" family)
//
// Files are never identified by extension. [Sniff] tries each family in
// turn and takes the first that parses, then reads the version tag out of
// the decoded mapping. Files without a tag predate the tagging convention
// and are treated as v1.
//
// # Canonical Structure
//
// Every codec decodes into a [Document] of the same current shape:
//
//	{
//	  "nodes": {
//	    "nodes":      [{"key": "", "walltime": "0", ...}, ...],
//	    "macroNodes": [...]
//	  },
//	  "layouts":         ...,
//	  "NETWORK_VERSION": "3",
//	  "GPI_VERSION":     "0.6.0",
//	  "HEADER":          "This is a GPI Network File",
//	  "DATETIME":        "Sun Oct 18 14:03:01 2026",
//	  "PLATFORM":        {"OS": "linux", ...}
//	}
//
// Older files are brought to this shape by their codec's upgrade step; the
// v1 upgrade fills in the per-node match key and timing fields.
//
// # Loading and Saving
//
// Use a [Store]:
//
//	store := netfile.NewStore(nil, netfile.Env{}, logger)
//	doc, err := store.Load("session.net")
//	if err != nil {
//	    // NOT_FOUND, UNREADABLE or UNKNOWN_VERSION; keep prior state
//	}
//	err = store.Save("session", doc) // writes session.net as the latest version
//
// Saves always use the latest registered codec and go through a staging
// file that is renamed over the target, so an interrupted save never
// leaves a half-written network behind.
//
// # Versions
//
// The [Registry] is a static list of codecs. Tags are strings on disk but
// compare as integers, so a future "10" is newer than "9". A codec is a
// plain value: a tag, a [Family], a stamping function and an upgrade
// function. New revisions reuse older stamping helpers and pick a family.
//
// # Concurrency
//
// A Store keeps no per-document state and performs blocking I/O. The
// registry is immutable after construction.
package netfile
