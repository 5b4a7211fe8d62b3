package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// ValidateTag validates a network version tag.
//
// Tags are stored and transmitted as strings but must read as non-negative
// base-10 integers so they can be ordered numerically:
//   - No empty tags
//   - Digits only (no sign, no whitespace, no dots)
//   - Must fit in an int
func ValidateTag(tag string) error {
	if tag == "" {
		return New(ErrCodeInvalidVersion, "version tag cannot be empty")
	}
	for _, r := range tag {
		if r < '0' || r > '9' {
			return New(ErrCodeInvalidVersion, "version tag must be numeric: %q", tag)
		}
	}
	if _, err := strconv.Atoi(tag); err != nil {
		return Wrap(ErrCodeInvalidVersion, err, "version tag out of range: %q", tag)
	}
	return nil
}

// ValidateFilename validates a document path given for saving.
func ValidateFilename(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "filename cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "filename contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidInput, "filename names a directory: %q", path)
	}
	return nil
}

// ValidateDocument checks the shape of a canonical network structure.
//
// The checks are structural only, so that files from any era pass:
//   - "nodes", when present, must be a mapping
//   - "nodes.nodes" and "nodes.macroNodes", when present, must be
//     sequences whose entries are mappings
//
// Missing keys are not an error here; callers decide whether an empty
// network is worth keeping.
func ValidateDocument(doc map[string]any) error {
	if doc == nil {
		return New(ErrCodeInvalidDocument, "no description dictionary found")
	}
	raw, ok := doc["nodes"]
	if !ok || raw == nil {
		return nil
	}
	nodes, ok := raw.(map[string]any)
	if !ok {
		return New(ErrCodeInvalidDocument, "\"nodes\" must be a mapping, got %T", raw)
	}
	for _, key := range []string{"nodes", "macroNodes"} {
		v, ok := nodes[key]
		if !ok || v == nil {
			continue
		}
		list, ok := v.([]any)
		if !ok {
			return New(ErrCodeInvalidDocument, "\"nodes.%s\" must be a sequence, got %T", key, v)
		}
		for i, entry := range list {
			if _, ok := entry.(map[string]any); !ok {
				return New(ErrCodeInvalidDocument, "\"nodes.%s[%d]\" must be a mapping, got %T", key, i, entry)
			}
		}
	}
	return nil
}
