package netfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Text is the structured-text family used from version 3 on.
//
// A file starts with one human-readable preamble line, followed by the
// document as JSON with sorted keys and one-space indentation so saved
// networks diff cleanly and survive any platform's text handling.
var Text = Family{
	Name:      "structured-text",
	Unmarshal: unmarshalText,
	Marshal:   marshalText,
}

const preambleFormat = "# This file was written with GPI v%s using Network v%s. Do not edit this line."

// HeaderPattern matches a text preamble and captures the producing
// application version and the network version tag.
var HeaderPattern = regexp.MustCompile(`(GPI|gpi)\s+v([\d.]+).*[Nn]et.*v(\d+)`)

// Preamble returns the first line written ahead of a version-tag body.
func Preamble(appVersion, tag string) string {
	return fmt.Sprintf(preambleFormat, appVersion, tag)
}

// ParsePreamble extracts the producing application version and network
// version tag from a preamble line. The line is informational only; ok is
// false when it does not follow the convention.
func ParsePreamble(line string) (appVersion, tag string, ok bool) {
	m := HeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSuffix(m[2], "."), m[3], true
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// splitPreamble separates the leading line from the structured body.
// A brace on the first line starts the body there, which covers headerless
// JSON as well as writers that omitted the newline after the preamble.
func splitPreamble(data []byte) (line, body []byte) {
	data = bytes.TrimPrefix(data, utf8BOM)
	line, body = data, nil
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line, body = data[:i], data[i+1:]
	}
	if i := bytes.IndexByte(line, '{'); i >= 0 {
		return line[:i], data[i:]
	}
	return bytes.TrimRight(line, "\r"), body
}

func unmarshalText(data []byte) (any, error) {
	if !utf8.Valid(data) {
		return nil, errors.New("not valid UTF-8")
	}
	_, body := splitPreamble(data)

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decode: extra data after document")
	}

	switch v.(type) {
	case map[string]any, []any:
	default:
		return nil, fmt.Errorf("decode: expected a structured tree, got %T", v)
	}
	return fromJSON(v)
}

func marshalText(w io.Writer, raw Document, preamble string) error {
	if preamble != "" {
		if _, err := io.WriteString(w, preamble+"\n"); err != nil {
			return fmt.Errorf("write preamble: %w", err)
		}
	}
	tree, err := toJSON(map[string]any(raw), "")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tree); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// toJSON copies a canonical tree for encoding, spelling every float64 with
// a fraction or exponent so it does not read back as an integer. JSON has
// no literal for NaN or infinities; those are rejected with the key path.
func toJSON(v any, path string) (any, error) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("%s: non-finite number %v cannot be written as text", pathOrRoot(path), t)
		}
		return json.Number(formatFloat(t)), nil
	case Document:
		return toJSON(map[string]any(t), path)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			c, err := toJSON(e, path+"."+k)
			if err != nil {
				return nil, err
			}
			out[k] = c
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			c, err := toJSON(e, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	}
	return v, nil
}

// formatFloat writes f the shortest way that still reads back as a float:
// 1.0 stays "1.0" rather than "1".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func pathOrRoot(path string) string {
	if path == "" {
		return "document"
	}
	return strings.TrimPrefix(path, ".")
}

// fromJSON converts decoded JSON into the canonical value set.
// Literals without a fraction or exponent become int64, everything else
// float64.
func fromJSON(v any) (any, error) {
	switch t := v.(type) {
	case json.Number:
		if !strings.ContainsAny(t.String(), ".eE") {
			if i, err := t.Int64(); err == nil {
				return i, nil
			}
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %s: %w", t, err)
		}
		return f, nil
	case map[string]any:
		for k, e := range t {
			c, err := fromJSON(e)
			if err != nil {
				return nil, err
			}
			t[k] = c
		}
		return t, nil
	case []any:
		for i, e := range t {
			c, err := fromJSON(e)
			if err != nil {
				return nil, err
			}
			t[i] = c
		}
		return t, nil
	}
	return v, nil
}
