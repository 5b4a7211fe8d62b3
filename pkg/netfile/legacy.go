package netfile

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"

	pickle "github.com/kisielk/og-rek"
	"golang.org/x/text/encoding/charmap"
)

// legacyProtocol is the pickle protocol used when writing versions 1 and 2.
// Protocol 2 is the newest one every historical reader understands.
const legacyProtocol = 2

// Legacy is the binary object-graph family used by versions 1 and 2.
//
// Files in this family are Python pickles of nested dicts and lists. Byte
// strings from Python 2 era files are decoded as ISO-8859-1, since those
// files were produced on many platforms and locales and latin-1 maps every
// byte to a code point.
var Legacy = Family{
	Name:      "legacy-binary",
	Unmarshal: unmarshalLegacy,
	Marshal:   marshalLegacy,
}

func unmarshalLegacy(data []byte) (any, error) {
	dec := pickle.NewDecoderWithConfig(bytes.NewReader(data), &pickle.DecoderConfig{
		StrictUnicode: true,
	})
	v, err := dec.Decode()
	if err != nil {
		return nil, fmt.Errorf("unpickle: %w", err)
	}
	out, err := fromPickle(v)
	if err != nil {
		return nil, fmt.Errorf("unpickle: %w", err)
	}
	return out, nil
}

func marshalLegacy(w io.Writer, raw Document, _ string) error {
	enc := pickle.NewEncoderWithConfig(w, &pickle.EncoderConfig{
		Protocol:      legacyProtocol,
		StrictUnicode: true,
	})
	if err := enc.Encode(map[string]any(raw)); err != nil {
		return fmt.Errorf("pickle: %w", err)
	}
	return nil
}

var latin1 = charmap.ISO8859_1.NewDecoder()

func decodeLatin1(s string) (string, error) {
	out, err := latin1.String(s)
	if err != nil {
		return "", fmt.Errorf("latin-1: %w", err)
	}
	return out, nil
}

// fromPickle converts a decoded pickle value into the canonical value set.
// Pickled class instances and reduce calls are rejected: they reference
// objects of a specific OS or toolkit version and have no canonical form.
func fromPickle(v any) (any, error) {
	switch t := v.(type) {
	case nil, pickle.None:
		return nil, nil
	case bool, string, int64, float64:
		return t, nil
	case int:
		return int64(t), nil
	case *big.Int:
		if t.IsInt64() {
			return t.Int64(), nil
		}
		f, _ := new(big.Float).SetInt(t).Float64()
		return f, nil
	case pickle.ByteString:
		return decodeLatin1(string(t))
	case pickle.Bytes:
		return decodeLatin1(string(t))
	case []any:
		return fromPickleList(t)
	case pickle.Tuple:
		return fromPickleList([]any(t))
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			key, err := pickleKey(k)
			if err != nil {
				return nil, err
			}
			val, err := fromPickle(e)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out[key] = val
		}
		return out, nil
	case pickle.Call:
		return nil, fmt.Errorf("serialized object %s.%s is not portable", t.Callable.Module, t.Callable.Name)
	case pickle.Class:
		return nil, fmt.Errorf("serialized class %s.%s is not portable", t.Module, t.Name)
	}
	return nil, fmt.Errorf("unsupported pickled value of type %T", v)
}

func fromPickleList(l []any) ([]any, error) {
	out := make([]any, len(l))
	for i, e := range l {
		v, err := fromPickle(e)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// pickleKey stringifies a dict key the way it would print in Python.
func pickleKey(k any) (string, error) {
	switch t := k.(type) {
	case string:
		return t, nil
	case pickle.ByteString:
		return decodeLatin1(string(t))
	case pickle.Bytes:
		return decodeLatin1(string(t))
	case int64:
		return strconv.FormatInt(t, 10), nil
	case int:
		return strconv.Itoa(t), nil
	case *big.Int:
		return t.String(), nil
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatFloat(t, 'f', 1, 64), nil
		}
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case bool:
		if t {
			return "True", nil
		}
		return "False", nil
	case nil, pickle.None:
		return "None", nil
	}
	return "", fmt.Errorf("unsupported dict key of type %T", k)
}
