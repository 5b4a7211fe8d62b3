package errors

import (
	"testing"
)

func TestValidateTag(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"one", "1", false},
		{"two digits", "10", false},
		{"leading zero", "03", false},

		{"empty", "", true},
		{"negative", "-1", true},
		{"dotted", "1.2", true},
		{"letters", "v3", true},
		{"space", " 3", true},
		{"overflow", "99999999999999999999999", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTag(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidVersion) {
				t.Errorf("ValidateTag(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidVersion)
			}
		})
	}
}

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "net.net", false},
		{"no extension", "Untitled", false},
		{"nested", "a/b/c.net", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"null byte", "a\x00.net", true},
		{"newline", "a\n.net", true},
		{"directory", "nets/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     map[string]any
		wantErr bool
	}{
		{"empty mapping", map[string]any{}, false},
		{"nil nodes", map[string]any{"nodes": nil}, false},
		{"full", map[string]any{
			"nodes":   map[string]any{"nodes": []any{map[string]any{}}, "macroNodes": []any{}},
			"layouts": nil,
		}, false},
		{"nodes without lists", map[string]any{"nodes": map[string]any{}}, false},

		{"nil document", nil, true},
		{"nodes is a list", map[string]any{"nodes": []any{}}, true},
		{"node list is a string", map[string]any{"nodes": map[string]any{"nodes": "x"}}, true},
		{"node entry is scalar", map[string]any{"nodes": map[string]any{"nodes": []any{int64(1)}}}, true},
		{"macro entry is scalar", map[string]any{"nodes": map[string]any{"macroNodes": []any{"m"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocument() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
