package main

import "testing"

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "Back", "Back"},
		{"number", 42.0, "42"},
		{"object lists sorted keys", map[string]any{"b": 1, "a": 2}, "{a, b}"},
		{"empty object", map[string]any{}, "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.in); got != tt.want {
				t.Fatalf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLocaleDisplayName(t *testing.T) {
	if got := localeDisplayName("de"); got != "Deutsch" {
		t.Fatalf("localeDisplayName(de) = %q, want Deutsch", got)
	}
	// Unparseable codes pass through unchanged.
	if got := localeDisplayName("not a locale"); got != "not a locale" {
		t.Fatalf("localeDisplayName fallback = %q", got)
	}
}

func TestSourceLangs(t *testing.T) {
	if sourceLangs[".vue"] == "" || sourceLangs[".ts"] == "" || sourceLangs[".js"] == "" {
		t.Fatal("core source extensions must be mapped")
	}
	if _, ok := sourceLangs[".json"]; ok {
		t.Fatal(".json is locale data, not source code")
	}
}
