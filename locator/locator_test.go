package locator

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFiles creates empty files under dir, creating parent directories.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path      string
		locale    string
		namespace string
	}{
		{"locales/zh-CN/common.json", "zh-cn", "common"},
		{"locales/en.json", "en", "common"},
		{"locales/en/settings.ts", "en", "settings"},
		{"locales/de-DE.js", "de-de", "common"},
		{"locales/translations.json", "translations", "translations"},
		{"src/lang/fr/nav/menu.json", "fr", "menu"},
	}

	for _, tt := range tests {
		locale, namespace := Classify(filepath.FromSlash(tt.path))
		if locale != tt.locale || namespace != tt.namespace {
			t.Errorf("Classify(%s) = (%q, %q), want (%q, %q)",
				tt.path, locale, namespace, tt.locale, tt.namespace)
		}
	}
}

func TestLocateFindsAndClassifies(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"locales/en.json",
		"locales/zh-CN/common.json",
		"locales/zh-CN/settings.js",
		"locales/index.ts",
		"locales/readme.md",
		"locales/node_modules/pkg/en.json",
	)

	files := Locate([]string{filepath.Join(dir, "locales")}, []string{".json", ".js", ".ts"})
	if len(files) != 3 {
		t.Fatalf("Locate returned %d files, want 3: %v", len(files), files)
	}

	byPath := make(map[string]LocaleFile)
	for _, f := range files {
		byPath[filepath.ToSlash(f.Path[len(dir)+1:])] = f
	}

	en, ok := byPath["locales/en.json"]
	if !ok || en.Locale != "en" || en.Namespace != "common" {
		t.Fatalf("en.json classification = %+v", en)
	}
	zh, ok := byPath["locales/zh-CN/common.json"]
	if !ok || zh.Locale != "zh-cn" || zh.Namespace != "common" {
		t.Fatalf("zh-CN/common.json classification = %+v", zh)
	}
	settings, ok := byPath["locales/zh-CN/settings.js"]
	if !ok || settings.Locale != "zh-cn" || settings.Namespace != "settings" {
		t.Fatalf("zh-CN/settings.js classification = %+v", settings)
	}
}

func TestLocateDeduplicatesOverlappingRoots(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "locales/en.json")

	roots := []string{
		filepath.Join(dir, "locales"),
		filepath.Join(dir, "locales"), // the same root twice
		dir,                           // a parent that reaches the same file
	}
	files := Locate(roots, []string{".json"})
	if len(files) != 1 {
		t.Fatalf("Locate returned %d files, want 1: %v", len(files), files)
	}
}

func TestLocateSkipsMissingRoots(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "locales/en.json")

	files := Locate([]string{
		filepath.Join(dir, "no-such-dir"),
		filepath.Join(dir, "locales"),
	}, []string{".json"})
	if len(files) != 1 {
		t.Fatalf("Locate returned %d files, want 1", len(files))
	}
}
