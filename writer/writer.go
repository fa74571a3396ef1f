// Package writer applies per-locale translation edits back to the owning
// locale files, preserving each file's original format.
//
// JSON and YAML targets are reserialized with stable 2-space indentation.
// JS/TS targets are rewritten by replacing only the exported
// object-literal span, keeping imports, comments and everything else
// outside the span byte-for-byte.
//
// A multi-locale write is a best-effort batch: locales fail independently
// and nothing is rolled back (spelled out in Result).
package writer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/localens/jsfile"
	"github.com/minios-linux/localens/locator"
)

// ErrNoFileForLocale marks a locale that has no locale file at all; the
// locale is skipped, not failed.
var ErrNoFileForLocale = errors.New("no locale file for locale")

// Result reports the outcome of one locale's write.
type Result struct {
	Locale string
	Path   string
	Err    error
}

// Write sets key to the given value in every locale's owning file.
// Locales are processed in sorted order; one locale's failure never
// aborts the others. Locales with an empty value are skipped silently.
func Write(key string, values map[string]string, index map[string]map[string][]locator.LocaleFile) []Result {
	locales := make([]string, 0, len(values))
	for locale, value := range values {
		if value == "" {
			continue
		}
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	var results []Result
	for _, locale := range locales {
		results = append(results, writeLocale(key, values[locale], locale, index[locale]))
	}
	return results
}

// writeLocale picks the owning file for (locale, key) and applies the edit.
func writeLocale(key, value, locale string, byNS map[string][]locator.LocaleFile) Result {
	file, segments, ok := pickTarget(key, byNS)
	if !ok {
		return Result{Locale: locale, Err: ErrNoFileForLocale}
	}

	if err := setInFile(file.Path, segments, value); err != nil {
		return Result{Locale: locale, Path: file.Path, Err: err}
	}
	return Result{Locale: locale, Path: file.Path}
}

// pickTarget chooses the file to edit: the namespace matching the key's
// first segment if one exists, else any other namespace (sorted, for
// determinism). The matched namespace segment is stripped from the
// nested-set path.
func pickTarget(key string, byNS map[string][]locator.LocaleFile) (locator.LocaleFile, []string, bool) {
	segments := strings.Split(key, ".")

	if files, ok := byNS[segments[0]]; ok && len(files) > 0 && len(segments) > 1 {
		return files[0], segments[1:], true
	}

	names := make([]string, 0, len(byNS))
	for ns := range byNS {
		names = append(names, ns)
	}
	sort.Strings(names)
	for _, ns := range names {
		if files := byNS[ns]; len(files) > 0 {
			return files[0], segments, true
		}
	}
	return locator.LocaleFile{}, nil, false
}

// setInFile applies a nested set to a locale file in its own format.
func setInFile(path string, segments []string, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return setJSON(path, data, segments, value)
	case ".yaml", ".yml":
		return setYAML(path, data, segments, value)
	case ".js", ".ts", ".mjs", ".cjs":
		return setJS(path, string(data), segments, value)
	default:
		return fmt.Errorf("unsupported locale file format %s", path)
	}
}

func setJSON(path string, data []byte, segments []string, value string) error {
	obj := make(map[string]any)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("parsing JSON %s: %w", path, err)
		}
	}
	setPath(obj, segments, value)

	out, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing %s: %w", path, err)
	}
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func setYAML(path string, data []byte, segments []string, value string) error {
	obj := make(map[string]any)
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("parsing YAML %s: %w", path, err)
		}
	}
	setPath(obj, segments, value)

	out, err := yaml.Marshal(obj)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func setJS(path, src string, segments []string, value string) error {
	obj, err := jsfile.Parse(src)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	setPath(obj, segments, value)

	out, err := jsfile.Rewrite(src, obj)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// setPath assigns value at the segment path, creating intermediate
// objects as needed and overwriting non-object intermediates.
func setPath(obj map[string]any, segments []string, value any) {
	cur := obj
	for _, seg := range segments[:len(segments)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[seg] = next
		}
		cur = next
	}
	cur[segments[len(segments)-1]] = value
}
