// Package locator discovers locale files under configured directories and
// classifies each by locale and namespace.
//
// Classification is derived from the path, never declared:
//
//	locales/zh-CN/common.json  → locale "zh-cn", namespace "common"
//	locales/en.json            → locale "en",    namespace "common"
//	locales/en/settings.ts     → locale "en",    namespace "settings"
//
// Files named index.* are skipped — an index file is assumed to be a
// barrel re-export, not translation data.
package locator

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// LocaleFile is a discovered locale file with its derived classification.
type LocaleFile struct {
	// Path is the cleaned file path as discovered.
	Path string
	// Locale is the derived language identifier, lower-cased (e.g. "zh-cn").
	Locale string
	// Namespace groups translation keys; derived from the file base name.
	Namespace string
}

// DefaultNamespace is assigned when the file name itself is a locale
// identifier and carries no namespace of its own.
const DefaultNamespace = "common"

// localeRe matches locale identifiers like "en" and "zh-CN".
var localeRe = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)

// skipDirs contains directory names excluded from scanning.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
}

// Locate recursively enumerates files under the given roots whose extension
// is in extensions, and classifies each surviving file. Non-existent roots
// are skipped without error. Files reachable via overlapping roots are
// returned exactly once, in discovery order.
func Locate(roots []string, extensions []string) []LocaleFile {
	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = true
	}

	var files []LocaleFile
	seen := make(map[string]bool)

	for _, root := range roots {
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			continue
		}
		filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil // skip unreadable entries
			}
			if info.IsDir() {
				if skipDirs[info.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if !extSet[strings.ToLower(filepath.Ext(path))] {
				return nil
			}
			base := baseName(path)
			if base == "index" {
				return nil
			}
			clean := filepath.Clean(path)
			if seen[clean] {
				return nil
			}
			seen[clean] = true

			locale, namespace := Classify(clean)
			files = append(files, LocaleFile{Path: clean, Locale: locale, Namespace: namespace})
			return nil
		})
	}

	return files
}

// Classify derives (locale, namespace) from a file path.
//
// The locale is taken from, in order: the deepest path segment matching a
// locale identifier, the file base name if it matches, or the base name
// verbatim as a last resort. The namespace is the base name, or "common"
// when the base name itself is the locale.
func Classify(path string) (locale, namespace string) {
	base := baseName(path)

	segments := strings.Split(filepath.ToSlash(filepath.Dir(path)), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if localeRe.MatchString(segments[i]) {
			locale = strings.ToLower(segments[i])
			break
		}
	}

	if locale == "" {
		// Fall back to the base name, locale-shaped or not.
		locale = strings.ToLower(base)
	}

	namespace = base
	if localeRe.MatchString(base) {
		namespace = DefaultNamespace
	}
	return locale, namespace
}

// baseName returns the file name without its extension.
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Index groups locale files by locale, then namespace, preserving
// discovery order within each group. The writer uses this to pick the
// owning file for a key.
func Index(files []LocaleFile) map[string]map[string][]LocaleFile {
	index := make(map[string]map[string][]LocaleFile)
	for _, f := range files {
		byNS, ok := index[f.Locale]
		if !ok {
			byNS = make(map[string][]LocaleFile)
			index[f.Locale] = byNS
		}
		byNS[f.Namespace] = append(byNS[f.Namespace], f)
	}
	return index
}
