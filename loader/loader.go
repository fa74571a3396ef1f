// Package loader reads and parses locale files into a merged tree.
//
// Files are grouped by (locale, namespace) and merged in locator order:
// object-to-object conflicts merge recursively, anything else is
// last-write-wins. Each namespace is also flattened into a dotted-path
// lookup table retaining both leaf scalars and intermediate object nodes.
//
// Parse failures are recorded per file and never abort the group: a broken
// es/common.json still leaves every other file loaded.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/localens/jsfile"
	"github.com/minios-linux/localens/locator"
)

// parseConcurrency caps concurrent file reads during Load.
const parseConcurrency = 8

// ---------------------------------------------------------------------------
// Tree
// ---------------------------------------------------------------------------

// Tree holds the merged locale data for one load cycle. It is immutable
// after Load returns; a refresh builds a new Tree rather than mutating
// the old one, so concurrent readers always see a complete view.
type Tree struct {
	// nested maps locale → namespace → merged nested object.
	nested map[string]map[string]map[string]any
	// flat maps locale → namespace → dotted path → value.
	flat map[string]map[string]map[string]any
	// localeOrder and nsOrder record discovery order for deterministic
	// iteration; namespace order is significant for resolution.
	localeOrder []string
	nsOrder     map[string][]string
}

// Locales returns the locales in discovery order.
func (t *Tree) Locales() []string {
	return t.localeOrder
}

// Namespaces returns the locale's namespaces in discovery order.
func (t *Tree) Namespaces(locale string) []string {
	return t.nsOrder[locale]
}

// Namespace returns the merged nested object for (locale, namespace),
// or nil if absent.
func (t *Tree) Namespace(locale, namespace string) map[string]any {
	if byNS, ok := t.nested[locale]; ok {
		return byNS[namespace]
	}
	return nil
}

// Flat returns the dotted-path lookup table for (locale, namespace),
// or nil if absent.
func (t *Tree) Flat(locale, namespace string) map[string]any {
	if byNS, ok := t.flat[locale]; ok {
		return byNS[namespace]
	}
	return nil
}

// LeafKeys returns the union of flattened leaf paths across all locales
// and namespaces, sorted. Intermediate object nodes are not counted.
func (t *Tree) LeafKeys() []string {
	seen := make(map[string]bool)
	for _, byNS := range t.flat {
		for _, paths := range byNS {
			for path, v := range paths {
				if _, isObj := v.(map[string]any); isObj {
					continue
				}
				seen[path] = true
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HasLeaf reports whether any namespace of the locale contains the
// flattened path as a non-object value.
func (t *Tree) HasLeaf(locale, path string) bool {
	for _, paths := range t.flat[locale] {
		if v, ok := paths[path]; ok {
			if _, isObj := v.(map[string]any); !isObj {
				return true
			}
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// FileError records a single file that failed to parse.
type FileError struct {
	Path string
	Err  error
}

// Stats aggregates per-file outcomes of a load cycle. The counts are for
// caller-level reporting only; a non-zero Failed does not invalidate the
// returned Tree.
type Stats struct {
	Processed int
	Succeeded int
	Failed    int
	Errors    []FileError
}

// Load reads and parses every file and merges the results into a Tree.
// Files are parsed concurrently; merging happens afterwards in the order
// files were passed in, so later files win conflicts deterministically.
func Load(files []locator.LocaleFile) (*Tree, *Stats) {
	parsed := make([]map[string]any, len(files))
	errs := make([]error, len(files))

	g := new(errgroup.Group)
	g.SetLimit(parseConcurrency)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			parsed[i], errs[i] = parseFile(f.Path)
			return nil
		})
	}
	g.Wait()

	tree := &Tree{
		nested:  make(map[string]map[string]map[string]any),
		flat:    make(map[string]map[string]map[string]any),
		nsOrder: make(map[string][]string),
	}
	stats := &Stats{Processed: len(files)}

	for i, f := range files {
		if errs[i] != nil {
			stats.Failed++
			stats.Errors = append(stats.Errors, FileError{Path: f.Path, Err: errs[i]})
			continue
		}
		stats.Succeeded++

		byNS, ok := tree.nested[f.Locale]
		if !ok {
			byNS = make(map[string]map[string]any)
			tree.nested[f.Locale] = byNS
			tree.flat[f.Locale] = make(map[string]map[string]any)
			tree.localeOrder = append(tree.localeOrder, f.Locale)
		}
		acc, ok := byNS[f.Namespace]
		if !ok {
			acc = make(map[string]any)
			byNS[f.Namespace] = acc
			tree.nsOrder[f.Locale] = append(tree.nsOrder[f.Locale], f.Namespace)
		}
		deepMerge(acc, parsed[i])
	}

	// Flatten after all merging so each table reflects the final object.
	for locale, byNS := range tree.nested {
		for ns, obj := range byNS {
			flat := make(map[string]any)
			Flatten(obj, "", flat)
			tree.flat[locale][ns] = flat
		}
	}

	return tree, stats
}

// parseFile parses one locale file according to its extension.
func parseFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var obj map[string]any
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("parsing JSON %s: %w", path, err)
		}
		return obj, nil
	case ".yaml", ".yml":
		var obj map[string]any
		if err := yaml.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("parsing YAML %s: %w", path, err)
		}
		return obj, nil
	case ".js", ".ts", ".mjs", ".cjs":
		obj, err := jsfile.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported locale file format %s", path)
	}
}

// deepMerge merges src into dst. When both sides hold objects the merge
// recurses; any other pairing takes src's value (last write wins).
func deepMerge(dst, src map[string]any) {
	for k, sv := range src {
		if sm, ok := sv.(map[string]any); ok {
			if dm, ok := dst[k].(map[string]any); ok {
				deepMerge(dm, sm)
				continue
			}
		}
		dst[k] = sv
	}
}

// Flatten writes obj's dotted-path entries into out. Both leaf values and
// intermediate object nodes are retained under their own paths, so a path
// may map to an object or a scalar.
func Flatten(obj map[string]any, prefix string, out map[string]any) {
	for k, v := range obj {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		out[path] = v
		if m, ok := v.(map[string]any); ok {
			Flatten(m, path, out)
		}
	}
}
