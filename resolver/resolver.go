// Package resolver looks up dotted translation keys in a loaded tree.
//
// Per locale, namespaces are scanned in the loader's discovery order and
// three strategies are tried per namespace, in order: an exact flattened
// match, segment-by-segment navigation of the nested object, and a
// trailing-segment fallback. The first namespace producing a value wins
// for that locale.
package resolver

import (
	"strings"
	"sync"

	"github.com/minios-linux/localens/loader"
)

// Options adjusts lookup behavior.
type Options struct {
	// DisableTailFallback turns off the trailing-segment lookup
	// (strategy 3), which can silently resolve unrelated keys that
	// happen to share a final segment across namespaces.
	DisableTailFallback bool
}

// Resolver answers key lookups against one immutable Tree. Lookups are
// cached; build a new Resolver when the tree is replaced so stale entries
// die with the tree they index.
type Resolver struct {
	tree *loader.Tree
	opts Options

	mu    sync.RWMutex
	cache map[string]map[string]any
}

// New creates a Resolver over tree.
func New(tree *loader.Tree, opts Options) *Resolver {
	return &Resolver{
		tree:  tree,
		opts:  opts,
		cache: make(map[string]map[string]any),
	}
}

// Resolve returns the per-locale values for a dotted key. Locales with no
// match are absent from the result; an empty map means "no translation",
// not an error. The returned map is shared with the cache and must not be
// mutated by the caller.
func (r *Resolver) Resolve(key string) map[string]any {
	r.mu.RLock()
	cached, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return cached
	}

	result := make(map[string]any)
	for _, locale := range r.tree.Locales() {
		for _, ns := range r.tree.Namespaces(locale) {
			if v, ok := r.lookup(locale, ns, key); ok {
				result[locale] = v
				break // first namespace wins for this locale
			}
		}
	}

	r.mu.Lock()
	r.cache[key] = result
	r.mu.Unlock()
	return result
}

// lookup applies the three strategies within one namespace.
func (r *Resolver) lookup(locale, ns, key string) (any, bool) {
	flat := r.tree.Flat(locale, ns)

	// 1. Exact flattened match.
	if v, ok := flat[key]; ok {
		return v, true
	}

	// 2. Segment-path navigation of the nested object. The final value
	// must not itself be an object.
	segments := strings.Split(key, ".")
	if v, ok := navigate(r.tree.Namespace(locale, ns), segments); ok {
		return v, true
	}

	// 3. Trailing-segment fallback: the last segment alone as a
	// top-level key.
	if len(segments) > 1 && !r.opts.DisableTailFallback {
		tail := segments[len(segments)-1]
		if v, ok := flat[tail]; ok {
			return v, true
		}
	}

	return nil, false
}

// navigate descends obj one segment at a time. Every intermediate segment
// must resolve to an object; the final value must be a non-object.
func navigate(obj map[string]any, segments []string) (any, bool) {
	var cur any = obj
	for _, seg := range segments {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	if _, isObj := cur.(map[string]any); isObj {
		return nil, false
	}
	return cur, true
}
