// Package session owns the lifecycle of one project's translation data.
//
// A session moves through Uninitialized → Loading → Ready (or Error) and
// back through Loading on every refresh. Each refresh builds a complete
// new snapshot (file index, merged tree, resolver) off to the side and
// publishes it atomically, so readers never observe a half-loaded state.
// Disposal is terminal.
package session

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/minios-linux/localens/config"
	"github.com/minios-linux/localens/extractor"
	"github.com/minios-linux/localens/loader"
	"github.com/minios-linux/localens/locator"
	"github.com/minios-linux/localens/resolver"
	"github.com/minios-linux/localens/writer"
)

// State is the session lifecycle phase.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
	Error
	Disposed
)

// String returns the state name for logs and status output.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	case Disposed:
		return "disposed"
	}
	return "unknown"
}

// ErrNoLocalePaths means the configuration names no locale directories;
// the session stays functional and a later Reconfigure can recover it.
var ErrNoLocalePaths = errors.New("no locale paths configured")

// ErrDisposed is returned by every operation on a disposed session.
var ErrDisposed = errors.New("session is disposed")

// ErrNotReady is returned by data operations before the first successful
// refresh.
var ErrNotReady = errors.New("session has no loaded data")

// ---------------------------------------------------------------------------
// Snapshot
// ---------------------------------------------------------------------------

// snapshot is one refresh's complete view of the project. It is built
// outside the session lock and never mutated after publication.
type snapshot struct {
	files []locator.LocaleFile
	index map[string]map[string][]locator.LocaleFile
	tree  *loader.Tree
	res   *resolver.Resolver
	stats *loader.Stats
}

// RefreshResult summarizes one refresh for caller-level reporting.
type RefreshResult struct {
	Locales    []string
	Namespaces int
	Files      int
	Keys       int
	FileErrors []loader.FileError
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

// Session coordinates locating, loading, resolving and writing for one
// project root. All methods are safe for concurrent use.
type Session struct {
	cfg  *config.Config
	opts resolver.Options
	log  zerolog.Logger

	mu    sync.RWMutex
	state State
	cur   *snapshot
}

// New creates an uninitialized session; call Refresh to load data.
func New(cfg *config.Config, opts resolver.Options, log zerolog.Logger) *Session {
	return &Session{cfg: cfg, opts: opts, log: log, state: Uninitialized}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Config returns the session's active configuration.
func (s *Session) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Refresh rescans the locale directories and rebuilds the translation
// tree. The previous snapshot stays visible to readers until the new one
// is complete; on failure the previous snapshot is kept and the session
// moves to Error.
func (s *Session) Refresh() (*RefreshResult, error) {
	s.mu.Lock()
	if s.state == Disposed {
		s.mu.Unlock()
		return nil, ErrDisposed
	}
	if len(s.cfg.LocalesPaths) == 0 {
		s.state = Error
		s.mu.Unlock()
		return nil, ErrNoLocalePaths
	}
	s.state = Loading
	cfg := s.cfg
	s.mu.Unlock()

	// Build the whole snapshot without holding the lock; concurrent
	// Resolve calls keep serving the old one.
	snap := buildSnapshot(cfg, s.opts, s.log)

	s.mu.Lock()
	if s.state == Disposed {
		s.mu.Unlock()
		return nil, ErrDisposed
	}
	s.cur = snap
	s.state = Ready
	s.mu.Unlock()

	result := &RefreshResult{
		Locales:    snap.tree.Locales(),
		Files:      len(snap.files),
		Keys:       len(snap.tree.LeafKeys()),
		FileErrors: snap.stats.Errors,
	}
	for _, locale := range snap.tree.Locales() {
		result.Namespaces += len(snap.tree.Namespaces(locale))
	}

	s.log.Info().
		Int("files", result.Files).
		Int("locales", len(result.Locales)).
		Int("keys", result.Keys).
		Int("failed", len(result.FileErrors)).
		Msg("translation data refreshed")
	return result, nil
}

// buildSnapshot runs the locate → load → index pipeline.
func buildSnapshot(cfg *config.Config, opts resolver.Options, log zerolog.Logger) *snapshot {
	files := locator.Locate(cfg.LocalesPaths, cfg.FileExtensions)
	tree, stats := loader.Load(files)

	for _, fe := range stats.Errors {
		log.Warn().Str("file", fe.Path).Err(fe.Err).Msg("locale file skipped")
	}

	return &snapshot{
		files: files,
		index: locator.Index(files),
		tree:  tree,
		res:   resolver.New(tree, opts),
		stats: stats,
	}
}

// Reconfigure swaps the configuration and refreshes. A session in Error
// (for example after ErrNoLocalePaths) recovers through this path.
func (s *Session) Reconfigure(cfg *config.Config) (*RefreshResult, error) {
	s.mu.Lock()
	if s.state == Disposed {
		s.mu.Unlock()
		return nil, ErrDisposed
	}
	s.cfg = cfg
	s.mu.Unlock()
	return s.Refresh()
}

// Dispose releases the session. All later operations fail with
// ErrDisposed; a disposed session is never revived.
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Disposed
	s.cur = nil
}

// current returns the active snapshot, or an error when there is none.
func (s *Session) current() (*snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.state == Disposed:
		return nil, ErrDisposed
	case s.cur == nil:
		return nil, ErrNotReady
	}
	return s.cur, nil
}

// ---------------------------------------------------------------------------
// Data operations
// ---------------------------------------------------------------------------

// Resolve returns the key's value per locale from the current snapshot.
func (s *Session) Resolve(key string) (map[string]any, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return snap.res.Resolve(key), nil
}

// Tree returns the current merged tree.
func (s *Session) Tree() (*loader.Tree, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return snap.tree, nil
}

// Extract finds translation call sites in source text using the session's
// configured method names. It needs no snapshot and works in any
// non-disposed state.
func (s *Session) Extract(src, lang string) ([]extractor.CallSite, error) {
	s.mu.RLock()
	if s.state == Disposed {
		s.mu.RUnlock()
		return nil, ErrDisposed
	}
	methods := s.cfg.TranslationMethods
	s.mu.RUnlock()
	return extractor.Extract(src, lang, methods), nil
}

// Write applies per-locale values for a key to the owning locale files
// and refreshes so the change is visible to subsequent resolves.
func (s *Session) Write(key string, values map[string]string) ([]writer.Result, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	results := writer.Write(key, values, snap.index)
	for _, r := range results {
		if r.Err != nil {
			s.log.Warn().Str("locale", r.Locale).Str("file", r.Path).Err(r.Err).Msg("write failed")
		} else {
			s.log.Debug().Str("locale", r.Locale).Str("file", r.Path).Str("key", key).Msg("translation written")
		}
	}

	if _, err := s.Refresh(); err != nil && !errors.Is(err, ErrDisposed) {
		return results, err
	}
	return results, nil
}
