// localens — translation data toolkit for vue-i18n/i18next projects.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/minios-linux/localens/config"
	"github.com/minios-linux/localens/extractor"
	"github.com/minios-linux/localens/i18n"
	"github.com/minios-linux/localens/resolver"
	"github.com/minios-linux/localens/session"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir string
	verbose bool
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "localens",
		Short: "Translation data toolkit for vue-i18n/i18next projects",
		Long: `localens — translation data toolkit for vue-i18n/i18next projects.

Locates locale files (JSON, YAML, JS/TS modules) under conventional or
configured directories, merges them into one translation tree, and lets
you inspect, resolve and edit translations from the command line.

Commands:
  status      Show locale files, languages and coverage
  keys        List all translation keys
  resolve     Show a key's value in every language
  extract     Find translation calls in source code
  set         Write a translation into the locale files

Configuration is read from .localens.yaml in the project root; without
it, conventional locale directories (locales/, src/locales/, ...) are
auto-detected.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable detailed logging")

	root.AddCommand(
		newStatusCmd(),
		newKeysCmd(),
		newResolveCmd(),
		newExtractCmd(),
		newSetCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// newLogger builds the structured logger shared by all commands.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// openSession loads the configuration and refreshes a session for rootDir.
func openSession() (*session.Session, *session.RefreshResult, error) {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, nil, err
	}
	resolved, err := cfg.Resolve(rootDir)
	if err != nil {
		return nil, nil, err
	}

	s := session.New(resolved, resolver.Options{}, newLogger())
	result, err := s.Refresh()
	if err != nil {
		if err == session.ErrNoLocalePaths {
			return nil, nil, fmt.Errorf("%s (create %s or a locales/ directory)",
				i18n.T("No locale directories configured"), config.FileName)
		}
		return nil, nil, err
	}
	return s, result, nil
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("localens version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// status (read-only: project info + coverage)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show locale files, languages and coverage",
		Long: `Show the detected locale files, languages and per-language coverage.

Coverage compares each language against the union of all translation
keys. Does not modify any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}

	return cmd
}

func runStatus() error {
	s, result, err := openSession()
	if err != nil {
		return err
	}
	defer s.Dispose()

	cfg := s.Config()
	absRoot, _ := filepath.Abs(rootDir)

	fmt.Fprintf(os.Stderr, "\n%sProject%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "  Root:       %s\n", absRoot)
	fmt.Fprintf(os.Stderr, "  State:      %s\n", s.State())

	relPaths := make([]string, len(cfg.LocalesPaths))
	for i, p := range cfg.LocalesPaths {
		if rel, err := filepath.Rel(absRoot, p); err == nil {
			relPaths[i] = rel
		} else {
			relPaths[i] = p
		}
	}
	fmt.Fprintf(os.Stderr, "  Locales:    %s\n", strings.Join(relPaths, ", "))
	fmt.Fprintf(os.Stderr, "  Default:    %s\n", cfg.DefaultLocale)
	fmt.Fprintln(os.Stderr)

	logInfo(i18n.N("Found %d locale file", "Found %d locale files", result.Files), result.Files)
	logInfo(i18n.N("Found %d translation key", "Found %d translation keys", result.Keys), result.Keys)
	if n := len(result.FileErrors); n > 0 {
		logWarning(i18n.N("%d file failed to parse", "%d files failed to parse", n), n)
		for _, fe := range result.FileErrors {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", fe.Path, fe.Err)
		}
	}

	tree, err := s.Tree()
	if err != nil {
		return err
	}
	allKeys := tree.LeafKeys()

	fmt.Fprintf(os.Stderr, "\n%sLanguages%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "%-10s %-24s %-12s %-8s\n", "Locale", "Language", "Namespaces", "Percent")
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 58))

	locales := append([]string(nil), tree.Locales()...)
	sort.Strings(locales)
	for _, locale := range locales {
		have := 0
		for _, key := range allKeys {
			if tree.HasLeaf(locale, key) {
				have++
			}
		}
		percent := 0
		if len(allKeys) > 0 {
			percent = have * 100 / len(allKeys)
		}

		statusColor := colorGreen
		if percent < 50 {
			statusColor = colorRed
		} else if percent < 100 {
			statusColor = colorYellow
		}

		fmt.Fprintf(os.Stderr, "%-10s %-24s %-12d %s%d%%%s\n",
			locale, localeDisplayName(locale), len(tree.Namespaces(locale)),
			statusColor, percent, colorReset)
	}
	fmt.Fprintln(os.Stderr)

	return nil
}

// localeDisplayName renders a locale code as a self-described language
// name ("de" → "Deutsch"). Unparseable codes are returned as-is.
func localeDisplayName(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return locale
}

// ---------------------------------------------------------------------------
// keys (list translation keys)
// ---------------------------------------------------------------------------

func newKeysCmd() *cobra.Command {
	var missingIn string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List all translation keys",
		Long: `List the union of translation keys across all languages, one per line.

With --missing-in, only keys that the given language lacks are listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(missingIn)
		},
	}

	cmd.Flags().StringVar(&missingIn, "missing-in", "", "Only list keys missing in this locale")

	return cmd
}

func runKeys(missingIn string) error {
	s, _, err := openSession()
	if err != nil {
		return err
	}
	defer s.Dispose()

	tree, err := s.Tree()
	if err != nil {
		return err
	}

	for _, key := range tree.LeafKeys() {
		if missingIn != "" && tree.HasLeaf(strings.ToLower(missingIn), key) {
			continue
		}
		fmt.Println(key)
	}
	return nil
}

// ---------------------------------------------------------------------------
// resolve (show a key's value per language)
// ---------------------------------------------------------------------------

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <key>",
		Short: "Show a key's value in every language",
		Long: `Resolve a dotted translation key and print its value per language.

Resolution tries an exact flattened match first, then navigates the key
segment by segment, then falls back to the key's last segment alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(args[0])
		},
	}

	return cmd
}

func runResolve(key string) error {
	s, _, err := openSession()
	if err != nil {
		return err
	}
	defer s.Dispose()

	values, err := s.Resolve(key)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		logWarning("%s: %s", key, i18n.T("Key not found in any locale"))
		return nil
	}

	locales := make([]string, 0, len(values))
	for locale := range values {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	// Default locale first, like editors show it inline.
	def := s.Config().DefaultLocale
	for i, locale := range locales {
		if locale == def && i > 0 {
			copy(locales[1:i+1], locales[:i])
			locales[0] = locale
			break
		}
	}

	for _, locale := range locales {
		fmt.Printf("%-8s %s\n", locale, formatValue(values[locale]))
	}
	return nil
}

// formatValue renders a resolved value for terminal output.
func formatValue(v any) string {
	if obj, ok := v.(map[string]any); ok {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Sprintf("{%s}", strings.Join(keys, ", "))
	}
	return fmt.Sprintf("%v", v)
}

// ---------------------------------------------------------------------------
// extract (find translation calls in source code)
// ---------------------------------------------------------------------------

func newExtractCmd() *cobra.Command {
	var missing bool

	cmd := &cobra.Command{
		Use:   "extract [path...]",
		Short: "Find translation calls in source code",
		Long: `Scan source files for translation calls and print the keys they use.

Paths may be files or directories; without arguments, the configured
source_dirs (or the project root) are scanned. JS, TS and Vue single
file components are supported.

With --missing, only calls whose key has no translation in the default
locale are printed — useful for finding untranslated strings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args, missing)
		},
	}

	cmd.Flags().BoolVar(&missing, "missing", false, "Only print keys absent from the default locale")

	return cmd
}

// sourceLangs maps source file extensions to extractor languages.
var sourceLangs = map[string]string{
	".js":  extractor.LangJavaScript,
	".mjs": extractor.LangJavaScript,
	".cjs": extractor.LangJavaScript,
	".jsx": extractor.LangJavaScript,
	".ts":  extractor.LangTypeScript,
	".tsx": extractor.LangTypeScript,
	".vue": extractor.LangVue,
}

// skipSourceDirs are directory names never scanned for source files.
var skipSourceDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"vendor":       true,
}

func runExtract(paths []string, missing bool) error {
	s, _, err := openSession()
	if err != nil {
		return err
	}
	defer s.Dispose()

	if len(paths) == 0 {
		paths = s.Config().SourceDirs
	}
	if len(paths) == 0 {
		paths = []string{rootDir}
	}

	tree, err := s.Tree()
	if err != nil {
		return err
	}
	def := s.Config().DefaultLocale

	total := 0
	for _, root := range paths {
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if skipSourceDirs[info.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			lang, ok := sourceLangs[strings.ToLower(filepath.Ext(path))]
			if !ok {
				return nil
			}

			data, err := os.ReadFile(path)
			if err != nil {
				logWarning("Reading %s: %v", path, err)
				return nil
			}

			sites, err := s.Extract(string(data), lang)
			if err != nil {
				return err
			}
			for _, site := range sites {
				if missing && tree.HasLeaf(def, site.Key) {
					continue
				}
				line := 1 + strings.Count(string(data[:site.Start]), "\n")
				fmt.Printf("%s:%d: %s\n", path, line, site.Key)
				total++
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("scanning %s: %w", root, err)
		}
	}

	logInfo(i18n.N("Found %d call site", "Found %d call sites", total), total)
	return nil
}

// ---------------------------------------------------------------------------
// set (write a translation)
// ---------------------------------------------------------------------------

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <locale>=<value> [<locale>=<value>...]",
		Short: "Write a translation into the locale files",
		Long: `Set a key's value for one or more languages.

Each value is written into the language's own locale file, in the file's
own format (JSON, YAML or JS/TS module). Languages fail independently:
a broken es.js never blocks the write to fr.json.

Example:
  localens set nav.back en=Back de=Zurück`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args[0], args[1:])
		},
	}

	return cmd
}

func runSet(key string, pairs []string) error {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		locale, value, ok := strings.Cut(pair, "=")
		if !ok || locale == "" {
			return fmt.Errorf("invalid argument %q, want <locale>=<value>", pair)
		}
		values[strings.ToLower(locale)] = value
	}

	s, _, err := openSession()
	if err != nil {
		return err
	}
	defer s.Dispose()

	results, err := s.Write(key, values)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			logError("%s: %v", r.Locale, r.Err)
			failed++
			continue
		}
		logSuccess("%s: %s = %q (%s)", r.Locale, key, values[r.Locale], r.Path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d locales failed", failed, len(results))
	}
	return nil
}
