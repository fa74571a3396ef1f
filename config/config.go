// Package config — .localens.yaml configuration file support.
//
// When a .localens.yaml file exists in the project root, localens uses it
// as the source of truth for locale directories, file extensions, the
// default locale, and the translation-method names to recognize in source
// code. Without a config file, conventional locale directories are
// auto-detected.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = ".localens.yaml"

// DefaultLocale is used when the config does not declare one.
const DefaultLocale = "en"

// DefaultExtensions are the locale file extensions scanned by default.
var DefaultExtensions = []string{".json", ".js", ".ts"}

// DefaultTranslationMethods are the call names recognized as translation
// calls when the config does not declare its own list.
var DefaultTranslationMethods = []string{"$t", "t", "i18n.t", "i18n.global.t", "global.t"}

// detectDirs are conventional locale directories probed when no config
// file declares locales_paths.
var detectDirs = []string{
	"locales",
	"locale",
	"src/locales",
	"public/locales",
	"lang",
}

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// Config holds the settings for one resolution session. Paths are kept
// relative to the project root until Resolve is called.
type Config struct {
	// LocalesPaths are directories containing locale files, relative to
	// the project root.
	LocalesPaths []string `yaml:"locales_paths,omitempty"`
	// FileExtensions are the locale file extensions to scan for.
	// A leading dot is added during normalization if missing.
	FileExtensions []string `yaml:"file_extensions,omitempty"`
	// DefaultLocale is the locale shown inline by hosts and used as the
	// reference for coverage checks.
	DefaultLocale string `yaml:"default_locale,omitempty"`
	// TranslationMethods are the function names recognized as translation
	// calls in source code (e.g. "$t", "i18n.global.t").
	TranslationMethods []string `yaml:"translation_methods,omitempty"`
	// SourceDirs are directories scanned by the extract command.
	SourceDirs []string `yaml:"source_dirs,omitempty"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads .localens.yaml from the given directory and returns a
// normalized config. If no config file exists, conventional locale
// directories are auto-detected instead.
func Load(rootDir string) (*Config, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Detect(rootDir)
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Detect probes conventional locale directories under rootDir and returns
// a config listing the ones that exist. The returned config may have an
// empty LocalesPaths if nothing was found.
func Detect(rootDir string) *Config {
	cfg := &Config{}
	for _, candidate := range detectDirs {
		dir := filepath.Join(rootDir, candidate)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			cfg.LocalesPaths = append(cfg.LocalesPaths, candidate)
		}
	}
	return cfg
}

// applyDefaults fills unset fields and normalizes extensions.
func (c *Config) applyDefaults() {
	if c.DefaultLocale == "" {
		c.DefaultLocale = DefaultLocale
	}
	if len(c.FileExtensions) == 0 {
		c.FileExtensions = append([]string(nil), DefaultExtensions...)
	}
	if len(c.TranslationMethods) == 0 {
		c.TranslationMethods = append([]string(nil), DefaultTranslationMethods...)
	}
	c.FileExtensions = NormalizeExtensions(c.FileExtensions)
}

// NormalizeExtensions lower-cases extensions and ensures each has a
// leading dot ("json" and ".json" are both accepted in config files).
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// Resolve returns a copy of the config with LocalesPaths and SourceDirs
// made absolute against projectRoot. Non-existent directories are kept;
// the locator skips them.
func (c *Config) Resolve(projectRoot string) (*Config, error) {
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	out := *c
	out.LocalesPaths = resolvePaths(absRoot, c.LocalesPaths)
	out.SourceDirs = resolvePaths(absRoot, c.SourceDirs)
	return &out, nil
}

func resolvePaths(absRoot string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(absRoot, p)
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}
