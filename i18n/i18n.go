// Package i18n localizes localens's own CLI output.
//
// It is a thin layer over gotext: T() for plain strings, N() for plural
// pairs. The message catalogs under locales/ are compiled into the binary
// with //go:embed, so a localized localens is still a single file. Call
// Init() once at startup; every T/N call before that (or for a language
// without a catalog) passes the msgid through untranslated.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales holds the embedded catalogs, one per language under
// locales/{lang}/LC_MESSAGES/localens.po.
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name for localens.
const domain = "localens"

// po is the active gotext locale; nil until Init runs.
var po *gotext.Locale

// Init selects the output language. An empty lang means auto-detection
// from the standard gettext environment variables (LANGUAGE, LC_ALL,
// LC_MESSAGES, LANG, in that priority).
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T returns the translation of msgid, or msgid itself when no catalog
// entry exists.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N picks between singular and plural for n. Which form a given n maps
// to is decided by the catalog's Plural-Forms formula; the untranslated
// fallback uses the English n == 1 rule.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// detectLanguage picks the user's language from the environment the way
// gettext tools do.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE holds a colon-separated preference list.
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// Drop the codeset: "ru_RU.UTF-8" names the same catalog as "ru_RU".
		if idx := strings.IndexByte(val, '.'); idx >= 0 {
			val = val[:idx]
		}
		// C and POSIX both request untranslated output.
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
