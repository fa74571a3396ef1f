// Package extractor finds translation-function call sites in source text.
//
// JS/TS documents are parsed into a real AST with the goja parser and every
// call expression is inspected; a call qualifies when its resolved callee
// name is one of the configured translation methods and it carries a
// string-literal argument. The goja parser implements the Script goal, so
// ES module syntax (import/export) is neutralized beforehand with
// offset-preserving rewrites — reported byte ranges always refer to the
// original text.
//
// TypeScript documents whose type syntax (annotations, interfaces, enums,
// casts) the parser rejects fall back to text-level matching, so annotated
// sources still report their call sites.
//
// Component files (template + script) get their <script> block extracted
// and parsed the same way, plus a text-level pass over the template, where
// interpolation snippets are not parseable JS on their own.
//
// A JavaScript document that fails to parse yields zero call sites;
// extraction never propagates parse errors to the caller.
package extractor

import (
	"regexp"
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
)

// Language identifiers accepted by Extract.
const (
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangVue        = "vue"
)

// CallSite is one recognized translation call. Start/End are byte offsets
// of the string-literal argument (quotes included) in the original text.
type CallSite struct {
	Key   string
	Start int
	End   int
	Lang  string
}

// Extract scans source text for calls to the given translation methods.
// It is pure and synchronous; callers re-running it per edit are expected
// to debounce on their side.
func Extract(src, lang string, methods []string) []CallSite {
	switch lang {
	case LangJavaScript, LangTypeScript:
		return extractScript(src, 0, lang, methods)
	case LangVue:
		return extractComponent(src, methods)
	default:
		return nil
	}
}

// ---------------------------------------------------------------------------
// Script extraction (AST)
// ---------------------------------------------------------------------------

// extractScript parses text as JS and collects qualifying call sites.
// base is added to every offset, for script fragments embedded in a
// larger document.
func extractScript(text string, base int, lang string, methods []string) []CallSite {
	methodSet := make(map[string]bool, len(methods))
	for _, m := range methods {
		methodSet[m] = true
	}

	program, err := parser.ParseFile(nil, "source.js", sanitizeModuleSyntax(text), 0)
	if err != nil {
		if lang == LangTypeScript {
			// Type syntax is not parseable under the Script goal; match
			// textually rather than dropping the document's call sites.
			return matchCalls(text, base, lang, methods)
		}
		return nil // a broken document simply has no call sites
	}

	var sites []CallSite
	walkCalls(program, func(call *ast.CallExpression) {
		name := calleeName(call.Callee)
		if name == "" || !methodSet[name] {
			return
		}
		lit := stringArgument(call)
		if lit == nil {
			return
		}
		sites = append(sites, CallSite{
			Key:   lit.Value.String(),
			Start: base + int(lit.Idx0()) - 1,
			End:   base + int(lit.Idx1()) - 1,
			Lang:  lang,
		})
	})
	return sites
}

// calleeName resolves the called name of a call expression.
//
// Bare identifiers resolve to themselves. For a member access a.b the name
// is b, except that i18n.t, i18n.global.t and <x>.global.t resolve to
// their qualified spellings so configs can target them explicitly.
func calleeName(callee ast.Expression) string {
	switch fn := callee.(type) {
	case *ast.Identifier:
		return fn.Name.String()
	case *ast.DotExpression:
		name := fn.Identifier.Name.String()
		switch left := fn.Left.(type) {
		case *ast.Identifier:
			if left.Name.String() == "i18n" {
				return "i18n." + name
			}
		case *ast.DotExpression:
			if left.Identifier.Name.String() == "global" {
				if obj, ok := left.Left.(*ast.Identifier); ok && obj.Name.String() == "i18n" {
					return "i18n.global." + name
				}
				return "global." + name
			}
		}
		return name
	}
	return ""
}

// stringArgument returns the call's first string-literal argument, or nil.
func stringArgument(call *ast.CallExpression) *ast.StringLiteral {
	for _, arg := range call.ArgumentList {
		if lit, ok := arg.(*ast.StringLiteral); ok {
			return lit
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Module-syntax sanitizer
// ---------------------------------------------------------------------------

var (
	// importRe is strictly line-local: the negated classes exclude \n so
	// an import-looking line can never swallow code up to a quote on a
	// later line. Multi-line named imports are handled by importBlockRe,
	// whose brace body excludes quotes for the same reason.
	importRe        = regexp.MustCompile(`(?m)^[ \t]*import\s[^'";\n]*?['"][^'"\n]*['"][ \t]*;?`)
	importBlockRe   = regexp.MustCompile(`(?m)^[ \t]*import\s[^{'";\n]*\{[^{}'"]*\}\s*from\s*['"][^'"\n]*['"][ \t]*;?`)
	exportDefaultRe = regexp.MustCompile(`\bexport\s+default\b`)
	exportListRe    = regexp.MustCompile(`(?m)^[ \t]*export\s*\{[^}]*\}[^;\n]*;?`)
	exportKeywordRe = regexp.MustCompile(`(?m)^([ \t]*)export\s`)
)

// sanitizeModuleSyntax rewrites ES module constructs into parseable
// script of exactly the same byte length: import statements and export
// lists are blanked, "export default" becomes a variable binding, and a
// leading "export" keyword on a declaration is blanked. Offsets into the
// result are therefore valid in the original.
func sanitizeModuleSyntax(src string) string {
	src = importBlockRe.ReplaceAllStringFunc(src, blank)
	src = importRe.ReplaceAllStringFunc(src, blank)
	src = exportListRe.ReplaceAllStringFunc(src, blank)
	src = exportDefaultRe.ReplaceAllStringFunc(src, func(m string) string {
		// Same length as the match: "var _default" + padding + "=".
		return "var _default" + strings.Repeat(" ", len(m)-13) + "="
	})
	src = exportKeywordRe.ReplaceAllStringFunc(src, blank)
	return src
}

// blank replaces every byte with a space, keeping line breaks.
func blank(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c != '\n' && c != '\r' {
			b[i] = ' '
		}
	}
	return string(b)
}

// ---------------------------------------------------------------------------
// Component files
// ---------------------------------------------------------------------------

// scriptBlockRe isolates the first <script ...>...</script> block.
var scriptBlockRe = regexp.MustCompile(`(?s)<script[^>]*>(.*?)</script>`)

// extractComponent handles template + script documents: the script block
// is parsed as JS with its offset within the document, and the rest of the
// document gets a text-level pass for template interpolations.
func extractComponent(src string, methods []string) []CallSite {
	var sites []CallSite

	scriptStart, scriptEnd := -1, -1
	if m := scriptBlockRe.FindStringSubmatchIndex(src); m != nil {
		scriptStart, scriptEnd = m[2], m[3]
		sites = extractScript(src[scriptStart:scriptEnd], scriptStart, LangVue, methods)
	}

	// Template pass: the same literal-argument pattern, matched textually
	// since interpolation snippets are not standalone JS. Matches inside
	// the script block are skipped — the AST pass covers those.
	for _, site := range matchCalls(src, 0, LangVue, methods) {
		if scriptStart >= 0 && site.Start >= scriptStart && site.Start < scriptEnd {
			continue
		}
		sites = append(sites, site)
	}
	return sites
}

// matchCalls matches method('key') textually over the document. It serves
// both component templates and TypeScript sources the AST pass rejects.
// Overlapping method names (e.g. "t" inside "$t") are deduplicated by
// literal range, and a match must not start inside a longer identifier.
func matchCalls(src string, base int, lang string, methods []string) []CallSite {
	var sites []CallSite
	seen := make(map[[2]int]bool)

	for _, method := range methods {
		re := regexp.MustCompile(regexp.QuoteMeta(method) + `\(\s*('[^'\\]*'|"[^"\\]*")`)
		for _, m := range re.FindAllStringSubmatchIndex(src, -1) {
			if m[0] > 0 && isIdentByte(src[m[0]-1]) {
				continue
			}
			start, end := m[2], m[3]
			span := [2]int{start, end}
			if seen[span] {
				continue
			}
			seen[span] = true
			sites = append(sites, CallSite{
				Key:   src[start+1 : end-1],
				Start: base + start,
				End:   base + end,
				Lang:  lang,
			})
		}
	}
	return sites
}

func isIdentByte(c byte) bool {
	return c == '$' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
