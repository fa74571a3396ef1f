// Package jsfile implements reading and writing of JS/TS locale module files.
//
// A locale module is a source file exporting a single object literal of
// translations. Supported export shapes, tried in priority order:
//
//	export default { ... }
//	module.exports = { ... }
//	const messages = { ... }
//	export { ... }
//
// The object literal is parsed by a constrained recursive-descent parser
// (see literal.go) that tolerates unquoted keys, single quotes, and
// trailing commas without executing any code. Comment stripping and span
// location are offset-preserving, so a span found in the cleaned text can
// be replaced in the original text verbatim — the basis of the
// format-preserving write-back.
package jsfile

import (
	"fmt"
	"regexp"
	"strings"
)

// Span is a half-open byte range [Start, End) in the source text,
// covering an object literal including its braces.
type Span struct {
	Start int
	End   int
}

// exportPatterns locate the opening brace of an exported object literal.
// Each pattern's last captured group must end right before the "{".
var exportPatterns = []*regexp.Regexp{
	regexp.MustCompile(`export\s+default\s*\{`),
	regexp.MustCompile(`module\.exports\s*=\s*\{`),
	regexp.MustCompile(`(?:const|let|var)\s+[A-Za-z_$][A-Za-z0-9_$]*\s*=\s*\{`),
	regexp.MustCompile(`export\s*\{`),
}

// FindExport locates the exported object-literal span in src. Comments are
// ignored during the search; the returned span is valid in the original
// text. The second return value is false when no export pattern matches or
// the braces never balance.
func FindExport(src string) (Span, bool) {
	clean := StripComments(src)

	for _, re := range exportPatterns {
		loc := re.FindStringIndex(clean)
		if loc == nil {
			continue
		}
		open := loc[1] - 1 // the matched "{"
		end, ok := matchBrace(clean, open)
		if !ok {
			continue
		}
		return Span{Start: open, End: end + 1}, true
	}
	return Span{}, false
}

// Parse extracts and parses the exported object literal of a whole module
// source. Returns an error when no export pattern is found or the literal
// does not parse.
func Parse(src string) (map[string]any, error) {
	span, ok := FindExport(src)
	if !ok {
		return nil, fmt.Errorf("no object-literal export found")
	}

	value, err := ParseLiteral(StripComments(src)[span.Start:span.End])
	if err != nil {
		return nil, err
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("export is not an object literal")
	}
	return obj, nil
}

// Rewrite replaces the exported object-literal span of src with a fresh
// serialization of obj, preserving everything outside the span verbatim.
func Rewrite(src string, obj map[string]any) (string, error) {
	span, ok := FindExport(src)
	if !ok {
		return "", fmt.Errorf("no object-literal export found")
	}
	return src[:span.Start] + Serialize(obj) + src[span.End:], nil
}

// StripComments blanks out // line comments and /* */ block comments,
// replacing every comment byte with a space (newlines are kept), so all
// byte offsets into the result equal offsets into the input. String and
// template literals are respected: comment markers inside them are left
// alone.
func StripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	const (
		stCode = iota
		stString
		stLineComment
		stBlockComment
	)
	state := stCode
	var quote byte

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch state {
		case stCode:
			switch {
			case c == '\'' || c == '"' || c == '`':
				state = stString
				quote = c
				b.WriteByte(c)
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = stLineComment
				b.WriteByte(' ')
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = stBlockComment
				b.WriteByte(' ')
			default:
				b.WriteByte(c)
			}
		case stString:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				i++
				b.WriteByte(src[i])
			} else if c == quote {
				state = stCode
			}
		case stLineComment:
			if c == '\n' {
				state = stCode
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		case stBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				b.WriteString("  ")
				i++
				state = stCode
			} else if c == '\n' {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

// matchBrace returns the index of the "}" balancing the "{" at open.
// Quoted strings are skipped. src must already be comment-free.
func matchBrace(src string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(src); i++ {
		switch c := src[i]; c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		case '\'', '"', '`':
			end, ok := skipString(src, i)
			if !ok {
				return 0, false
			}
			i = end
		}
	}
	return 0, false
}

// skipString returns the index of the closing quote for the string
// starting at i.
func skipString(src string, i int) (int, bool) {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j, true
		}
	}
	return 0, false
}
