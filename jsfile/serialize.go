package jsfile

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// identRe matches keys that can stay unquoted in a JS object literal.
var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Serialize renders a value as a JavaScript literal with 2-space
// indentation, unquoted keys where possible and single-quoted strings.
// Object keys are emitted in sorted order for deterministic output.
func Serialize(v any) string {
	var b strings.Builder
	writeValue(&b, v, 0)
	return b.String()
}

func writeValue(b *strings.Builder, v any, depth int) {
	switch val := v.(type) {
	case map[string]any:
		writeObject(b, val, depth)
	case []any:
		writeArray(b, val, depth)
	case string:
		b.WriteString(quoteJS(val))
	case bool:
		b.WriteString(strconv.FormatBool(val))
	case float64:
		b.WriteString(strconv.FormatFloat(val, 'f', -1, 64))
	case int:
		b.WriteString(strconv.Itoa(val))
	case nil:
		b.WriteString("null")
	default:
		// Unknown types should not appear in parsed locale data.
		b.WriteString("null")
	}
}

func writeObject(b *strings.Builder, obj map[string]any, depth int) {
	if len(obj) == 0 {
		b.WriteString("{}")
		return
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	indent := strings.Repeat("  ", depth+1)
	b.WriteString("{\n")
	for i, k := range keys {
		b.WriteString(indent)
		if identRe.MatchString(k) {
			b.WriteString(k)
		} else {
			b.WriteString(quoteJS(k))
		}
		b.WriteString(": ")
		writeValue(b, obj[k], depth+1)
		if i < len(keys)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteByte('}')
}

func writeArray(b *strings.Builder, arr []any, depth int) {
	if len(arr) == 0 {
		b.WriteString("[]")
		return
	}

	indent := strings.Repeat("  ", depth+1)
	b.WriteString("[\n")
	for i, v := range arr {
		b.WriteString(indent)
		writeValue(b, v, depth+1)
		if i < len(arr)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteByte(']')
}

// quoteJS returns a single-quoted JS string literal.
func quoteJS(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
