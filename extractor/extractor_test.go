package extractor

import (
	"strings"
	"testing"
)

var testMethods = []string{"$t", "t", "i18n.t", "i18n.global.t", "global.t"}

// keysOf collects the extracted keys in order.
func keysOf(sites []CallSite) []string {
	keys := make([]string, len(sites))
	for i, s := range sites {
		keys[i] = s.Key
	}
	return keys
}

func TestExtractRecognizesCallingConventions(t *testing.T) {
	src := `
const a = this.$t('home.title')
const b = i18n.global.t("nav.back")
foo('bar')
`
	sites := Extract(src, LangJavaScript, testMethods)
	if len(sites) != 2 {
		t.Fatalf("extracted %d sites, want 2: %v", len(sites), keysOf(sites))
	}
	if sites[0].Key != "home.title" || sites[1].Key != "nav.back" {
		t.Fatalf("keys = %v", keysOf(sites))
	}
}

func TestExtractOffsetsCoverLiteral(t *testing.T) {
	src := `t('hello.world')`
	sites := Extract(src, LangJavaScript, testMethods)
	if len(sites) != 1 {
		t.Fatalf("extracted %d sites, want 1", len(sites))
	}
	if got := src[sites[0].Start:sites[0].End]; got != "'hello.world'" {
		t.Fatalf("literal span = %q", got)
	}
}

func TestExtractMemberAccessNames(t *testing.T) {
	tests := []struct {
		src     string
		methods []string
		want    []string
	}{
		// Plain member access resolves to the property name.
		{`obj.t('a.b')`, []string{"t"}, []string{"a.b"}},
		// i18n.t resolves to the qualified name only.
		{`i18n.t('x')`, []string{"i18n.t"}, []string{"x"}},
		{`i18n.t('x')`, []string{"t"}, nil},
		// .global.t qualification.
		{`app.global.t('y')`, []string{"global.t"}, []string{"y"}},
		{`i18n.global.t('z')`, []string{"i18n.global.t"}, []string{"z"}},
		{`i18n.global.t('z')`, []string{"global.t"}, nil},
	}

	for _, tt := range tests {
		sites := Extract(tt.src, LangJavaScript, tt.methods)
		got := keysOf(sites)
		if len(got) != len(tt.want) {
			t.Errorf("Extract(%q, %v) keys = %v, want %v", tt.src, tt.methods, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Extract(%q, %v) keys = %v, want %v", tt.src, tt.methods, got, tt.want)
			}
		}
	}
}

func TestExtractRequiresStringLiteralArgument(t *testing.T) {
	src := `
t(someVariable)
t(42)
t(prefix + '.suffix', 'second.literal')
`
	sites := Extract(src, LangJavaScript, testMethods)
	// Only the call carrying a string literal qualifies; its key is the
	// first literal argument.
	if len(sites) != 1 || sites[0].Key != "second.literal" {
		t.Fatalf("sites = %v", keysOf(sites))
	}
}

func TestExtractHandlesModuleSyntax(t *testing.T) {
	src := `import { useI18n } from 'vue-i18n'
import x from './x'

export const label = t('menu.label')

export default {
  computed: {
    title() { return this.$t('page.title') },
  },
}
`
	sites := Extract(src, LangJavaScript, testMethods)
	keys := keysOf(sites)
	if len(keys) != 2 {
		t.Fatalf("keys = %v, want [menu.label page.title]", keys)
	}
	for _, k := range []string{"menu.label", "page.title"} {
		found := false
		for _, got := range keys {
			if got == k {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing key %q in %v", k, keys)
		}
	}

	// Offsets must refer to the original, unsanitized text.
	for _, s := range sites {
		lit := src[s.Start:s.End]
		if !strings.Contains(lit, s.Key) {
			t.Fatalf("span %q does not contain key %q", lit, s.Key)
		}
	}
}

func TestExtractTypeScriptTypeSyntax(t *testing.T) {
	src := `interface Props {
  label: string
}

const title: string = $t('form.title')

function render(count: number) {
  return t('form.count') + (count as number)
}
`
	sites := Extract(src, LangTypeScript, testMethods)
	if len(sites) != 2 {
		t.Fatalf("extracted %d sites, want 2: %v", len(sites), keysOf(sites))
	}

	byKey := make(map[string]CallSite)
	for _, s := range sites {
		byKey[s.Key] = s
	}
	for _, key := range []string{"form.title", "form.count"} {
		site, ok := byKey[key]
		if !ok {
			t.Fatalf("missing key %q in %v", key, keysOf(sites))
		}
		if site.Lang != LangTypeScript {
			t.Fatalf("site %q lang = %q", key, site.Lang)
		}
		if got := src[site.Start:site.End]; got != "'"+key+"'" {
			t.Fatalf("span for %q = %q", key, got)
		}
	}
}

func TestExtractMultiLineImport(t *testing.T) {
	src := `import {
  useI18n,
} from 'vue-i18n'
const label = t('menu.label')
`
	sites := Extract(src, LangJavaScript, testMethods)
	if len(sites) != 1 || sites[0].Key != "menu.label" {
		t.Fatalf("sites = %v, want [menu.label]", keysOf(sites))
	}
	if got := src[sites[0].Start:sites[0].End]; got != "'menu.label'" {
		t.Fatalf("literal span = %q", got)
	}
}

func TestExtractImportLookalikeInsideTemplateLiteral(t *testing.T) {
	// A line starting with "import" inside a template literal must not be
	// blanked across lines up to the next quote — that would erase the
	// call site below it.
	src := "const s = `\nimport config from theme\n`\nconst a = t('x.y')\n"

	sites := Extract(src, LangJavaScript, testMethods)
	if len(sites) != 1 || sites[0].Key != "x.y" {
		t.Fatalf("sites = %v, want [x.y]", keysOf(sites))
	}
	if got := src[sites[0].Start:sites[0].End]; got != "'x.y'" {
		t.Fatalf("literal span = %q", got)
	}
}

func TestExtractParseFailureYieldsEmpty(t *testing.T) {
	sites := Extract(`function ( { broken`, LangJavaScript, testMethods)
	if len(sites) != 0 {
		t.Fatalf("sites = %v, want none", sites)
	}
}

func TestExtractComponentScriptAndTemplate(t *testing.T) {
	src := `<template>
  <h1>{{ $t('home.title') }}</h1>
</template>

<script>
export default {
  created() {
    this.$t('home.created')
  },
}
</script>
`
	sites := Extract(src, LangVue, testMethods)

	byKey := make(map[string]CallSite)
	for _, s := range sites {
		byKey[s.Key] = s
	}
	if len(byKey) != 2 {
		t.Fatalf("keys = %v, want template + script keys", keysOf(sites))
	}

	tmpl, ok := byKey["home.title"]
	if !ok {
		t.Fatal("template call site missing")
	}
	if got := src[tmpl.Start:tmpl.End]; got != "'home.title'" {
		t.Fatalf("template span = %q", got)
	}

	script, ok := byKey["home.created"]
	if !ok {
		t.Fatal("script call site missing")
	}
	if got := src[script.Start:script.End]; got != "'home.created'" {
		t.Fatalf("script span = %q (offset base not applied?)", got)
	}
}

func TestExtractUnknownLanguage(t *testing.T) {
	if sites := Extract(`t('x')`, "python", testMethods); sites != nil {
		t.Fatalf("sites = %v, want nil", sites)
	}
}
