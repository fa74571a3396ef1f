package loader

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/minios-linux/localens/locator"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMergesAndFlattens(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"home":{"title":"Hi","sub":"One"}}`)
	b := writeFile(t, dir, "b.json", `{"home":{"sub":"Two"},"extra":"E"}`)

	files := []locator.LocaleFile{
		{Path: a, Locale: "en", Namespace: "common"},
		{Path: b, Locale: "en", Namespace: "common"},
	}
	tree, stats := Load(files)

	if stats.Processed != 2 || stats.Succeeded != 2 || stats.Failed != 0 {
		t.Fatalf("stats = %+v", stats)
	}

	obj := tree.Namespace("en", "common")
	home, ok := obj["home"].(map[string]any)
	if !ok {
		t.Fatalf("home missing: %#v", obj)
	}
	// Object-object merged recursively; later file wins scalar conflicts.
	if home["title"] != "Hi" || home["sub"] != "Two" {
		t.Fatalf("home = %#v", home)
	}
	if obj["extra"] != "E" {
		t.Fatalf("extra = %v", obj["extra"])
	}

	flat := tree.Flat("en", "common")
	if flat["home.title"] != "Hi" {
		t.Fatalf("flat[home.title] = %v", flat["home.title"])
	}
	// Intermediate object nodes are retained at their own path.
	if _, ok := flat["home"].(map[string]any); !ok {
		t.Fatalf("flat[home] should be the node object, got %#v", flat["home"])
	}
}

func TestLoadRecordsParseFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"k":"v"}`)
	bad := writeFile(t, dir, "bad.json", `{broken`)

	files := []locator.LocaleFile{
		{Path: bad, Locale: "en", Namespace: "common"},
		{Path: good, Locale: "en", Namespace: "common"},
	}
	tree, stats := Load(files)

	if stats.Failed != 1 || stats.Succeeded != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if len(stats.Errors) != 1 || !strings.Contains(stats.Errors[0].Path, "bad.json") {
		t.Fatalf("errors = %+v", stats.Errors)
	}
	// The good file must survive the bad one.
	if tree.Flat("en", "common")["k"] != "v" {
		t.Fatal("good file not loaded")
	}
}

func TestLoadJSModule(t *testing.T) {
	dir := t.TempDir()
	js := writeFile(t, dir, "es.js", `// spanish strings
export default {
  home: {
    title: 'Hola',
  },
}
`)
	tree, stats := Load([]locator.LocaleFile{{Path: js, Locale: "es", Namespace: "common"}})
	if stats.Failed != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	if got := tree.Flat("es", "common")["home.title"]; got != "Hola" {
		t.Fatalf("home.title = %v", got)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	yml := writeFile(t, dir, "de.yaml", "nav:\n  home: Start\n")
	tree, stats := Load([]locator.LocaleFile{{Path: yml, Locale: "de", Namespace: "common"}})
	if stats.Failed != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	if got := tree.Flat("de", "common")["nav.home"]; got != "Start" {
		t.Fatalf("nav.home = %v", got)
	}
}

func TestMergeIdempotence(t *testing.T) {
	src := map[string]any{"a": map[string]any{"b": "X"}, "c": "Y"}

	once := make(map[string]any)
	deepMerge(once, src)
	twice := make(map[string]any)
	deepMerge(twice, src)
	deepMerge(twice, src)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("merge not idempotent: %#v != %#v", once, twice)
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	obj := map[string]any{
		"a": map[string]any{
			"b": "X",
			"c": map[string]any{"d": "Y"},
		},
		"e": "Z",
	}

	flat := make(map[string]any)
	Flatten(obj, "", flat)

	// Re-nest leaf values by splitting each path on ".".
	rebuilt := make(map[string]any)
	for path, v := range flat {
		if _, isObj := v.(map[string]any); isObj {
			continue
		}
		cur := rebuilt
		segs := strings.Split(path, ".")
		for _, seg := range segs[:len(segs)-1] {
			next, ok := cur[seg].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cur[seg] = next
			}
			cur = next
		}
		cur[segs[len(segs)-1]] = v
	}

	if !reflect.DeepEqual(rebuilt, obj) {
		t.Fatalf("round trip = %#v, want %#v", rebuilt, obj)
	}
}

func TestLeafKeys(t *testing.T) {
	dir := t.TempDir()
	en := writeFile(t, dir, "en.json", `{"home":{"title":"Hi"},"bye":"Bye"}`)
	de := writeFile(t, dir, "de.json", `{"home":{"title":"Hallo"}}`)

	tree, _ := Load([]locator.LocaleFile{
		{Path: en, Locale: "en", Namespace: "common"},
		{Path: de, Locale: "de", Namespace: "common"},
	})

	want := []string{"bye", "home.title"}
	if got := tree.LeafKeys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("LeafKeys = %v, want %v", got, want)
	}
	if !tree.HasLeaf("de", "home.title") {
		t.Fatal("HasLeaf(de, home.title) = false")
	}
	if tree.HasLeaf("de", "bye") {
		t.Fatal("HasLeaf(de, bye) = true")
	}
}
