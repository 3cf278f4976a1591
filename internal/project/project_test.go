package project

import (
	"os"
	"path/filepath"
	"testing"
)

func loadFixtureRoot(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestLanguageForPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"src/app/app.module.ts", LangTypeScript},
		{"src/worker.mts", LangTypeScript},
		{"src/pages/index.tsx", LangTSX},
		{"src/legacy/app.js", LangJavaScript},
		{"src/legacy/widget.jsx", LangJavaScript},
		{"next.config.mjs", LangJavaScript},
		{"scripts/build.cjs", LangJavaScript},
		{"src/app/home/home.component.html", LangHTML},
		{"docs/index.htm", LangHTML},
		{"src/types/api.d.ts", ""},
		{"README.md", ""},
		{"styles/main.css", ""},
	}
	for _, tc := range cases {
		if got := LanguageForPath(tc.path); got != tc.want {
			t.Errorf("LanguageForPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestLoad_SkipsExcludedPaths(t *testing.T) {
	p := loadFixture(t, map[string]string{
		"src/app/app.module.ts":           "export class AppModule {}\n",
		"src/app/api.d.ts":                "declare const api: string;\n",
		"src/generated/client.ts":         "export const client = 1;\n",
		"src/app/home.component.spec.ts":  "it('works', () => {});\n",
		"node_modules/@angular/router.ts": "export class Router {}\n",
		"dist/main.js":                    "console.log('built');\n",
		"README.md":                       "# readme\n",
	})

	if _, ok := p.File("src/app/app.module.ts"); !ok {
		t.Fatal("app.module.ts should be loaded")
	}
	for _, rel := range []string{
		"src/app/api.d.ts",
		"node_modules/@angular/router.ts",
		"dist/main.js",
		"README.md",
	} {
		if _, ok := p.File(rel); ok {
			t.Errorf("%s should not be loaded", rel)
		}
	}
}

func TestLoad_HonorsConfiguredGlobs(t *testing.T) {
	root := loadFixtureRoot(t, map[string]string{
		"src/app/app.module.ts":          "export class AppModule {}\n",
		"src/app/home.component.spec.ts": "it('works', () => {});\n",
		"generated/client.ts":            "export const client = 1;\n",
	})
	p, err := Load(root, []string{"generated"}, []string{"*.spec.ts"})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(p.Close)

	if _, ok := p.File("src/app/app.module.ts"); !ok {
		t.Fatal("app.module.ts should be loaded")
	}
	if _, ok := p.File("generated/client.ts"); ok {
		t.Error("excluded dir glob should prune generated/")
	}
	if _, ok := p.File("src/app/home.component.spec.ts"); ok {
		t.Error("excluded file glob should skip spec files")
	}
}

func TestLoad_RejectsBadInput(t *testing.T) {
	if _, err := Load("does-not-exist", nil, nil); err == nil {
		t.Error("missing root should fail")
	}
	if _, err := Load(t.TempDir(), nil, []string{"[bad"}); err == nil {
		t.Error("invalid glob should fail")
	}
}

func TestFiles_DeterministicOrder(t *testing.T) {
	p := loadFixture(t, map[string]string{
		"src/b.ts": "export const b = 1;\n",
		"src/a.ts": "export const a = 1;\n",
		"src/c.ts": "export const c = 1;\n",
	})
	files := p.Files()
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3", len(files))
	}
	for i, want := range []string{"src/a.ts", "src/b.ts", "src/c.ts"} {
		if files[i].Path != want {
			t.Errorf("Files()[%d] = %s, want %s", i, files[i].Path, want)
		}
	}
}

func TestMarkup_ResolvesRelativeToComponent(t *testing.T) {
	p := loadFixture(t, map[string]string{
		"src/app/home/home.component.ts":   "export class HomeComponent {}\n",
		"src/app/home/home.component.html": "<a routerLink=\"/about\">About</a>\n",
		"src/app/home/notes.ts":            "export const n = 1;\n",
	})
	from := mustFile(t, p, "src/app/home/home.component.ts")

	tpl, ok := p.Markup(from, "./home.component.html")
	if !ok {
		t.Fatal("templateUrl should resolve")
	}
	if tpl.Language != LangHTML {
		t.Errorf("template language = %s, want %s", tpl.Language, LangHTML)
	}
	if _, ok := p.Markup(from, "./missing.html"); ok {
		t.Error("missing template should not resolve")
	}
	if _, ok := p.Markup(from, "./notes.ts"); ok {
		t.Error("non-HTML file should not resolve as markup")
	}
}

func TestParseMarkup(t *testing.T) {
	sf, release, err := ParseMarkup([]byte(`<nav><a routerLink="/about">About</a></nav>`))
	if err != nil {
		t.Fatal(err)
	}
	defer release()

	if sf.Language != LangHTML {
		t.Errorf("language = %s, want %s", sf.Language, LangHTML)
	}
	if sf.Root() == nil {
		t.Fatal("parsed markup should expose a root node")
	}
	text := sf.Text(sf.Root())
	if text != `<nav><a routerLink="/about">About</a></nav>` {
		t.Errorf("Text(root) = %q", text)
	}
}
