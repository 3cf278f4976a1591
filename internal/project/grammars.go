// # internal/project/grammars.go
package project

import (
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

const (
	LangTypeScript = "typescript"
	LangTSX        = "tsx"
	LangJavaScript = "javascript"
	LangHTML       = "html"
)

var (
	grammarOnce sync.Once
	grammars    map[string]*sitter.Language
)

func grammarFor(lang string) *sitter.Language {
	grammarOnce.Do(func() {
		grammars = map[string]*sitter.Language{
			LangTypeScript: sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
			LangTSX:        sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
			LangJavaScript: sitter.NewLanguage(tree_sitter_javascript.Language()),
			LangHTML:       sitter.NewLanguage(tree_sitter_html.Language()),
		}
	})
	return grammars[lang]
}

// LanguageForPath maps a file path to a grammar name, or "" when the file
// is not analyzable. Declaration files carry no runtime routing and are
// skipped.
func LanguageForPath(path string) string {
	name := filepath.Base(path)
	if strings.HasSuffix(name, ".d.ts") {
		return ""
	}
	switch filepath.Ext(name) {
	case ".ts", ".mts":
		return LangTypeScript
	case ".tsx":
		return LangTSX
	case ".js", ".jsx", ".mjs", ".cjs":
		return LangJavaScript
	case ".html", ".htm":
		return LangHTML
	default:
		return ""
	}
}
