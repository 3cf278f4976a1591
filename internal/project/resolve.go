// # internal/project/resolve.go
package project

import (
	"path"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Declaration is one site where an identifier is declared. Node points at
// the declarator (variable_declarator, class_declaration or
// function_declaration) inside File.
type Declaration struct {
	File *SourceFile
	Node *sitter.Node
	Name string
}

var importSuffixVariants = []string{
	"", ".ts", ".tsx", ".js", ".jsx",
	"/index.ts", "/index.tsx", "/index.js",
}

// ResolveImportPath maps an import specifier written in from to a loaded
// project file. Tries the literal path, common suffix variants and
// directory-index fallbacks, then project-root-relative locations.
func (p *Project) ResolveImportPath(from *SourceFile, spec string) (*SourceFile, bool) {
	// Legacy "module#Export" specifiers carry the export after the hash.
	if idx := strings.Index(spec, "#"); idx >= 0 {
		spec = spec[:idx]
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, false
	}

	var bases []string
	if strings.HasPrefix(spec, ".") {
		bases = []string{path.Clean(path.Join(path.Dir(from.Path), spec))}
	} else {
		// Bare specifiers are either package imports (unresolvable) or
		// project-root aliases; try the root-relative fallbacks.
		trimmed := strings.TrimPrefix(strings.TrimPrefix(spec, "@/"), "~/")
		bases = []string{
			normalizeRel(trimmed),
			path.Join("src", trimmed),
			path.Join("src/app", trimmed),
		}
	}

	for _, base := range bases {
		for _, suffix := range importSuffixVariants {
			if sf, ok := p.files[base+suffix]; ok {
				return sf, true
			}
		}
	}
	return nil, false
}

// ResolveIdentifier finds declaration sites for name visible in file:
// local declarations first, then imported and re-exported bindings
// followed textually across files. Syntax-only; ambiguity returns every
// viable site and the caller takes the first.
func (p *Project) ResolveIdentifier(file *SourceFile, name string) []Declaration {
	seen := make(map[string]bool)
	return p.resolveIdentifier(file, name, seen)
}

func (p *Project) resolveIdentifier(file *SourceFile, name string, seen map[string]bool) []Declaration {
	key := file.Path + "|" + name
	if seen[key] {
		return nil
	}
	seen[key] = true

	var out []Declaration
	out = append(out, p.localDeclarations(file, name)...)

	// Imported bindings: import { X } from './y', import X from './y'.
	for _, imp := range FindAll(file.Root(), "import_statement") {
		local, original := importedBinding(imp, file, name)
		if local == "" {
			continue
		}
		target, ok := p.importSource(file, imp)
		if !ok {
			continue
		}
		out = append(out, p.resolveIdentifier(target, original, seen)...)
	}

	// Re-exports: export { X } from './y', export * from './y'.
	for _, exp := range FindAll(file.Root(), "export_statement") {
		source := exp.ChildByFieldName("source")
		if source == nil {
			continue
		}
		spec, ok := StringValue(source, file)
		if !ok {
			continue
		}
		if !reexportsName(exp, file, name) {
			continue
		}
		target, ok := p.ResolveImportPath(file, spec)
		if !ok {
			continue
		}
		out = append(out, p.resolveIdentifier(target, name, seen)...)
	}

	return out
}

func (p *Project) localDeclarations(file *SourceFile, name string) []Declaration {
	var out []Declaration
	Walk(file.Root(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case "variable_declarator":
			if id := n.ChildByFieldName("name"); id != nil && id.Kind() == "identifier" && file.Text(id) == name {
				out = append(out, Declaration{File: file, Node: n, Name: name})
			}
		case "class_declaration", "function_declaration":
			if id := n.ChildByFieldName("name"); id != nil && file.Text(id) == name {
				out = append(out, Declaration{File: file, Node: n, Name: name})
			}
			return false // declarations nested in bodies are not visible
		}
		return true
	})
	return out
}

// importedBinding returns (localName, originalName) if the import
// statement binds name, otherwise ("", "").
func importedBinding(imp *sitter.Node, file *SourceFile, name string) (string, string) {
	for _, spec := range FindAll(imp, "import_specifier") {
		orig := spec.ChildByFieldName("name")
		alias := spec.ChildByFieldName("alias")
		if alias != nil && file.Text(alias) == name {
			return name, file.Text(orig)
		}
		if alias == nil && orig != nil && file.Text(orig) == name {
			return name, name
		}
	}
	// Default import: import X from './y'.
	for _, clause := range FindAll(imp, "import_clause") {
		for _, id := range NamedChildren(clause, "identifier") {
			if file.Text(id) == name {
				return name, name
			}
		}
	}
	return "", ""
}

func (p *Project) importSource(file *SourceFile, imp *sitter.Node) (*SourceFile, bool) {
	source := imp.ChildByFieldName("source")
	if source == nil {
		return nil, false
	}
	spec, ok := StringValue(source, file)
	if !ok {
		return nil, false
	}
	return p.ResolveImportPath(file, spec)
}

func reexportsName(exp *sitter.Node, file *SourceFile, name string) bool {
	// export * from './x' forwards everything.
	star := false
	for i := uint(0); i < exp.ChildCount(); i++ {
		if exp.Child(i).Kind() == "*" {
			star = true
		}
	}
	if star {
		return true
	}
	for _, spec := range FindAll(exp, "export_specifier") {
		if n := spec.ChildByFieldName("name"); n != nil && file.Text(n) == name {
			return true
		}
	}
	return false
}
