// # internal/project/project.go
package project

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gobwas/glob"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ksrpraneeth/UserPravah/internal/core/errors"
	"github.com/ksrpraneeth/UserPravah/internal/shared/observability"
)

// Dirs that never contain application routing, excluded regardless of
// configuration.
var alwaysExcludedDirs = []string{
	".git", "node_modules", "dist", "build", "out", "coverage",
	".angular", ".next", ".turbo", ".cache",
}

// SourceFile is one parsed file. The syntax tree stays open for the
// lifetime of the Project so callers can hold nodes without copying.
type SourceFile struct {
	Path     string // project-relative, slash-separated
	AbsPath  string
	Language string
	Source   []byte
	tree     *sitter.Tree
}

func (f *SourceFile) Root() *sitter.Node { return f.tree.RootNode() }

// Text returns the source text spanned by a node.
func (f *SourceFile) Text(n *sitter.Node) string {
	return string(f.Source[n.StartByte():n.EndByte()])
}

// Project is the source-access facade: it enumerates and parses a source
// tree and answers identifier- and import-resolution queries. All lookups
// are best effort; a missing file or declaration is never fatal.
type Project struct {
	Root string

	files map[string]*SourceFile
	order []string
}

// Load walks root, parses every analyzable file and returns the facade.
// excludeDirs and excludeFiles are glob patterns on top of the built-in
// exclusions.
func Load(root string, excludeDirs, excludeFiles []string) (*Project, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	if info, statErr := os.Stat(absRoot); statErr != nil || !info.IsDir() {
		return nil, fmt.Errorf("project root is not a directory: %s", root)
	}

	dirGlobs, err := compileGlobs(excludeDirs)
	if err != nil {
		return nil, fmt.Errorf("compile exclude dirs: %w", err)
	}
	fileGlobs, err := compileGlobs(excludeFiles)
	if err != nil {
		return nil, fmt.Errorf("compile exclude files: %w", err)
	}

	p := &Project{
		Root:  absRoot,
		files: make(map[string]*SourceFile),
	}

	var candidates []string
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			for _, ex := range alwaysExcludedDirs {
				if name == ex {
					return fs.SkipDir
				}
			}
			for _, g := range dirGlobs {
				if g.Match(name) {
					return fs.SkipDir
				}
			}
			return nil
		}
		if LanguageForPath(path) == "" {
			return nil
		}
		rel := relPath(absRoot, path)
		for _, g := range fileGlobs {
			if g.Match(rel) || g.Match(d.Name()) {
				return nil
			}
		}
		candidates = append(candidates, path)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	// Files are independent; parse with a bounded fan-out and merge under
	// the map lock.
	workers := runtime.NumCPU()
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers < 1 {
		workers = 1
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		jobs = make(chan string)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for abs := range jobs {
				sf, parseErr := parseFile(absRoot, abs)
				if parseErr != nil {
					slog.Warn("failed to parse file", "path", abs, "error", parseErr)
					continue
				}
				mu.Lock()
				p.files[sf.Path] = sf
				mu.Unlock()
			}
		}()
	}
	for _, abs := range candidates {
		jobs <- abs
	}
	close(jobs)
	wg.Wait()

	p.order = make([]string, 0, len(p.files))
	for rel := range p.files {
		p.order = append(p.order, rel)
	}
	sort.Strings(p.order)

	slog.Debug("project loaded", "root", absRoot, "files", len(p.files))
	return p, nil
}

func parseFile(root, abs string) (*SourceFile, error) {
	lang := LanguageForPath(abs)
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(grammarFor(lang)); err != nil {
		return nil, err
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.AddContext(
			errors.New(errors.CodeParseError, "parse failed"),
			errors.CtxPath, relPath(root, abs))
	}
	observability.ParseDuration.WithLabelValues(lang).Observe(time.Since(start).Seconds())

	return &SourceFile{
		Path:     relPath(root, abs),
		AbsPath:  abs,
		Language: lang,
		Source:   content,
		tree:     tree,
	}, nil
}

// ParseMarkup parses detached markup, e.g. an inline component template.
// The returned release func frees the tree once the caller is done with
// its nodes.
func ParseMarkup(content []byte) (*SourceFile, func(), error) {
	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(grammarFor(LangHTML)); err != nil {
		return nil, nil, err
	}
	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, nil, errors.New(errors.CodeParseError, "parse failed")
	}
	sf := &SourceFile{Path: "(inline)", Language: LangHTML, Source: content, tree: tree}
	return sf, func() { tree.Close() }, nil
}

// Files returns every parsed file in deterministic (sorted) order.
func (p *Project) Files() []*SourceFile {
	out := make([]*SourceFile, 0, len(p.order))
	for _, rel := range p.order {
		out = append(out, p.files[rel])
	}
	return out
}

// File returns the parsed file at a project-relative path.
func (p *Project) File(rel string) (*SourceFile, bool) {
	sf, ok := p.files[normalizeRel(rel)]
	return sf, ok
}

// Markup returns the parsed template at a path relative to the directory
// of from, e.g. a component's templateUrl.
func (p *Project) Markup(from *SourceFile, rel string) (*SourceFile, bool) {
	joined := path.Clean(path.Join(path.Dir(from.Path), rel))
	sf, ok := p.files[joined]
	if !ok || sf.Language != LangHTML {
		return nil, false
	}
	return sf, true
}

// Close releases every retained syntax tree.
func (p *Project) Close() {
	for _, sf := range p.files {
		if sf.tree != nil {
			sf.tree.Close()
			sf.tree = nil
		}
	}
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		out = append(out, g)
	}
	return out, nil
}

func relPath(root, abs string) string {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

func normalizeRel(rel string) string {
	return strings.TrimPrefix(filepath.ToSlash(rel), "./")
}
