// # internal/routes/collection.go
package routes

import (
	"fmt"
	"log/slog"
)

// Collection accumulates routes into one deduplicated table. Path identity
// is the primary key; component identity is a secondary signal used to
// upgrade a route to a longer, more specific path. Routes are never
// deleted: rejected duplicates are simply not inserted, and merges mutate
// the existing entry in place.
type Collection struct {
	entries     []*Route
	byPath      map[string]*Route
	byComponent map[string]*Route
	hasRoot     bool
	warnings    []string
}

func NewCollection() *Collection {
	return &Collection{
		byPath:      make(map[string]*Route),
		byComponent: make(map[string]*Route),
	}
}

// Add applies the merge policy and reports whether the route was inserted
// as a new entry.
func (c *Collection) Add(r *Route) bool {
	if r == nil || informationFree(r) {
		return false
	}
	r.FullPath = Normalize(r.FullPath)

	// At most one root, and it must live at "/".
	if r.IsRoot && (c.hasRoot || r.FullPath != "/") {
		r.IsRoot = false
	}

	if existing, ok := c.byPath[r.FullPath]; ok {
		c.merge(existing, r)
		return false
	}

	if r.Component != "" {
		if prev, ok := c.byComponent[r.Component]; ok && prev.FullPath != r.FullPath {
			if preferNewPath(r, prev) {
				c.replace(prev, r)
				return true
			}
			return false
		}
	}

	c.entries = append(c.entries, r)
	c.byPath[r.FullPath] = r
	if r.Component != "" {
		c.byComponent[r.Component] = r
	}
	if r.IsRoot {
		c.hasRoot = true
	}
	return true
}

// merge fills fields the existing entry lacks. A field populated on both
// sides with different values keeps the original and records an ambiguity.
func (c *Collection) merge(old, incoming *Route) {
	if incoming.Component != "" {
		if old.Component == "" {
			old.Component = incoming.Component
			c.byComponent[old.Component] = old
		} else if old.Component != incoming.Component {
			c.ambiguity(old.FullPath, "component", old.Component, incoming.Component)
		}
	}
	if incoming.LazyModule != "" {
		if old.LazyModule == "" {
			old.LazyModule = incoming.LazyModule
		} else if old.LazyModule != incoming.LazyModule {
			c.ambiguity(old.FullPath, "lazyModule", old.LazyModule, incoming.LazyModule)
		}
	}
	if incoming.Redirect {
		if !old.Redirect {
			old.Redirect = true
			old.RedirectTo = incoming.RedirectTo
		} else if old.RedirectTo != incoming.RedirectTo {
			c.ambiguity(old.FullPath, "redirectTo", old.RedirectTo, incoming.RedirectTo)
		}
	}
	if len(old.Guards) == 0 && len(incoming.Guards) > 0 {
		old.Guards = incoming.Guards
	}
	for k, v := range incoming.Data {
		if old.Data == nil {
			old.Data = make(map[string]string)
		}
		if _, ok := old.Data[k]; !ok {
			old.Data[k] = v
		}
	}
	if incoming.IsRoot && !c.hasRoot && old.FullPath == "/" {
		old.IsRoot = true
		c.hasRoot = true
	}
}

// replace swaps prev for next in place, keeping prev's insertion position.
func (c *Collection) replace(prev, next *Route) {
	for i, e := range c.entries {
		if e == prev {
			c.entries[i] = next
			break
		}
	}
	delete(c.byPath, prev.FullPath)
	c.byPath[next.FullPath] = next
	if next.Component != "" {
		c.byComponent[next.Component] = next
	}
}

// preferNewPath decides whether next should supersede prev when both carry
// the same component at different paths: a concrete path beats a
// catch-all, otherwise the longer path wins.
func preferNewPath(next, prev *Route) bool {
	prevWild := IsWildcard(prev.FullPath)
	nextWild := IsWildcard(next.FullPath)
	if prevWild != nextWild {
		return prevWild
	}
	return len(next.FullPath) > len(prev.FullPath)
}

func informationFree(r *Route) bool {
	return r.Path == "" &&
		r.Component == "" &&
		r.LazyModule == "" &&
		!r.Redirect &&
		len(r.Children) == 0 &&
		len(r.Guards) == 0 &&
		!r.IsRoot
}

func (c *Collection) ambiguity(path, field, kept, ignored string) {
	msg := fmt.Sprintf("ambiguous route %s: %s %q conflicts with %q", path, field, kept, ignored)
	c.warnings = append(c.warnings, msg)
	slog.Warn("ambiguous route definition", "path", path, "field", field, "kept", kept, "ignored", ignored)
}

// Routes returns the table in insertion order.
func (c *Collection) Routes() []*Route { return c.entries }

func (c *Collection) Len() int { return len(c.entries) }

// Lookup returns the route at a normalized full path.
func (c *Collection) Lookup(fullPath string) (*Route, bool) {
	r, ok := c.byPath[Normalize(fullPath)]
	return r, ok
}

func (c *Collection) HasRoot() bool { return c.hasRoot }

func (c *Collection) Warnings() []string { return c.warnings }
