// # internal/routes/pathutil.go
package routes

import "strings"

// Normalize returns the canonical form of a route path: leading slash,
// no doubled slashes, no trailing slash unless the path is exactly "/".
// Idempotent; consumers rely on bit-exact stability for node identity.
func Normalize(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}

// Join resolves a route segment against its parent context. An absolute
// segment replaces the parent entirely.
func Join(parent, segment string) string {
	if strings.HasPrefix(segment, "/") {
		return Normalize(segment)
	}
	if segment == "" {
		return Normalize(parent)
	}
	return Normalize(parent + "/" + segment)
}

// Parent returns the containing path of a normalized route path, or ""
// for the root itself.
func Parent(p string) string {
	p = Normalize(p)
	if p == "/" {
		return ""
	}
	idx := strings.LastIndex(p, "/")
	if idx <= 0 {
		return "/"
	}
	return p[:idx]
}

// IsWildcard reports whether any segment of the path is a catch-all.
func IsWildcard(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg == "*" || seg == "**" {
			return true
		}
	}
	return false
}
