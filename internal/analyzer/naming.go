// # internal/analyzer/naming.go
package analyzer

import (
	"path"
	"strings"
)

// DeriveNameFromFile turns an import target or file path into an
// identifier-like name, e.g. "./admin/admin.module" -> "AdminModule",
// "user-profile.component.ts" -> "UserProfileComponent". Lossy by design;
// callers treat the result as a best-effort label.
func DeriveNameFromFile(p string) string {
	base := path.Base(strings.TrimSuffix(p, path.Ext(p)))
	// Legacy "module#Export" targets already name the export.
	if idx := strings.Index(base, "#"); idx >= 0 {
		return base[idx+1:]
	}

	var b strings.Builder
	for _, part := range strings.FieldsFunc(base, func(r rune) bool {
		return r == '.' || r == '-' || r == '_'
	}) {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// PlaceholderFor maps a dynamic path segment expression to a derived
// parameter placeholder. Any expression mentioning "id" becomes ":id";
// this is a documented guess, not a resolved parameter name. Everything
// else is slugified.
func PlaceholderFor(expr string) string {
	if strings.Contains(strings.ToLower(expr), "id") {
		return ":id"
	}
	return ":" + Slugify(expr)
}

// Slugify lowercases an expression and collapses every non-alphanumeric
// run to a single dash.
func Slugify(expr string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(expr)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// JoinSegments concatenates resolved path segments with "/", collapsing
// doubled slashes without forcing the result absolute: the target may be
// intentionally relative.
func JoinSegments(segments []string) string {
	joined := strings.Join(segments, "/")
	for strings.Contains(joined, "//") {
		joined = strings.ReplaceAll(joined, "//", "/")
	}
	if len(joined) > 1 {
		joined = strings.TrimSuffix(joined, "/")
	}
	return joined
}

// TruncateCondition shortens a guard expression for use as an edge label.
func TruncateCondition(cond string) string {
	cond = strings.Join(strings.Fields(cond), " ")
	cond = strings.TrimPrefix(cond, "(")
	cond = strings.TrimSuffix(cond, ")")
	if len(cond) > 40 {
		return cond[:37] + "..."
	}
	return cond
}
