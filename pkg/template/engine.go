// Package template resolves `{name}` placeholders in a destination path
// against a map of named regex captures taken from a matched filename.
package template

import (
	"fmt"
	"strings"
)

// sanitizeChars is the fixed set of characters replaced with "_" in a
// resolved path segment. Unicode outside this set passes through unchanged.
const sanitizeChars = `/\:*?"<>|`

// HasTemplateVars reports whether s contains a `{` followed, anywhere after
// it, by a `}`. The scan tolerates multi-character names between the
// braces but requires a closing brace to exist at all.
func HasTemplateVars(s string) bool {
	for i, c := range s {
		if c != '{' {
			continue
		}
		if strings.ContainsRune(s[i+1:], '}') {
			return true
		}
	}
	return false
}

// SanitizeComponent replaces every character in sanitizeChars with "_",
// leaving everything else — including non-ASCII text — untouched, so the
// result remains usable as a single path segment on any target host.
func SanitizeComponent(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(sanitizeChars, r) {
			return '_'
		}
		return r
	}, s)
}

// Resolve substitutes every `{name}` occurrence in tmpl with the sanitized
// value of captures[name]. The scan proceeds left to right and always
// covers the whole template; the first missing-or-empty capture determines
// the returned error, but later placeholders are still evaluated (any
// substitutions they would have produced are discarded along with the rest
// of the result).
func Resolve(tmpl string, captures map[string]string) (string, error) {
	var result strings.Builder
	var firstErr error
	i := 0
	for i < len(tmpl) {
		open := strings.IndexByte(tmpl[i:], '{')
		if open == -1 {
			result.WriteString(tmpl[i:])
			break
		}
		open += i
		result.WriteString(tmpl[i:open])

		closeIdx := strings.IndexByte(tmpl[open+1:], '}')
		if closeIdx == -1 {
			result.WriteString(tmpl[open:])
			break
		}
		closeIdx += open + 1

		name := tmpl[open+1 : closeIdx]
		value, ok := captures[name]
		if !ok && firstErr == nil {
			firstErr = fmt.Errorf("template variable %q is not present in filename captures", name)
		} else if ok && value == "" && firstErr == nil {
			firstErr = fmt.Errorf("template variable %q resolved to an empty value", name)
		}
		result.WriteString(SanitizeComponent(value))
		i = closeIdx + 1
	}
	if firstErr != nil {
		return "", firstErr
	}
	return result.String(), nil
}
