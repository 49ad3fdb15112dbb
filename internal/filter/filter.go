// Package filter evaluates the composite predicate a ruleset attaches to
// candidate files, and extracts named regex captures used by the template
// resolver to route matched files.
package filter

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/eddybean/filo/internal/ruleset"
)

// Matches reports whether path (with stat info) satisfies every configured
// sub-filter in filters. Sub-filters are combined with AND and short-circuit
// on the first failure. A malformed glob/regex pattern, or metadata the
// host cannot provide, counts as a non-match rather than an error.
func Matches(path string, info os.FileInfo, filters ruleset.Filters) bool {
	if len(filters.Extensions) > 0 && !matchExtensions(path, filters.Extensions) {
		return false
	}
	if filters.Filename != nil && !matchFilename(path, *filters.Filename) {
		return false
	}
	if filters.CreatedAt != nil {
		t, ok := createdAt(info)
		if !ok || !inRange(t, *filters.CreatedAt) {
			return false
		}
	}
	if filters.ModifiedAt != nil {
		if !inRange(info.ModTime(), *filters.ModifiedAt) {
			return false
		}
	}
	return true
}

func matchExtensions(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	ext = strings.ToLower(ext)
	for _, candidate := range extensions {
		if strings.ToLower(candidate) == ext {
			return true
		}
	}
	return false
}

func matchFilename(path string, f ruleset.FilenameFilter) bool {
	name := filepath.Base(path)
	switch f.MatchType {
	case ruleset.MatchGlob:
		ok, err := filepath.Match(f.Pattern, name)
		if err != nil {
			return false
		}
		return ok
	case ruleset.MatchRegex:
		re, err := regexp.Compile(f.Pattern)
		if err != nil {
			return false
		}
		return re.MatchString(name)
	default:
		return false
	}
}

func inRange(t time.Time, r ruleset.DateTimeRange) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}
