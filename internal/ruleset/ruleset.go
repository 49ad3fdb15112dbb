// Package ruleset defines the data model for file-organization rulesets:
// the predicate-plus-action specification a user authors and the engine
// later executes against a source directory.
package ruleset

import (
	"fmt"
	"strings"
	"time"
)

// Action is the transfer operation a ruleset performs on matching files.
type Action string

const (
	ActionMove Action = "move"
	ActionCopy Action = "copy"
)

// MatchType selects how Filters.Filename.Pattern is interpreted.
type MatchType string

const (
	MatchGlob  MatchType = "glob"
	MatchRegex MatchType = "regex"
)

// FilenameFilter matches the final path component against Pattern.
type FilenameFilter struct {
	Pattern   string    `yaml:"pattern" json:"pattern"`
	MatchType MatchType `yaml:"match_type" json:"match_type"`
}

// DateTimeRange bounds a timestamp comparison; either edge may be absent,
// in which case it is open on that side.
type DateTimeRange struct {
	Start *time.Time `yaml:"start" json:"start"`
	End   *time.Time `yaml:"end" json:"end"`
}

// Filters is the composite AND predicate evaluated against each candidate
// file. At least one sub-filter must be set for a ruleset to validate.
type Filters struct {
	Extensions  []string        `yaml:"extensions" json:"extensions"`
	Filename    *FilenameFilter `yaml:"filename" json:"filename"`
	CreatedAt   *DateTimeRange  `yaml:"created_at" json:"created_at"`
	ModifiedAt  *DateTimeRange  `yaml:"modified_at" json:"modified_at"`
}

// HasAtLeastOne reports whether any sub-filter is configured. An
// extensions list present but empty does not count.
func (f Filters) HasAtLeastOne() bool {
	return len(f.Extensions) > 0 || f.Filename != nil || f.CreatedAt != nil || f.ModifiedAt != nil
}

// Ruleset is the user-authored specification: a predicate over files in
// SourceDir, plus the action to take on matches, routed to DestinationDir.
type Ruleset struct {
	ID              string  `yaml:"id" json:"id"`
	Name            string  `yaml:"name" json:"name"`
	Enabled         bool    `yaml:"enabled" json:"enabled"`
	SourceDir       string  `yaml:"source_dir" json:"source_dir"`
	DestinationDir  string  `yaml:"destination_dir" json:"destination_dir"`
	Action          Action  `yaml:"action" json:"action"`
	Overwrite       bool    `yaml:"overwrite" json:"overwrite"`
	Filters         Filters `yaml:"filters" json:"filters"`
}

// RulesetFile is the persisted envelope for a collection of rulesets.
// Ordering is user-meaningful and must be preserved on load/save.
type RulesetFile struct {
	Version  int       `yaml:"version" json:"version"`
	Rulesets []Ruleset `yaml:"rulesets" json:"rulesets"`
}

// templateVarPresent reports whether s contains at least one `{...}` token
// with a closing brace somewhere after the opening one.
func templateVarPresent(s string) bool {
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

// Validate checks the structural and semantic invariants a ruleset must
// satisfy before it can be saved or executed. It returns the first
// violation found.
func (r Ruleset) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(r.SourceDir) == "" {
		return fmt.Errorf("source_dir is required")
	}
	if strings.TrimSpace(r.DestinationDir) == "" {
		return fmt.Errorf("destination_dir is required")
	}
	if r.Action != ActionMove && r.Action != ActionCopy {
		return fmt.Errorf("action must be 'move' or 'copy'")
	}
	if !r.Filters.HasAtLeastOne() {
		return fmt.Errorf("at least one filter is required")
	}
	if r.Filters.Extensions != nil && len(r.Filters.Extensions) == 0 {
		return fmt.Errorf("extensions filter, if present, must not be empty")
	}
	if templateVarPresent(r.DestinationDir) {
		if r.Filters.Filename == nil || r.Filters.Filename.MatchType != MatchRegex {
			return fmt.Errorf("destination_dir contains template variables, which requires a filename filter with match_type=regex")
		}
	}
	if r.Filters.Filename != nil {
		if r.Filters.Filename.MatchType != MatchGlob && r.Filters.Filename.MatchType != MatchRegex {
			return fmt.Errorf("filename filter match_type must be 'glob' or 'regex'")
		}
	}
	return nil
}
