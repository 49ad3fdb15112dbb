// Package rulesetstore persists the RulesetFile envelope to YAML and keeps
// a single-writer-guarded in-memory cache of it in each Store. There is no
// package-level instance; callers construct a Store with New and share it.
package rulesetstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/eddybean/filo/internal/ruleset"
)

// DefaultPath returns <user-config-dir>/filo/rulesets/filo-rules.yaml,
// falling back to the current directory if the host exposes no config
// directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "filo", "rulesets", "filo-rules.yaml")
}

// Load reads a RulesetFile from path. A missing file is not an error: it
// yields an empty version-1 envelope, matching a fresh install.
func Load(path string) (ruleset.RulesetFile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ruleset.RulesetFile{Version: 1, Rulesets: []ruleset.Ruleset{}}, nil
	}
	if err != nil {
		return ruleset.RulesetFile{}, fmt.Errorf("reading ruleset file: %w", err)
	}
	var file ruleset.RulesetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return ruleset.RulesetFile{}, fmt.Errorf("parsing ruleset file: %w", err)
	}
	return file, nil
}

// Save rewrites path in full with file's current contents, creating parent
// directories as needed.
func Save(path string, file ruleset.RulesetFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ruleset directory: %w", err)
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encoding ruleset file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing ruleset file: %w", err)
	}
	return nil
}

// Store is a lazily-initialized, mutex-guarded cache over a single
// RulesetFile on disk. All mutations go through a critical section and are
// flushed to disk immediately. Two Stores bound to the same path keep
// separate caches.
type Store struct {
	mu      sync.Mutex
	path    string
	loaded  bool
	file    ruleset.RulesetFile
	loadErr error
}

// New returns a Store bound to path. Nothing is read from disk until the
// first operation.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) ensureLoaded() error {
	if s.loaded {
		return s.loadErr
	}
	s.file, s.loadErr = Load(s.path)
	s.loaded = true
	return s.loadErr
}

// Get returns a copy of the current in-memory RulesetFile, loading it from
// disk first if this is the first access.
func (s *Store) Get() (ruleset.RulesetFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return ruleset.RulesetFile{}, err
	}
	return s.file, nil
}

// update applies mutate to the cached file under the lock, then persists
// the result to disk before releasing it.
func (s *Store) update(mutate func(*ruleset.RulesetFile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	mutate(&s.file)
	return Save(s.path, s.file)
}

// SaveRuleset validates r, assigns it a fresh UUIDv4 if it has no id, and
// upserts it into the store by id. Returns the (possibly newly assigned)
// id.
func (s *Store) SaveRuleset(r ruleset.Ruleset) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	err := s.update(func(f *ruleset.RulesetFile) {
		for i, existing := range f.Rulesets {
			if existing.ID == r.ID {
				f.Rulesets[i] = r
				return
			}
		}
		f.Rulesets = append(f.Rulesets, r)
	})
	if err != nil {
		return "", err
	}
	return r.ID, nil
}

// DeleteRuleset removes the ruleset with the given id, if present.
func (s *Store) DeleteRuleset(id string) error {
	return s.update(func(f *ruleset.RulesetFile) {
		kept := f.Rulesets[:0]
		for _, r := range f.Rulesets {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		f.Rulesets = kept
	})
}

// ReorderRulesets rebuilds the stored order to match ids. Ids not found in
// the current store are silently dropped from the new order.
func (s *Store) ReorderRulesets(ids []string) error {
	return s.update(func(f *ruleset.RulesetFile) {
		byID := make(map[string]ruleset.Ruleset, len(f.Rulesets))
		for _, r := range f.Rulesets {
			byID[r.ID] = r
		}
		reordered := make([]ruleset.Ruleset, 0, len(ids))
		for _, id := range ids {
			if r, ok := byID[id]; ok {
				reordered = append(reordered, r)
			}
		}
		f.Rulesets = reordered
	})
}
