// Package command exposes the host command surface — get/save/delete/
// reorder rulesets, execute one or all, undo, import/export, list source
// files — as a thin adapter over the ruleset store, engine, and undo
// operation. It carries no interesting design of its own.
package command

import (
	"fmt"
	"os"
	"sort"

	"github.com/eddybean/filo/internal/engine"
	"github.com/eddybean/filo/internal/ruleset"
	"github.com/eddybean/filo/internal/rulesetstore"
	"github.com/eddybean/filo/internal/undo"
)

// UndoRequest is the original and current location of a previously
// transferred file, as recorded by the caller from an ExecutionResult.
type UndoRequest struct {
	SourcePath      string
	DestinationPath string
}

// UndoOutcome pairs an UndoRequest with the error (if any) from attempting
// to reverse it, so a batch undo can report per-item results without one
// failure aborting the rest.
type UndoOutcome struct {
	Request UndoRequest
	Err     error
}

// Commands wraps a ruleset Store and exposes the full host command
// surface described in the external interfaces section of the engine's
// governing design.
type Commands struct {
	store *rulesetstore.Store
}

// New returns a Commands adapter backed by the ruleset store at path.
func New(path string) *Commands {
	return &Commands{store: rulesetstore.New(path)}
}

// GetRulesets returns every stored ruleset in persisted order.
func (c *Commands) GetRulesets() ([]ruleset.Ruleset, error) {
	file, err := c.store.Get()
	if err != nil {
		return nil, err
	}
	return file.Rulesets, nil
}

// SaveRuleset validates and upserts r, assigning a fresh id when empty.
func (c *Commands) SaveRuleset(r ruleset.Ruleset) (string, error) {
	return c.store.SaveRuleset(r)
}

// DeleteRuleset removes the ruleset with the given id.
func (c *Commands) DeleteRuleset(id string) error {
	return c.store.DeleteRuleset(id)
}

// ReorderRulesets rewrites the persisted order to match ids.
func (c *Commands) ReorderRulesets(ids []string) error {
	return c.store.ReorderRulesets(ids)
}

func (c *Commands) findByID(id string) (ruleset.Ruleset, error) {
	file, err := c.store.Get()
	if err != nil {
		return ruleset.Ruleset{}, err
	}
	for _, r := range file.Rulesets {
		if r.ID == id {
			return r, nil
		}
	}
	return ruleset.Ruleset{}, fmt.Errorf("ruleset not found: %s", id)
}

// ExecuteRuleset runs the ruleset identified by id and returns its result.
// onProgress forwards the engine's throttled progress events; it may be
// nil.
func (c *Commands) ExecuteRuleset(id string, onProgress engine.ProgressFunc, cancel engine.CancelFlag) (engine.Result, error) {
	r, err := c.findByID(id)
	if err != nil {
		return engine.Result{}, err
	}
	return engine.ExecuteRuleset(r, onProgress, cancel), nil
}

// ExecuteAll runs every enabled ruleset, sequentially, in persisted order.
func (c *Commands) ExecuteAll(onProgress engine.ProgressFunc, cancel engine.CancelFlag) ([]engine.Result, error) {
	file, err := c.store.Get()
	if err != nil {
		return nil, err
	}
	results := make([]engine.Result, 0, len(file.Rulesets))
	for _, r := range file.Rulesets {
		if !r.Enabled {
			continue
		}
		results = append(results, engine.ExecuteRuleset(r, onProgress, cancel))
	}
	return results, nil
}

// UndoFile reverses a single transfer.
func (c *Commands) UndoFile(req UndoRequest) error {
	return undo.Undo(req.SourcePath, req.DestinationPath)
}

// UndoAll reverses each transfer in reqs independently; one failure does
// not prevent the rest from being attempted.
func (c *Commands) UndoAll(reqs []UndoRequest) []UndoOutcome {
	outcomes := make([]UndoOutcome, len(reqs))
	for i, req := range reqs {
		outcomes[i] = UndoOutcome{Request: req, Err: undo.Undo(req.SourcePath, req.DestinationPath)}
	}
	return outcomes
}

// ImportRulesets loads a RulesetFile from path and returns its rulesets,
// without merging them into the current store.
func (c *Commands) ImportRulesets(path string) ([]ruleset.Ruleset, error) {
	file, err := rulesetstore.Load(path)
	if err != nil {
		return nil, err
	}
	return file.Rulesets, nil
}

// ExportRulesets writes the current store's contents to path.
func (c *Commands) ExportRulesets(path string) error {
	file, err := c.store.Get()
	if err != nil {
		return err
	}
	return rulesetstore.Save(path, file)
}

// ListSourceFiles returns the sorted filenames of regular files directly
// inside dir (non-recursive, directories excluded).
func ListSourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing source directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
