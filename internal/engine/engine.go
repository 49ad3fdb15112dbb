// Package engine drives the execution of a single ruleset: enumerating
// candidate files in its source directory, routing each through the filter
// and template resolver, performing the transfer, and assembling a
// structured result that later supports undo.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"golang.org/x/time/rate"

	"github.com/eddybean/filo/internal/filter"
	"github.com/eddybean/filo/internal/ruleset"
	"github.com/eddybean/filo/internal/transfer"
	"github.com/eddybean/filo/pkg/template"
)

// Status is the terminal outcome of an execution.
type Status string

const (
	StatusCompleted      Status = "completed"
	StatusPartialFailure Status = "partial_failure"
	StatusFailed         Status = "failed"
)

// FileResult records the outcome for a single candidate file.
type FileResult struct {
	Filename        string  `json:"filename"`
	SourcePath      string  `json:"source_path"`
	DestinationPath *string `json:"destination_path"`
	Reason          *string `json:"reason,omitempty"`
}

// Result is the structured outcome of one ExecuteRuleset call.
type Result struct {
	RulesetID   string         `json:"ruleset_id"`
	RulesetName string         `json:"ruleset_name"`
	Action      ruleset.Action `json:"action"`
	Status      Status         `json:"status"`
	Succeeded   []FileResult   `json:"succeeded"`
	Skipped     []FileResult   `json:"skipped"`
	Errors      []FileResult   `json:"errors"`
}

// ProgressFunc receives a throttled progress update: the file about to be
// processed, its 1-based position, total candidate count, and the running
// transfer rate in bytes per second.
type ProgressFunc func(filename string, current, total int, bytesPerSecond float64)

// CancelFlag is read, never written, by the engine. Callers flip it from
// whatever goroutine observes a cancellation request (e.g. a signal
// handler); the engine checks it once per file, between files.
type CancelFlag interface {
	Load() bool
}

type pendingFile struct {
	path     string
	filename string
	size     int64
}

func newFileResult(filename, sourcePath string, dest *string, reason *string) FileResult {
	return FileResult{Filename: filename, SourcePath: sourcePath, DestinationPath: dest, Reason: reason}
}

func reasonPtr(s string) *string { return &s }
func pathPtr(s string) *string   { return &s }

// ExecuteRuleset runs r to completion (or until cancelled) and returns the
// assembled result. onProgress and cancel may be nil, in which case
// progress is not reported and cancellation is never observed.
func ExecuteRuleset(r ruleset.Ruleset, onProgress ProgressFunc, cancel CancelFlag) Result {
	result := Result{RulesetID: r.ID, RulesetName: r.Name, Action: r.Action}

	fail := func(reason string) Result {
		result.Status = StatusFailed
		result.Errors = []FileResult{newFileResult("", r.SourceDir, nil, reasonPtr(reason))}
		return result
	}

	if _, err := os.Stat(r.SourceDir); err != nil {
		return fail(fmt.Sprintf("source directory unavailable: %v", err))
	}

	useTemplate := template.HasTemplateVars(r.DestinationDir)
	if !useTemplate {
		if err := os.MkdirAll(r.DestinationDir, 0o755); err != nil {
			return fail(fmt.Sprintf("could not create destination directory: %v", err))
		}
	}

	entries, err := os.ReadDir(r.SourceDir)
	if err != nil {
		return fail(fmt.Sprintf("could not list source directory: %v", err))
	}

	var filenameRegex *regexp.Regexp
	if useTemplate {
		// Invariant #3 guarantees a regex filename filter exists whenever
		// the destination contains template variables.
		filenameRegex, err = regexp.Compile(r.Filters.Filename.Pattern)
		if err != nil {
			return fail(fmt.Sprintf("invalid filename regex: %v", err))
		}
	}

	pending := make([]pendingFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(r.SourceDir, entry.Name())
		info, statErr := entry.Info()
		if statErr != nil {
			result.Errors = append(result.Errors, newFileResult(entry.Name(), path, nil,
				reasonPtr(fmt.Sprintf("could not read file metadata: %v", statErr))))
			continue
		}
		if !filter.Matches(path, info, r.Filters) {
			continue
		}
		pending = append(pending, pendingFile{path: path, filename: entry.Name(), size: info.Size()})
	}

	processPending(&result, r, pending, useTemplate, filenameRegex, onProgress, cancel)

	result.Status = deriveStatus(result)
	return result
}

func processPending(
	result *Result,
	r ruleset.Ruleset,
	pending []pendingFile,
	useTemplate bool,
	filenameRegex *regexp.Regexp,
	onProgress ProgressFunc,
	cancel CancelFlag,
) {
	total := len(pending)
	if total == 0 {
		return
	}

	createdDirs := make(map[string]bool)
	// limiter enforces the "at least 100ms between emissions" half of the
	// throttle contract; the first/last-iteration overrides below cover the
	// cases a plain token bucket cannot guarantee on its own.
	limiter := rate.NewLimiter(rate.Every(100*time.Millisecond), 1)
	start := time.Now()
	var bytesTransferred int64

	for i, pf := range pending {
		elapsed := time.Since(start).Seconds()
		bps := 0.0
		if elapsed > 0 {
			bps = float64(bytesTransferred) / elapsed
		}

		isFirst := i == 0
		isLast := i+1 == total
		// Allow is consulted on every iteration so that the first emission
		// also spends the token and the next one waits out the window.
		allowed := limiter.Allow()
		shouldEmit := isFirst || isLast || allowed
		if onProgress != nil && shouldEmit {
			onProgress(pf.filename, i+1, total, bps)
		}

		processOne(result, r, pf, useTemplate, filenameRegex, createdDirs, &bytesTransferred)

		if cancel != nil && cancel.Load() {
			for _, remaining := range pending[i+1:] {
				result.Skipped = append(result.Skipped, newFileResult(
					remaining.filename, remaining.path, nil, reasonPtr("Cancelled by user")))
			}
			return
		}
	}
}

func processOne(
	result *Result,
	r ruleset.Ruleset,
	pf pendingFile,
	useTemplate bool,
	filenameRegex *regexp.Regexp,
	createdDirs map[string]bool,
	bytesTransferred *int64,
) {
	resolvedDir := r.DestinationDir
	if useTemplate {
		captures := filter.ExtractNamedCaptures(pf.filename, filenameRegex)
		dir, err := template.Resolve(r.DestinationDir, captures)
		if err != nil {
			result.Skipped = append(result.Skipped, newFileResult(pf.filename, pf.path, nil, reasonPtr(err.Error())))
			return
		}
		resolvedDir = dir
	}

	if useTemplate && !createdDirs[resolvedDir] {
		if err := os.MkdirAll(resolvedDir, 0o755); err != nil {
			result.Errors = append(result.Errors, newFileResult(pf.filename, pf.path, nil,
				reasonPtr(fmt.Sprintf("could not create destination directory: %v", err))))
			return
		}
		createdDirs[resolvedDir] = true
	}

	destPath := filepath.Join(resolvedDir, pf.filename)
	if _, err := os.Stat(destPath); err == nil && !r.Overwrite {
		result.Skipped = append(result.Skipped, newFileResult(pf.filename, pf.path, pathPtr(destPath),
			reasonPtr("File with same name exists at destination")))
		return
	}

	var transferErr error
	switch r.Action {
	case ruleset.ActionMove:
		transferErr = transfer.MoveFile(pf.path, destPath, pf.size)
	case ruleset.ActionCopy:
		transferErr = transfer.CopyAndVerify(pf.path, destPath, pf.size)
	default:
		transferErr = fmt.Errorf("unknown action %q", r.Action)
	}

	if transferErr != nil {
		result.Errors = append(result.Errors, newFileResult(pf.filename, pf.path, pathPtr(destPath),
			reasonPtr(transfer.ClassifyError(transferErr))))
		return
	}

	*bytesTransferred += pf.size
	result.Succeeded = append(result.Succeeded, newFileResult(pf.filename, pf.path, pathPtr(destPath), nil))
}

func deriveStatus(result Result) Status {
	if len(result.Errors) == 0 {
		return StatusCompleted
	}
	if len(result.Succeeded) == 0 {
		return StatusFailed
	}
	return StatusPartialFailure
}
