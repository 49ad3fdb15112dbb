// Package progress renders engine.ProgressFunc events to a terminal bar, a
// newline-delimited JSON stream, or nowhere at all, depending on how the
// CLI was invoked.
package progress

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/eddybean/filo/internal/engine"
)

// Reporter defines the interface for progress reporting
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
	SetWriter(w io.Writer)
}

// Adapter wraps a Reporter as an engine.ProgressFunc, calling Start on the
// first event, Update on every event, and Finish once current reaches
// total. total is fixed across a single ruleset run, so this is safe even
// though engine.ProgressFunc carries it on every call rather than once.
func Adapter(r Reporter) engine.ProgressFunc {
	started := false
	return func(filename string, current, total int, bytesPerSecond float64) {
		if !started {
			r.Start(total)
			started = true
		}
		message := filename
		if bytesPerSecond > 0 {
			message = fmt.Sprintf("%s (%.1f KB/s)", filename, bytesPerSecond/1024)
		}
		r.Update(current, message)
		if current >= total {
			r.Finish()
		}
	}
}

// TerminalProgress implements progress reporting for terminal output
type TerminalProgress struct {
	total     int
	current   int
	startTime time.Time
	writer    io.Writer
	width     int
	lastLine  string
}

// NewTerminalProgress creates a new terminal progress reporter
func NewTerminalProgress() *TerminalProgress {
	return &TerminalProgress{
		writer: os.Stdout,
		width:  50,
	}
}

// Start initializes the progress reporter
func (tp *TerminalProgress) Start(total int) {
	tp.total = total
	tp.current = 0
	tp.startTime = time.Now()
	tp.render("Starting...")
}

// Update updates the progress with current count and message
func (tp *TerminalProgress) Update(current int, message string) {
	tp.current = current
	tp.render(message)
}

// Finish completes the progress reporting
func (tp *TerminalProgress) Finish() {
	tp.current = tp.total
	elapsed := time.Since(tp.startTime)
	tp.render(fmt.Sprintf("Completed in %s", elapsed.Round(time.Millisecond)))
	fmt.Fprintln(tp.writer)
}

// SetWriter sets the output writer
func (tp *TerminalProgress) SetWriter(w io.Writer) {
	tp.writer = w
}

// render draws the progress bar
func (tp *TerminalProgress) render(message string) {
	if tp.total == 0 {
		return
	}

	percentage := float64(tp.current) / float64(tp.total)
	filled := int(float64(tp.width) * percentage)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", tp.width-filled)

	eta := ""
	if tp.current > 0 {
		elapsed := time.Since(tp.startTime)
		rate := float64(tp.current) / elapsed.Seconds()
		remaining := tp.total - tp.current
		if rate > 0 {
			etaSeconds := float64(remaining) / rate
			eta = fmt.Sprintf(" ETA: %s", time.Duration(etaSeconds*float64(time.Second)).Round(time.Second))
		}
	}

	line := fmt.Sprintf("\r[%s] %d/%d (%.1f%%)%s - %s",
		bar, tp.current, tp.total, percentage*100, eta, message)

	if len(tp.lastLine) > len(line) {
		fmt.Fprint(tp.writer, "\r"+strings.Repeat(" ", len(tp.lastLine))+"\r")
	}

	fmt.Fprint(tp.writer, line)
	tp.lastLine = line
}

// SilentProgress implements a no-op progress reporter, used with --quiet.
type SilentProgress struct{}

// NewSilentProgress creates a new silent progress reporter
func NewSilentProgress() *SilentProgress {
	return &SilentProgress{}
}

func (sp *SilentProgress) Start(total int)                {}
func (sp *SilentProgress) Update(current int, msg string) {}
func (sp *SilentProgress) Finish()                        {}
func (sp *SilentProgress) SetWriter(w io.Writer)          {}

// JSONProgress implements newline-delimited JSON progress reporting, for
// hosts that drive filo as a subprocess rather than a terminal.
type JSONProgress struct {
	writer    io.Writer
	startTime time.Time
	total     int
}

// Event represents a progress event in JSON format
type Event struct {
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	Current    int       `json:"current"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
	Message    string    `json:"message"`
	Elapsed    string    `json:"elapsed,omitempty"`
}

// NewJSONProgress creates a new JSON progress reporter
func NewJSONProgress() *JSONProgress {
	return &JSONProgress{
		writer: os.Stdout,
	}
}

// Start initializes JSON progress reporting
func (jp *JSONProgress) Start(total int) {
	jp.total = total
	jp.startTime = time.Now()
	jp.emit(Event{
		Type:      "start",
		Timestamp: jp.startTime,
		Total:     total,
		Message:   "Starting operation",
	})
}

// Update emits a progress update event
func (jp *JSONProgress) Update(current int, message string) {
	percentage := 0.0
	if jp.total > 0 {
		percentage = float64(current) / float64(jp.total) * 100
	}
	jp.emit(Event{
		Type:       "progress",
		Timestamp:  time.Now(),
		Current:    current,
		Total:      jp.total,
		Percentage: percentage,
		Message:    message,
		Elapsed:    time.Since(jp.startTime).String(),
	})
}

// Finish emits the completion event
func (jp *JSONProgress) Finish() {
	elapsed := time.Since(jp.startTime)
	jp.emit(Event{
		Type:       "complete",
		Timestamp:  time.Now(),
		Current:    jp.total,
		Total:      jp.total,
		Percentage: 100.0,
		Message:    "Operation completed",
		Elapsed:    elapsed.String(),
	})
}

// SetWriter sets the output writer
func (jp *JSONProgress) SetWriter(w io.Writer) {
	jp.writer = w
}

// emit writes a progress event as a single line of JSON.
func (jp *JSONProgress) emit(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		fmt.Fprintf(jp.writer, `{"type":"error","message":%q}`+"\n", err.Error())
		return
	}
	jp.writer.Write(append(data, '\n'))
}

// Options configures progress reporting
type Options struct {
	Format string // "human", "json", or "silent"
	Writer io.Writer
	Width  int
}

// NewReporter creates a progress reporter based on options
func NewReporter(opts Options) Reporter {
	switch opts.Format {
	case "json":
		reporter := NewJSONProgress()
		if opts.Writer != nil {
			reporter.SetWriter(opts.Writer)
		}
		return reporter
	case "silent":
		return NewSilentProgress()
	default:
		reporter := NewTerminalProgress()
		if opts.Writer != nil {
			reporter.SetWriter(opts.Writer)
		}
		if opts.Width > 0 {
			reporter.width = opts.Width
		}
		return reporter
	}
}
