package progress

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestTerminalProgressRendersBar(t *testing.T) {
	var buf bytes.Buffer
	tp := NewTerminalProgress()
	tp.SetWriter(&buf)

	tp.Start(4)
	tp.Update(2, "file.txt")
	tp.Finish()

	out := buf.String()
	if !strings.Contains(out, "2/4") {
		t.Fatalf("expected progress fraction in output, got %q", out)
	}
	if !strings.Contains(out, "Completed in") {
		t.Fatalf("expected completion message, got %q", out)
	}
}

func TestSilentProgressProducesNoOutput(t *testing.T) {
	var buf bytes.Buffer
	sp := NewSilentProgress()
	sp.SetWriter(&buf)

	sp.Start(10)
	sp.Update(5, "file.txt")
	sp.Finish()

	if buf.Len() != 0 {
		t.Fatalf("expected no output from silent progress, got %q", buf.String())
	}
}

func TestJSONProgressEmitsValidJSONLines(t *testing.T) {
	var buf bytes.Buffer
	jp := NewJSONProgress()
	jp.SetWriter(&buf)

	jp.Start(2)
	jp.Update(1, "a.txt")
	jp.Finish()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 JSON lines, got %d: %q", len(lines), buf.String())
	}

	var start Event
	if err := json.Unmarshal([]byte(lines[0]), &start); err != nil {
		t.Fatalf("invalid JSON for start event: %v", err)
	}
	if start.Type != "start" || start.Total != 2 {
		t.Fatalf("unexpected start event: %#v", start)
	}

	var progress Event
	if err := json.Unmarshal([]byte(lines[1]), &progress); err != nil {
		t.Fatalf("invalid JSON for progress event: %v", err)
	}
	if progress.Current != 1 || progress.Message != "a.txt" {
		t.Fatalf("unexpected progress event: %#v", progress)
	}

	var complete Event
	if err := json.Unmarshal([]byte(lines[2]), &complete); err != nil {
		t.Fatalf("invalid JSON for complete event: %v", err)
	}
	if complete.Type != "complete" || complete.Percentage != 100.0 {
		t.Fatalf("unexpected complete event: %#v", complete)
	}
}

func TestNewReporterSelectsImplementation(t *testing.T) {
	if _, ok := NewReporter(Options{Format: "json"}).(*JSONProgress); !ok {
		t.Fatal("expected json format to produce *JSONProgress")
	}
	if _, ok := NewReporter(Options{Format: "silent"}).(*SilentProgress); !ok {
		t.Fatal("expected silent format to produce *SilentProgress")
	}
	if _, ok := NewReporter(Options{Format: "human"}).(*TerminalProgress); !ok {
		t.Fatal("expected human format to produce *TerminalProgress")
	}
}

func TestAdapterDrivesReporterLifecycle(t *testing.T) {
	var buf bytes.Buffer
	jp := NewJSONProgress()
	jp.SetWriter(&buf)

	fn := Adapter(jp)
	fn("a.txt", 1, 2, 0)
	fn("b.txt", 2, 2, 1024)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected start+2 updates+finish = 4 lines, got %d: %q", len(lines), buf.String())
	}

	var second Event
	if err := json.Unmarshal([]byte(lines[2]), &second); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !strings.Contains(second.Message, "KB/s") {
		t.Fatalf("expected throughput in message, got %q", second.Message)
	}

	var finish Event
	if err := json.Unmarshal([]byte(lines[3]), &finish); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if finish.Type != "complete" {
		t.Fatalf("expected Adapter to call Finish once current reached total, got %#v", finish)
	}
}
