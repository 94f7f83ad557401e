package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestOpenLineFile(t *testing.T) {
	content := "v1 00:00:01 00:00:02 hello world http://x\n" +
		"\n" +
		"garbage line without timing\n" +
		"v2 00:00:03 00:00:05 second line https://example.com/a\r\n"
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "subs.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	entries, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open file: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].VideoID != "v1" || entries[1].VideoID != "v2" {
		t.Errorf("order not preserved: %q, %q", entries[0].VideoID, entries[1].VideoID)
	}
	if entries[1].URL != "https://example.com/a" {
		t.Errorf("expected CR to be stripped from url, got %q", entries[1].URL)
	}
}

func TestOpenJSONFile(t *testing.T) {
	content := `[
  {"videoID": "v1", "startTime": "00:00:01", "endTime": "00:00:02", "content": "hi", "url": "http://x"},
  {"id": "2f1c8a4e-3b7d-4e55-9f0a-6c1d2e3f4a5b", "videoID": "v2", "startTime": "00:00:03", "endTime": "00:00:04", "content": "yo", "url": "http://y"}
]`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "subs.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	entries, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open file: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID == uuid.Nil {
		t.Error("expected missing id to be filled in")
	}
	if entries[1].ID.String() != "2f1c8a4e-3b7d-4e55-9f0a-6c1d2e3f4a5b" {
		t.Errorf("expected id to be kept, got %s", entries[1].ID)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("expected 'failed to read' in error, got: %v", err)
	}
}

func TestOpenSRTFile(t *testing.T) {
	tmpDir := t.TempDir()
	srtPath := filepath.Join(tmpDir, "test.srt")
	content := "1\n00:00:01,900 --> 00:00:02,000\nhello\nworld\n\n2\n00:01:00,000 --> 00:01:03,500\nbye\n"
	if err := os.WriteFile(srtPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	entries, err := Open(srtPath)
	if err != nil {
		t.Fatalf("failed to open file: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	d := DefaultDefaults()
	if entries[0].Content != "hello world" {
		t.Errorf("expected joined cue text, got %q", entries[0].Content)
	}
	if entries[0].StartTime != "00:00:01" || entries[1].EndTime != "00:01:03" {
		t.Errorf("unexpected times: %+v", entries)
	}
	if entries[0].VideoID != d.VideoID || entries[0].URL != d.URL {
		t.Errorf("expected defaults for video id and url, got %+v", entries[0])
	}
}

func TestReadFileIgnoresExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subs.srt")
	if err := os.WriteFile(path, []byte("v1 00:00:01 00:00:02 hi http://x"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	entries, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}
