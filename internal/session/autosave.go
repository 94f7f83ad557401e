package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/mgpai22/subed/internal/fileutil"
	"github.com/mgpai22/subed/internal/subtitle"
)

// Snapshot is the autosave sidecar document.
type Snapshot struct {
	CurrentFilePath *string          `json:"currentFilePath"`
	Subtitles       []subtitle.Entry `json:"subtitles"`
	Timestamp       string           `json:"timestamp"`
}

// SavedAt parses the snapshot timestamp.
func (s *Snapshot) SavedAt() (time.Time, error) {
	return time.Parse(time.RFC3339, s.Timestamp)
}

func (s *Session) AutosavePath() string {
	return s.autosavePath
}

// Autosave writes a snapshot when there are unsaved, non-empty changes. It
// does not clear the dirty flag.
func (s *Session) Autosave() (bool, error) {
	s.mu.Lock()
	if !s.dirty || len(s.entries) == 0 {
		s.mu.Unlock()
		return false, nil
	}
	snap := Snapshot{
		Subtitles: slices.Clone(s.entries),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if s.filePath != "" {
		path := s.filePath
		snap.CurrentFilePath = &path
	}
	s.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to marshal autosave: %w", err)
	}
	if err := s.writeFile(s.autosavePath, data, 0644); err != nil {
		return false, &IOError{Op: "autosave", Path: s.autosavePath, Err: err}
	}

	s.logger.Debugw("Autosaved", "path", s.autosavePath, "entries", len(snap.Subtitles))
	return true, nil
}

// StartAutosave runs Autosave every interval until ctx is done or the
// returned stop function is called. Failures are logged and otherwise
// ignored.
func (s *Session) StartAutosave(ctx context.Context, interval time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Autosave(); err != nil {
					s.logger.Warnw("Autosave failed", "error", err)
				}
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

func (s *Session) HasAutosave() bool {
	return fileutil.Exists(s.autosavePath)
}

// PeekAutosave reads the sidecar without touching the session.
func (s *Session) PeekAutosave() (*Snapshot, error) {
	data, err := os.ReadFile(s.autosavePath)
	if err != nil {
		return nil, &IOError{Op: "read autosave", Path: s.autosavePath, Err: err}
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse autosave: %w", err)
	}
	return &snap, nil
}

// RestoreAutosave loads the sidecar into the session and marks it dirty.
// A missing or unreadable sidecar is ignored and reported as false.
func (s *Session) RestoreAutosave() bool {
	snap, err := s.PeekAutosave()
	if err != nil {
		s.logger.Debugw("Autosave not restored", "path", s.autosavePath, "error", err)
		return false
	}

	var path string
	if snap.CurrentFilePath != nil {
		path = *snap.CurrentFilePath
	}
	entries := subtitle.EnsureIDs(snap.Subtitles)

	s.mu.Lock()
	s.replaceLocked(entries, path, true)
	s.mu.Unlock()

	s.status.Set("Restored autosave")
	s.logger.Infow("Restored autosave", "path", s.autosavePath, "entries", len(entries))
	return true
}

// DiscardAutosave removes the sidecar. A missing sidecar is not an error.
func (s *Session) DiscardAutosave() error {
	if err := os.Remove(s.autosavePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &IOError{Op: "discard autosave", Path: s.autosavePath, Err: err}
	}
	return nil
}
