package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subed/internal/subtitle"
)

// Open replaces the session with the entries decoded from path. On failure
// the session is left as it was.
func (s *Session) Open(path string) error {
	entries, err := subtitle.ReadFile(path)
	if err != nil {
		s.status.Set(fmt.Sprintf("Failed to open file: %v", errors.Unwrap(err)))
		s.logger.Warnw("Open failed", "path", path, "error", err)
		return &IOError{Op: "open", Path: path, Err: err}
	}

	s.mu.Lock()
	s.replaceLocked(entries, path, false)
	s.mu.Unlock()

	s.status.Set("Opened " + baseName(path))
	s.logger.Infow("Opened subtitle file", "path", path, "entries", len(entries))
	return nil
}

// AutoOpenFirstText looks for the first .txt file in dir and opens it in the
// background. The session is only replaced when that file yields at least
// one entry. The returned channel reports whether that happened and is then
// closed.
func (s *Session) AutoOpenFirstText(ctx context.Context, dir string) <-chan bool {
	done := make(chan bool, 1)
	go func() {
		defer close(done)
		done <- s.autoOpen(ctx, dir)
	}()
	return done
}

func (s *Session) autoOpen(ctx context.Context, dir string) bool {
	items, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Debugw("Auto-open scan failed", "dir", dir, "error", err)
		return false
	}

	var name string
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(item.Name()), ".txt") {
			name = item.Name()
			break
		}
	}
	if name == "" {
		return false
	}

	path := filepath.Join(dir, name)
	entries, err := subtitle.ReadFile(path)
	if err != nil {
		s.logger.Debugw("Auto-open read failed", "path", path, "error", err)
		return false
	}
	if len(entries) == 0 {
		return false
	}

	s.mu.Lock()
	if ctx.Err() != nil {
		s.mu.Unlock()
		return false
	}
	s.replaceLocked(entries, path, false)
	s.mu.Unlock()

	s.status.Set("Auto-opened " + name)
	s.logger.Infow("Auto-opened subtitle file", "path", path, "entries", len(entries))
	return true
}

// Save writes the entries back to the current file. Without a current file,
// or when the write fails, the returned error matches ErrNeedDestination and
// the caller should ask for a new path and call SaveAs.
func (s *Session) Save() error {
	s.mu.Lock()
	path := s.filePath
	if path == "" {
		s.mu.Unlock()
		s.status.Set("Choose where to save")
		return ErrNeedDestination
	}
	for i, e := range s.entries {
		if !subtitle.ValidTime(e.StartTime) || !subtitle.ValidTime(e.EndTime) {
			s.mu.Unlock()
			s.status.Set(fmt.Sprintf("Entry #%d has an invalid time, not saved", i+1))
			return fmt.Errorf("entry #%d: %w", i+1, ErrInvalidTime)
		}
		if !roundTrips(e) {
			s.mu.Unlock()
			s.status.Set(fmt.Sprintf("Entry #%d would not load back, not saved", i+1))
			return fmt.Errorf("entry #%d: %w", i+1, ErrInvalidEntry)
		}
	}
	data := subtitle.EncodeLines(s.entries)
	rev := s.rev
	s.mu.Unlock()

	if err := s.writeFile(path, []byte(data), 0644); err != nil {
		ioErr := &IOError{Op: "save", Path: path, Err: err}
		s.status.Set(fmt.Sprintf("Save failed: %v, choose another destination", err))
		s.logger.Warnw("Save failed", "path", path, "error", err)
		return fmt.Errorf("%w: %w", ErrNeedDestination, ioErr)
	}

	s.mu.Lock()
	if s.rev == rev && s.filePath == path {
		s.dirty = false
	}
	s.mu.Unlock()

	s.status.Set("Saved " + baseName(path))
	s.logger.Infow("Saved subtitle file", "path", path)
	return nil
}

// SaveAs makes path the current file and saves to it.
func (s *Session) SaveAs(path string) error {
	s.mu.Lock()
	s.filePath = path
	s.mu.Unlock()
	return s.Save()
}

func (s *Session) ExportJSON(path string) error {
	return s.export(path, subtitle.FormatJSON)
}

func (s *Session) ExportSRT(path string) error {
	return s.export(path, subtitle.FormatSRT)
}

// Export picks the format from the file extension. Unlike Save it never
// changes the current file or the dirty flag.
func (s *Session) Export(path string) error {
	return s.export(path, subtitle.FormatFromExtension(path))
}

func (s *Session) export(path string, format subtitle.Format) error {
	entries := s.Entries()

	data, err := subtitle.Marshal(format, entries)
	if err != nil {
		s.status.Set(fmt.Sprintf("Export failed: %v", err))
		return err
	}
	if err := s.writeFile(path, data, 0644); err != nil {
		s.status.Set(fmt.Sprintf("Export %s failed: %v", strings.ToUpper(string(format)), err))
		s.logger.Warnw("Export failed", "path", path, "format", format, "error", err)
		return &IOError{Op: "export", Path: path, Err: err}
	}

	s.status.Set(fmt.Sprintf("Exported %s: %s", strings.ToUpper(string(format)), baseName(path)))
	s.logger.Infow("Exported subtitles", "path", path, "format", format, "entries", len(entries))
	return nil
}

// roundTrips reports whether e reads back unchanged from its encoded line.
func roundTrips(e subtitle.Entry) bool {
	got, ok := subtitle.Decode(subtitle.Encode(e))
	return ok && got.VideoID == e.VideoID && got.StartTime == e.StartTime &&
		got.EndTime == e.EndTime && got.Content == e.Content && got.URL == e.URL
}
