// Package session owns the editable subtitle list: ordering, selection, the
// dirty flag and the file it belongs to. Every read and write of that state
// goes through one mutex, so the editing surface and the autosave ticker can
// share a Session safely.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/google/uuid"

	"github.com/mgpai22/subed/internal/fileutil"
	"github.com/mgpai22/subed/internal/logging"
	"github.com/mgpai22/subed/internal/subtitle"
)

const (
	DefaultAutosavePath = "autosave.json"
	DefaultStatusDelay  = 3 * time.Second
	DefaultIdleMessage  = "Ready"
)

// Field names one editable attribute of an entry.
type Field int

const (
	FieldVideoID Field = iota
	FieldStart
	FieldEnd
	FieldContent
	FieldURL
)

var fieldNames = [...]string{"video id", "start", "end", "content", "url"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// IsTime reports whether the field holds an HH:MM:SS value.
func (f Field) IsTime() bool {
	return f == FieldStart || f == FieldEnd
}

// Direction for MoveSelected.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

type Options struct {
	Defaults     subtitle.Defaults
	AutosavePath string
	StatusDelay  time.Duration
	IdleMessage  string
	Logger       *logging.Logger
}

type Session struct {
	mu        sync.Mutex
	entries   []subtitle.Entry
	selection map[uuid.UUID]struct{}
	filePath  string
	dirty     bool
	// bumped on every change to entries so a save that raced an edit
	// leaves dirty set
	rev uint64

	defaults     subtitle.Defaults
	autosavePath string
	status       *Status
	logger       *logging.Logger
	writeFile    func(path string, data []byte, perm os.FileMode) error
}

func New(opts Options) *Session {
	if opts.Defaults == (subtitle.Defaults{}) {
		opts.Defaults = subtitle.DefaultDefaults()
	}
	if opts.AutosavePath == "" {
		opts.AutosavePath = DefaultAutosavePath
	}
	if opts.StatusDelay <= 0 {
		opts.StatusDelay = DefaultStatusDelay
	}
	if opts.IdleMessage == "" {
		opts.IdleMessage = DefaultIdleMessage
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	return &Session{
		selection:    make(map[uuid.UUID]struct{}),
		defaults:     opts.Defaults,
		autosavePath: opts.AutosavePath,
		status:       NewStatus(opts.IdleMessage, opts.StatusDelay),
		logger:       opts.Logger.With("component", "session"),
		writeFile:    fileutil.WriteFileAtomic,
	}
}

// Close stops the pending status reset.
func (s *Session) Close() {
	s.status.Stop()
}

func (s *Session) Status() *Status {
	return s.status
}

// Entries returns a copy of the current list.
func (s *Session) Entries() []subtitle.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Entry looks an entry up by id and reports its position.
func (s *Session) Entry(id uuid.UUID) (subtitle.Entry, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return subtitle.Entry{}, -1, false
	}
	return s.entries[i], i, true
}

func (s *Session) CurrentFilePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filePath
}

func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// SetModified sets the dirty flag directly.
func (s *Session) SetModified(flag bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = flag
	if flag {
		s.rev++
	}
}

// Insert adds a new entry at index; a negative or out of range index
// appends. The entry copies video id and url from its neighbour: after an
// existing entry it also starts where that entry ends and lasts one second.
func (s *Session) Insert(index int) subtitle.Entry {
	s.mu.Lock()

	n := len(s.entries)
	if index < 0 || index > n {
		index = n
	}

	entry := s.defaults.NewEntry()
	if n > 0 {
		if index > 0 {
			prev := s.entries[index-1]
			entry.VideoID = prev.VideoID
			entry.URL = prev.URL
			entry.StartTime = prev.EndTime
			entry.EndTime = subtitle.AdjustTime(entry.StartTime, 1)
		} else {
			next := s.entries[index]
			entry.VideoID = next.VideoID
			entry.URL = next.URL
		}
	}

	s.entries = slices.Insert(s.entries, index, entry)
	s.markDirtyLocked()
	s.mu.Unlock()

	s.status.Set(fmt.Sprintf("Added entry #%d", index+1))
	return entry
}

// DeleteSelected removes every selected entry and clears the selection.
func (s *Session) DeleteSelected() (int, error) {
	s.mu.Lock()
	if len(s.selection) == 0 {
		s.mu.Unlock()
		s.status.Set("Nothing selected")
		return 0, ErrNoSelection
	}

	before := len(s.entries)
	s.entries = slices.DeleteFunc(s.entries, func(e subtitle.Entry) bool {
		_, ok := s.selection[e.ID]
		return ok
	})
	removed := before - len(s.entries)
	clear(s.selection)
	if removed > 0 {
		s.markDirtyLocked()
	}
	s.mu.Unlock()

	s.status.Set("Deleted " + english.Plural(removed, "entry", "entries"))
	return removed, nil
}

// DeleteAt removes the entry at index if it exists.
func (s *Session) DeleteAt(index int) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.entries) {
		s.mu.Unlock()
		return false
	}
	removed := s.entries[index]
	s.entries = slices.Delete(s.entries, index, index+1)
	delete(s.selection, removed.ID)
	s.markDirtyLocked()
	s.mu.Unlock()

	s.status.Set(fmt.Sprintf("Deleted entry #%d", index+1))
	return true
}

// MoveSelected shifts every selected entry one position in dir. Nothing
// moves if any selected entry already sits at that end of the list.
func (s *Session) MoveSelected(dir Direction) (bool, error) {
	s.mu.Lock()
	indexes := s.selectedIndexesLocked()
	if len(indexes) == 0 {
		s.mu.Unlock()
		s.status.Set("Select entries to move first")
		return false, ErrNoSelection
	}

	switch dir {
	case Up:
		if indexes[0] == 0 {
			s.mu.Unlock()
			s.status.Set("Already at the top")
			return false, nil
		}
		for _, i := range indexes {
			s.entries[i], s.entries[i-1] = s.entries[i-1], s.entries[i]
		}
	case Down:
		if indexes[len(indexes)-1] == len(s.entries)-1 {
			s.mu.Unlock()
			s.status.Set("Already at the bottom")
			return false, nil
		}
		for k := len(indexes) - 1; k >= 0; k-- {
			i := indexes[k]
			s.entries[i], s.entries[i+1] = s.entries[i+1], s.entries[i]
		}
	default:
		s.mu.Unlock()
		return false, fmt.Errorf("unknown direction %d", int(dir))
	}
	s.markDirtyLocked()
	s.mu.Unlock()

	s.status.Set(fmt.Sprintf("Moved %s %s",
		english.Plural(len(indexes), "entry", "entries"), dir))
	return true, nil
}

// ToggleSelect updates the selection for a click on id. Additive clicks
// toggle membership; plain clicks select only id, or clear the selection
// when id was already the only selected entry.
func (s *Session) ToggleSelect(id uuid.UUID, additive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, selected := s.selection[id]
	if additive {
		if selected {
			delete(s.selection, id)
		} else {
			s.selection[id] = struct{}{}
		}
		return
	}

	if selected && len(s.selection) == 1 {
		clear(s.selection)
		return
	}
	clear(s.selection)
	s.selection[id] = struct{}{}
}

// SetSelection replaces the selection with ids.
func (s *Session) SetSelection(ids ...uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.selection)
	for _, id := range ids {
		s.selection[id] = struct{}{}
	}
}

func (s *Session) ClearSelection() {
	s.SetSelection()
}

func (s *Session) IsSelected(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selection[id]
	return ok
}

// Selection returns the selected ids, sorted for stable output.
func (s *Session) Selection() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(s.selection))
	for id := range s.selection {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	return ids
}

// EditField commits a single field change made by the editing surface and
// marks the session dirty.
func (s *Session) EditField(id uuid.UUID, field Field, value string) error {
	if subtitle.HasLineBreak(value) {
		return ErrInvalidValue
	}

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	if err := setField(&s.entries[i], field, value); err != nil {
		s.mu.Unlock()
		return err
	}
	s.markDirtyLocked()
	s.mu.Unlock()

	s.status.Set(fmt.Sprintf("Updated %s of entry #%d", field, i+1))
	return nil
}

// AdjustField moves the start or end time of an entry by delta seconds.
func (s *Session) AdjustField(id uuid.UUID, field Field, delta int) error {
	if !field.IsTime() {
		return fmt.Errorf("cannot adjust %s: not a time field", field)
	}

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	e := &s.entries[i]
	if field == FieldStart {
		e.StartTime = subtitle.AdjustTime(e.StartTime, delta)
	} else {
		e.EndTime = subtitle.AdjustTime(e.EndTime, delta)
	}
	s.markDirtyLocked()
	s.mu.Unlock()

	s.status.Set(fmt.Sprintf("Shifted %s of entry #%d by %+ds", field, i+1, delta))
	return nil
}

func setField(e *subtitle.Entry, field Field, value string) error {
	switch field {
	case FieldVideoID:
		e.VideoID = value
	case FieldStart:
		e.StartTime = value
	case FieldEnd:
		e.EndTime = value
	case FieldContent:
		e.Content = value
	case FieldURL:
		e.URL = value
	default:
		return fmt.Errorf("unknown field %s", field)
	}
	return nil
}

func (s *Session) markDirtyLocked() {
	s.dirty = true
	s.rev++
}

// replaceLocked swaps in a whole new list, as open and restore do.
func (s *Session) replaceLocked(entries []subtitle.Entry, path string, dirty bool) {
	s.entries = entries
	s.filePath = path
	s.dirty = dirty
	s.rev++
	clear(s.selection)
}

func (s *Session) indexLocked(id uuid.UUID) int {
	return slices.IndexFunc(s.entries, func(e subtitle.Entry) bool {
		return e.ID == id
	})
}

func (s *Session) selectedIndexesLocked() []int {
	var indexes []int
	for i, e := range s.entries {
		if _, ok := s.selection[e.ID]; ok {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

func baseName(path string) string {
	return filepath.Base(path)
}
