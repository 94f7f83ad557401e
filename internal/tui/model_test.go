package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgpai22/subed/internal/session"
)

const sampleLines = "a 00:00:01 00:00:02 first http://x/a\n" +
	"b 00:00:03 00:00:04 second http://x/b\n" +
	"c 00:00:05 00:00:06 third http://x/c"

func newTestModel(t *testing.T) (Model, *session.Session) {
	t.Helper()
	s := session.New(session.Options{
		AutosavePath: filepath.Join(t.TempDir(), "autosave.json"),
	})
	t.Cleanup(s.Close)
	return New(Options{Session: s}), s
}

func openSample(t *testing.T, s *session.Session) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subs.txt")
	if err := os.WriteFile(path, []byte(sampleLines), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if err := s.Open(path); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return path
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press feeds keys to the model and returns the command of the last one.
func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func TestAppendOnEmptySession(t *testing.T) {
	m, s := newTestModel(t)

	m, _ = press(t, m, "a")
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", s.Len())
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor on new entry, got %d", m.cursor)
	}
	if !s.Dirty() {
		t.Error("expected session to be dirty")
	}
}

func TestAppendAfterCursor(t *testing.T) {
	m, s := newTestModel(t)
	openSample(t, s)

	m, _ = press(t, m, "j", "a")
	if s.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", s.Len())
	}
	if m.cursor != 2 {
		t.Errorf("expected cursor at 2, got %d", m.cursor)
	}
	e := s.Entries()[2]
	if e.VideoID != "b" || e.StartTime != "00:00:04" || e.EndTime != "00:00:05" {
		t.Errorf("unexpected inserted entry: %+v", e)
	}
}

func TestCursorStaysInRange(t *testing.T) {
	m, s := newTestModel(t)
	openSample(t, s)

	m, _ = press(t, m, "k", "k")
	if m.cursor != 0 {
		t.Errorf("expected cursor 0, got %d", m.cursor)
	}
	m, _ = press(t, m, "j", "j", "j", "j")
	if m.cursor != 2 {
		t.Errorf("expected cursor 2, got %d", m.cursor)
	}

	m, _ = press(t, m, "x")
	if s.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Len())
	}
	if m.cursor != 1 {
		t.Errorf("expected cursor to follow the shrinking list, got %d", m.cursor)
	}
}

func TestEditField(t *testing.T) {
	m, s := newTestModel(t)
	openSample(t, s)

	m, _ = press(t, m, "e")
	if m.mode != modeEdit {
		t.Fatal("expected edit mode")
	}
	if m.input.Value() != "first" {
		t.Errorf("expected input prefilled with content, got %q", m.input.Value())
	}

	// keys typed while editing must not trigger commands
	m, _ = press(t, m, "q")
	if m.mode != modeEdit {
		t.Fatal("expected to stay in edit mode")
	}

	m.input.SetValue("changed")
	m, _ = press(t, m, "enter")
	if m.mode != modeNormal {
		t.Fatal("expected normal mode after commit")
	}
	if got := s.Entries()[0].Content; got != "changed" {
		t.Errorf("expected content to change, got %q", got)
	}
}

func TestEditCancel(t *testing.T) {
	m, s := newTestModel(t)
	openSample(t, s)

	m, _ = press(t, m, "e")
	m.input.SetValue("discarded")
	m, _ = press(t, m, "esc")
	if m.mode != modeNormal {
		t.Fatal("expected normal mode after cancel")
	}
	if got := s.Entries()[0].Content; got != "first" {
		t.Errorf("expected content unchanged, got %q", got)
	}
	if s.Dirty() {
		t.Error("expected session to stay clean")
	}
}

func TestAdjustTime(t *testing.T) {
	m, s := newTestModel(t)
	openSample(t, s)

	m, _ = press(t, m, "+")
	if got := s.Entries()[0].StartTime; got != "00:00:01" {
		t.Errorf("expected no change on content column, got %q", got)
	}

	// content -> url -> video id -> start
	m, _ = press(t, m, "tab", "tab", "tab", "+", "+")
	if m.field != session.FieldStart {
		t.Fatalf("expected start column, got %s", m.field)
	}
	if got := s.Entries()[0].StartTime; got != "00:00:03" {
		t.Errorf("expected start 00:00:03, got %q", got)
	}

	press(t, m, "-", "-", "-", "-", "-")
	if got := s.Entries()[0].StartTime; got != "00:00:00" {
		t.Errorf("expected start clamped to 00:00:00, got %q", got)
	}
}

func TestSelectAndMove(t *testing.T) {
	m, s := newTestModel(t)
	openSample(t, s)

	m, _ = press(t, m, "enter", "J")
	if got := s.Entries()[1].Content; got != "first" {
		t.Fatalf("expected first entry to move down, got %q", got)
	}
	if m.cursor != 1 {
		t.Errorf("expected cursor to follow the moved entry, got %d", m.cursor)
	}

	m, _ = press(t, m, "j", " ", "D")
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry left, got %d", s.Len())
	}
	if got := s.Entries()[0].Content; got != "second" {
		t.Errorf("unexpected remaining entry %q", got)
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor 0, got %d", m.cursor)
	}
}

func TestSaveWithoutPathPromptsForDestination(t *testing.T) {
	m, s := newTestModel(t)
	m, _ = press(t, m, "a")

	m, cmd := press(t, m, "ctrl+s")
	m = run(t, m, cmd)
	if m.mode != modePrompt || m.prompt != opSaveAs {
		t.Fatalf("expected save as prompt, got mode %d prompt %s", m.mode, m.prompt)
	}

	path := filepath.Join(t.TempDir(), "out.txt")
	m.input.SetValue(path)
	m, cmd = press(t, m, "enter")
	m = run(t, m, cmd)

	if m.mode != modeNormal {
		t.Errorf("expected normal mode, got %d", m.mode)
	}
	if s.Dirty() {
		t.Error("expected session to be clean after save")
	}
	if s.CurrentFilePath() != path {
		t.Errorf("expected current file %q, got %q", path, s.CurrentFilePath())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if !strings.Contains(string(data), "新字幕") {
		t.Errorf("expected default content in saved file, got %q", data)
	}
}

func TestExportPrompt(t *testing.T) {
	m, s := newTestModel(t)
	src := openSample(t, s)

	m, _ = press(t, m, "X")
	if m.input.Value() != strings.TrimSuffix(src, ".txt")+".json" {
		t.Errorf("unexpected default export path %q", m.input.Value())
	}

	out := filepath.Join(t.TempDir(), "out.srt")
	m.input.SetValue(out)
	m, cmd := press(t, m, "enter")
	run(t, m, cmd)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "1\n00:00:01,000 --> 00:00:02,000\nfirst\n") {
		t.Errorf("unexpected SRT output %q", data)
	}
	if s.CurrentFilePath() != src {
		t.Errorf("export changed the current file to %q", s.CurrentFilePath())
	}
}

func TestOpenPrompt(t *testing.T) {
	m, s := newTestModel(t)
	path := filepath.Join(t.TempDir(), "subs.txt")
	if err := os.WriteFile(path, []byte(sampleLines), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	m, _ = press(t, m, "ctrl+o")
	if m.mode != modePrompt || m.prompt != opOpen {
		t.Fatal("expected open prompt")
	}
	m.input.SetValue(path)
	m, cmd := press(t, m, "enter")
	run(t, m, cmd)

	if s.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", s.Len())
	}
}

func TestPromptCancel(t *testing.T) {
	m, s := newTestModel(t)

	m, _ = press(t, m, "S", "esc")
	if m.mode != modeNormal {
		t.Fatal("expected normal mode")
	}
	if s.Status().Current() != "Cancelled" {
		t.Errorf("unexpected status %q", s.Status().Current())
	}
}

func TestQuitNeedsConfirmationWhenDirty(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, "a")
	m, cmd := press(t, m, "q")
	if cmd != nil {
		t.Fatal("expected first q to only warn")
	}
	_, cmd = press(t, m, "q")
	if cmd == nil {
		t.Fatal("expected second q to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected a quit message")
	}
}

func TestQuitWhenClean(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected a quit message")
	}
}

func TestRestorePrompt(t *testing.T) {
	autosave := filepath.Join(t.TempDir(), "autosave.json")

	first := session.New(session.Options{AutosavePath: autosave})
	defer first.Close()
	first.Insert(0)
	first.Insert(1)
	if _, err := first.Autosave(); err != nil {
		t.Fatalf("Autosave failed: %v", err)
	}

	s := session.New(session.Options{AutosavePath: autosave})
	defer s.Close()
	snap, err := s.PeekAutosave()
	if err != nil {
		t.Fatalf("PeekAutosave failed: %v", err)
	}

	m := New(Options{Session: s, Restore: snap})
	if !strings.Contains(m.View(), "An autosave of 2 entries") {
		t.Errorf("unexpected restore view:\n%s", m.View())
	}

	m, _ = press(t, m, "y")
	if m.mode != modeNormal {
		t.Fatal("expected normal mode after restore")
	}
	if s.Len() != 2 || !s.Dirty() {
		t.Errorf("expected 2 restored dirty entries, got %d dirty=%v", s.Len(), s.Dirty())
	}
}

func TestRestoreDiscard(t *testing.T) {
	m, s := newTestModel(t)
	if err := os.WriteFile(s.AutosavePath(), []byte(`{"subtitles":[],"timestamp":""}`), 0644); err != nil {
		t.Fatalf("failed to write autosave: %v", err)
	}
	snap, err := s.PeekAutosave()
	if err != nil {
		t.Fatalf("PeekAutosave failed: %v", err)
	}

	m = New(Options{Session: s, Restore: snap})
	if !strings.Contains(m.View(), "unknown time") {
		t.Errorf("expected unknown age in view:\n%s", m.View())
	}
	m, _ = press(t, m, "d")
	if m.mode != modeNormal {
		t.Fatal("expected normal mode")
	}
	if s.HasAutosave() {
		t.Error("expected autosave to be removed")
	}
}

func TestAutoOpenOnInit(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "subs.txt"), []byte(sampleLines), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	s := session.New(session.Options{AutosavePath: filepath.Join(t.TempDir(), "autosave.json")})
	defer s.Close()

	m := New(Options{Session: s, AutoOpenDir: dir})
	next, _ := m.Update(m.autoOpenCmd()())
	m = next.(Model)

	if s.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", s.Len())
	}
	if !strings.Contains(m.View(), "subs.txt") {
		t.Errorf("expected file name in header:\n%s", m.View())
	}
}

func TestViewShowsEntries(t *testing.T) {
	m, s := newTestModel(t)
	openSample(t, s)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = next.(Model)
	view := m.View()

	for _, want := range []string{"first", "second", "third", "00:00:03", "1s", "3 entries"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	m, _ := newTestModel(t)
	if !strings.Contains(m.View(), "No entries") {
		t.Errorf("expected empty hint:\n%s", m.View())
	}
}

func TestCell(t *testing.T) {
	if got := cell("abc", 5); got != "abc  " {
		t.Errorf("got %q", got)
	}
	if got := cell("abcdef", 4); got != "abc…" {
		t.Errorf("got %q", got)
	}
	if got := cell("字幕字幕", 5); got != "字幕…" {
		t.Errorf("got %q", got)
	}
}
