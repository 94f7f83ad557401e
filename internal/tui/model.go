// Package tui is the interactive editing surface: a table of entries driven
// by the keyboard on top of a session.Session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/mgpai22/subed/internal/logging"
	"github.com/mgpai22/subed/internal/session"
	"github.com/mgpai22/subed/internal/subtitle"
)

const (
	defaultTickInterval = 250 * time.Millisecond
	defaultSaveName     = "subtitles.txt"
	defaultExportName   = "subtitles.json"
	fieldCount          = 5
)

type mode int

const (
	modeNormal mode = iota
	modeEdit
	modePrompt
	modeRestore
)

type Options struct {
	Session *session.Session
	// AutoOpenDir is scanned for the first .txt file on start. Empty skips
	// the scan.
	AutoOpenDir string
	// Restore, when set, asks whether to load this autosave before anything
	// else happens.
	Restore      *session.Snapshot
	TickInterval time.Duration
	Logger       *logging.Logger
	Context      context.Context
}

type Model struct {
	sess   *session.Session
	keys   KeyMap
	help   help.Model
	input  textinput.Model
	logger *logging.Logger

	mode   mode
	prompt fileOp
	editID uuid.UUID
	cursor int
	field  session.Field
	width  int
	height int

	restore     *session.Snapshot
	autoOpenDir string
	ctx         context.Context
	autoCtx     context.Context
	cancelAuto  context.CancelFunc
	tick        time.Duration
	quitArmed   bool
}

func New(opts Options) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	ti := textinput.New()
	ti.CharLimit = 4096
	ti.Width = 60

	m := Model{
		sess:        opts.Session,
		keys:        DefaultKeyMap,
		help:        help.New(),
		input:       ti,
		logger:      opts.Logger.With("component", "tui"),
		field:       session.FieldContent,
		restore:     opts.Restore,
		autoOpenDir: opts.AutoOpenDir,
		ctx:         opts.Context,
		tick:        opts.TickInterval,
	}
	m.autoCtx, m.cancelAuto = context.WithCancel(opts.Context)
	if m.restore != nil {
		m.mode = modeRestore
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	if m.mode != modeRestore && m.autoOpenDir != "" {
		cmds = append(cmds, m.autoOpenCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-10, 20)
		return m, nil

	case tickMsg:
		return m, m.tickCmd()

	case autoOpenedMsg:
		if msg.ok {
			m.cursor = 0
		}
		return m, nil

	case fileOpMsg:
		return m.handleFileOp(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modePrompt:
			return m.updatePrompt(msg)
		case modeRestore:
			return m.updateRestore(msg)
		default:
			return m.updateNormal(msg)
		}
	}

	if m.mode == modeEdit || m.mode == modePrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.quitArmed = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.sess.Dirty() && !m.quitArmed {
			m.quitArmed = true
			m.sess.Status().Set("Unsaved changes, press q again to quit")
			return m, nil
		}
		m.cancelAuto()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.NextField):
		m.field = (m.field + 1) % fieldCount
	case key.Matches(msg, m.keys.PrevField):
		m.field = (m.field + fieldCount - 1) % fieldCount

	case key.Matches(msg, m.keys.Select):
		if e, ok := m.current(); ok {
			m.sess.ToggleSelect(e.ID, false)
		}
	case key.Matches(msg, m.keys.SelectAdd):
		if e, ok := m.current(); ok {
			m.sess.ToggleSelect(e.ID, true)
		}

	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()

	case key.Matches(msg, m.keys.Append):
		m.cancelAuto()
		index := 0
		if m.sess.Len() > 0 {
			index = m.cursor + 1
		}
		m.sess.Insert(index)
		m.cursor = index
	case key.Matches(msg, m.keys.InsertAt):
		m.cancelAuto()
		m.sess.Insert(m.cursor)

	case key.Matches(msg, m.keys.DeleteAt):
		m.cancelAuto()
		m.sess.DeleteAt(m.cursor)
		m.clampCursor()
	case key.Matches(msg, m.keys.Delete):
		m.cancelAuto()
		_, _ = m.sess.DeleteSelected()
		m.clampCursor()

	case key.Matches(msg, m.keys.MoveUp):
		m.moveSelection(session.Up)
	case key.Matches(msg, m.keys.MoveDown):
		m.moveSelection(session.Down)

	case key.Matches(msg, m.keys.Plus):
		m.adjust(1)
	case key.Matches(msg, m.keys.Minus):
		m.adjust(-1)

	case key.Matches(msg, m.keys.Save):
		return m, m.fileCmd(opSave, "")
	case key.Matches(msg, m.keys.SaveAs):
		return m.openPrompt(opSaveAs, m.defaultSavePath())
	case key.Matches(msg, m.keys.Open):
		return m.openPrompt(opOpen, "")
	case key.Matches(msg, m.keys.Export):
		return m.openPrompt(opExport, m.defaultExportPath())
	case key.Matches(msg, m.keys.AutoOpen):
		dir := m.autoOpenDir
		if dir == "" {
			dir = "."
		}
		m.autoOpenDir = dir
		m.autoCtx, m.cancelAuto = context.WithCancel(m.ctx)
		return m, m.autoOpenCmd()
	}

	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeNormal
		m.input.Blur()
		value := m.input.Value()
		if err := m.sess.EditField(m.editID, m.field, value); err != nil {
			m.sess.Status().Set(fmt.Sprintf("Edit rejected: %v", err))
			return m, nil
		}
		if m.field.IsTime() && !subtitle.ValidTime(value) {
			m.sess.Status().Set(fmt.Sprintf("Warning: %s is not HH:MM:SS, fix it before saving", m.field))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeNormal
		m.input.Blur()
		m.sess.Status().Set("Cancelled")
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			m.sess.Status().Set("Enter a file path")
			return m, nil
		}
		m.mode = modeNormal
		m.input.Blur()
		if m.prompt == opOpen {
			m.cancelAuto()
		}
		return m, m.fileCmd(m.prompt, path)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateRestore(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = modeNormal
		m.restore = nil
		if m.sess.RestoreAutosave() {
			m.cursor = 0
		} else {
			m.sess.Status().Set("Autosave could not be read")
		}
		return m, nil

	case "n", "N", "esc":
		m.mode = modeNormal
		m.restore = nil
		m.sess.Status().Set("Autosave kept for later")
		return m, m.autoOpenCmd()

	case "d", "D":
		m.mode = modeNormal
		m.restore = nil
		if err := m.sess.DiscardAutosave(); err != nil {
			m.sess.Status().Set(fmt.Sprintf("Failed to discard autosave: %v", err))
		} else {
			m.sess.Status().Set("Discarded autosave")
		}
		return m, m.autoOpenCmd()

	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleFileOp(msg fileOpMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Debugw("File operation failed", "op", msg.op, "path", msg.path, "error", msg.err)
	}

	switch msg.op {
	case opSave, opSaveAs:
		if errors.Is(msg.err, session.ErrNeedDestination) {
			return m.openPrompt(opSaveAs, m.defaultSavePath())
		}
	case opOpen:
		if msg.err == nil {
			m.cursor = 0
		}
	}
	return m, nil
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	e, ok := m.current()
	if !ok {
		m.sess.Status().Set("Nothing to edit")
		return m, nil
	}
	m.cancelAuto()
	m.mode = modeEdit
	m.editID = e.ID
	m.input.Placeholder = m.field.String()
	m.input.SetValue(fieldValue(e, m.field))
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) openPrompt(op fileOp, value string) (tea.Model, tea.Cmd) {
	m.mode = modePrompt
	m.prompt = op
	m.input.Placeholder = "path/to/file"
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := m.sess.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) moveSelection(dir session.Direction) {
	e, hasCursor := m.current()
	moved, err := m.sess.MoveSelected(dir)
	if err != nil || !moved || !hasCursor {
		return
	}
	if _, i, ok := m.sess.Entry(e.ID); ok {
		m.cursor = i
	}
}

func (m *Model) adjust(delta int) {
	if !m.field.IsTime() {
		m.sess.Status().Set("Move to the start or end column to shift times")
		return
	}
	e, ok := m.current()
	if !ok {
		return
	}
	m.cancelAuto()
	if err := m.sess.AdjustField(e.ID, m.field, delta); err != nil {
		m.sess.Status().Set(fmt.Sprintf("Shift failed: %v", err))
	}
}

func (m Model) current() (subtitle.Entry, bool) {
	entries := m.sess.Entries()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return subtitle.Entry{}, false
	}
	return entries[m.cursor], true
}

func (m Model) defaultSavePath() string {
	if path := m.sess.CurrentFilePath(); path != "" {
		return path
	}
	return defaultSaveName
}

func (m Model) defaultExportPath() string {
	path := m.sess.CurrentFilePath()
	if path == "" {
		return defaultExportName
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + subtitle.ExtensionForFormat(subtitle.FormatJSON)
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) autoOpenCmd() tea.Cmd {
	if m.autoOpenDir == "" {
		return nil
	}
	sess, ctx, dir := m.sess, m.autoCtx, m.autoOpenDir
	return func() tea.Msg {
		return autoOpenedMsg{ok: <-sess.AutoOpenFirstText(ctx, dir)}
	}
}

func (m Model) fileCmd(op fileOp, path string) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		var err error
		switch op {
		case opSave:
			err = sess.Save()
		case opSaveAs:
			err = sess.SaveAs(path)
		case opOpen:
			err = sess.Open(path)
		case opExport:
			err = sess.Export(path)
		}
		return fileOpMsg{op: op, path: path, err: err}
	}
}

func fieldValue(e subtitle.Entry, field session.Field) string {
	switch field {
	case session.FieldVideoID:
		return e.VideoID
	case session.FieldStart:
		return e.StartTime
	case session.FieldEnd:
		return e.EndTime
	case session.FieldURL:
		return e.URL
	default:
		return e.Content
	}
}
