package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/staffline/pkg/core/music"
	"github.com/matzehuels/staffline/pkg/core/staff"
	"github.com/matzehuels/staffline/pkg/score"
)

// Editor grid dimensions. The staff is laid out in character cells: one
// column per unit of width and editorStaffHeight+1 rows, so the five staff
// lines fall on every fourth row.
const (
	editorStaffHeight = 16
	editorMinWidth    = 32
	editorStartWidth  = 80
)

// Editor styles
var (
	editorLineStyle   = lipgloss.NewStyle().Foreground(colorDim)
	editorCursorStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	editorHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	editorErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// editCommand
// =============================================================================

// editCommand creates the interactive note editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [score]",
		Short: "Enter notes on a staff interactively",
		Long: `Enter notes on a staff interactively.

Opens the score (or starts an empty one if the file does not exist yet) in a
terminal editor. Notes are laid out live as they are added; resizing the
terminal re-lays the staff to the new width.

Keys:
  ↑/↓        change pitch (pgup/pgdown by octave)
  1-7        note value: whole, half, quarter, eighth, 16th, 32nd, 64th
  .          toggle dotted
  ⏎/space    add note
  backspace  remove last note
  c          clear all notes
  w          save (asks for a title first if the score has none)
  q          quit

MIDI files are saved next to the original as .toml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runEdit(ctx context.Context, path string) error {
	s, err := loadOrNewScore(path)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("editing score", "path", path, "notes", len(s.Notes))

	m := newEditorModel(s, path)
	defer m.engine.Close()

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	if fm, ok := final.(editorModel); ok && fm.savedPath != "" {
		printSuccess("Saved %d notes", len(fm.score.Notes))
		printFile(fm.savedPath)
	}
	return nil
}

// loadOrNewScore reads path, or returns an empty score when it does not exist.
func loadOrNewScore(path string) (*score.Score, error) {
	if _, err := score.FormatFromPath(path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return &score.Score{}, nil
	}
	s, err := score.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load score %s: %w", path, err)
	}
	return s, nil
}

// =============================================================================
// editorModel
// =============================================================================

// editorModel is the bubbletea model for the note editor. The score is the
// source of truth; the engine is replayed from it after edits that remove
// notes.
type editorModel struct {
	engine *staff.Engine
	score  *score.Score
	path   string

	pitch  int
	value  music.Duration
	dotted bool

	cols int

	prompt    textinput.Model
	prompting bool

	status    string
	err       error
	savedPath string
}

func newEditorModel(s *score.Score, path string) editorModel {
	ti := textinput.New()
	ti.Prompt = "Title: "
	ti.Placeholder = "untitled"
	ti.CharLimit = 120

	m := editorModel{
		engine: staff.New(),
		score:  s,
		path:   path,
		pitch:  music.ReferencePitch,
		value:  music.Quarter,
		cols:   editorStartWidth,
		prompt: ti,
	}
	m.engine.SetGeometry(editorStartWidth, editorStaffHeight)
	m.replay()
	return m
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, editorMinWidth)
		m.engine.SetGeometry(float64(m.cols), editorStaffHeight)
		return m, nil
	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m editorModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.pitch = min(m.pitch+1, music.MaxPitch)
	case "down", "j":
		m.pitch = max(m.pitch-1, music.MinPitch)
	case "pgup":
		m.pitch = min(m.pitch+12, music.MaxPitch)
	case "pgdown":
		m.pitch = max(m.pitch-12, music.MinPitch)
	case "1", "2", "3", "4", "5", "6", "7":
		n, _ := strconv.Atoi(key)
		m.value = music.Durations[n-1]
	case ".":
		m.dotted = !m.dotted
	case "enter", " ":
		m.addNote()
	case "backspace":
		if n := len(m.score.Notes); n > 0 {
			m.score.Notes = m.score.Notes[:n-1]
			m.replay()
			m.status = "Removed last note"
		}
	case "c":
		m.score.Notes = nil
		m.engine.Clear()
		m.status = "Cleared"
	case "w":
		if m.score.Title == "" {
			m.prompting = true
			m.prompt.SetValue("")
			m.prompt.Focus()
			return m, textinput.Blink
		}
		m.save()
	}
	return m, nil
}

func (m editorModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.prompting = false
		m.prompt.Blur()
		m.status = "Save cancelled"
		return m, nil
	case "enter":
		m.prompting = false
		m.prompt.Blur()
		m.score.Title = strings.TrimSpace(m.prompt.Value())
		m.save()
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// addNote appends the current pitch and value to both score and engine.
func (m *editorModel) addNote() {
	e := score.Entry{Pitch: m.pitch, Value: m.value.String(), Dotted: m.dotted}
	m.score.Notes = append(m.score.Notes, e)
	m.engine.AddNote(e.Pitch, e.DurationBeats())
	m.status = ""
	m.err = nil
}

// replay rebuilds the engine's notes from the score, keeping the
// terminal-driven geometry.
func (m *editorModel) replay() {
	m.engine.Clear()
	for _, e := range m.score.Notes {
		m.engine.AddNote(e.Pitch, e.DurationBeats())
	}
}

// save writes the score. MIDI sources are saved beside the original as TOML.
func (m *editorModel) save() {
	path := m.path
	if f, err := score.FormatFromPath(path); err != nil || f == score.FormatMIDI {
		path = basePath("", path) + ".toml"
	}
	if err := score.WriteFile(m.score, path); err != nil {
		m.err = err
		m.status = ""
		return
	}
	m.err = nil
	m.savedPath = path
	m.status = "Saved " + path
}

// =============================================================================
// View
// =============================================================================

func (m editorModel) View() string {
	var b strings.Builder

	title := m.score.Title
	if title == "" {
		title = m.path
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.staffView())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	switch {
	case m.prompting:
		b.WriteString(m.prompt.View())
	case m.err != nil:
		b.WriteString(editorErrorStyle.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(StyleSuccess.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(editorHelpStyle.Render("↑/↓ pitch  1-7 value  . dot  ⏎ add  ⌫ undo  c clear  w save  q quit"))
	return b.String()
}

// staffView draws the staff lines and noteheads into a character grid using
// the engine's coordinates directly.
func (m editorModel) staffView() string {
	rows := editorStaffHeight + 1
	grid := make([][]rune, rows)
	for r := range grid {
		fill := ' '
		if r%4 == 0 {
			fill = '─'
		}
		grid[r] = []rune(strings.Repeat(string(fill), m.cols))
	}

	for _, n := range m.engine.Notes() {
		col, row, ok := cell(n.X, n.Y, m.cols, rows)
		if !ok {
			continue
		}
		switch {
		case n.Y < 0:
			grid[row][col] = '^'
		case n.Y > float64(rows-1):
			grid[row][col] = 'v'
		default:
			grid[row][col] = '●'
		}
	}

	_, h := m.engine.Geometry()
	cursorY := h/2 - float64(m.pitch-staff.ReferencePitch)*h/staff.StaffSteps
	_, cursorRow, cursorOK := cell(0, cursorY, m.cols, rows)

	var b strings.Builder
	for r, line := range grid {
		marker := "  "
		if cursorOK && r == cursorRow {
			marker = editorCursorStyle.Render("▸ ")
		}
		b.WriteString(marker)
		for _, ch := range line {
			if ch == '●' || ch == '^' || ch == 'v' {
				b.WriteString(StyleNote.Render(string(ch)))
			} else {
				b.WriteString(editorLineStyle.Render(string(ch)))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// cell maps engine coordinates to a grid cell, clamping rows so that notes
// above or below the grid stay visible at the edge.
func cell(x, y float64, cols, rows int) (col, row int, ok bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) {
		return 0, 0, false
	}
	col = int(math.Round(x))
	if col < 0 || col >= cols {
		return 0, 0, false
	}
	row = int(math.Round(min(max(y, 0), float64(rows-1))))
	return col, row, true
}

func (m editorModel) statusLine() string {
	value := m.value.String()
	beats := m.value.Beats()
	if m.dotted {
		value = "dotted " + value
		beats = music.Dotted(m.value)
	}
	parts := []string{
		fmt.Sprintf("%s (%d)", music.PitchName(m.pitch), m.pitch),
		fmt.Sprintf("%s = %s beats", value, strconv.FormatFloat(beats, 'f', -1, 64)),
		fmt.Sprintf("%d notes", m.engine.NoteCount()),
		fmt.Sprintf("%s beats total", strconv.FormatFloat(m.engine.TotalBeats(), 'f', -1, 64)),
	}
	return "  " + StyleHighlight.Render(parts[0]) + StyleDim.Render(" · "+strings.Join(parts[1:], " · "))
}
