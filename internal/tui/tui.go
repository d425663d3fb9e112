// Package tui provides the Bubble Tea terminal interface for the
// decay tracker: mode selection, an observation entry loop, and a
// live chart of the decay function.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fennor/taper/internal/config"
	"github.com/fennor/taper/internal/plot"
	"github.com/fennor/taper/internal/store"
	"github.com/fennor/taper/internal/tracker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")).
			MarginBottom(1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// State represents the current UI state.
type State int

const (
	StateMode State = iota
	StateEntry
	StateError
)

type feedbackLevel int

const (
	levelInfo feedbackLevel = iota
	levelSuccess
	levelWarning
	levelError
)

type feedback struct {
	Message string
	Level   feedbackLevel
}

// Model is the Bubble Tea model for the tracker UI.
type Model struct {
	state     State
	textInput textinput.Model
	cfg       config.Config
	db        *store.DB

	tracker *tracker.Tracker
	run     *store.Run
	lines   []feedback
	err     error

	width  int
	height int
}

// NewModel creates a new tracker UI model. db may be nil when run
// history is disabled.
func NewModel(cfg config.Config, db *store.DB) Model {
	ti := textinput.New()
	ti.Placeholder = "1850, 0.8"
	ti.CharLimit = 64
	ti.Width = 32

	return Model{
		state:     StateMode,
		textInput: ti,
		cfg:       cfg,
		db:        db,
		width:     80,
		height:    24,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// trackerReadyMsg is sent once the tracker has been opened.
type trackerReadyMsg struct {
	Tracker *tracker.Tracker
	Run     *store.Run
	Err     error
}

// openTracker opens the tracker in the chosen mode and begins a run.
func (m *Model) openTracker(mode tracker.Mode) tea.Cmd {
	cfg, db := m.cfg, m.db
	return func() tea.Msg {
		tr, err := tracker.New(tracker.Options{
			StartYear: cfg.Tracker.StartYear,
			EndYear:   cfg.Tracker.EndYear,
			Mode:      mode,
			LogPath:   cfg.Tracker.LogPath,
			Tolerance: cfg.Tracker.Tolerance,
		})
		if err != nil {
			return trackerReadyMsg{Err: err}
		}

		var run *store.Run
		if db != nil {
			run, err = db.BeginRun(mode.String(), cfg.Tracker.StartYear, cfg.Tracker.EndYear, cfg.Tracker.LogPath)
			if err != nil {
				// History is best-effort, tracking continues without it
				run = nil
			}
		}
		return trackerReadyMsg{Tracker: tr, Run: run}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.endRun()
			return m, tea.Quit

		case "esc":
			m.endRun()
			return m, tea.Quit

		case "c", "C":
			if m.state == StateMode {
				return m, m.openTracker(tracker.ModeContinue)
			}

		case "n", "N":
			if m.state == StateMode {
				return m, m.openTracker(tracker.ModeNew)
			}

		case "enter":
			if m.state == StateEntry {
				return m.submitEntry()
			}

		case "q":
			if m.state == StateError {
				return m, tea.Quit
			}
		}

	case trackerReadyMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			return m, nil
		}
		m.tracker = msg.Tracker
		m.run = msg.Run
		m.reportLoad()
		m.state = StateEntry
		m.textInput.Focus()
		return m, textinput.Blink
	}

	if m.state == StateEntry || m.state == StateMode {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// reportLoad translates the tracker's load outcome into feedback.
func (m *Model) reportLoad() {
	ld := m.tracker.Load()
	switch {
	case ld.Err != nil:
		m.say(levelWarning, fmt.Sprintf("Error loading file: %v. Starting fresh.", ld.Err))
	case ld.Missing:
		m.say(levelInfo, "No existing file found. Starting fresh.")
	case ld.Replayed > 0:
		m.say(levelSuccess, fmt.Sprintf("Loaded %d data points from %s.", ld.Replayed, m.tracker.LogPath()))
	}
}

func (m *Model) say(level feedbackLevel, message string) {
	m.lines = append(m.lines, feedback{Message: message, Level: level})
	if len(m.lines) > 6 {
		m.lines = m.lines[len(m.lines)-6:]
	}
}

func (m Model) submitEntry() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textInput.Value())
	m.textInput.SetValue("")
	if input == "" {
		return m, nil
	}
	if strings.EqualFold(input, "exit") {
		m.endRun()
		return m, tea.Quit
	}

	year, value, err := tracker.ParseEntry(input)
	if err != nil {
		m.say(levelError, fmt.Sprintf("Invalid input: %v", err))
		return m, nil
	}

	res, err := m.tracker.AddObservation(year, value)
	if err != nil {
		m.say(levelError, err.Error())
		return m, nil
	}

	if res.Anchored {
		m.say(levelSuccess, fmt.Sprintf("Initial value set to %g. Calculated slope is %.4f.",
			m.tracker.InitialValue(), m.tracker.Slope()))
	}
	m.say(levelInfo, fmt.Sprintf("Year: %d, Provided Value: %g, Expected Value: %.4f",
		res.Year, res.Value, res.Expected))
	m.say(levelInfo, "Recommendation: "+res.Assessment.Recommendation())

	if m.db != nil && m.run != nil {
		m.db.RecordAdded(m.run.RunID)
	}

	return m, nil
}

// endRun closes the run record, best-effort.
func (m *Model) endRun() {
	if m.db != nil && m.run != nil {
		m.db.EndRun(m.run.RunID)
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("taper"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("linear decay tracker, %d to %d",
		m.cfg.Tracker.StartYear, m.cfg.Tracker.EndYear)))
	b.WriteString("\n\n")

	switch m.state {
	case StateMode:
		b.WriteString(m.viewMode())
	case StateEntry:
		b.WriteString(m.viewEntry())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewMode() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render("Do you want to CONTINUE previous calculations or start NEW?"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  log file: %s\n", m.cfg.Tracker.LogPath))
	return b.String()
}

func (m Model) viewEntry() string {
	var b strings.Builder

	b.WriteString(promptStyle.Render("Enter year and value (e.g., '1850, 0.8') or 'exit' to quit:"))
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	for _, line := range m.lines {
		var style lipgloss.Style
		switch line.Level {
		case levelSuccess:
			style = successStyle
		case levelWarning:
			style = warningStyle
		case levelError:
			style = errorStyle
		default:
			style = promptStyle
		}
		b.WriteString(style.Render(line.Message))
		b.WriteString("\n")
	}

	if m.tracker != nil && m.tracker.Anchored() {
		chart, err := plot.FromTracker(m.tracker, m.cfg.Tracker.Samples)
		if err == nil {
			b.WriteString("\n")
			b.WriteString(plot.RenderTerminal(chart, m.chartWidth(), m.chartHeight()))
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Error:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) chartWidth() int {
	w := m.width - 14
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) chartHeight() int {
	h := m.height - 16
	if h < 8 {
		h = 8
	}
	if h > 24 {
		h = 24
	}
	return h
}

func (m Model) helpText() string {
	switch m.state {
	case StateMode:
		return "c: continue previous • n: start new • esc: quit"
	case StateEntry:
		return "enter: add observation • esc: quit"
	case StateError:
		return "q: quit"
	}
	return ""
}

// Run starts the tracker UI.
func Run(cfg config.Config, db *store.DB) error {
	p := tea.NewProgram(NewModel(cfg, db), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
