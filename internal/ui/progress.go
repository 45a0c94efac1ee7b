package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"logmap/internal/driver"
)

// visibleRows caps the file list; older rows collapse into a count.
const visibleRows = 20

const statusWidth = 10

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	queuedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))

	statusStyles = map[driver.Status]lipgloss.Style{
		driver.StatusWorking:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		driver.StatusDone:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		driver.StatusRewritten: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		driver.StatusError:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

var stageNames = map[driver.Stage]string{
	driver.StageEnumerate: "listing",
	driver.StageRead:      "reading",
	driver.StageAnalyze:   "analyzing",
	driver.StageManifest:  "manifest",
}

// stageWeight is the share of a file's work considered complete once it
// reaches the stage.
var stageWeight = map[driver.Stage]float64{
	driver.StageRead:    0.3,
	driver.StageAnalyze: 0.6,
}

type row struct {
	path   string
	stage  driver.Stage
	status driver.Status
	calls  int
	edits  int
}

func (r row) settled() bool {
	switch r.status {
	case driver.StatusDone, driver.StatusRewritten, driver.StatusError:
		return true
	}
	return false
}

func (r row) label() string {
	if r.status == driver.StatusWorking {
		if name, ok := stageNames[r.stage]; ok {
			return name
		}
	}
	return string(r.status)
}

func (r row) progress() float64 {
	if r.settled() {
		return 1
	}
	return stageWeight[r.stage]
}

type progressModel struct {
	title    string
	events   <-chan driver.Event
	spinner  spinner.Model
	bar      progress.Model
	rows     []row
	byPath   map[string]int
	phase    string
	width    int
	finished bool
}

type (
	eventMsg  driver.Event
	closedMsg struct{}
)

// NewProgressModel returns a Bubble Tea model that renders scan progress
// from events until the channel is closed. files seeds the list; files first
// seen in a queued event are appended.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = statusStyles[driver.StatusWorking]

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for _, f := range files {
		m.add(f)
	}
	return m
}

func (m *progressModel) add(path string) int {
	m.byPath[path] = len(m.rows)
	m.rows = append(m.rows, row{path: path, status: driver.StatusQueued})
	return len(m.rows) - 1
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

// next waits for one event from the driver.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return closedMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.next())
	case closedMsg:
		m.finished = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	}
	return m, nil
}

// applyEvent folds ev into the model and returns the bar animation command.
// Run-level events only change the phase shown in the header.
func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		if name, ok := stageNames[ev.Stage]; ok && ev.Status == driver.StatusWorking {
			m.phase = name
		}
		return nil
	}

	idx, ok := m.byPath[ev.File]
	if !ok {
		if ev.Status != driver.StatusQueued {
			return nil
		}
		idx = m.add(ev.File)
	}
	r := &m.rows[idx]
	r.stage, r.status = ev.Stage, ev.Status
	if ev.Calls > 0 || ev.Edits > 0 {
		r.calls, r.edits = ev.Calls, ev.Edits
	}

	var sum float64
	for _, r := range m.rows {
		sum += r.progress()
	}
	return m.bar.SetPercent(sum / float64(len(m.rows)))
}

func (m *progressModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header()))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(m.tally()))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-30, 20)
	rows := m.rows
	if hidden := len(rows) - visibleRows; hidden > 0 {
		rows = rows[hidden:]
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render(fmt.Sprintf("... %d earlier files", hidden)))
	}
	for _, r := range rows {
		style, ok := statusStyles[r.status]
		if !ok {
			style = queuedStyle
		}
		fmt.Fprintf(&b, "  %s %s", style.Render(fmt.Sprintf("%*s", statusWidth, r.label())), truncate(r.path, nameWidth))
		if r.calls > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %d calls", r.calls)))
		}
		if r.edits > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf(", %d rewritten", r.edits)))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.finished {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func (m *progressModel) header() string {
	h := m.title
	if m.phase != "" {
		h += " (" + m.phase + ")"
	}
	if m.finished {
		return "done: " + h
	}
	return m.spinner.View() + " " + h
}

// tally summarizes settled files and totals across all rows.
func (m *progressModel) tally() string {
	var settled, calls, edits int
	for _, r := range m.rows {
		if r.settled() {
			settled++
		}
		calls += r.calls
		edits += r.edits
	}
	return fmt.Sprintf("%d/%d files, %d calls, %d rewritten", settled, len(m.rows), calls, edits)
}

// truncate shortens value to width display cells, ending in "..." when
// there is room for it.
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
