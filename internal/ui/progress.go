// Package ui provides progress display for license scans.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/dsablic/licenseid/internal/model"
)

// IsTTY returns true if stderr is a terminal.
func IsTTY() bool {
	return term.IsTerminal(os.Stderr.Fd())
}

// verdict renders the outcome for one file.
func verdict(f model.FileMatch) string {
	if f.Matched() {
		return fmt.Sprintf("%s (%.2f)", f.License, f.Score)
	}
	if f.Best == "" {
		return "no match"
	}
	return fmt.Sprintf("no match, closest %s (%.2f)", f.Best, f.Score)
}

// summary renders the final line of a scan.
func summary(totals model.Totals, primary *model.Match) string {
	s := fmt.Sprintf("Scanned %d files: %d matched, %d unmatched.", totals.Scanned, totals.Matched, totals.Unmatched)
	if primary != nil {
		s += fmt.Sprintf(" Project license: %s.", primary.License)
	}
	return s
}

// --- Plain text fallback ---

// PlainProgress prints one line per identified file to a callback.
// Used when stderr is not a TTY (e.g., piped output).
type PlainProgress struct {
	print func(string)
}

// NewPlainProgress creates a new PlainProgress with the given print callback.
func NewPlainProgress(print func(string)) *PlainProgress {
	return &PlainProgress{print: print}
}

// Update prints the verdict for an identified file.
func (p *PlainProgress) Update(completed, total int, file model.FileMatch) {
	p.print(fmt.Sprintf("[%d/%d] %s: %s", completed, total, file.Path, verdict(file)))
}

// Done prints the scan summary.
func (p *PlainProgress) Done(report *model.ScanReport) {
	p.print(summary(report.Totals, report.Primary))
}

// --- TUI progress ---

// ProgressMsg is sent to the bubbletea program when a file is identified.
type ProgressMsg struct {
	Completed int
	Total     int
	File      model.FileMatch
}

// DoneMsg is sent to the bubbletea program when the scan has finished.
type DoneMsg struct {
	Totals  model.Totals
	Primary *model.Match
}

type tuiModel struct {
	progress  progress.Model
	completed int
	total     int
	matched   int
	last      model.FileMatch
	done      *DoneMsg
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	matchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// NewTUIModel creates a new bubbletea model for the progress TUI.
func NewTUIModel(total int) tea.Model {
	return tuiModel{
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(50),
			progress.WithoutPercentage(),
		),
		total: total,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-10, 60)
	case ProgressMsg:
		m.completed = msg.Completed
		m.total = msg.Total
		m.last = msg.File
		if msg.File.Matched() {
			m.matched++
		}
		pct := 1.0
		if m.total > 0 {
			pct = float64(m.completed) / float64(m.total)
		}
		return m, m.progress.SetPercent(pct)
	case DoneMsg:
		m.done = &msg
		return m, tea.Quit
	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m tuiModel) View() string {
	if m.done != nil {
		return fmt.Sprintf("\n  %s\n\n", titleStyle.Render(summary(m.done.Totals, m.done.Primary)))
	}

	pad := strings.Repeat(" ", 2)
	counter := infoStyle.Render(fmt.Sprintf("%d/%d files, %d matched", m.completed, m.total, m.matched))
	desc := infoStyle.Render("Walking tree...")
	if m.last.Path != "" {
		style := infoStyle
		if m.last.Matched() {
			style = matchStyle
		}
		desc = infoStyle.Render(m.last.Path+": ") + style.Render(verdict(m.last))
	}

	return "\n" +
		pad + titleStyle.Render("Identifying licenses") + "\n" +
		pad + m.progress.View() + "  " + counter + "\n" +
		pad + desc + "\n\n"
}

// RunTUI creates and returns a bubbletea program for the progress TUI.
// The program outputs to stderr so report output on stdout stays clean.
func RunTUI(total int) *tea.Program {
	return tea.NewProgram(NewTUIModel(total), tea.WithOutput(os.Stderr))
}
