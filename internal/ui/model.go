package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/tracescope/internal/render"
	"github.com/olivier-w/tracescope/internal/trace"
	"github.com/olivier-w/tracescope/internal/util"
)

const (
	minVerticalScale = 0.1
	maxVerticalScale = 4.0
	scaleStep        = 0.1

	// lines used around the canvas: blank, header, blank / blank, status, blank, help
	chromeLines = 7
)

// Model is the Bubbletea model for the tracescope TUI.
type Model struct {
	cfg      trace.Config
	gridOn   bool
	scroll   *trace.ScrollController
	frames   *trace.Slot[trace.Frame]
	frame    trace.Frame
	received int
	title    string

	width    int
	height   int
	paused   bool
	quitting bool
	started  time.Time
	lastTick time.Time

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	progress progress.Model
}

// New creates a Model that displays frames published to slot.
func New(cfg trace.Config, easing trace.Easing, frames *trace.Slot[trace.Frame], title string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	p := progress.New(
		progress.WithScaledGradient("#1F7A1F", "#00FF00"),
		progress.WithoutPercentage(),
		progress.WithWidth(20),
	)

	return Model{
		cfg:      cfg,
		gridOn:   cfg.HorizontalGridLines+cfg.VerticalGridLines > 0,
		scroll:   trace.NewScrollController(cfg.Window(), easing),
		frames:   frames,
		title:    title,
		started:  time.Now(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  s,
		progress: p,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		waitForFrame(m.frames),
		m.spinner.Tick,
		tea.SetWindowTitle(windowTitle(m.title)),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Up):
			m.cfg.VerticalScale = math.Min(m.cfg.VerticalScale+scaleStep, maxVerticalScale)
		case key.Matches(msg, m.keys.Down):
			m.cfg.VerticalScale = math.Max(m.cfg.VerticalScale-scaleStep, minVerticalScale)
		case key.Matches(msg, m.keys.Grid):
			m.gridOn = !m.gridOn
		}
		return m, nil

	case frameMsg:
		if !m.paused {
			m.frame = trace.Frame(msg)
			m.received++
			m.scroll.Observe(len(m.frame))
		}
		return m, waitForFrame(m.frames)

	case tickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			m.scroll.Advance(now.Sub(m.lastTick))
		}
		m.lastTick = now
		return m, tickCmd()

	case spinner.TickMsg:
		if m.received > 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := msg.Width / 4
		if barWidth < 10 {
			barWidth = 10
		}
		m.progress.Width = barWidth
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// canvasCells returns the braille canvas size for the current window.
func (m Model) canvasCells() (cols, rows int) {
	w, h := m.width, m.height
	if w <= 0 || h <= 0 {
		w, h = 64, 16
	}
	cols = w - 4
	if cols < 10 {
		cols = 10
	}
	rows = h - chromeLines
	if rows < 2 {
		rows = 2
	}
	return cols, rows
}

// displayConfig is the configuration the current frame is composed with.
func (m Model) displayConfig() trace.Config {
	cfg := m.cfg
	if !m.gridOn {
		cfg.HorizontalGridLines = 0
		cfg.VerticalGridLines = 0
	}
	return cfg
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	cols, rows := m.canvasCells()
	size := render.CanvasSize(cols, rows)
	scene := trace.Compose(m.displayConfig(), m.frame, size, m.scroll.OverlayWidth(size.W))
	canvas := render.Render(scene, cols, rows)

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(headerStyle.Render("tracescope"))
	b.WriteString("  ")
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(util.FormatWindow(m.cfg.HorizontalScale, m.cfg.SampleRate)))
	b.WriteString("\n\n")

	for _, line := range strings.Split(canvas, "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString("\n  ")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n  ")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	view := b.String()
	if pad := m.height - lipgloss.Height(view); m.height > 0 && pad > 0 {
		view += strings.Repeat("\n", pad)
	}
	return view
}

func (m Model) statusLine() string {
	if m.received == 0 {
		return m.spinner.View() + statusStyle.Render(" waiting for signal…")
	}

	state := m.scroll.State().String()
	if m.paused {
		state = frozenStyle.Render("frozen")
	} else {
		state = statusStyle.Render(state)
	}
	info := fmt.Sprintf("frame %d · %d samples · gain %.1f · up %s",
		m.received, len(m.frame), m.cfg.VerticalScale, util.FormatDuration(time.Since(m.started)))
	return fmt.Sprintf("%s %s %s  %s", state, m.progress.ViewAs(m.scroll.Fraction()),
		statusStyle.Render(revealLabel(m.scroll.Elapsed(), m.scroll.Window())), statusStyle.Render(info))
}

// revealLabel shows how far the current reveal has run, e.g. "0.5s/1.0s".
func revealLabel(elapsed, window time.Duration) string {
	return fmt.Sprintf("%.1fs/%.1fs", elapsed.Seconds(), window.Seconds())
}

func windowTitle(title string) string {
	if title == "" {
		return "tracescope"
	}
	return title + " - tracescope"
}
