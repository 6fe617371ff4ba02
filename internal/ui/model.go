package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/sonance/internal/fx"
	"github.com/olivier-w/sonance/internal/persona"
	"github.com/olivier-w/sonance/internal/visualizer"
)

const (
	margin = 2
	// panel rows above the help block: header, blank, buttons, blank, meter.
	panelRows = 5
	buttonRow = 2
)

// Engine is the sound surface the UI drives.
type Engine interface {
	visualizer.Source
	Play(ev fx.Event)
	ToggleMute() bool
	SetMode(aggressive bool)
	Muted() bool
	Level() float64
}

// Options are the startup settings of the UI.
type Options struct {
	Persona    persona.Persona
	Tier       visualizer.Tier
	Aggressive bool
	FPS        int
	Chime      *fx.Event // played once at startup when set
}

// Model is the Bubbletea model for the sonance TUI: a spectrum canvas on
// top and a control panel below it.
type Model struct {
	engine   Engine
	renderer *visualizer.Renderer
	canvas   *visualizer.Canvas

	keys  keyMap
	help  help.Model
	meter progress.Model

	events  []fx.Event
	spans   []span
	focused int
	hovered int

	persona    persona.Persona
	tier       visualizer.Tier
	aggressive bool
	chime      *fx.Event
	muted      bool
	level      float64

	width    int
	height   int
	quitting bool
}

// New creates a Model around engine.
func New(engine Engine, opts Options) Model {
	events := fx.Events()
	return Model{
		engine: engine,
		renderer: visualizer.NewRenderer(engine, visualizer.Settings{
			Tier:    opts.Tier,
			Persona: opts.Persona,
			FPS:     opts.FPS,
		}),
		canvas:     visualizer.NewCanvas(0, 0),
		keys:       defaultKeyMap(),
		help:       help.New(),
		meter:      newMeter(),
		events:     events,
		spans:      layoutButtons(events),
		hovered:    -1,
		persona:    opts.Persona,
		tier:       opts.Tier,
		aggressive: opts.Aggressive,
		chime:      opts.Chime,
		muted:      engine.Muted(),
	}
}

func (m Model) Init() tea.Cmd {
	m.engine.SetMode(m.aggressive)
	if m.chime != nil {
		m.engine.Play(*m.chime)
	}
	return tea.Batch(
		tea.SetWindowTitle("sonance"),
		m.renderer.Attach(m.canvas),
		meterTickCmd(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width - margin
		m.meter.Width = meterWidth(msg.Width)
		return m, m.layout()

	case meterTickMsg:
		m.level = m.engine.Level()
		m.muted = m.engine.Muted()
		return m, meterTickCmd()
	}

	// Frames, debounced resizes and focus changes belong to the renderer.
	return m, m.renderer.Update(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.renderer.Detach()
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case key.Matches(msg, m.keys.Trigger):
		if i, ok := triggerIndex(msg, m.events); ok {
			m.focused = i
			m.engine.Play(m.events[i])
		}

	case key.Matches(msg, m.keys.Prev):
		m = m.moveFocus(-1)

	case key.Matches(msg, m.keys.Next):
		m = m.moveFocus(1)

	case key.Matches(msg, m.keys.Press):
		m.engine.Play(m.events[m.focused])

	case key.Matches(msg, m.keys.Mute):
		m.muted = m.engine.ToggleMute()
		m.engine.Play(fx.Toggle)

	case key.Matches(msg, m.keys.Mode):
		m.aggressive = !m.aggressive
		m.engine.SetMode(m.aggressive)
		m.engine.Play(fx.Toggle)

	case key.Matches(msg, m.keys.Persona):
		m.persona = m.persona.Next()
		m.renderer.SetPersona(m.persona)
		m.aggressive = m.persona.Aggressive()
		m.engine.SetMode(m.aggressive)

	case key.Matches(msg, m.keys.Tier):
		m.tier = m.tier.Next()
		cmd := m.renderer.SetTier(m.tier)
		if !m.renderer.Attached() {
			m.canvas.Clear()
		}
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, m.layout()
	}
	return m, nil
}

func (m Model) moveFocus(delta int) Model {
	n := len(m.events)
	m.focused = (m.focused + delta + n) % n
	m.engine.Play(fx.Hover)
	return m
}

// handleMouse plays hover when the pointer enters a button and the
// button's event on a left click. The canvas ignores the pointer.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	idx := -1
	if msg.Y == m.canvasHeight()+buttonRow {
		idx = buttonAt(m.spans, msg.X)
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if idx != m.hovered {
			m.hovered = idx
			if idx >= 0 {
				m.focused = idx
				m.engine.Play(fx.Hover)
			}
		}
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && idx >= 0 {
			m.focused = idx
			m.engine.Play(m.events[idx])
		}
	}
	return m
}

func (m Model) helpView() string {
	return lipgloss.NewStyle().MarginLeft(margin).Render(m.help.View(m.keys))
}

func (m Model) panelHeight() int {
	return panelRows + lipgloss.Height(m.helpView())
}

func (m Model) canvasHeight() int {
	return max(m.height-m.panelHeight(), 0)
}

// layout sizes the canvas to the area above the panel. The first size and
// sizes while the renderer is idle apply at once; later ones go through
// the renderer's debounce.
func (m Model) layout() tea.Cmd {
	h := m.canvasHeight()
	if w, ch := m.canvas.Size(); (w == 0 && ch == 0) || !m.renderer.Attached() {
		m.canvas.Resize(m.width, h)
		return nil
	}
	return m.renderer.Update(tea.WindowSizeMsg{Width: m.width, Height: h})
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if h := m.canvasHeight(); h > 0 {
		if m.renderer.Attached() {
			b.WriteString(m.canvas.View())
		} else {
			b.WriteString(strings.Repeat("\n", h-1))
		}
		b.WriteByte('\n')
	}

	pad := strings.Repeat(" ", margin)
	mode := fx.Standard
	if m.aggressive {
		mode = fx.Aggressive
	}
	status := statusStyle.Render(fmt.Sprintf("%s · persona %s · tier %s", mode, m.persona, m.tier))
	b.WriteString(pad + headerStyle.Render("sonance") + "  " + status + "\n")
	b.WriteString("\n")
	b.WriteString(pad + renderButtons(m.events, m.focused, m.persona) + "\n")
	b.WriteString("\n")

	level := statusStyle.Render(fmt.Sprintf("%3.0f%%", meterRatio(m.level)*100))
	if m.muted {
		level = mutedStyle.Render("muted")
	}
	b.WriteString(pad + m.meter.ViewAs(meterRatio(m.level)) + "  " + level + "\n")
	b.WriteString(m.helpView())

	return b.String()
}
