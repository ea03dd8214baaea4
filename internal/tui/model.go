// Package tui is a terminal view over a conversation controller.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anythingboes/studio-chat/internal/model/chat"
	chatservice "github.com/anythingboes/studio-chat/internal/service/chat"
)

// StateMsg carries a controller snapshot into the program.
type StateMsg chat.State

// Listener forwards controller snapshots to a running program. The
// controller notifies from inside Update, so delivery must not wait on the
// program's event loop; Version orders the snapshots on arrival.
func Listener(send func(tea.Msg)) chatservice.Listener {
	return func(s chat.State) {
		go send(StateMsg(s))
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#2563EB")).Padding(0, 1)
	userStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6"))
	botStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6B7280"))
	timeStyle    = lipgloss.NewStyle().Faint(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
)

const headerHeight, footerHeight = 2, 3

// Model renders the transcript and the input affordance.
type Model struct {
	ctx  context.Context
	ctrl *chatservice.Controller

	state    chat.State
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	width  int
	height int
}

// New builds the view for ctrl.
func New(ctx context.Context, ctrl *chatservice.Controller) Model {
	in := textinput.New()
	in.Placeholder = "Type your message..."
	in.Prompt = "> "
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		state:    ctrl.State(),
		input:    in,
		viewport: viewport.New(80, 20),
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-headerHeight-footerHeight)
		m.input.Width = max(10, msg.Width-4)
		m.refreshTranscript()
		return m, nil

	case StateMsg:
		if msg.Version < m.state.Version {
			return m, nil
		}
		m.state = chat.State(msg)
		if m.state.Pending {
			m.input.Blur()
		} else {
			m.input.Focus()
		}
		m.refreshTranscript()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.ctrl.Submit(m.ctx, m.input.Value()) {
				m.input.Reset()
			}
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		if m.state.Pending {
			return m, nil
		}
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if after := m.input.Value(); after != before {
			m.ctrl.UpdateDraft(after)
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) refreshTranscript() {
	m.viewport.SetContent(RenderTranscript(m.state.History, m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Chat with Bot"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.state.Pending {
		b.WriteString(m.spinner.View())
		b.WriteString(" waiting for an answer")
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter send • pgup/pgdn scroll • esc quit"))
	return b.String()
}

// RenderTranscript formats history the way the page shows it: sender label,
// local time, then the body.
func RenderTranscript(history []chat.Message, width int) string {
	if len(history) == 0 {
		return helpStyle.Render("No messages yet.")
	}

	body := lipgloss.NewStyle()
	if width > 4 {
		body = body.Width(width - 2)
	}

	var b strings.Builder
	for i, msg := range history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := botStyle.Render("Bot")
		if msg.Sender == chat.SenderUser {
			label = userStyle.Render("You")
		}
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(timeStyle.Render(msg.CreatedAt.Local().Format("15:04:05")))
		b.WriteString("\n")
		b.WriteString(body.Render(msg.Body))
	}
	return b.String()
}
