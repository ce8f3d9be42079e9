package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"weatherbot/internal/chat"
	"weatherbot/internal/nlu"
)

const greeting = "Hi! Ask me about the weather in a city, e.g. \"will it rain in Lyon tomorrow?\""

// replyMsg carries the answer to the last utterance back into Update.
type replyMsg struct {
	reply  string
	intent nlu.Intent
}

// ChatModel is the interactive chat window.
type ChatModel struct {
	ctx       context.Context
	responder chat.Responder

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	transcript []chat.Message
	waiting    bool
	quitting   bool
}

func NewChatModel(ctx context.Context, r chat.Responder) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "What's the weather in Paris tomorrow?"
	ti.Prompt = "› "
	ti.CharLimit = 280
	ti.Focus()

	// Letters belong to the input line, so only arrows and paging scroll.
	vp := viewport.New(80, 20)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = focusedStyle

	m := ChatModel{
		ctx:        ctx,
		responder:  r,
		input:      ti,
		viewport:   vp,
		spinner:    sp,
		transcript: []chat.Message{{Role: chat.RoleBot, Content: greeting}},
	}
	m.refresh()
	return m
}

func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.viewport.Width = max(msg.Width-6, 20)
		m.viewport.Height = max(msg.Height-10, 5)
		m.input.Width = max(msg.Width-10, 10)
		m.refresh()
		return m, nil

	case replyMsg:
		m.waiting = false
		m.transcript = append(m.transcript, chat.Message{Role: chat.RoleBot, Content: msg.reply, Intent: msg.intent})
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var inputCmd, viewCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.viewport, viewCmd = m.viewport.Update(msg)
	return m, tea.Batch(inputCmd, viewCmd)
}

func (m ChatModel) submit() (tea.Model, tea.Cmd) {
	if m.waiting {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	switch text {
	case "/exit", "exit", "quit":
		m.quitting = true
		return m, tea.Quit
	}

	m.input.Reset()
	m.waiting = true
	m.transcript = append(m.transcript, chat.Message{Role: chat.RoleUser, Content: text})
	m.refresh()
	return m, tea.Batch(m.ask(text), m.spinner.Tick)
}

// ask runs one chat turn off the UI goroutine.
func (m ChatModel) ask(text string) tea.Cmd {
	return func() tea.Msg {
		reply, intent := m.responder.Chat(m.ctx, text)
		return replyMsg{reply: reply, intent: intent}
	}
}

func (m *ChatModel) refresh() {
	wrap := lipgloss.NewStyle().Width(max(m.viewport.Width-2, 10))

	var b strings.Builder
	for _, msg := range m.transcript {
		if msg.Role == chat.RoleUser {
			b.WriteString(userStyle.Render("you"))
		} else {
			b.WriteString(botStyle.Render("bot"))
			if msg.Intent != nlu.Unknown {
				b.WriteString(helpStyle.Render(" [" + msg.Intent.String() + "]"))
			}
		}
		b.WriteString("\n")
		b.WriteString(wrap.Render(msg.Content))
		b.WriteString("\n\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m ChatModel) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(" WeatherBot "))
	s.WriteString("\n\n")
	s.WriteString(windowStyle.Render(m.viewport.View()))
	s.WriteString("\n")
	if m.waiting {
		s.WriteString(m.spinner.View() + " checking the sky...")
	} else {
		s.WriteString(m.input.View())
	}
	s.WriteString("\n\n" + helpStyle.Render("enter: send • ↑/↓ pgup/pgdn: scroll • esc/ctrl+c: quit"))
	return docStyle.Render(s.String())
}

// RunChat runs the chat window until the user quits.
func RunChat(ctx context.Context, r chat.Responder) error {
	p := tea.NewProgram(NewChatModel(ctx, r), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
