package tui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"weatherbot/internal/config"
)

type setupState int

const (
	stateThesaurus setupState = iota
	stateProvider
	stateModel
	stateTelegram
	stateDone
)

var setupTabs = []string{"Synonyms", "Provider", "Model", "Telegram", "Finish"}

// savedMsg reports the outcome of writing the config file.
type savedMsg struct{ err error }

// modelsMsg lists the models a local Ollama server offers.
type modelsMsg []list.Item

// SetupModel is the first-run wizard behind "weatherbot init". It edits a
// copy of the loaded configuration and saves it as YAML.
type SetupModel struct {
	cfg  config.Config
	path string

	state    setupState
	list     list.Model
	input    textinput.Model
	err      error
	saved    bool
	quitting bool
	width    int
}

func NewSetupModel(cfg config.Config, path string) SetupModel {
	l := list.New([]list.Item{
		item{title: string(config.ThesaurusStatic), desc: "Built-in synonym lists (recommended)"},
		item{title: string(config.ThesaurusLLM), desc: "Built-in lists plus synonyms from a language model"},
		item{title: string(config.ThesaurusNone), desc: "Only the seed keywords"},
	}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Where should intent synonyms come from?"
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Focus()

	return SetupModel{cfg: cfg, path: path, state: stateThesaurus, list: l, input: ti}
}

func (m SetupModel) Init() tea.Cmd {
	return nil
}

// Config returns the configuration as edited so far.
func (m SetupModel) Config() config.Config { return m.cfg }

// Err returns the save error, if any.
func (m SetupModel) Err() error { return m.err }

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (msg.String() == "q" && m.state != stateModel && m.state != stateTelegram) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.list.SetSize(msg.Width-10, msg.Height-15)
		return m, nil

	case modelsMsg:
		if len(msg) > 0 {
			m.list.SetItems(msg)
		}
		return m, nil

	case savedMsg:
		m.err = msg.err
		m.saved = msg.err == nil
		m.state = stateDone
		return m, nil
	}

	var cmd tea.Cmd
	enter := isEnter(msg)

	switch m.state {
	case stateThesaurus:
		m.list, cmd = m.list.Update(msg)
		if i, ok := m.list.SelectedItem().(item); ok && enter {
			m.cfg.Thesaurus = config.ThesaurusKind(i.title)
			if m.cfg.Thesaurus == config.ThesaurusLLM {
				m.state = stateProvider
				m.list.SetItems([]list.Item{
					item{title: "ollama", desc: "Local execution via Ollama"},
					item{title: "openai", desc: "OpenAI GPT models (OPENAI_API_KEY)"},
					item{title: "anthropic", desc: "Claude models (ANTHROPIC_API_KEY)"},
					item{title: "gemini", desc: "Google Gemini models (GOOGLE_API_KEY)"},
				})
				m.list.Title = "Select AI Provider"
				m.list.ResetSelected()
				return m, nil
			}
			m.toTelegram()
		}

	case stateProvider:
		m.list, cmd = m.list.Update(msg)
		if i, ok := m.list.SelectedItem().(item); ok && enter {
			m.cfg.LLMProvider = i.title
			m.state = stateModel
			m.list.SetItems(defaultModels(i.title))
			m.list.Title = "Select Model"
			m.list.ResetSelected()
			if i.title == "ollama" {
				return m, fetchOllamaModels(m.cfg.LLMBaseURL)
			}
			return m, nil
		}

	case stateModel:
		m.list, cmd = m.list.Update(msg)
		if i, ok := m.list.SelectedItem().(item); ok && enter {
			m.cfg.LLMModel = i.title
			m.toTelegram()
		}

	case stateTelegram:
		m.input, cmd = m.input.Update(msg)
		if enter {
			m.cfg.TelegramToken = strings.TrimSpace(m.input.Value())
			return m, m.saveConfig()
		}

	case stateDone:
		if _, ok := msg.(tea.KeyMsg); ok {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, cmd
}

func isEnter(msg tea.Msg) bool {
	k, ok := msg.(tea.KeyMsg)
	return ok && k.Type == tea.KeyEnter
}

func (m *SetupModel) toTelegram() {
	m.state = stateTelegram
	m.input.Prompt = "Telegram bot token (optional): "
	m.input.Placeholder = "leave empty to skip"
	m.input.SetValue(m.cfg.TelegramToken)
}

func (m SetupModel) saveConfig() tea.Cmd {
	cfg := m.cfg
	path := m.path
	return func() tea.Msg {
		if err := cfg.Validate(); err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{err: cfg.Save(path)}
	}
}

func defaultModels(provider string) []list.Item {
	switch provider {
	case "openai":
		return []list.Item{item{title: "gpt-4o-mini", desc: "Fast OpenAI model"}, item{title: "gpt-4o", desc: "Best OpenAI model"}}
	case "anthropic":
		return []list.Item{item{title: "claude-3-5-haiku-latest", desc: "Fast Anthropic model"}, item{title: "claude-3-5-sonnet-latest", desc: "Best Anthropic model"}}
	case "gemini":
		return []list.Item{item{title: "gemini-2.5-flash", desc: "Fast Google model"}, item{title: "gemini-2.5-pro", desc: "Powerful Google model"}}
	default:
		return []list.Item{item{title: "llama3.2", desc: "Default local model"}}
	}
}

type ollamaTags struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// fetchOllamaModels asks a local Ollama server for its installed models.
// Failures leave the default list in place.
func fetchOllamaModels(baseURL string) tea.Cmd {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return func() tea.Msg {
		client := &http.Client{Timeout: 2 * time.Second}
		resp, err := client.Get(strings.TrimRight(baseURL, "/") + "/api/tags")
		if err != nil {
			return modelsMsg(nil)
		}
		defer resp.Body.Close()

		var data ollamaTags
		if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&data) != nil {
			return modelsMsg(nil)
		}
		items := make(modelsMsg, 0, len(data.Models))
		for _, md := range data.Models {
			items = append(items, item{title: md.Name, desc: "Local Ollama model"})
		}
		return items
	}
}

func (m SetupModel) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(" WeatherBot Setup "))
	s.WriteString("\n\n")

	tabs := make([]string, len(setupTabs))
	for i, t := range setupTabs {
		if i == int(m.state) {
			tabs[i] = focusedStyle.Bold(true).Padding(0, 1).Render(t)
		} else {
			tabs[i] = lipgloss.NewStyle().Padding(0, 1).Render(t)
		}
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	s.WriteString("\n\n")

	var content string
	switch m.state {
	case stateThesaurus, stateProvider, stateModel:
		content = m.list.View()
	case stateTelegram:
		content = "\n" + m.input.View() + "\n\n" + helpStyle.Render("Press enter to save")
	case stateDone:
		if m.err != nil {
			content = errorStyle.Render(fmt.Sprintf("\nCould not save %s: %v", m.path, m.err))
		} else {
			content = fmt.Sprintf("\nSaved configuration to %s.\nPress any key to exit.", m.path)
		}
	}

	s.WriteString(windowStyle.Width(max(m.width-10, 40)).Render(content))
	if m.state != stateDone {
		s.WriteString("\n\n" + helpStyle.Render("q/ctrl+c: quit • ↑/↓: navigate • enter: select"))
	}
	return docStyle.Render(s.String())
}

// RunSetup runs the wizard. It reports whether the config was written; the
// user may quit before the last step.
func RunSetup(cfg config.Config, path string) (bool, error) {
	final, err := tea.NewProgram(NewSetupModel(cfg, path), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(SetupModel)
	if !ok {
		return false, nil
	}
	return m.saved, m.Err()
}
