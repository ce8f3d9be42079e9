package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"weatherbot/internal/config"
	"weatherbot/internal/nlu"
)

type cannedResponder struct{}

func (cannedResponder) Chat(_ context.Context, text string) (string, nlu.Intent) {
	return "Sunny in " + text, nlu.Weather
}

func typeText(t *testing.T, m tea.Model, text string) tea.Model {
	t.Helper()
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestChatModelRoundTrip(t *testing.T) {
	var m tea.Model = NewChatModel(context.Background(), cannedResponder{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = typeText(t, m, "Paris")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	cm := m.(ChatModel)
	if !cm.waiting || cmd == nil {
		t.Fatalf("expected a pending turn after enter")
	}
	if last := cm.transcript[len(cm.transcript)-1]; last.Content != "Paris" {
		t.Fatalf("last transcript line = %+v", last)
	}
	if cm.input.Value() != "" {
		t.Fatalf("input not cleared: %q", cm.input.Value())
	}

	// Enter while waiting is ignored.
	if _, again := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); again != nil {
		t.Fatalf("expected no command while waiting")
	}

	m, _ = m.Update(cm.ask("Paris")())
	cm = m.(ChatModel)
	if cm.waiting {
		t.Fatalf("still waiting after reply")
	}
	last := cm.transcript[len(cm.transcript)-1]
	if last.Content != "Sunny in Paris" || last.Intent != nlu.Weather {
		t.Fatalf("unexpected reply line %+v", last)
	}
	if !strings.Contains(cm.View(), "Sunny in Paris") {
		t.Fatalf("view misses the reply:\n%s", cm.View())
	}
}

func TestChatModelQuits(t *testing.T) {
	var m tea.Model = NewChatModel(context.Background(), cannedResponder{})
	m = typeText(t, m, "quit")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Fatalf("view should be empty after quitting")
	}
}

func TestSetupStaticThesaurus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weatherbot.yaml")
	var m tea.Model = NewSetupModel(*config.DefaultConfig(), path)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // static
	m = typeText(t, m, "123:abc")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected save command")
	}
	m, _ = m.Update(cmd())

	sm := m.(SetupModel)
	if sm.Err() != nil || !sm.saved {
		t.Fatalf("save failed: %v", sm.Err())
	}
	if !strings.Contains(sm.View(), "Saved configuration") {
		t.Fatalf("unexpected final view:\n%s", sm.View())
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Thesaurus != config.ThesaurusStatic || cfg.TelegramToken != "123:abc" {
		t.Fatalf("unexpected saved config %+v", cfg)
	}
}

func TestSetupLLMThesaurus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weatherbot.yaml")
	var m tea.Model = NewSetupModel(*config.DefaultConfig(), path)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	down := tea.KeyMsg{Type: tea.KeyDown}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m, _ = m.Update(down)  // llm
	m, _ = m.Update(enter) // -> provider
	m, _ = m.Update(down)  // openai
	m, cmd := m.Update(enter)
	if cmd != nil {
		t.Fatalf("cloud providers need no model discovery")
	}
	m, _ = m.Update(enter) // first default model
	m, cmd = m.Update(enter)
	m, _ = m.Update(cmd())

	got := m.(SetupModel).Config()
	if got.Thesaurus != config.ThesaurusLLM || got.LLMProvider != "openai" || got.LLMModel != "gpt-4o-mini" || got.TelegramToken != "" {
		t.Fatalf("unexpected config %+v", got)
	}
	if err := m.(SetupModel).Err(); err != nil {
		t.Fatalf("save failed: %v", err)
	}
}
