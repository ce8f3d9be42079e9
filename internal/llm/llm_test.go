package llm

import "testing"

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in      string
		want    Provider
		wantErr bool
	}{
		{"ollama", ProviderOllama, false},
		{" OpenAI ", ProviderOpenAI, false},
		{"anthropic", ProviderAnthropic, false},
		{"gemini", ProviderGemini, false},
		{"mistral", "", true},
	}
	for _, tt := range tests {
		got, err := ParseProvider(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseProvider(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseProvider(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewOllamaDoesNotDial(t *testing.T) {
	m, err := New(ProviderOllama, "llama3.2", "http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m == nil {
		t.Fatalf("nil model")
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	if _, err := New(Provider("nope"), "", ""); err == nil {
		t.Fatalf("expected error")
	}
}
