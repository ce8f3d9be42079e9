package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" Hello, World! ", "hello world"},
		{"What's the weather?", "whats the weather"},
		{"New-York", "newyork"},
		{"  ", ""},
		{"ZÜRICH", "zürich"},
		{"a  b", "a  b"},
		{"e.\u0301", "\u00e9"},
		{"cafe-\u0301", "caf\u00e9"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		" Hello, World! ",
		"  Is it (really) going to RAIN in São-Paulo?? ",
		"...",
		"tab\tseparated\ttext",
		"",
		"e.\u0301",
		"cafe-\u0301",
		"Cafe\u0301 (e!\u0301)",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"I love New-York", "ilovenewyork"},
		{"New York", "newyork"},
		{"weather in Rio de Janeiro, today!", "weatherinriodejaneirotoday"},
	}

	for _, tt := range tests {
		if got := Compact(tt.input); got != tt.want {
			t.Errorf("Compact(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
