package handler

import (
	"context"
	"testing"
)

func TestHandle_NilSources(t *testing.T) {
	resp, err := Handle(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Handle() returned a Go error for a user fault: %v", err)
	}
	if resp.Error != "source is required" {
		t.Errorf("Error = %q, want %q", resp.Error, "source is required")
	}
}

func TestHandle_EmptySources(t *testing.T) {
	// An empty list is valid and returns immediately without touching the
	// engine.
	resp, err := Handle(context.Background(), Request{Sources: []string{}})
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if resp.Error != "" {
		t.Errorf("unexpected error: %q", resp.Error)
	}
	if len(resp.Source) != 0 || len(resp.Translation) != 0 {
		t.Errorf("empty request should echo empty slices, got %d/%d", len(resp.Source), len(resp.Translation))
	}
}

func TestTranslatorFunction(t *testing.T) {
	tests := []struct {
		name     string
		function string
		env      string
		expected string
	}{
		{name: "explicit name wins", function: "my-translator", env: "prod", expected: "my-translator"},
		{name: "environment default", env: "prod", expected: "fairseq-translator-prod"},
		{name: "dev fallback", expected: "fairseq-translator-dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TRANSLATOR_FUNCTION", tt.function)
			t.Setenv("ENVIRONMENT", tt.env)
			if got := translatorFunction(); got != tt.expected {
				t.Errorf("translatorFunction() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLoadVocabularyDefault(t *testing.T) {
	t.Setenv("VOCAB_PATH", "")
	v, err := loadVocabulary()
	if err != nil {
		t.Fatalf("loadVocabulary() error: %v", err)
	}
	if !v.IsSymbol("-1") {
		t.Error("default vocabulary missing the -1 literal")
	}
}

func TestLoadVocabularyBadPath(t *testing.T) {
	t.Setenv("VOCAB_PATH", "/nonexistent/vocab.yml")
	if _, err := loadVocabulary(); err == nil {
		t.Error("loadVocabulary() should fail for a missing file")
	}
}
