package llm

import "testing"

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantNil   bool
		wantErr   bool
		wantwhich string
	}{
		{
			name:      "openai",
			config:    Config{Provider: "openai", APIKey: "test-key"},
			wantwhich: "openai",
		},
		{
			name:      "anthropic",
			config:    Config{Provider: "anthropic", APIKey: "test-key"},
			wantwhich: "anthropic",
		},
		{
			name:      "claude alias",
			config:    Config{Provider: "claude", APIKey: "test-key"},
			wantwhich: "anthropic",
		},
		{
			name:      "ollama",
			config:    Config{Provider: "ollama", Model: "llama3.1"},
			wantwhich: "ollama",
		},
		{
			name:    "empty disables model path",
			config:  Config{Provider: ""},
			wantNil: true,
		},
		{
			name:    "unknown provider",
			config:  Config{Provider: "bard"},
			wantErr: true,
		},
		{
			name:    "openai without key",
			config:  Config{Provider: "openai"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider failed: %v", err)
			}
			if tt.wantNil {
				if p != nil {
					t.Fatalf("Expected nil provider, got %s", p.Name())
				}
				return
			}
			if p == nil {
				t.Fatal("Expected provider, got nil")
			}
			if p.Name() != tt.wantwhich {
				t.Errorf("Expected provider %s, got %s", tt.wantwhich, p.Name())
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "" {
		t.Errorf("Expected model path disabled by default, got provider %q", cfg.Provider)
	}
	if cfg.Timeout != 30 {
		t.Errorf("Expected 30s timeout, got %d", cfg.Timeout)
	}
	if cfg.MaxTokens != 2000 {
		t.Errorf("Expected 2000 max tokens, got %d", cfg.MaxTokens)
	}
}
