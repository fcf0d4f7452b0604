package llm

import "testing"

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantName string
		wantNil  bool
		wantErr  bool
	}{
		{name: "openai", config: Config{Provider: "openai", APIKey: "test-key"}, wantName: "openai"},
		{name: "anthropic", config: Config{Provider: "anthropic", APIKey: "test-key"}, wantName: "anthropic"},
		{name: "claude alias", config: Config{Provider: "claude", APIKey: "test-key"}, wantName: "anthropic"},
		{name: "ollama", config: Config{Provider: "ollama"}, wantName: "ollama"},
		{name: "case insensitive", config: Config{Provider: "OpenAI", APIKey: "test-key"}, wantName: "openai"},
		{name: "disabled", config: Config{Provider: ""}, wantNil: true},
		{name: "unknown", config: Config{Provider: "bard"}, wantErr: true},
		{name: "openai without key", config: Config{Provider: "openai"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider failed: %v", err)
			}
			if tt.wantNil {
				if provider != nil {
					t.Fatalf("expected nil provider, got %v", provider)
				}
				return
			}
			if provider.Name() != tt.wantName {
				t.Errorf("expected provider %q, got %q", tt.wantName, provider.Name())
			}
		})
	}
}
