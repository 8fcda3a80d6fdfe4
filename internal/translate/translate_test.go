package translate

import (
	"errors"
	"strings"
	"testing"

	"github.com/voxlink-ai/voxlink/internal/domain"
)

func TestToRemotePayload_RequiresVoiceID(t *testing.T) {
	for _, voice := range []string{"", "   ", "\t"} {
		_, err := ToRemotePayload("Agent", domain.AgentConfig{VoiceID: voice})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("voice %q: expected ValidationError, got %v", voice, err)
		}
		if vErr.Field != "voice_id" {
			t.Errorf("voice %q: field = %q, want voice_id", voice, vErr.Field)
		}
	}
}

func TestToRemotePayload_Mapping(t *testing.T) {
	cfg := domain.AgentConfig{
		VoiceID:                "v1",
		Prompt:                 "Be helpful.",
		FirstMessage:           "Hello!",
		Language:               "de",
		LLMProvider:            "openai",
		LLMModel:               "gpt-4o-mini",
		Temperature:            0.3,
		MaxTokens:              2048,
		MaxCallDurationSeconds: 600,
		RecordCalls:            true,
		AllowInterruptions:     true,
	}

	payload, err := ToRemotePayload("Support Line", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cc := payload.ConversationConfig
	if payload.Name != "Support Line" {
		t.Errorf("name = %q", payload.Name)
	}
	if cc.TTS.VoiceID != "v1" {
		t.Errorf("voice_id = %q", cc.TTS.VoiceID)
	}
	if cc.Agent.Prompt.LLM != "openai/gpt-4o-mini" {
		t.Errorf("llm = %q", cc.Agent.Prompt.LLM)
	}
	if cc.Agent.Language != "de" {
		t.Errorf("language = %q", cc.Agent.Language)
	}
	if cc.Agent.Prompt.Temperature != 0.3 {
		t.Errorf("temperature = %v", cc.Agent.Prompt.Temperature)
	}
	if cc.Conversation.MaxDurationSeconds != 600 {
		t.Errorf("max_duration_seconds = %d", cc.Conversation.MaxDurationSeconds)
	}
	if !cc.Conversation.RecordAudio || !cc.Conversation.AllowInterruptions {
		t.Errorf("conversation flags not carried: %+v", cc.Conversation)
	}
}

func TestToRemotePayload_DefaultsAndClamps(t *testing.T) {
	tests := []struct {
		name         string
		cfg          domain.AgentConfig
		wantTemp     float32
		wantTokens   int
		wantDuration int
		wantLanguage string
	}{
		{
			name:         "zero values take defaults",
			cfg:          domain.AgentConfig{VoiceID: "v1"},
			wantTemp:     DefaultTemperature,
			wantTokens:   DefaultTokenLimit,
			wantDuration: DefaultCallDurationSeconds,
			wantLanguage: DefaultLanguage,
		},
		{
			name: "values above range clamp to max",
			cfg: domain.AgentConfig{
				VoiceID:                "v1",
				Temperature:            2.5,
				MaxTokens:              100000,
				MaxCallDurationSeconds: 90000,
				Language:               "fr",
			},
			wantTemp:     MaxTemperature,
			wantTokens:   MaxTokenLimit,
			wantDuration: MaxCallDurationSeconds,
			wantLanguage: "fr",
		},
		{
			name: "values below range clamp to min",
			cfg: domain.AgentConfig{
				VoiceID:                "v1",
				Temperature:            -1,
				MaxTokens:              1,
				MaxCallDurationSeconds: 5,
			},
			wantTemp:     MinTemperature,
			wantTokens:   MinTokenLimit,
			wantDuration: MinCallDurationSeconds,
			wantLanguage: DefaultLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := ToRemotePayload("Agent", tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			cc := payload.ConversationConfig
			if cc.Agent.Prompt.Temperature != tt.wantTemp {
				t.Errorf("temperature = %v, want %v", cc.Agent.Prompt.Temperature, tt.wantTemp)
			}
			if cc.Agent.Prompt.MaxTokens != tt.wantTokens {
				t.Errorf("max_tokens = %d, want %d", cc.Agent.Prompt.MaxTokens, tt.wantTokens)
			}
			if cc.Conversation.MaxDurationSeconds != tt.wantDuration {
				t.Errorf("max_duration_seconds = %d, want %d", cc.Conversation.MaxDurationSeconds, tt.wantDuration)
			}
			if cc.Agent.Language != tt.wantLanguage {
				t.Errorf("language = %q, want %q", cc.Agent.Language, tt.wantLanguage)
			}
		})
	}
}

func TestFromRemoteResource(t *testing.T) {
	res := &domain.RemoteAgent{
		RemoteID: "ra_1",
		Name:     "Hosted Agent",
		ConversationConfig: domain.ConversationConfig{
			Agent: domain.AgentSection{
				Prompt: domain.PromptSection{
					Prompt:      "Stay on script.",
					LLM:         "anthropic/claude-sonnet",
					Temperature: 0.5,
					MaxTokens:   512,
				},
				FirstMessage: "Hi there",
				Language:     "es",
			},
			TTS: domain.TTSSection{VoiceID: "v9"},
			Conversation: domain.ConversationSection{
				MaxDurationSeconds: 900,
				RecordAudio:        true,
			},
		},
	}

	name, cfg := FromRemoteResource(res)
	if name != "Hosted Agent" {
		t.Errorf("name = %q", name)
	}
	if cfg.VoiceID != "v9" {
		t.Errorf("voice_id = %q", cfg.VoiceID)
	}
	if cfg.LLMProvider != "anthropic" || cfg.LLMModel != "claude-sonnet" {
		t.Errorf("llm = %q/%q", cfg.LLMProvider, cfg.LLMModel)
	}
	if cfg.Language != "es" {
		t.Errorf("language = %q", cfg.Language)
	}
	if cfg.MaxCallDurationSeconds != 900 {
		t.Errorf("max_call_duration_seconds = %d", cfg.MaxCallDurationSeconds)
	}
	if !cfg.RecordCalls {
		t.Error("record_calls not carried")
	}
}

func TestFromRemoteResource_NeverFails(t *testing.T) {
	// A completely empty resource still maps to usable local config.
	name, cfg := FromRemoteResource(&domain.RemoteAgent{RemoteID: "ra_empty"})
	if name != "" {
		t.Errorf("name = %q, want empty", name)
	}
	if cfg.Language != DefaultLanguage {
		t.Errorf("language = %q, want %q", cfg.Language, DefaultLanguage)
	}
	if cfg.Temperature != DefaultTemperature {
		t.Errorf("temperature = %v, want %v", cfg.Temperature, DefaultTemperature)
	}
	if cfg.MaxTokens != DefaultTokenLimit {
		t.Errorf("max_tokens = %d, want %d", cfg.MaxTokens, DefaultTokenLimit)
	}
}

func TestRoundTripPreservesConfig(t *testing.T) {
	cfg := domain.AgentConfig{
		VoiceID:                "v1",
		Prompt:                 "Be brief.",
		FirstMessage:           "Hello",
		Language:               "en",
		LLMProvider:            "openai",
		LLMModel:               "gpt-4o-mini",
		Temperature:            0.4,
		MaxTokens:              256,
		MaxCallDurationSeconds: 300,
		RecordCalls:            true,
		AllowInterruptions:     true,
	}

	payload, err := ToRemotePayload("Agent", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, back := FromRemoteResource(&domain.RemoteAgent{
		RemoteID:           "ra_1",
		Name:               payload.Name,
		ConversationConfig: payload.ConversationConfig,
	})
	if back != cfg {
		t.Errorf("round trip changed config:\n got %+v\nwant %+v", back, cfg)
	}
}

func TestSplitLLM(t *testing.T) {
	tests := []struct {
		in              string
		provider, model string
	}{
		{"openai/gpt-4o-mini", "openai", "gpt-4o-mini"},
		{"gpt-4o-mini", "", "gpt-4o-mini"},
		{"", "", ""},
		{"a/b/c", "a", "b/c"},
	}
	for _, tt := range tests {
		provider, model := splitLLM(tt.in)
		if provider != tt.provider || model != tt.model {
			t.Errorf("splitLLM(%q) = %q, %q; want %q, %q", tt.in, provider, model, tt.provider, tt.model)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "voice_id", Reason: "is required"}
	if !strings.Contains(err.Error(), "voice_id") {
		t.Errorf("error message missing field: %q", err.Error())
	}
}
