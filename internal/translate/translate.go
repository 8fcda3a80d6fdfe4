// Package translate maps between the local agent configuration schema and
// the remote platform's payload schema. All functions are deterministic
// and side-effect free; this is the only place either schema crosses into
// the other.
package translate

import (
	"fmt"
	"strings"

	"github.com/voxlink-ai/voxlink/internal/domain"
)

// Documented bounds for numeric configuration fields. Out-of-range values
// are clamped, not rejected, so translation stays total over
// malformed-but-plausible input.
const (
	MinTemperature     float32 = 0
	MaxTemperature     float32 = 1
	DefaultTemperature float32 = 0.7

	MinTokenLimit     = 16
	MaxTokenLimit     = 8192
	DefaultTokenLimit = 1024

	MinCallDurationSeconds     = 60
	MaxCallDurationSeconds     = 7200
	DefaultCallDurationSeconds = 1800

	DefaultLanguage = "en"
)

// ValidationError means the configuration cannot produce a usable remote
// resource. It is raised before any network call and aborts the operation
// with no state changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid agent config: %s %s", e.Field, e.Reason)
}

// ToRemotePayload translates a local configuration into the platform's
// create/update payload. The voice id is the one field the platform cannot
// default; everything else is clamped or defaulted.
func ToRemotePayload(name string, cfg domain.AgentConfig) (domain.RemoteAgentPayload, error) {
	if strings.TrimSpace(cfg.VoiceID) == "" {
		return domain.RemoteAgentPayload{}, &ValidationError{Field: "voice_id", Reason: "is required"}
	}

	language := cfg.Language
	if language == "" {
		language = DefaultLanguage
	}

	return domain.RemoteAgentPayload{
		Name: name,
		ConversationConfig: domain.ConversationConfig{
			Agent: domain.AgentSection{
				Prompt: domain.PromptSection{
					Prompt:      cfg.Prompt,
					LLM:         joinLLM(cfg.LLMProvider, cfg.LLMModel),
					Temperature: clampTemperature(cfg.Temperature),
					MaxTokens:   clampTokenLimit(cfg.MaxTokens),
				},
				FirstMessage: cfg.FirstMessage,
				Language:     language,
			},
			TTS: domain.TTSSection{
				VoiceID: cfg.VoiceID,
			},
			Conversation: domain.ConversationSection{
				MaxDurationSeconds: clampCallDuration(cfg.MaxCallDurationSeconds),
				RecordAudio:        cfg.RecordCalls,
				AllowInterruptions: cfg.AllowInterruptions,
			},
		},
	}, nil
}

// FromRemoteResource maps a remote resource onto local fields. It never
// fails: unknown or missing remote fields become empty strings or defaults
// so remote-first import is always possible.
func FromRemoteResource(res *domain.RemoteAgent) (string, domain.AgentConfig) {
	cc := res.ConversationConfig
	provider, model := splitLLM(cc.Agent.Prompt.LLM)

	language := cc.Agent.Language
	if language == "" {
		language = DefaultLanguage
	}

	return res.Name, domain.AgentConfig{
		VoiceID:                cc.TTS.VoiceID,
		Prompt:                 cc.Agent.Prompt.Prompt,
		FirstMessage:           cc.Agent.FirstMessage,
		Language:               language,
		LLMProvider:            provider,
		LLMModel:               model,
		Temperature:            clampTemperature(cc.Agent.Prompt.Temperature),
		MaxTokens:              clampTokenLimit(cc.Agent.Prompt.MaxTokens),
		MaxCallDurationSeconds: clampCallDuration(cc.Conversation.MaxDurationSeconds),
		RecordCalls:            cc.Conversation.RecordAudio,
		AllowInterruptions:     cc.Conversation.AllowInterruptions,
	}
}

func clampTemperature(t float32) float32 {
	if t == 0 {
		return DefaultTemperature
	}
	if t < MinTemperature {
		return MinTemperature
	}
	if t > MaxTemperature {
		return MaxTemperature
	}
	return t
}

func clampTokenLimit(n int) int {
	if n == 0 {
		return DefaultTokenLimit
	}
	if n < MinTokenLimit {
		return MinTokenLimit
	}
	if n > MaxTokenLimit {
		return MaxTokenLimit
	}
	return n
}

func clampCallDuration(n int) int {
	if n == 0 {
		return DefaultCallDurationSeconds
	}
	if n < MinCallDurationSeconds {
		return MinCallDurationSeconds
	}
	if n > MaxCallDurationSeconds {
		return MaxCallDurationSeconds
	}
	return n
}

// joinLLM produces the platform's single "provider/model" identifier.
func joinLLM(provider, model string) string {
	if provider == "" {
		return model
	}
	if model == "" {
		return provider
	}
	return provider + "/" + model
}

func splitLLM(llm string) (provider, model string) {
	if llm == "" {
		return "", ""
	}
	parts := strings.SplitN(llm, "/", 2)
	if len(parts) == 1 {
		return "", parts[0]
	}
	return parts[0], parts[1]
}
