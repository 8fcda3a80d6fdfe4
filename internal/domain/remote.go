package domain

// RemoteAgent is the platform-hosted executable agent resource, addressed
// by the platform-assigned RemoteID.
type RemoteAgent struct {
	RemoteID           string             `json:"agent_id"`
	Name               string             `json:"name"`
	ConversationConfig ConversationConfig `json:"conversation_config"`
	PhoneNumbers       []PhoneNumber      `json:"phone_numbers,omitempty"`
	Tags               []string           `json:"tags,omitempty"`
}

// RemoteAgentPayload is the body sent to the platform on create/update.
type RemoteAgentPayload struct {
	Name               string             `json:"name"`
	ConversationConfig ConversationConfig `json:"conversation_config"`
	Tags               []string           `json:"tags,omitempty"`
}

// ConversationConfig is the platform's nested agent configuration. It is
// produced and consumed only by the translate package.
type ConversationConfig struct {
	Agent        AgentSection        `json:"agent"`
	TTS          TTSSection          `json:"tts"`
	Conversation ConversationSection `json:"conversation"`
}

type AgentSection struct {
	Prompt       PromptSection `json:"prompt"`
	FirstMessage string        `json:"first_message,omitempty"`
	Language     string        `json:"language,omitempty"`
}

// PromptSection holds the LLM settings. LLM is the platform's single
// "provider/model" identifier.
type PromptSection struct {
	Prompt      string  `json:"prompt"`
	LLM         string  `json:"llm,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

type TTSSection struct {
	VoiceID string `json:"voice_id"`
}

type ConversationSection struct {
	MaxDurationSeconds int  `json:"max_duration_seconds,omitempty"`
	RecordAudio        bool `json:"record_audio"`
	AllowInterruptions bool `json:"allow_interruptions"`
}

type PhoneNumber struct {
	Number string `json:"number"`
	Label  string `json:"label,omitempty"`
}
