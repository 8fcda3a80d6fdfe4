package domain

import (
	"time"

	"github.com/google/uuid"
)

type AgentStatus string

const (
	AgentStatusDraft    AgentStatus = "draft"
	AgentStatusActive   AgentStatus = "active"
	AgentStatusInactive AgentStatus = "inactive"
	AgentStatusTesting  AgentStatus = "testing"
)

func ValidAgentStatus(s string) bool {
	switch AgentStatus(s) {
	case AgentStatusDraft, AgentStatusActive, AgentStatusInactive, AgentStatusTesting:
		return true
	}
	return false
}

// AgentConfig is the operator-editable configuration of a voice agent.
// It is opaque to the reconciliation engine beyond being translatable
// to and from the remote platform's payload schema.
type AgentConfig struct {
	VoiceID                string  `json:"voice_id"`
	Prompt                 string  `json:"prompt"`
	FirstMessage           string  `json:"first_message,omitempty"`
	Language               string  `json:"language"`
	LLMProvider            string  `json:"llm_provider"`
	LLMModel               string  `json:"llm_model"`
	Temperature            float32 `json:"temperature"`
	MaxTokens              int     `json:"max_tokens"`
	MaxCallDurationSeconds int     `json:"max_call_duration_seconds"`
	RecordCalls            bool    `json:"record_calls"`
	AllowInterruptions     bool    `json:"allow_interruptions"`
}

// Agent is a tenant-owned catalog row. RemoteID is the sole join key to
// the hosted platform: nil means the agent exists only locally.
type Agent struct {
	ID          uuid.UUID   `json:"id"`
	TenantID    uuid.UUID   `json:"tenant_id,omitempty"`
	RemoteID    *string     `json:"remote_id,omitempty"`
	DisplayName string      `json:"display_name"`
	Status      AgentStatus `json:"status"`
	Config      AgentConfig `json:"config"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (a *Agent) Linked() bool {
	return a.RemoteID != nil && *a.RemoteID != ""
}

// AgentDraft is the operator input for creating a new agent.
type AgentDraft struct {
	DisplayName string      `json:"display_name"`
	Status      AgentStatus `json:"status,omitempty"`
	Config      AgentConfig `json:"config"`
}

// AgentPatch carries partial updates. Nil fields are left untouched;
// a non-nil Config replaces the configuration wholesale.
type AgentPatch struct {
	DisplayName *string      `json:"display_name,omitempty"`
	Status      *AgentStatus `json:"status,omitempty"`
	Config      *AgentConfig `json:"config,omitempty"`
}
