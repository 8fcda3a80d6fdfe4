package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/voxlink-ai/voxlink/internal/domain"
)

func testPayload() domain.RemoteAgentPayload {
	return domain.RemoteAgentPayload{
		Name: "Support Line",
		ConversationConfig: domain.ConversationConfig{
			Agent: domain.AgentSection{
				Prompt: domain.PromptSection{Prompt: "Be helpful.", LLM: "openai/gpt-4o-mini"},
			},
			TTS: domain.TTSSection{VoiceID: "v1"},
		},
	}
}

func TestClientCreateAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/agents" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "sk_test" {
			t.Errorf("api key header = %q", got)
		}
		var p domain.RemoteAgentPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if p.Name != "Support Line" {
			t.Errorf("payload name = %q", p.Name)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"agent_id": "ra_123"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	id, err := client.CreateAgent(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "ra_123" {
		t.Errorf("agent id = %q, want ra_123", id)
	}
}

func TestClientCreateAgent_MissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	_, err := client.CreateAgent(context.Background(), testPayload())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
}

func TestClientGetAgent_FillsRemoteID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/agents/ra_9" {
			t.Errorf("path = %q", r.URL.Path)
		}
		// Some platform responses omit the id field.
		_ = json.NewEncoder(w).Encode(map[string]string{"name": "Hosted"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	res, err := client.GetAgent(context.Background(), "ra_9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RemoteID != "ra_9" {
		t.Errorf("remote id = %q, want ra_9", res.RemoteID)
	}
	if res.Name != "Hosted" {
		t.Errorf("name = %q", res.Name)
	}
}

func TestClientGetAgent_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such agent", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	_, err := client.GetAgent(context.Background(), "ra_missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	_, err := client.ListAgents(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
}

func TestClientNetworkError(t *testing.T) {
	// Server closed before the call so the dial fails.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, "sk_test")
	_, err := client.ListAgents(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("network errors carry status 0, got %d", apiErr.StatusCode)
	}
}

func TestClientDeleteAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/v1/agents/ra_1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	if err := client.DeleteAgent(context.Background(), "ra_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClientListAgents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"agents": []map[string]string{
				{"agent_id": "ra_1", "name": "One"},
				{"agent_id": "ra_2", "name": "Two"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	agents, err := client.ListAgents(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(agents) != 2 {
		t.Fatalf("got %d agents, want 2", len(agents))
	}
	if agents[0].RemoteID != "ra_1" || agents[1].RemoteID != "ra_2" {
		t.Errorf("unexpected ids: %q, %q", agents[0].RemoteID, agents[1].RemoteID)
	}
}
