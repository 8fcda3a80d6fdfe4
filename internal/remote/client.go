package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/voxlink-ai/voxlink/internal/domain"
)

// Client talks to the hosted voice-agent platform. Each instance is bound
// to a single tenant's platform API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

type createAgentResponse struct {
	AgentID string `json:"agent_id"`
}

type listAgentsResponse struct {
	Agents []domain.RemoteAgent `json:"agents"`
}

func (c *Client) CreateAgent(ctx context.Context, p domain.RemoteAgentPayload) (string, error) {
	var result createAgentResponse
	if err := c.do(ctx, http.MethodPost, "/v1/agents", p, &result); err != nil {
		return "", err
	}
	if result.AgentID == "" {
		return "", &APIError{Message: "create response missing agent_id"}
	}
	return result.AgentID, nil
}

func (c *Client) GetAgent(ctx context.Context, remoteID string) (*domain.RemoteAgent, error) {
	var result domain.RemoteAgent
	if err := c.do(ctx, http.MethodGet, "/v1/agents/"+remoteID, nil, &result); err != nil {
		return nil, err
	}
	if result.RemoteID == "" {
		result.RemoteID = remoteID
	}
	return &result, nil
}

func (c *Client) UpdateAgent(ctx context.Context, remoteID string, p domain.RemoteAgentPayload) (*domain.RemoteAgent, error) {
	var result domain.RemoteAgent
	if err := c.do(ctx, http.MethodPatch, "/v1/agents/"+remoteID, p, &result); err != nil {
		return nil, err
	}
	if result.RemoteID == "" {
		result.RemoteID = remoteID
	}
	return &result, nil
}

func (c *Client) DeleteAgent(ctx context.Context, remoteID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/agents/"+remoteID, nil, nil)
}

func (c *Client) ListAgents(ctx context.Context) ([]domain.RemoteAgent, error) {
	var result listAgentsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/agents", nil, &result); err != nil {
		return nil, err
	}
	return result.Agents, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("unmarshal response: %v", err)}
		}
	}
	return nil
}
