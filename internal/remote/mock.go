package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/voxlink-ai/voxlink/internal/domain"
)

// MockGateway is a configurable in-memory gateway for testing.
// Set the error fields to force the corresponding call to fail.
type MockGateway struct {
	mu     sync.Mutex
	agents map[string]domain.RemoteAgent
	nextID int

	CreateErr error
	GetErr    error
	UpdateErr error
	DeleteErr error
	ListErr   error

	// Call tracking for assertions
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

func NewMockGateway() *MockGateway {
	return &MockGateway{agents: make(map[string]domain.RemoteAgent)}
}

// Seed installs a resource without going through CreateAgent.
func (m *MockGateway) Seed(res domain.RemoteAgent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.agents[res.RemoteID] = res
}

// Has reports whether a resource exists on the mock platform.
func (m *MockGateway) Has(remoteID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.agents[remoteID]
	return ok
}

func (m *MockGateway) CreateAgent(ctx context.Context, p domain.RemoteAgentPayload) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.nextID++
	id := fmt.Sprintf("ra_%04d", m.nextID)
	m.agents[id] = domain.RemoteAgent{
		RemoteID:           id,
		Name:               p.Name,
		ConversationConfig: p.ConversationConfig,
		Tags:               p.Tags,
	}
	return id, nil
}

func (m *MockGateway) GetAgent(ctx context.Context, remoteID string) (*domain.RemoteAgent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	res, ok := m.agents[remoteID]
	if !ok {
		return nil, ErrNotFound
	}
	return &res, nil
}

func (m *MockGateway) UpdateAgent(ctx context.Context, remoteID string, p domain.RemoteAgentPayload) (*domain.RemoteAgent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	res, ok := m.agents[remoteID]
	if !ok {
		return nil, ErrNotFound
	}
	res.Name = p.Name
	res.ConversationConfig = p.ConversationConfig
	res.Tags = p.Tags
	m.agents[remoteID] = res
	return &res, nil
}

func (m *MockGateway) DeleteAgent(ctx context.Context, remoteID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.agents[remoteID]; !ok {
		return ErrNotFound
	}
	delete(m.agents, remoteID)
	return nil
}

func (m *MockGateway) ListAgents(ctx context.Context) ([]domain.RemoteAgent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	agents := make([]domain.RemoteAgent, 0, len(m.agents))
	for _, res := range m.agents {
		agents = append(agents, res)
	}
	return agents, nil
}
