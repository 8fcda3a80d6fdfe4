package domain

import (
	"context"

	"github.com/google/uuid"
)

type TenantStore interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*Tenant, error)
}

// ListOpts filters tenant-scoped agent listings.
type ListOpts struct {
	Status *AgentStatus
}

type AgentStore interface {
	Create(ctx context.Context, a *Agent) error
	GetByID(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*Agent, error)
	GetByRemoteID(ctx context.Context, remoteID string, tenantID uuid.UUID) (*Agent, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, opts ListOpts) ([]Agent, error)
	Update(ctx context.Context, a *Agent) error
	Delete(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error
}

// RemoteGateway is the platform's agent API, pre-bound to one tenant's
// credential. Callers obtain instances from a GatewayFactory and pass them
// into each engine operation; the engine never resolves credentials itself.
type RemoteGateway interface {
	CreateAgent(ctx context.Context, p RemoteAgentPayload) (string, error)
	GetAgent(ctx context.Context, remoteID string) (*RemoteAgent, error)
	UpdateAgent(ctx context.Context, remoteID string, p RemoteAgentPayload) (*RemoteAgent, error)
	DeleteAgent(ctx context.Context, remoteID string) error
	ListAgents(ctx context.Context) ([]RemoteAgent, error)
}

type GatewayFactory interface {
	ForTenant(remoteAPIKey string) RemoteGateway
}
