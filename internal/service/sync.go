package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/voxlink-ai/voxlink/internal/domain"
	"github.com/voxlink-ai/voxlink/internal/remote"
	"github.com/voxlink-ai/voxlink/internal/store"
	"github.com/voxlink-ai/voxlink/internal/translate"
	"go.uber.org/zap"
)

var (
	ErrAgentNotFound       = errors.New("agent not found")
	ErrRemoteAgentNotFound = errors.New("remote agent not found")
	ErrRemoteIDConflict    = errors.New("another agent is already linked to this remote id")
)

// SyncService reconciles the local catalog with the remote platform. It is
// the only component that touches both stores in one operation. Every
// method takes an already-bound gateway; the service never resolves
// credentials itself.
type SyncService struct {
	agents domain.AgentStore
	logger *zap.Logger
}

func NewSyncService(agents domain.AgentStore, logger *zap.Logger) *SyncService {
	return &SyncService{agents: agents, logger: logger}
}

// CreateLinked persists a draft and pushes it to the platform. If the
// remote create fails the draft row is deleted again, so a failed create
// leaves no trace locally.
func (s *SyncService) CreateLinked(ctx context.Context, gw domain.RemoteGateway, tenantID uuid.UUID, draft domain.AgentDraft) (*domain.Agent, error) {
	payload, err := translate.ToRemotePayload(draft.DisplayName, draft.Config)
	if err != nil {
		return nil, err
	}

	agent := &domain.Agent{
		TenantID:    tenantID,
		DisplayName: draft.DisplayName,
		Status:      draft.Status,
		Config:      draft.Config,
	}
	if agent.Status == "" {
		agent.Status = domain.AgentStatusDraft
	}

	if err := s.agents.Create(ctx, agent); err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	remoteID, err := gw.CreateAgent(ctx, payload)
	if err != nil {
		// Compensate: the draft row must not survive a failed remote create.
		if delErr := s.agents.Delete(ctx, agent.ID, tenantID); delErr != nil {
			s.logger.Error("compensation failed, orphan draft row remains",
				zap.String("agent_id", agent.ID.String()),
				zap.Error(delErr))
		}
		return nil, fmt.Errorf("remote create: %w", err)
	}

	agent.RemoteID = &remoteID
	if err := s.agents.Update(ctx, agent); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrRemoteIDConflict
		}
		// The remote resource now exists but is unlinked. Operators re-link
		// via import; nothing to compensate safely here.
		s.logger.Error("remote agent created but local link failed",
			zap.String("agent_id", agent.ID.String()),
			zap.String("remote_id", remoteID),
			zap.Error(err))
		return nil, fmt.Errorf("link agent to %s: %w", remoteID, err)
	}

	return agent, nil
}

// UpdateLinked applies a patch locally first, then pushes the full desired
// configuration to the platform. A remote failure does not roll back the
// local change: the result reports degraded sync instead. Updating an
// unlinked row promotes it by creating the remote resource.
func (s *SyncService) UpdateLinked(ctx context.Context, gw domain.RemoteGateway, tenantID uuid.UUID, localID uuid.UUID, patch domain.AgentPatch) (*domain.UpdateResult, error) {
	agent, err := s.agents.GetByID(ctx, localID, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}

	applyPatch(agent, patch)

	// Validate before any mutation so an untranslatable patch changes nothing.
	payload, err := translate.ToRemotePayload(agent.DisplayName, agent.Config)
	if err != nil {
		return nil, err
	}

	if err := s.agents.Update(ctx, agent); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("update agent: %w", err)
	}

	if !agent.Linked() {
		return s.promote(ctx, gw, agent, payload)
	}

	if _, err := gw.UpdateAgent(ctx, *agent.RemoteID, payload); err != nil {
		s.logger.Warn("remote update failed, local change kept",
			zap.String("agent_id", agent.ID.String()),
			zap.String("remote_id", *agent.RemoteID),
			zap.Error(err))
		return &domain.UpdateResult{Agent: agent, RemoteSynced: false, RemoteError: err.Error()}, nil
	}

	return &domain.UpdateResult{Agent: agent, RemoteSynced: true}, nil
}

// promote creates the remote counterpart for a row that was never linked.
// Unlike CreateLinked there is nothing to compensate: the row predates the
// call, so a remote failure is reported as degraded sync.
func (s *SyncService) promote(ctx context.Context, gw domain.RemoteGateway, agent *domain.Agent, payload domain.RemoteAgentPayload) (*domain.UpdateResult, error) {
	remoteID, err := gw.CreateAgent(ctx, payload)
	if err != nil {
		s.logger.Warn("promotion failed, agent stays local-only",
			zap.String("agent_id", agent.ID.String()),
			zap.Error(err))
		return &domain.UpdateResult{Agent: agent, RemoteSynced: false, RemoteError: err.Error()}, nil
	}

	agent.RemoteID = &remoteID
	if err := s.agents.Update(ctx, agent); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrRemoteIDConflict
		}
		return nil, fmt.Errorf("link agent to %s: %w", remoteID, err)
	}

	return &domain.UpdateResult{Agent: agent, RemoteSynced: true}, nil
}

// DeleteLinked removes the local row unconditionally. The remote delete is
// attempted first and its failure is captured in the result, never raised.
func (s *SyncService) DeleteLinked(ctx context.Context, gw domain.RemoteGateway, tenantID uuid.UUID, localID uuid.UUID) (*domain.DeleteResult, error) {
	agent, err := s.agents.GetByID(ctx, localID, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}

	result := &domain.DeleteResult{}

	if agent.Linked() {
		if err := gw.DeleteAgent(ctx, *agent.RemoteID); err != nil {
			// Missing on the platform means there is nothing left to orphan.
			if errors.Is(err, remote.ErrNotFound) {
				result.RemoteDeleted = true
			} else {
				result.RemoteError = err.Error()
				s.logger.Warn("remote delete failed, remote resource orphaned",
					zap.String("agent_id", agent.ID.String()),
					zap.String("remote_id", *agent.RemoteID),
					zap.Error(err))
			}
		} else {
			result.RemoteDeleted = true
		}
	}

	if err := s.agents.Delete(ctx, localID, tenantID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("delete agent: %w", err)
	}
	result.LocalDeleted = true

	return result, nil
}

// ImportRemote pulls one remote resource into the catalog. The remote side
// is authoritative on this path: an existing linked row is overwritten.
func (s *SyncService) ImportRemote(ctx context.Context, gw domain.RemoteGateway, tenantID uuid.UUID, remoteID string) (*domain.Agent, error) {
	res, err := gw.GetAgent(ctx, remoteID)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return nil, ErrRemoteAgentNotFound
		}
		return nil, fmt.Errorf("fetch remote agent: %w", err)
	}

	agent, _, err := s.importResource(ctx, tenantID, res)
	return agent, err
}

// SyncAll imports every remote resource under the tenant's credential.
// Per-item failures are recorded and do not abort the remaining items.
func (s *SyncService) SyncAll(ctx context.Context, gw domain.RemoteGateway, tenantID uuid.UUID) (*domain.SyncReport, error) {
	resources, err := gw.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list remote agents: %w", err)
	}

	report := &domain.SyncReport{Details: make([]domain.SyncItemResult, 0, len(resources))}

	for i := range resources {
		res := &resources[i]
		agent, created, err := s.importResource(ctx, tenantID, res)
		if err != nil {
			report.Errors++
			report.Details = append(report.Details, domain.SyncItemResult{
				RemoteID: res.RemoteID,
				Action:   domain.SyncActionFailed,
				Error:    err.Error(),
			})
			s.logger.Warn("sync item failed",
				zap.String("remote_id", res.RemoteID),
				zap.Error(err))
			continue
		}

		item := domain.SyncItemResult{RemoteID: res.RemoteID, LocalID: &agent.ID}
		if created {
			report.Created++
			item.Action = domain.SyncActionCreated
		} else {
			report.Updated++
			item.Action = domain.SyncActionUpdated
		}
		report.Details = append(report.Details, item)
	}

	s.logger.Info("account sync completed",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("errors", report.Errors))

	return report, nil
}

// importResource upserts one remote resource. The created flag is decided
// by whether a linked row existed before the write, never by comparing
// timestamps afterward.
func (s *SyncService) importResource(ctx context.Context, tenantID uuid.UUID, res *domain.RemoteAgent) (*domain.Agent, bool, error) {
	name, cfg := translate.FromRemoteResource(res)

	existing, err := s.agents.GetByRemoteID(ctx, res.RemoteID, tenantID)
	if err == nil {
		existing.DisplayName = name
		existing.Config = cfg
		if err := s.agents.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("overwrite agent: %w", err)
		}
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	remoteID := res.RemoteID
	agent := &domain.Agent{
		TenantID:    tenantID,
		RemoteID:    &remoteID,
		DisplayName: name,
		Status:      domain.AgentStatusActive,
		Config:      cfg,
	}
	if err := s.agents.Create(ctx, agent); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, false, ErrRemoteIDConflict
		}
		return nil, false, fmt.Errorf("create imported agent: %w", err)
	}
	return agent, true, nil
}

// GetByID returns one catalog row.
func (s *SyncService) GetByID(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*domain.Agent, error) {
	agent, err := s.agents.GetByID(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	return agent, nil
}

// GetByRemoteID resolves a catalog row by its platform id. Inbound-call
// webhooks use this before acting on an agent.
func (s *SyncService) GetByRemoteID(ctx context.Context, remoteID string, tenantID uuid.UUID) (*domain.Agent, error) {
	agent, err := s.agents.GetByRemoteID(ctx, remoteID, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	return agent, nil
}

// List returns the tenant's catalog rows, optionally filtered by status.
func (s *SyncService) List(ctx context.Context, tenantID uuid.UUID, opts domain.ListOpts) ([]domain.Agent, error) {
	return s.agents.ListByTenant(ctx, tenantID, opts)
}

func applyPatch(agent *domain.Agent, patch domain.AgentPatch) {
	if patch.DisplayName != nil {
		agent.DisplayName = *patch.DisplayName
	}
	if patch.Status != nil {
		agent.Status = *patch.Status
	}
	if patch.Config != nil {
		agent.Config = *patch.Config
	}
}
