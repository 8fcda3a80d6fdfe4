package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/voxlink-ai/voxlink/internal/domain"
)

// StatusService computes the drift report between the two stores. It reads
// both sides and never mutates either.
type StatusService struct {
	agents domain.AgentStore
}

func NewStatusService(agents domain.AgentStore) *StatusService {
	return &StatusService{agents: agents}
}

// ComputeSyncStatus partitions the tenant's agents into linked, local-only
// and remote-only. Linked pairs are matched by remote id only; field-level
// drift inside a pair is not inspected.
func (s *StatusService) ComputeSyncStatus(ctx context.Context, gw domain.RemoteGateway, tenantID uuid.UUID) (*domain.SyncStatus, error) {
	locals, err := s.agents.ListByTenant(ctx, tenantID, domain.ListOpts{})
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}

	resources, err := gw.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list remote agents: %w", err)
	}

	remoteByID := make(map[string]domain.RemoteAgent, len(resources))
	for _, res := range resources {
		remoteByID[res.RemoteID] = res
	}

	status := &domain.SyncStatus{
		Linked:     []domain.LinkedAgent{},
		LocalOnly:  []domain.Agent{},
		RemoteOnly: []domain.RemoteAgentRef{},
	}

	matched := make(map[string]bool, len(locals))
	for _, a := range locals {
		if !a.Linked() {
			status.LocalOnly = append(status.LocalOnly, a)
			continue
		}
		if _, ok := remoteByID[*a.RemoteID]; ok {
			matched[*a.RemoteID] = true
			status.Linked = append(status.Linked, domain.LinkedAgent{
				LocalID:     a.ID,
				RemoteID:    *a.RemoteID,
				DisplayName: a.DisplayName,
			})
			continue
		}
		// Linked but the remote counterpart is gone: the row is drifted,
		// not local-only, yet it has no remote match either. It counts as
		// local-only for the partition so the drift is visible.
		status.LocalOnly = append(status.LocalOnly, a)
	}

	for _, res := range resources {
		if !matched[res.RemoteID] {
			status.RemoteOnly = append(status.RemoteOnly, domain.RemoteAgentRef{
				RemoteID: res.RemoteID,
				Name:     res.Name,
			})
		}
	}

	status.IsFullySynced = len(status.LocalOnly) == 0 && len(status.RemoteOnly) == 0

	return status, nil
}
