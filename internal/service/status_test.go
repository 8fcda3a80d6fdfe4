package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxlink-ai/voxlink/internal/domain"
	"github.com/voxlink-ai/voxlink/internal/remote"
)

func TestComputeSyncStatus_Partition(t *testing.T) {
	agents := newMockAgentStore()
	gw := remote.NewMockGateway()
	tenantID := uuid.New()

	gw.Seed(remoteResource("ra_1", "Linked"))
	gw.Seed(remoteResource("ra_2", "Remote Only"))

	linkedID := "ra_1"
	require.NoError(t, agents.Create(context.Background(), &domain.Agent{
		TenantID: tenantID, RemoteID: &linkedID, DisplayName: "Linked", Config: validDraft().Config,
	}))
	require.NoError(t, agents.Create(context.Background(), &domain.Agent{
		TenantID: tenantID, DisplayName: "Local Draft", Config: validDraft().Config,
	}))
	// Linked row whose remote counterpart no longer exists.
	orphanID := "ra_gone"
	require.NoError(t, agents.Create(context.Background(), &domain.Agent{
		TenantID: tenantID, RemoteID: &orphanID, DisplayName: "Orphan", Config: validDraft().Config,
	}))

	status, err := NewStatusService(agents).ComputeSyncStatus(context.Background(), gw, tenantID)
	require.NoError(t, err)

	require.Len(t, status.Linked, 1)
	assert.Equal(t, "ra_1", status.Linked[0].RemoteID)

	require.Len(t, status.RemoteOnly, 1)
	assert.Equal(t, "ra_2", status.RemoteOnly[0].RemoteID)

	names := make([]string, 0, len(status.LocalOnly))
	for _, a := range status.LocalOnly {
		names = append(names, a.DisplayName)
	}
	assert.ElementsMatch(t, []string{"Local Draft", "Orphan"}, names,
		"unlinked rows and orphaned links both surface as local-only")

	assert.False(t, status.IsFullySynced)

	// Every local row and every remote resource lands in exactly one bucket.
	assert.Equal(t, 3, len(status.Linked)+len(status.LocalOnly))
	assert.Equal(t, 2, len(status.Linked)+len(status.RemoteOnly))
}

func TestComputeSyncStatus_FullySynced(t *testing.T) {
	agents := newMockAgentStore()
	gw := remote.NewMockGateway()
	tenantID := uuid.New()

	gw.Seed(remoteResource("ra_1", "One"))
	remoteID := "ra_1"
	require.NoError(t, agents.Create(context.Background(), &domain.Agent{
		TenantID: tenantID, RemoteID: &remoteID, DisplayName: "One", Config: validDraft().Config,
	}))

	status, err := NewStatusService(agents).ComputeSyncStatus(context.Background(), gw, tenantID)
	require.NoError(t, err)

	assert.True(t, status.IsFullySynced)
	assert.Len(t, status.Linked, 1)
	assert.Empty(t, status.LocalOnly)
	assert.Empty(t, status.RemoteOnly)
}

func TestComputeSyncStatus_EmptyBothSides(t *testing.T) {
	status, err := NewStatusService(newMockAgentStore()).ComputeSyncStatus(context.Background(), remote.NewMockGateway(), uuid.New())
	require.NoError(t, err)

	assert.True(t, status.IsFullySynced)
	assert.NotNil(t, status.Linked)
	assert.NotNil(t, status.LocalOnly)
	assert.NotNil(t, status.RemoteOnly)
}

func TestComputeSyncStatus_RemoteUnavailable(t *testing.T) {
	gw := remote.NewMockGateway()
	gw.ListErr = &remote.APIError{StatusCode: 503, Message: "unavailable"}

	_, err := NewStatusService(newMockAgentStore()).ComputeSyncStatus(context.Background(), gw, uuid.New())
	var apiErr *remote.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestComputeSyncStatus_TenantIsolation(t *testing.T) {
	agents := newMockAgentStore()
	gw := remote.NewMockGateway()

	otherTenant := uuid.New()
	require.NoError(t, agents.Create(context.Background(), &domain.Agent{
		TenantID: otherTenant, DisplayName: "Other", Config: validDraft().Config,
	}))

	status, err := NewStatusService(agents).ComputeSyncStatus(context.Background(), gw, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, status.LocalOnly, "another tenant's rows never appear")
}
