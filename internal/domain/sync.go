package domain

import "github.com/google/uuid"

// UpdateResult is returned by the engine's update operation. The local row
// is always current; RemoteSynced is false when remote propagation failed
// and the caller should treat the agent as degraded, not errored.
type UpdateResult struct {
	Agent        *Agent `json:"agent"`
	RemoteSynced bool   `json:"remote_synced"`
	RemoteError  string `json:"remote_error,omitempty"`
}

// DeleteResult reports both sides of a delete. LocalDeleted is always true
// when the operation returns without error.
type DeleteResult struct {
	LocalDeleted  bool   `json:"local_deleted"`
	RemoteDeleted bool   `json:"remote_deleted"`
	RemoteError   string `json:"remote_error,omitempty"`
}

// SyncReport aggregates per-item outcomes of a full account sync. Counts
// are exact tallies; the batch is not atomic.
type SyncReport struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Errors  int              `json:"errors"`
	Details []SyncItemResult `json:"details"`
}

type SyncItemResult struct {
	RemoteID string     `json:"remote_id"`
	LocalID  *uuid.UUID `json:"local_id,omitempty"`
	Action   SyncAction `json:"action"`
	Error    string     `json:"error,omitempty"`
}

type SyncAction string

const (
	SyncActionCreated SyncAction = "created"
	SyncActionUpdated SyncAction = "updated"
	SyncActionFailed  SyncAction = "failed"
)

// SyncStatus is the three-way partition between the two stores for one
// tenant. Every local remote-id and every remote id lands in exactly one
// of the three buckets.
type SyncStatus struct {
	Linked        []LinkedAgent    `json:"linked"`
	LocalOnly     []Agent          `json:"local_only"`
	RemoteOnly    []RemoteAgentRef `json:"remote_only"`
	IsFullySynced bool             `json:"is_fully_synced"`
}

type LinkedAgent struct {
	LocalID     uuid.UUID `json:"local_id"`
	RemoteID    string    `json:"remote_id"`
	DisplayName string    `json:"display_name"`
}

type RemoteAgentRef struct {
	RemoteID string `json:"remote_id"`
	Name     string `json:"name"`
}
