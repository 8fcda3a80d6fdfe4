package store

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// uniqueViolation is the Postgres error code surfaced when the partial
// unique index on (tenant_id, remote_id) refuses a double link.
const uniqueViolation = "23505"
