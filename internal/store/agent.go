package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voxlink-ai/voxlink/internal/domain"
)

type AgentStore struct {
	db   *pgxpool.Pool
	psql sq.StatementBuilderType
}

func NewAgentStore(db *pgxpool.Pool) *AgentStore {
	return &AgentStore{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (s *AgentStore) Create(ctx context.Context, a *domain.Agent) error {
	configJSON, err := json.Marshal(a.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if a.Status == "" {
		a.Status = domain.AgentStatusDraft
	}

	err = s.db.QueryRow(ctx,
		`INSERT INTO agents (tenant_id, remote_id, display_name, status, config)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		a.TenantID, a.RemoteID, a.DisplayName, a.Status, configJSON,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *AgentStore) GetByID(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*domain.Agent, error) {
	return s.scanOne(s.db.QueryRow(ctx,
		`SELECT id, tenant_id, remote_id, display_name, status, config, created_at, updated_at
		 FROM agents WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	))
}

func (s *AgentStore) GetByRemoteID(ctx context.Context, remoteID string, tenantID uuid.UUID) (*domain.Agent, error) {
	return s.scanOne(s.db.QueryRow(ctx,
		`SELECT id, tenant_id, remote_id, display_name, status, config, created_at, updated_at
		 FROM agents WHERE remote_id = $1 AND tenant_id = $2`,
		remoteID, tenantID,
	))
}

func (s *AgentStore) ListByTenant(ctx context.Context, tenantID uuid.UUID, opts domain.ListOpts) ([]domain.Agent, error) {
	builder := s.psql.
		Select("id", "tenant_id", "remote_id", "display_name", "status", "config", "created_at", "updated_at").
		From("agents").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC")

	if opts.Status != nil {
		builder = builder.Where(sq.Eq{"status": *opts.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []domain.Agent
	for rows.Next() {
		var a domain.Agent
		var configJSON []byte
		if err := rows.Scan(&a.ID, &a.TenantID, &a.RemoteID, &a.DisplayName, &a.Status, &configJSON, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		if len(configJSON) > 0 {
			if err := json.Unmarshal(configJSON, &a.Config); err != nil {
				return nil, fmt.Errorf("unmarshal config: %w", err)
			}
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

func (s *AgentStore) Update(ctx context.Context, a *domain.Agent) error {
	configJSON, err := json.Marshal(a.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`UPDATE agents
		 SET remote_id = $3, display_name = $4, status = $5, config = $6, updated_at = NOW()
		 WHERE id = $1 AND tenant_id = $2
		 RETURNING updated_at`,
		a.ID, a.TenantID, a.RemoteID, a.DisplayName, a.Status, configJSON,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *AgentStore) Delete(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM agents WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AgentStore) scanOne(row pgx.Row) (*domain.Agent, error) {
	a := &domain.Agent{}
	var configJSON []byte
	err := row.Scan(&a.ID, &a.TenantID, &a.RemoteID, &a.DisplayName, &a.Status, &configJSON, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(configJSON) > 0 {
		if err := json.Unmarshal(configJSON, &a.Config); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}
	return a, nil
}
