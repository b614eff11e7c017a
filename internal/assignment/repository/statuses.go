package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"lead_management_backend/platform/apperr"
)

const (
	selectStatusQuery = `
		SELECT assignment_status_id
		FROM lead_management.assignment_statuses
		WHERE LOWER(name) = LOWER($1)`

	insertStatusQuery = `
		INSERT INTO lead_management.assignment_statuses (name)
		VALUES ($1)
		RETURNING assignment_status_id`
)

// rowQuerier is the single pgx operation the registry needs.
// *pgxpool.Pool satisfies it.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Statuses resolves assignment status names to ids, creating unknown names
// on first use. Resolved ids are cached for the process lifetime; the
// registry is append-only so cached ids never go stale.
//
// Lookups run on the pool, outside any cycle transaction. A status row
// created for a cycle that later aborts stays behind, which is harmless.
type Statuses struct {
	q rowQuerier

	mu    sync.RWMutex
	cache map[string]int
}

// NewStatuses creates a status registry backed by the given pool.
func NewStatuses(pool *pgxpool.Pool) *Statuses {
	return newStatuses(pool)
}

func newStatuses(q rowQuerier) *Statuses {
	return &Statuses{
		q:     q,
		cache: make(map[string]int),
	}
}

// Compile-time check that Statuses implements StatusResolver.
var _ StatusResolver = (*Statuses)(nil)

// Resolve returns the id for a status name, inserting the trimmed name when
// it does not exist yet. Matching is case-insensitive; the first spelling to
// reach the database wins and later variants resolve to it.
func (s *Statuses) Resolve(ctx context.Context, name string) (int, error) {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return 0, apperr.Validation("status name cannot be blank")
	}
	key := strings.ToLower(clean)

	s.mu.RLock()
	id, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return id, nil
	}

	id, err := s.lookup(ctx, clean)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.cache[key] = id
	s.mu.Unlock()

	return id, nil
}

func (s *Statuses) lookup(ctx context.Context, clean string) (int, error) {
	var id int
	err := s.q.QueryRow(ctx, selectStatusQuery, clean).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("resolve assignment status %q: %w", clean, err)
	}

	err = s.q.QueryRow(ctx, insertStatusQuery, clean).Scan(&id)
	if err == nil {
		return id, nil
	}

	// Another process created the status between our select and insert.
	// The unique index on LOWER(name) guarantees the re-read finds it.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if err := s.q.QueryRow(ctx, selectStatusQuery, clean).Scan(&id); err != nil {
			return 0, fmt.Errorf("re-resolve assignment status %q: %w", clean, err)
		}
		return id, nil
	}

	return 0, fmt.Errorf("create assignment status %q: %w", clean, err)
}
