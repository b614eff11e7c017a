package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRow struct {
	id  int
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	ptr, ok := dest[0].(*int)
	if !ok {
		panic("fakeRow: expected *int destination")
	}
	*ptr = r.id
	return nil
}

// fakeQuerier replays scripted results for select and insert queries.
type fakeQuerier struct {
	selectResults []fakeRow
	insertResults []fakeRow
	selectCalls   int
	insertCalls   int
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	if strings.HasPrefix(strings.TrimSpace(sql), "SELECT") {
		q.selectCalls++
		row := q.selectResults[0]
		q.selectResults = q.selectResults[1:]
		return row
	}
	q.insertCalls++
	row := q.insertResults[0]
	q.insertResults = q.insertResults[1:]
	return row
}

func TestStatusesResolve_ReturnsExistingID(t *testing.T) {
	q := &fakeQuerier{selectResults: []fakeRow{{id: 3}}}
	s := newStatuses(q)

	got, err := s.Resolve(context.Background(), "Pending")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != 3 {
		t.Errorf("Resolve() = %d, want 3", got)
	}
	if q.insertCalls != 0 {
		t.Errorf("Resolve() inserted %d times, want 0", q.insertCalls)
	}
}

func TestStatusesResolve_CachesAcrossCalls(t *testing.T) {
	q := &fakeQuerier{selectResults: []fakeRow{{id: 5}}}
	s := newStatuses(q)

	if _, err := s.Resolve(context.Background(), "Assigned"); err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}

	// Trim and case variants must hit the same cache entry, not the database.
	for _, name := range []string{"Assigned", "assigned", "  ASSIGNED  "} {
		got, err := s.Resolve(context.Background(), name)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", name, err)
		}
		if got != 5 {
			t.Errorf("Resolve(%q) = %d, want 5", name, got)
		}
	}

	if q.selectCalls != 1 {
		t.Errorf("registry queried %d times, want 1", q.selectCalls)
	}
}

func TestStatusesResolve_CreatesMissingStatus(t *testing.T) {
	q := &fakeQuerier{
		selectResults: []fakeRow{{err: pgx.ErrNoRows}},
		insertResults: []fakeRow{{id: 8}},
	}
	s := newStatuses(q)

	got, err := s.Resolve(context.Background(), "In Progress")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != 8 {
		t.Errorf("Resolve() = %d, want 8", got)
	}
	if q.insertCalls != 1 {
		t.Errorf("Resolve() inserted %d times, want 1", q.insertCalls)
	}
}

func TestStatusesResolve_ConcurrentCreateFallsBackToWinner(t *testing.T) {
	q := &fakeQuerier{
		selectResults: []fakeRow{
			{err: pgx.ErrNoRows},
			{id: 11}, // re-read after unique violation
		},
		insertResults: []fakeRow{{err: &pgconn.PgError{Code: "23505"}}},
	}
	s := newStatuses(q)

	got, err := s.Resolve(context.Background(), "Pending")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != 11 {
		t.Errorf("Resolve() = %d, want 11 (the concurrent winner's id)", got)
	}
}

func TestStatusesResolve_RejectsBlankName(t *testing.T) {
	q := &fakeQuerier{}
	s := newStatuses(q)

	if _, err := s.Resolve(context.Background(), "   "); err == nil {
		t.Error("Resolve(blank) error = nil, want validation error")
	}
	if q.selectCalls != 0 || q.insertCalls != 0 {
		t.Errorf("blank name reached the database: %d selects, %d inserts", q.selectCalls, q.insertCalls)
	}
}
