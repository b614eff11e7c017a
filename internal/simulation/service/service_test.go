package service

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"lead_management_backend/internal/events"
	"lead_management_backend/internal/simulation/generator"
	"lead_management_backend/platform/logger"
)

type fakeRepo struct {
	refs     generator.ReferenceIDs
	refsErr  error
	skip     map[string]bool
	statusID int
	batches  [][]generator.Lead
}

func (f *fakeRepo) ReferenceIDs(ctx context.Context) (generator.ReferenceIDs, error) {
	if f.refsErr != nil {
		return generator.ReferenceIDs{}, f.refsErr
	}
	return f.refs, nil
}

func (f *fakeRepo) InsertPendingLeads(ctx context.Context, leads []generator.Lead, pendingStatusID int) ([]generator.Lead, []string, error) {
	f.statusID = pendingStatusID
	f.batches = append(f.batches, leads)

	inserted := make([]generator.Lead, 0, len(leads))
	skipped := make([]string, 0)
	for _, l := range leads {
		if f.skip[l.DocumentNumber] {
			skipped = append(skipped, l.DocumentNumber)
			continue
		}
		inserted = append(inserted, l)
	}
	return inserted, skipped, nil
}

type fakeResolver struct {
	id    int
	names []string
}

func (f *fakeResolver) Resolve(ctx context.Context, name string) (int, error) {
	f.names = append(f.names, name)
	return f.id, nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) Subscribe(eventName string, handler events.Handler) {}

type testConfig struct {
	min, max int
	status   string
}

func (c testConfig) GetSimulationInterval() time.Duration { return 30 * time.Second }
func (c testConfig) GetLeadsMin() int                     { return c.min }
func (c testConfig) GetLeadsMax() int                     { return c.max }
func (c testConfig) GetInitialAssignmentStatus() string   { return c.status }

func validRefs() generator.ReferenceIDs {
	return generator.ReferenceIDs{
		BusinessLines: []int{1, 2, 3},
		Countries:     []int{1},
		DocumentTypes: []int{1, 2},
	}
}

func newTestService(repo *fakeRepo, statuses *fakeResolver, bus *recordingBus, cfg testConfig) *Service {
	return New(repo, statuses, rand.New(rand.NewSource(1)), cfg, bus, logger.New("development"))
}

func TestRunOncePublishesInsertedLeads(t *testing.T) {
	repo := &fakeRepo{refs: validRefs()}
	statuses := &fakeResolver{id: 3}
	bus := &recordingBus{}
	svc := newTestService(repo, statuses, bus, testConfig{min: 2, max: 2, status: "Pending"})

	summary, err := svc.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}

	if summary.Generated != 2 || summary.Inserted != 2 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if repo.statusID != 3 {
		t.Fatalf("expected pending status 3, got %d", repo.statusID)
	}
	if len(statuses.names) != 1 || statuses.names[0] != "Pending" {
		t.Fatalf("expected configured status to be resolved, got %v", statuses.names)
	}

	if len(bus.published) != 2 {
		t.Fatalf("expected 2 events, got %d", len(bus.published))
	}
	for _, ev := range bus.published {
		created, ok := ev.(events.LeadCreated)
		if !ok {
			t.Fatalf("expected LeadCreated, got %T", ev)
		}
		if created.Source != "simulation" {
			t.Fatalf("expected simulation source, got %q", created.Source)
		}
	}
}

func TestRunOnceRespectsBatchBounds(t *testing.T) {
	repo := &fakeRepo{refs: validRefs()}
	svc := newTestService(repo, &fakeResolver{id: 1}, &recordingBus{}, testConfig{min: 1, max: 5, status: "Pending"})

	for i := 0; i < 20; i++ {
		summary, err := svc.RunOnce(context.Background())
		if err != nil {
			t.Fatalf("RunOnce returned error: %v", err)
		}
		if summary.Generated < 1 || summary.Generated > 5 {
			t.Fatalf("batch size %d outside [1, 5]", summary.Generated)
		}
	}
}

func TestRunOnceSkipsDuplicatesWithoutEvents(t *testing.T) {
	repo := &fakeRepo{refs: validRefs()}
	statuses := &fakeResolver{id: 3}
	bus := &recordingBus{}
	svc := newTestService(repo, statuses, bus, testConfig{min: 3, max: 3, status: "Pending"})

	// First run records the generated document numbers, second run against the
	// same repo marks one of them as already present.
	summary, err := svc.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}
	if summary.Inserted != 3 {
		t.Fatalf("expected 3 inserted, got %d", summary.Inserted)
	}

	repo.skip = map[string]bool{repo.batches[0][0].DocumentNumber: true}
	bus.published = nil

	// Force the next batch to reuse a known document number.
	repo.skip[collectDocs(repo.batches[0])[0]] = true

	summary, err = svc.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}
	if summary.Inserted+summary.Skipped != summary.Generated {
		t.Fatalf("summary does not add up: %+v", summary)
	}
	if len(bus.published) != summary.Inserted {
		t.Fatalf("expected %d events, got %d", summary.Inserted, len(bus.published))
	}
}

func TestRunOnceFailsWithoutReferenceData(t *testing.T) {
	repo := &fakeRepo{refs: generator.ReferenceIDs{}}
	svc := newTestService(repo, &fakeResolver{id: 1}, &recordingBus{}, testConfig{min: 1, max: 1, status: "Pending"})

	if _, err := svc.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error when reference tables are empty")
	}
	if len(repo.batches) != 0 {
		t.Fatal("expected no insert attempt")
	}
}

func TestRunOnceAdvancesCycleCounter(t *testing.T) {
	repo := &fakeRepo{refs: validRefs()}
	svc := newTestService(repo, &fakeResolver{id: 1}, &recordingBus{}, testConfig{min: 1, max: 1, status: "Pending"})

	first, err := svc.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}
	second, err := svc.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}

	if first.Cycle != 1 || second.Cycle != 2 {
		t.Fatalf("expected cycles 1 and 2, got %d and %d", first.Cycle, second.Cycle)
	}
	if !strings.HasPrefix(repo.batches[0][0].DocumentNumber, "L1_") {
		t.Fatalf("expected first cycle documents to start with L1_, got %q", repo.batches[0][0].DocumentNumber)
	}
	if !strings.HasPrefix(repo.batches[1][0].DocumentNumber, "L2_") {
		t.Fatalf("expected second cycle documents to start with L2_, got %q", repo.batches[1][0].DocumentNumber)
	}
}

func collectDocs(leads []generator.Lead) []string {
	docs := make([]string, 0, len(leads))
	for _, l := range leads {
		docs = append(docs, l.DocumentNumber)
	}
	return docs
}
