package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"

	"lead_management_backend/platform/logger"
)

type testSchedulerConfig struct {
	redisURL    string
	concurrency int
	cycleEvery  time.Duration
	exportEvery time.Duration
}

func (c testSchedulerConfig) GetRedisURL() string              { return c.redisURL }
func (c testSchedulerConfig) GetSchedulerConcurrency() int     { return c.concurrency }
func (c testSchedulerConfig) GetCycleInterval() time.Duration  { return c.cycleEvery }
func (c testSchedulerConfig) GetExportInterval() time.Duration { return c.exportEvery }

func newTestQueue(t *testing.T) (*Client, *asynq.Inspector, testSchedulerConfig) {
	t.Helper()

	mr := miniredis.RunT(t)
	cfg := testSchedulerConfig{
		redisURL:    "redis://" + mr.Addr(),
		cycleEvery:  time.Minute,
		exportEvery: 24 * time.Hour,
	}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	t.Cleanup(func() { _ = inspector.Close() })

	return client, inspector, cfg
}

func pendingTasks(t *testing.T, inspector *asynq.Inspector) []*asynq.TaskInfo {
	t.Helper()

	tasks, err := inspector.ListPendingTasks(queueName)
	if err != nil {
		t.Fatalf("ListPendingTasks() error = %v", err)
	}
	return tasks
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("NewClient() with empty redis url returned nil error")
	}
}

func TestEnqueueAssignmentCycleDeduplicatesPerWindow(t *testing.T) {
	client, inspector, _ := newTestQueue(t)
	ctx := context.Background()
	window := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if err := client.EnqueueAssignmentCycle(ctx, "scheduler", window); err != nil {
		t.Fatalf("first enqueue error = %v", err)
	}

	err := client.EnqueueAssignmentCycle(ctx, "scheduler", window)
	if !errors.Is(err, asynq.ErrTaskIDConflict) {
		t.Fatalf("duplicate enqueue error = %v, want %v", err, asynq.ErrTaskIDConflict)
	}

	if err := client.EnqueueAssignmentCycle(ctx, "scheduler", window.Add(time.Minute)); err != nil {
		t.Fatalf("next window enqueue error = %v", err)
	}

	tasks := pendingTasks(t, inspector)
	if len(tasks) != 2 {
		t.Fatalf("pending tasks = %d, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.Type != TaskAssignmentCycle {
			t.Errorf("task type = %q, want %q", task.Type, TaskAssignmentCycle)
		}
		if task.MaxRetry != 0 {
			t.Errorf("cycle task max retry = %d, want 0", task.MaxRetry)
		}

		var payload AssignmentCyclePayload
		if err := json.Unmarshal(task.Payload, &payload); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if payload.TriggeredBy != "scheduler" {
			t.Errorf("triggeredBy = %q, want %q", payload.TriggeredBy, "scheduler")
		}
	}
}

func TestEnqueueDailyExportDeduplicatesPerDate(t *testing.T) {
	client, inspector, _ := newTestQueue(t)
	ctx := context.Background()

	if err := client.EnqueueDailyExport(ctx, "2026-03-09"); err != nil {
		t.Fatalf("first enqueue error = %v", err)
	}

	err := client.EnqueueDailyExport(ctx, "2026-03-09")
	if !errors.Is(err, asynq.ErrTaskIDConflict) {
		t.Fatalf("duplicate enqueue error = %v, want %v", err, asynq.ErrTaskIDConflict)
	}

	tasks := pendingTasks(t, inspector)
	if len(tasks) != 1 {
		t.Fatalf("pending tasks = %d, want 1", len(tasks))
	}
	if tasks[0].Type != TaskDailyExport {
		t.Errorf("task type = %q, want %q", tasks[0].Type, TaskDailyExport)
	}
	if tasks[0].MaxRetry <= 0 {
		t.Errorf("export task max retry = %d, want retries enabled", tasks[0].MaxRetry)
	}

	var payload DailyExportPayload
	if err := json.Unmarshal(tasks[0].Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Date != "2026-03-09" {
		t.Errorf("date = %q, want %q", payload.Date, "2026-03-09")
	}
}

func TestDispatcherCollapsesTicksWithinOneWindow(t *testing.T) {
	client, inspector, cfg := newTestQueue(t)
	d := NewDispatcher(client, cfg, logger.New("development"))
	ctx := context.Background()

	d.enqueueCycle(ctx, time.Date(2026, 3, 10, 12, 0, 10, 0, time.UTC))
	d.enqueueCycle(ctx, time.Date(2026, 3, 10, 12, 0, 50, 0, time.UTC))
	d.enqueueCycle(ctx, time.Date(2026, 3, 10, 12, 1, 5, 0, time.UTC))

	var cycles int
	for _, task := range pendingTasks(t, inspector) {
		if task.Type == TaskAssignmentCycle {
			cycles++
		}
	}
	if cycles != 2 {
		t.Fatalf("pending cycle tasks = %d, want 2", cycles)
	}
}

func TestDispatcherExportsPreviousDay(t *testing.T) {
	client, inspector, cfg := newTestQueue(t)
	d := NewDispatcher(client, cfg, logger.New("development"))

	d.enqueueDailyExport(context.Background(), time.Date(2026, 3, 10, 0, 5, 0, 0, time.UTC))

	tasks := pendingTasks(t, inspector)
	if len(tasks) != 1 {
		t.Fatalf("pending tasks = %d, want 1", len(tasks))
	}

	var payload DailyExportPayload
	if err := json.Unmarshal(tasks[0].Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Date != "2026-03-09" {
		t.Errorf("export date = %q, want %q", payload.Date, "2026-03-09")
	}
}
