// Package scheduler runs background work through an asynq task queue:
// periodic assignment cycles, synthetic lead generation and nightly report
// exports. Task IDs keep each piece of work single-flight, so two dispatcher
// ticks never produce two concurrent assignment cycles.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"lead_management_backend/platform/config"
)

const queueName = "default"

type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueAssignmentCycle queues one assignment cycle. The task id is derived
// from the tick window, so a cycle still queued or running blocks duplicates;
// retries are disabled because the next tick is the retry.
func (c *Client) EnqueueAssignmentCycle(ctx context.Context, triggeredBy string, window time.Time) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewAssignmentCycleTask(AssignmentCyclePayload{TriggeredBy: triggeredBy})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.TaskID(fmt.Sprintf("%s:%d", TaskAssignmentCycle, window.Unix())),
		asynq.MaxRetry(0),
	)
	return err
}

// EnqueueLeadGeneration queues one synthetic generation batch, deduplicated
// per tick window like assignment cycles.
func (c *Client) EnqueueLeadGeneration(ctx context.Context, triggeredBy string, window time.Time) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewGenerateLeadsTask(GenerateLeadsPayload{TriggeredBy: triggeredBy})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.TaskID(fmt.Sprintf("%s:%d", TaskGenerateLeads, window.Unix())),
		asynq.MaxRetry(0),
	)
	return err
}

// EnqueueDailyExport queues the report export for one date (YYYY-MM-DD).
// The task id embeds the date, so a day's export is queued at most once at a
// time; transient storage failures are retried by the queue.
func (c *Client) EnqueueDailyExport(ctx context.Context, date string) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewDailyExportTask(DailyExportPayload{Date: date})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.TaskID(fmt.Sprintf("%s:%s", TaskDailyExport, date)),
	)
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
