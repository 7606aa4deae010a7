package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoTask is returned by Pop when the queue stays empty past the timeout.
var ErrNoTask = errors.New("no task available")

// VerifyTask is the unit of work handed to the verification worker.
type VerifyTask struct {
	CharacterID uuid.UUID `json:"character_id"`
	EnqueuedAt  time.Time `json:"enqueued_at"`
}

// NewVerifyTask creates a verification task for the given character.
func NewVerifyTask(characterID uuid.UUID) *VerifyTask {
	return &VerifyTask{
		CharacterID: characterID,
		EnqueuedAt:  time.Now().UTC(),
	}
}

// Queue wraps Redis list operations for the verification task queue.
// Pop moves a task onto a processing list; Ack removes it once handled,
// giving at-least-once delivery.
type Queue struct {
	rdb  *redis.Client
	name string
}

// NewQueue creates a task queue over an existing Redis client. name is the
// key of the main list; the processing list is name + ":processing".
func NewQueue(rdb *redis.Client, name string) (*Queue, error) {
	if rdb == nil {
		return nil, errors.New("redis client is nil")
	}
	if name == "" {
		return nil, errors.New("queue name is empty")
	}
	return &Queue{rdb: rdb, name: name}, nil
}

func (q *Queue) processingKey() string {
	return q.name + ":processing"
}

// Push serializes a task and pushes it onto the queue.
func (q *Queue) Push(ctx context.Context, task *VerifyTask) error {
	if task == nil {
		return errors.New("task is nil")
	}

	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	if err := q.rdb.LPush(ctx, q.name, string(data)).Err(); err != nil {
		return fmt.Errorf("lpush task: %w", err)
	}

	return nil
}

// Pop blocks until a task is available or the timeout is reached. The raw
// payload is returned alongside the task so Ack can match it exactly.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*VerifyTask, string, error) {
	raw, err := q.rdb.BRPopLPush(ctx, q.name, q.processingKey(), timeout).Result()
	if errors.Is(err, redis.Nil) {
		return nil, "", ErrNoTask
	}
	if err != nil {
		return nil, "", fmt.Errorf("brpoplpush task: %w", err)
	}

	var task VerifyTask
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		// Poison message: drop it from the processing list so it cannot wedge
		// the worker, then report.
		q.rdb.LRem(ctx, q.processingKey(), 1, raw)
		return nil, "", fmt.Errorf("unmarshal task: %w", err)
	}

	return &task, raw, nil
}

// Ack removes a handled task from the processing list.
func (q *Queue) Ack(ctx context.Context, raw string) error {
	if err := q.rdb.LRem(ctx, q.processingKey(), 1, raw).Err(); err != nil {
		return fmt.Errorf("lrem task: %w", err)
	}
	return nil
}

// Depth returns the current lengths of the main and processing lists.
func (q *Queue) Depth(ctx context.Context) (pending, processing int64, err error) {
	pending, err = q.rdb.LLen(ctx, q.name).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("llen queue: %w", err)
	}
	processing, err = q.rdb.LLen(ctx, q.processingKey()).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("llen processing: %w", err)
	}
	return pending, processing, nil
}

// Ping checks Redis connectivity, for the health endpoint.
func (q *Queue) Ping(ctx context.Context) error {
	return q.rdb.Ping(ctx).Err()
}
