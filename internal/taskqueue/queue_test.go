package taskqueue_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savageaim/backend/internal/taskqueue"
)

func newTestQueue(t *testing.T) (*taskqueue.Queue, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	queue, err := taskqueue.NewQueue(rdb, "savageaim:queue:verify")
	require.NoError(t, err)
	return queue, mr
}

func TestQueue_PushPopRoundTrip(t *testing.T) {
	queue, _ := newTestQueue(t)
	ctx := context.Background()

	charID := uuid.New()
	require.NoError(t, queue.Push(ctx, taskqueue.NewVerifyTask(charID)))

	task, raw, err := queue.Pop(ctx, 100*time.Millisecond)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.Equal(t, charID, task.CharacterID)
	assert.False(t, task.EnqueuedAt.IsZero())

	// Popped but unacked: the task sits on the processing list.
	pending, processing, err := queue.Depth(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
	assert.EqualValues(t, 1, processing)
}

func TestQueue_AckRemovesFromProcessing(t *testing.T) {
	queue, _ := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, queue.Push(ctx, taskqueue.NewVerifyTask(uuid.New())))

	_, raw, err := queue.Pop(ctx, 100*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, queue.Ack(ctx, raw))

	pending, processing, err := queue.Depth(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
	assert.Zero(t, processing)
}

func TestQueue_PopEmpty_ReturnsErrNoTask(t *testing.T) {
	queue, _ := newTestQueue(t)

	_, _, err := queue.Pop(context.Background(), 50*time.Millisecond)
	assert.ErrorIs(t, err, taskqueue.ErrNoTask)
}

func TestQueue_PopPoisonMessage(t *testing.T) {
	queue, mr := newTestQueue(t)
	ctx := context.Background()

	_, err := mr.Lpush("savageaim:queue:verify", "not-json")
	require.NoError(t, err)

	_, _, err = queue.Pop(ctx, 100*time.Millisecond)
	require.Error(t, err)
	assert.NotErrorIs(t, err, taskqueue.ErrNoTask)

	// The poison payload must not linger on the processing list.
	pending, processing, err := queue.Depth(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
	assert.Zero(t, processing)
}

func TestQueue_FIFOOrder(t *testing.T) {
	queue, _ := newTestQueue(t)
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()
	require.NoError(t, queue.Push(ctx, taskqueue.NewVerifyTask(first)))
	require.NoError(t, queue.Push(ctx, taskqueue.NewVerifyTask(second)))

	task, _, err := queue.Pop(ctx, 100*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, first, task.CharacterID)

	task, _, err = queue.Pop(ctx, 100*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, second, task.CharacterID)
}

func TestQueue_PushNilTask(t *testing.T) {
	queue, _ := newTestQueue(t)
	assert.Error(t, queue.Push(context.Background(), nil))
}

func TestNewQueue_Validation(t *testing.T) {
	_, err := taskqueue.NewQueue(nil, "queue")
	assert.Error(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer rdb.Close()
	_, err = taskqueue.NewQueue(rdb, "")
	assert.Error(t, err)
}
