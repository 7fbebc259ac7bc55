package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEmail  = "jobs:email"
	QueueRecibo = "jobs:recibo_pdf"

	maxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueEmail pushes an email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

// EnqueueRecibo pushes a receipt PDF generation job to Redis.
func (d *Dispatcher) EnqueueRecibo(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueRecibo, "recibo_pdf", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handler processes one dequeued payload. A returned error triggers a retry;
// after maxAttempts the job lands in the DLQ.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// Handlers maps each queue to its processor.
type Handlers struct {
	Email  Handler
	Recibo Handler
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers Handlers) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers Handlers) {
	queues := []string{QueueEmail, QueueRecibo}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	var h Handler
	switch queue {
	case QueueEmail:
		h = handlers.Email
	case QueueRecibo:
		h = handlers.Recibo
	}
	if h == nil {
		log.Warn().Str("queue", queue).Str("type", job.Type).Msg("no handler for queue — dropping job")
		return
	}

	if err := h.Process(ctx, job.Payload); err != nil {
		job.Attempts++
		if job.Attempts >= maxAttempts {
			SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
			return
		}
		log.Warn().
			Str("queue", queue).
			Str("type", job.Type).
			Int("attempt", job.Attempts).
			Err(err).
			Msg("job failed — re-enqueueing")
		if encoded, mErr := json.Marshal(job); mErr == nil {
			_ = rdb.LPush(ctx, queue, encoded).Err()
		}
		return
	}

	log.Info().Str("type", job.Type).Str("queue", queue).Msg("job processed")
}
