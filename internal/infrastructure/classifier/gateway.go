// Package classifier wraps the external food classifier behind a bounded,
// non-blocking call contract. The model is expensive to load and slow to run;
// a fixed worker pool keeps inference from exhausting request-handling
// capacity, and a bounded queue fails fast instead of queuing without limit.
package classifier

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutritrack/foodlog-api/internal/api/metrics"
	"github.com/nutritrack/foodlog-api/internal/core/domain"
	"github.com/nutritrack/foodlog-api/internal/core/ports"
)

const (
	defaultQueueDepth = 32
	defaultTimeout    = 10 * time.Second
)

type job struct {
	image []byte
	reply chan result
}

type result struct {
	pred ports.Prediction
	err  error
}

// Gateway dispatches classification calls to a fixed set of workers sharing
// one backend classifier instance. It implements ports.Classifier itself, so
// callers are unaware of the pooling.
type Gateway struct {
	jobs       chan job
	backend    ports.Classifier
	numWorkers int
	timeout    time.Duration
	log        zerolog.Logger
}

// NewGateway creates a Gateway with numWorkers workers and a queue bounded at
// queueDepth. Zero or negative arguments select the defaults (one worker per
// CPU core).
func NewGateway(backend ports.Classifier, numWorkers, queueDepth int, timeout time.Duration, log zerolog.Logger) *Gateway {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if queueDepth <= 0 {
		queueDepth = defaultQueueDepth
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Gateway{
		jobs:       make(chan job, queueDepth),
		backend:    backend,
		numWorkers: numWorkers,
		timeout:    timeout,
		log:        log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (g *Gateway) Start(ctx context.Context) {
	for i := 0; i < g.numWorkers; i++ {
		go g.runWorker(ctx, i)
	}
}

// Classify enqueues the image and waits for a worker's answer. A full queue
// fails immediately with domain.ErrClassifierBusy; waiting longer than the
// configured timeout fails with domain.ErrClassifyTimeout.
func (g *Gateway) Classify(ctx context.Context, image []byte) (ports.Prediction, error) {
	j := job{image: image, reply: make(chan result, 1)}

	select {
	case g.jobs <- j:
		metrics.ClassifyQueueDepth.Inc()
	default:
		metrics.ClassifyRequestsTotal.WithLabelValues("busy").Inc()
		return ports.Prediction{}, domain.ErrClassifierBusy
	}

	timer := time.NewTimer(g.timeout)
	defer timer.Stop()

	select {
	case r := <-j.reply:
		return r.pred, r.err
	case <-timer.C:
		metrics.ClassifyRequestsTotal.WithLabelValues("timeout").Inc()
		return ports.Prediction{}, domain.ErrClassifyTimeout
	case <-ctx.Done():
		return ports.Prediction{}, ctx.Err()
	}
}

// runWorker processes jobs until the pool context is cancelled. Inference
// runs under the pool context, not the request context, so an in-flight call
// completes even when its caller has gone away; the buffered reply channel
// means the handoff never blocks the worker.
func (g *Gateway) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-g.jobs:
			if !ok {
				return
			}
			metrics.ClassifyQueueDepth.Dec()

			start := time.Now()
			pred, err := g.backend.Classify(ctx, j.image)
			metrics.ClassifyDuration.Observe(time.Since(start).Seconds())

			outcome := "ok"
			if err != nil {
				outcome = "error"
				g.log.Error().Err(err).Int("worker_id", id).Msg("classification failed")
			}
			metrics.ClassifyRequestsTotal.WithLabelValues(outcome).Inc()

			j.reply <- result{pred: pred, err: err}
		}
	}
}
