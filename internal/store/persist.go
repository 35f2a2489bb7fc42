package store

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/supfront/commerce-system/internal/api/metrics"
	"github.com/supfront/commerce-system/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 64
	saveTimeout    = 5 * time.Second
)

type persistJob struct {
	partition string
	blob      []byte
}

// PersistQueue writes partition blobs to durable storage in the background so
// dispatching never blocks on I/O. Jobs are sharded to a fixed set of workers
// by partition name, which keeps writes for one partition ordered.
type PersistQueue struct {
	workers []chan persistJob
	blobs   ports.BlobStore
	log     zerolog.Logger
}

// NewPersistQueue creates a queue with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewPersistQueue(numWorkers int, blobs ports.BlobStore, log zerolog.Logger) *PersistQueue {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	q := &PersistQueue{
		workers: make([]chan persistJob, numWorkers),
		blobs:   blobs,
		log:     log,
	}
	for i := range q.workers {
		q.workers[i] = make(chan persistJob, channelBuffer)
	}
	return q
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (q *PersistQueue) Start(ctx context.Context) {
	for i, ch := range q.workers {
		go q.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a blob to the worker responsible for its partition. The call
// is non-blocking up to channelBuffer capacity.
func (q *PersistQueue) Enqueue(partition string, blob []byte) {
	idx := q.shardIndex(partition)
	q.workers[idx] <- persistJob{partition: partition, blob: blob}
	metrics.PersistQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(q.workers[idx])))
}

// shardIndex maps a partition name deterministically to a worker index.
func (q *PersistQueue) shardIndex(partition string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(partition))
	return int(h.Sum32()) % len(q.workers)
}

func (q *PersistQueue) runWorker(ctx context.Context, id int, ch <-chan persistJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			q.save(ctx, job)
			metrics.PersistQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

func (q *PersistQueue) save(ctx context.Context, job persistJob) {
	saveCtx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	start := time.Now()
	err := q.blobs.Save(saveCtx, job.partition, job.blob)
	metrics.PersistDuration.WithLabelValues(job.partition).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PersistErrorsTotal.WithLabelValues(job.partition).Inc()
		q.log.Error().Err(err).Str("partition", job.partition).Msg("partition persist failed")
		return
	}
	metrics.PersistTotal.WithLabelValues(job.partition).Inc()
}
