package manager

import (
	"context"
	"time"

	"github.com/merute/welcome/internal/config"
	"github.com/merute/welcome/internal/workerpool"
)

// WorkManager provides separate pools for image encoding and outbound
// submissions so a slow partner backend cannot starve uploads.
type WorkManager struct {
	encode *workerpool.Pool
	submit *workerpool.Pool
}

// Option configures the WorkManager.
type Option func(*options)

type options struct {
	encodeWorkers int
	submitWorkers int
	queueSize     int
	submitTimeout time.Duration
}

// WithEncodeWorkers sets the encode worker count.
func WithEncodeWorkers(n int) Option { return func(o *options) { o.encodeWorkers = n } }

// WithSubmitWorkers sets the submit worker count.
func WithSubmitWorkers(n int) Option { return func(o *options) { o.submitWorkers = n } }

// WithQueueSize sets the shared queue size (per pool).
func WithQueueSize(n int) Option { return func(o *options) { o.queueSize = n } }

// WithSubmitTimeout caps each submission task.
func WithSubmitTimeout(d time.Duration) Option { return func(o *options) { o.submitTimeout = d } }

// NewWorkManager constructs the manager with the given options (or defaults from config).
func NewWorkManager(opts ...Option) *WorkManager {
	o := &options{
		encodeWorkers: config.EncodeWorkerCount(),
		submitWorkers: config.SubmitWorkerCount(),
		queueSize:     config.WorkerQueueSize(),
		submitTimeout: config.SubmitTimeout(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return &WorkManager{
		encode: workerpool.New("encode", o.encodeWorkers, o.queueSize, 10*time.Second),
		submit: workerpool.New("submit", o.submitWorkers, o.queueSize, o.submitTimeout),
	}
}

// Close shuts down all pools.
func (m *WorkManager) Close() {
	if m == nil {
		return
	}
	m.encode.Close()
	m.submit.Close()
}

// Encode runs an image encoding task and waits for its result.
func (m *WorkManager) Encode(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.encode.Do(ctx, fn)
}

// Submit runs a submission task and waits for its result.
func (m *WorkManager) Submit(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.submit.Do(ctx, fn)
}
