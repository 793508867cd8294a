package boltdb

import (
	"context"
	"fmt"
	"time"

	"github.com/go-grove/grove/internal/database"
	"github.com/go-grove/grove/internal/modelstore"
)

// ProvideFn builds a persistence manager bound to a shutdown channel.
type ProvideFn func(shutdownCh chan<- error) (*Manager, error)

type Option func(*Manager)

func WithMaxItemsStored(n int) Option {
	return func(m *Manager) {
		m.schedulerOpts.maxItemsStored = n
	}
}

func WithMaxStorageTime(t time.Duration) Option {
	return func(m *Manager) {
		m.schedulerOpts.maxStorageTime = t
	}
}

func WithRebuildDBTime(t time.Duration) Option {
	return func(m *Manager) {
		m.schedulerOpts.rebuildDBTime = t
	}
}

func WithFlushSize(n int) Option {
	return func(m *Manager) {
		m.executorOpts.flushSize = n
	}
}

func WithFlushTime(t time.Duration) Option {
	return func(m *Manager) {
		m.executorOpts.flushTime = t
	}
}

// NewManager builds the persistent record store: batched writes through the
// flusher plus background retention pruning.
func NewManager(db *database.DB, shutdownCh chan<- error, opts ...Option) (*Manager, error) {
	if db == nil {
		return nil, fmt.Errorf("boltdb: database connection is required")
	}
	m := &Manager{
		recordDB: New(db),
		executorOpts: txExecutorOptions{
			flushSize: 10,
			flushTime: 5 * time.Second,
		},
		schedulerOpts: schedulerConfig{
			maxItemsStored: 1000,
			rebuildDBTime:  15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.executor = newTxExecutor(db, m.executorOpts, shutdownCh)
	m.scheduler = newScheduler(db, m.schedulerOpts)
	return m, nil
}

type Manager struct {
	recordDB      *DB
	executor      *txExecutor
	scheduler     *scheduler
	executorOpts  txExecutorOptions
	schedulerOpts schedulerConfig
	cancel        func()
}

// Run starts the flusher and the retention scheduler; both stop when ctx
// is done and the flusher reports its final flush on the shutdown channel.
func (m *Manager) Run(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	go m.executor.flusher(runCtx)
	go m.scheduler.schedule(runCtx)
}

func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
}

// Append queues a record for the next batched write.
func (m *Manager) Append(record modelstore.Record) error {
	return m.executor.append(record)
}

func (m *Manager) Records(ctx context.Context, filter FilterFn) ([]modelstore.Record, error) {
	return m.recordDB.FindAll(ctx, filter)
}
