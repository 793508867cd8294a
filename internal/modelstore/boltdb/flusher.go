package boltdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/valyala/fastrand"

	"github.com/go-grove/grove/internal/database"
	"github.com/go-grove/grove/internal/logging"
	"github.com/go-grove/grove/internal/modelstore"
)

type txExecutorOptions struct {
	flushSize int
	flushTime time.Duration
}

func newTxExecutor(db *database.DB, opts txExecutorOptions, shutdownCh chan<- error) *txExecutor {
	return &txExecutor{recordDB: New(db), opts: opts, shutdownCh: shutdownCh}
}

// txExecutor buffers records and writes them in batches, either when the
// buffer reaches flushSize or on a jittered timer tick.
type txExecutor struct {
	mtx        sync.RWMutex
	opts       txExecutorOptions
	recordDB   *DB
	buf        []modelstore.Record
	shutdownCh chan<- error
}

func (tx *txExecutor) shutdown() error {
	tx.mtx.Lock()
	defer tx.mtx.Unlock()
	if err := tx.recordDB.AppendMany(context.Background(), tx.buf); err != nil {
		return fmt.Errorf("txExecutor: append many operation failed: %v", err)
	}
	tx.buf = tx.buf[:0]
	return nil
}

func (tx *txExecutor) append(record modelstore.Record) error {
	tx.mtx.Lock()
	defer tx.mtx.Unlock()
	tx.buf = append(tx.buf, record)
	if len(tx.buf) >= tx.opts.flushSize {
		if err := tx.recordDB.AppendMany(context.Background(), tx.buf); err != nil {
			return fmt.Errorf("txExecutor: append many operation failed: %v", err)
		}
		tx.buf = tx.buf[:0]
	}
	return nil
}

// jitteredInterval spreads flush ticks by up to a quarter of the base
// interval so parallel stores do not batch against the DB in lockstep.
func (tx *txExecutor) jitteredInterval() time.Duration {
	quarter := uint32(tx.opts.flushTime / 4)
	if quarter == 0 {
		return tx.opts.flushTime
	}
	return tx.opts.flushTime + time.Duration(fastrand.Uint32n(quarter))
}

func (tx *txExecutor) flusher(ctx context.Context) {
	logger := logging.FromContext(ctx)
	defer func() {
		tx.shutdownCh <- tx.shutdown()
	}()
	timer := time.NewTimer(tx.jitteredInterval())
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			tx.mtx.Lock()
			if err := tx.recordDB.AppendMany(context.Background(), tx.buf); err != nil {
				logger.Errorf("txExecutor: append many operation failed: %v", err)
			}
			tx.buf = tx.buf[:0]
			tx.mtx.Unlock()
			timer.Reset(tx.jitteredInterval())
		case <-ctx.Done():
			return
		}
	}
}
