package boltdb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-grove/grove/internal/database"
	"github.com/go-grove/grove/internal/logging"
	"github.com/go-grove/grove/internal/modelstore"
)

type schedulerConfig struct {
	maxItemsStored int
	maxStorageTime time.Duration
	rebuildDBTime  time.Duration
}

func newScheduler(db *database.DB, config schedulerConfig) *scheduler {
	return &scheduler{recordDB: New(db), opts: config}
}

// scheduler prunes persisted records in the background: by age and by a
// per-algorithm size cap.
type scheduler struct {
	opts     schedulerConfig
	recordDB *DB
}

func (s *scheduler) processOutdatedRecords(algorithm string) error {
	records, err := s.recordDB.FindByAlgorithm(algorithm, func(record modelstore.Record) bool {
		return time.Since(record.CreatedAt) > s.opts.maxStorageTime
	})
	if err != nil {
		return fmt.Errorf("unable find records by algorithm %s: %v", algorithm, err)
	}
	if err := s.recordDB.DeleteMany(context.Background(), records); err != nil {
		return fmt.Errorf("unable delete outdated records of %s: %v", algorithm, err)
	}
	return nil
}

func (s *scheduler) processOverSizeRecords(algorithm string) error {
	records, err := s.recordDB.FindByAlgorithm(algorithm, nil)
	if err != nil {
		return fmt.Errorf("unable find records by algorithm %s: %v", algorithm, err)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.UnixNano() < records[j].CreatedAt.UnixNano()
	})
	if err := s.recordDB.DeleteMany(context.Background(), records[:len(records)-s.opts.maxItemsStored]); err != nil {
		return fmt.Errorf("unable delete oversize records of %s: %v", algorithm, err)
	}
	return nil
}

func (s *scheduler) rebuildOutdated() error {
	keys, err := s.recordDB.Keys()
	if err != nil {
		return fmt.Errorf("unable to fetch record keys: %v", err)
	}
	for i := range keys {
		if err := s.processOutdatedRecords(keys[i]); err != nil {
			return fmt.Errorf("unable process records: %v", err)
		}
	}
	return nil
}

func (s *scheduler) rebuildSize() error {
	keys, err := s.recordDB.Keys()
	if err != nil {
		return fmt.Errorf("unable fetch keys: %v", err)
	}
	for i := range keys {
		length, err := s.recordDB.CountByAlgorithm(keys[i])
		if err != nil {
			return fmt.Errorf("unable count by algorithm %s: %v", keys[i], err)
		}
		if length > s.opts.maxItemsStored {
			if err := s.processOverSizeRecords(keys[i]); err != nil {
				return fmt.Errorf("unable process records: %v", err)
			}
		}
	}

	return nil
}

func (s *scheduler) schedule(ctx context.Context) {
	logger := logging.FromContext(ctx)
	ticker := time.NewTicker(s.opts.rebuildDBTime)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if s.opts.maxItemsStored > 0 {
				if err := s.rebuildSize(); err != nil {
					logger.Errorf("unable db rebuild size: %v", err)
				}
			}
			if s.opts.maxStorageTime > 0 {
				if err := s.rebuildOutdated(); err != nil {
					logger.Errorf("unable db rebuild outdated: %v", err)
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
