package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-grove/grove/internal/database"
	"github.com/go-grove/grove/internal/modelstore"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewFromEnv(ctx, &database.Config{
		FileName: filepath.Join(t.TempDir(), "grove-test.db"),
	})
	if err != nil {
		t.Fatalf("database.NewFromEnv: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(ctx); err != nil {
			t.Errorf("db.Close: %v", err)
		}
	})
	return db
}

func TestDB_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	recordDB := New(newTestDB(t))

	first := modelstore.NewRecord("run-1", "C4.5", map[string]interface{}{"max_depth": 5.0})
	second := modelstore.NewRecord("run-2", "C4.5", nil)
	third := modelstore.NewRecord("run-3", "KNN", nil)

	for _, record := range []modelstore.Record{first, second, third} {
		if err := recordDB.Store(ctx, record); err != nil {
			t.Fatalf("Store: %v", err)
		}
	}

	keys, err := recordDB.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("keys got: %v, expected two algorithms", keys)
	}

	count, err := recordDB.CountByAlgorithm("C4.5")
	if err != nil {
		t.Fatalf("CountByAlgorithm: %v", err)
	}
	if count != 2 {
		t.Errorf("count got: %d, expected: 2", count)
	}

	trees, err := recordDB.FindByAlgorithm("C4.5", nil)
	if err != nil {
		t.Fatalf("FindByAlgorithm: %v", err)
	}
	if len(trees) != 2 {
		t.Fatalf("records got: %d, expected: 2", len(trees))
	}
	found := false
	for _, record := range trees {
		if record.ID == first.ID {
			found = true
			if record.Name != "run-1" {
				t.Errorf("name got: %s, expected: run-1", record.Name)
			}
			if record.Summary["max_depth"] != 5.0 {
				t.Errorf("summary got: %v, expected max_depth 5", record.Summary)
			}
		}
	}
	if !found {
		t.Error("stored record not found by id")
	}

	all, err := recordDB.FindAll(ctx, nil)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all records got: %d, expected: 3", len(all))
	}

	if err := recordDB.Delete(ctx, third); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	count, err = recordDB.CountByAlgorithm("KNN")
	if err != nil {
		t.Fatalf("CountByAlgorithm: %v", err)
	}
	if count != 0 {
		t.Errorf("count after delete got: %d, expected: 0", count)
	}
}

func TestDB_FindWithFilter(t *testing.T) {
	ctx := context.Background()
	recordDB := New(newTestDB(t))

	keep := modelstore.NewRecord("keep", "CHAID", nil)
	drop := modelstore.NewRecord("drop", "CHAID", nil)
	for _, record := range []modelstore.Record{keep, drop} {
		if err := recordDB.Store(ctx, record); err != nil {
			t.Fatalf("Store: %v", err)
		}
	}

	records, err := recordDB.FindByAlgorithm("CHAID", func(record modelstore.Record) bool {
		return record.Name == "keep"
	})
	if err != nil {
		t.Fatalf("FindByAlgorithm: %v", err)
	}
	if len(records) != 1 || records[0].ID != keep.ID {
		t.Errorf("filtered records got: %v, expected only %s", records, keep.ID)
	}
}

func TestTxExecutor_FlushAtSize(t *testing.T) {
	db := newTestDB(t)
	shutdownCh := make(chan error, 1)
	executor := newTxExecutor(db, txExecutorOptions{flushSize: 2, flushTime: time.Minute}, shutdownCh)

	if err := executor.append(modelstore.NewRecord("a", "KNN", nil)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := len(executor.buf); got != 1 {
		t.Fatalf("buffer got: %d, expected: 1", got)
	}
	if err := executor.append(modelstore.NewRecord("b", "KNN", nil)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := len(executor.buf); got != 0 {
		t.Errorf("buffer after flush got: %d, expected: 0", got)
	}

	records, err := executor.recordDB.FindByAlgorithm("KNN", nil)
	if err != nil {
		t.Fatalf("FindByAlgorithm: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("flushed records got: %d, expected: 2", len(records))
	}
}

func TestManager_RunStopFlushesBuffer(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	shutdownCh := make(chan error, 1)
	manager, err := NewManager(db, shutdownCh, WithFlushSize(100), WithFlushTime(time.Minute))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	manager.Run(ctx)
	record := modelstore.NewRecord("pending", "Naive Bayes", nil)
	if err := manager.Append(record); err != nil {
		t.Fatalf("Append: %v", err)
	}
	manager.Stop()

	if err := <-shutdownCh; err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	records, err := manager.Records(ctx, nil)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 1 || records[0].ID != record.ID {
		t.Errorf("records got: %v, expected the buffered record", records)
	}
}

func TestNewManager_RequiresDB(t *testing.T) {
	if _, err := NewManager(nil, make(chan error, 1)); err == nil {
		t.Error("nil database expected an error")
	}
}
