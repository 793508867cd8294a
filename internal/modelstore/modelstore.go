// Package modelstore keeps fitted classifiers alive for their owner. The
// store is explicit and caller-scoped; models never leak into process
// globals and disappear when the store is closed.
package modelstore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/go-grove/grove/internal/classifier"
)

func NewRecord(name, algorithm string, summary map[string]interface{}) Record {
	return Record{
		ID:        uuid.New(),
		Name:      name,
		Algorithm: algorithm,
		CreatedAt: time.Now(),
		Summary:   summary,
	}
}

// Record is the serializable description of a stored model.
type Record struct {
	ID        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	Algorithm string                 `json:"algorithm"`
	CreatedAt time.Time              `json:"createdAt"`
	Summary   map[string]interface{} `json:"summary"`
}

// Entry pairs a record with the live classifier it describes.
type Entry struct {
	Record Record
	Model  classifier.Classifier
}

func New() *Store {
	return &Store{entries: map[uuid.UUID]Entry{}}
}

type Store struct {
	mtx     sync.RWMutex
	entries map[uuid.UUID]Entry
	order   []uuid.UUID
}

// Add registers a fitted model under a fresh id and returns its record.
func (s *Store) Add(name string, model classifier.Classifier, summary map[string]interface{}) Record {
	record := NewRecord(name, model.Name(), summary)
	s.mtx.Lock()
	s.entries[record.ID] = Entry{Record: record, Model: model}
	s.order = append(s.order, record.ID)
	s.mtx.Unlock()
	return record
}

func (s *Store) Get(id uuid.UUID) (Entry, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	entry, ok := s.entries[id]
	return entry, ok
}

func (s *Store) Delete(id uuid.UUID) {
	s.mtx.Lock()
	delete(s.entries, id)
	s.mtx.Unlock()
}

// List returns the stored records in insertion order.
func (s *Store) List() []Record {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	records := make([]Record, 0, len(s.entries))
	for _, id := range s.order {
		if entry, ok := s.entries[id]; ok {
			records = append(records, entry.Record)
		}
	}
	return records
}

func (s *Store) Len() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.entries)
}

// Close drops every stored model.
func (s *Store) Close() {
	s.mtx.Lock()
	s.entries = map[uuid.UUID]Entry{}
	s.order = nil
	s.mtx.Unlock()
}
