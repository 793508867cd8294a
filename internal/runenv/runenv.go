// Package runenv carries the wired run environment: the database
// connection, the in-memory model store and the provider functions built
// during setup.
package runenv

import (
	"context"

	"github.com/go-grove/grove/internal/classifier"
	"github.com/go-grove/grove/internal/database"
	"github.com/go-grove/grove/internal/modelstore"
	"github.com/go-grove/grove/internal/modelstore/boltdb"
)

type Option func(*RunEnv) *RunEnv

func New(opts ...Option) *RunEnv {
	env := &RunEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type RunEnv struct {
	database   *database.DB
	store      *modelstore.Store
	classifier classifier.ProvideFn
	persister  boltdb.ProvideFn
}

func (s *RunEnv) ProvideClassifier() classifier.ProvideFn {
	return s.classifier
}

func (s *RunEnv) ProvidePersister() boltdb.ProvideFn {
	return s.persister
}

func (s *RunEnv) Store() *modelstore.Store {
	return s.store
}

func (s *RunEnv) Database() *database.DB {
	return s.database
}

func WithClassifier(fn classifier.ProvideFn) Option {
	return func(s *RunEnv) *RunEnv {
		s.classifier = fn
		return s
	}
}

func WithPersister(fn boltdb.ProvideFn) Option {
	return func(s *RunEnv) *RunEnv {
		s.persister = fn
		return s
	}
}

func WithStore(store *modelstore.Store) Option {
	return func(s *RunEnv) *RunEnv {
		s.store = store
		return s
	}
}

func WithDatabase(db *database.DB) Option {
	return func(s *RunEnv) *RunEnv {
		s.database = db
		return s
	}
}

func (s *RunEnv) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	if s.store != nil {
		s.store.Close()
	}
	if s.database != nil {
		return s.database.Close(ctx)
	}
	return nil
}
