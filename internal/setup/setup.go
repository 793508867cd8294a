package setup

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/go-grove/grove/internal/classifier"
	"github.com/go-grove/grove/internal/classifier/bayes"
	"github.com/go-grove/grove/internal/classifier/c45"
	"github.com/go-grove/grove/internal/classifier/chaid"
	"github.com/go-grove/grove/internal/classifier/knn"
	"github.com/go-grove/grove/internal/database"
	"github.com/go-grove/grove/internal/logging"
	"github.com/go-grove/grove/internal/modelstore"
	"github.com/go-grove/grove/internal/modelstore/boltdb"
	"github.com/go-grove/grove/internal/runenv"
)

type ClassifierConfigProvider interface {
	ClassifierConfig() *classifier.Config
}

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

type StoreConfigProvider interface {
	StoreConfig() *modelstore.Config
}

func Setup(ctx context.Context, config interface{}) (*runenv.RunEnv, error) {
	logger := logging.FromContext(ctx)
	var envOpts []runenv.Option
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	envOpts = append(envOpts, runenv.WithStore(modelstore.New()))

	var db *database.DB
	if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok {
		logger.Info("Configuring db")
		dbFromEnv, err := database.NewFromEnv(ctx, dbConfigProvider.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to connect to database: %v", err)
		}
		db = dbFromEnv
		envOpts = append(envOpts, runenv.WithDatabase(db))
	}

	if storeConfigProvider, ok := config.(StoreConfigProvider); ok && db != nil {
		logger.Info("Configuring persister")
		provideFn, err := ProvidePersisterFor(storeConfigProvider, db)
		if err != nil {
			return nil, fmt.Errorf("unable create persister provide function: %v", err)
		}
		envOpts = append(envOpts, runenv.WithPersister(provideFn))
	}

	if clsConfigProvider, ok := config.(ClassifierConfigProvider); ok {
		logger.Info("Configuring classifier")
		provideFn, err := ProvideClassifierFor(clsConfigProvider.ClassifierConfig().ClassifierType())
		if err != nil {
			return nil, fmt.Errorf("unable create classifier provide function: %v", err)
		}
		envOpts = append(envOpts, runenv.WithClassifier(provideFn))
	}

	return runenv.New(envOpts...), nil
}

func ProvidePersisterFor(provider StoreConfigProvider, db *database.DB) (boltdb.ProvideFn, error) {
	cfg := provider.StoreConfig()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("dont process store env: %w", err)
	}
	return func(shutdownCh chan<- error) (*boltdb.Manager, error) {
		return boltdb.NewManager(
			db,
			shutdownCh,
			boltdb.WithRebuildDBTime(cfg.RebuildDBTime),
			boltdb.WithMaxItemsStored(cfg.MaxItemsStored),
			boltdb.WithMaxStorageTime(cfg.MaxStorageTime),
			boltdb.WithFlushSize(cfg.DBFlushSize),
			boltdb.WithFlushTime(cfg.DBFlushTime),
		)
	}, nil
}

func ProvideClassifierFor(algType classifier.AlgType) (classifier.ProvideFn, error) {
	switch algType {
	case classifier.AlgTypeC45:
		cfg := c45.Config{}
		if err := envconfig.Process("", &cfg); err != nil {
			return nil, fmt.Errorf("error loading environment variables: %w", err)
		}
		return func() (classifier.Classifier, error) {
			tree, err := c45.New(c45.FromConfig(cfg)...)
			if err != nil {
				return nil, fmt.Errorf("unable create c45 instance: %v", err)
			}
			return tree, nil
		}, nil
	case classifier.AlgTypeCHAID:
		cfg := chaid.Config{}
		if err := envconfig.Process("", &cfg); err != nil {
			return nil, fmt.Errorf("error loading environment variables: %w", err)
		}
		return func() (classifier.Classifier, error) {
			tree, err := chaid.New(chaid.FromConfig(cfg)...)
			if err != nil {
				return nil, fmt.Errorf("unable create chaid instance: %v", err)
			}
			return tree, nil
		}, nil
	case classifier.AlgTypeBayes:
		return func() (classifier.Classifier, error) {
			return bayes.New(), nil
		}, nil
	case classifier.AlgTypeKNN:
		cfg := knn.Config{}
		if err := envconfig.Process("", &cfg); err != nil {
			return nil, fmt.Errorf("error loading environment variables: %w", err)
		}
		return func() (classifier.Classifier, error) {
			model, err := knn.New(knn.FromConfig(cfg)...)
			if err != nil {
				return nil, fmt.Errorf("unable create knn instance: %v", err)
			}
			return model, nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown classifier type: %s", algType)
	}
}
