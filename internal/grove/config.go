package grove

import (
	"github.com/go-grove/grove/internal/classifier"
	"github.com/go-grove/grove/internal/database"
	"github.com/go-grove/grove/internal/modelstore"
	"github.com/go-grove/grove/internal/setup"
)

var (
	_ setup.ClassifierConfigProvider = (*Config)(nil)
	_ setup.DatabaseConfigProvider   = (*Config)(nil)
	_ setup.StoreConfigProvider      = (*Config)(nil)
)

type Config struct {
	DebugMode      bool   `envconfig:"GROVE_DEBUG" default:"false"`
	MetricsAddr    string `envconfig:"GROVE_METRICS_ADDR" default:":9090"`
	ExperimentFile string `envconfig:"GROVE_EXPERIMENT_FILE" default:"experiment.toml"`
	Classifier     classifier.Config
	Database       database.Config
	Store          modelstore.Config
}

func (c Config) ClassifierConfig() *classifier.Config {
	return &c.Classifier
}

func (c Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c Config) StoreConfig() *modelstore.Config {
	return &c.Store
}
