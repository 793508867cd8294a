package grove

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/go-grove/grove/internal/classifier"
)

// Experiment describes one evaluation run: the dataset to load, the
// algorithms to compare and the cross validation layout.
type Experiment struct {
	Name       string           `toml:"name"`
	Dataset    DatasetSource    `toml:"dataset"`
	Algorithms []string         `toml:"algorithms"`
	CrossVal   CrossValSettings `toml:"cross_validation"`
}

type DatasetSource struct {
	Path   string `toml:"path"`
	Target string `toml:"target"`
}

type CrossValSettings struct {
	NSplits    int   `toml:"n_splits"`
	Stratified bool  `toml:"stratified"`
	Shuffle    bool  `toml:"shuffle"`
	Seed       int64 `toml:"seed"`
}

func LoadExperiment(path string) (*Experiment, error) {
	var exp Experiment
	if _, err := toml.DecodeFile(path, &exp); err != nil {
		return nil, fmt.Errorf("unable decode experiment file %q: %w", path, err)
	}
	if err := exp.validate(); err != nil {
		return nil, fmt.Errorf("invalid experiment file %q: %w", path, err)
	}
	return &exp, nil
}

func (e *Experiment) validate() error {
	if e.Dataset.Path == "" {
		return fmt.Errorf("dataset.path is required")
	}
	if e.Dataset.Target == "" {
		return fmt.Errorf("dataset.target is required")
	}
	if len(e.Algorithms) == 0 {
		return fmt.Errorf("at least one algorithm is required")
	}
	for _, alg := range e.Algorithms {
		switch classifier.AlgType(alg) {
		case classifier.AlgTypeC45, classifier.AlgTypeCHAID, classifier.AlgTypeBayes, classifier.AlgTypeKNN:
		default:
			return fmt.Errorf("unknown algorithm: %s", alg)
		}
	}
	if e.CrossVal.NSplits < 0 {
		return fmt.Errorf("cross_validation.n_splits must not be negative")
	}
	return nil
}
