package knn

type Metric string

const (
	MetricEuclidean Metric = "euclidean"
	MetricManhattan Metric = "manhattan"
	MetricMinkowski Metric = "minkowski"
	MetricChebyshev Metric = "chebyshev"
)

type Config struct {
	K      int    `envconfig:"GROVE_KNN_K" default:"5"`
	Metric Metric `envconfig:"GROVE_KNN_METRIC" default:"euclidean"`
}

type Option func(*Model)

func WithK(k int) Option {
	return func(m *Model) {
		m.k = k
	}
}

func WithMetric(metric Metric) Option {
	return func(m *Model) {
		m.metric = metric
	}
}

func FromConfig(cfg Config) []Option {
	return []Option{WithK(cfg.K), WithMetric(cfg.Metric)}
}
