package chaid

type Config struct {
	// Significance level for the chi-square tests driving merges and splits.
	Alpha            float64 `envconfig:"GROVE_CHAID_ALPHA" default:"0.05"`
	MinSamplesSplit  int     `envconfig:"GROVE_CHAID_MIN_SAMPLES_SPLIT" default:"30"`
	MaxDepth         int     `envconfig:"GROVE_CHAID_MAX_DEPTH" default:"5"`
	MinChildNodeSize int     `envconfig:"GROVE_CHAID_MIN_CHILD_NODE_SIZE" default:"10"`
}

type Option func(*Tree)

func WithAlpha(alpha float64) Option {
	return func(t *Tree) {
		t.alpha = alpha
	}
}

func WithMinSamplesSplit(n int) Option {
	return func(t *Tree) {
		t.minSamplesSplit = n
	}
}

func WithMaxDepth(n int) Option {
	return func(t *Tree) {
		t.maxDepth = n
	}
}

func WithMinChildNodeSize(n int) Option {
	return func(t *Tree) {
		t.minChildNodeSize = n
	}
}

func FromConfig(cfg Config) []Option {
	return []Option{
		WithAlpha(cfg.Alpha),
		WithMinSamplesSplit(cfg.MinSamplesSplit),
		WithMaxDepth(cfg.MaxDepth),
		WithMinChildNodeSize(cfg.MinChildNodeSize),
	}
}
