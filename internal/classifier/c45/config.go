package c45

type Config struct {
	// Depth 0 is legal and produces a single majority leaf.
	MaxDepth        int `envconfig:"GROVE_C45_MAX_DEPTH" default:"5"`
	MinSamplesSplit int `envconfig:"GROVE_C45_MIN_SAMPLES_SPLIT" default:"2"`
}

type Option func(*Tree)

func WithMaxDepth(n int) Option {
	return func(t *Tree) {
		t.maxDepth = n
	}
}

func WithMinSamplesSplit(n int) Option {
	return func(t *Tree) {
		t.minSamplesSplit = n
	}
}

func FromConfig(cfg Config) []Option {
	return []Option{WithMaxDepth(cfg.MaxDepth), WithMinSamplesSplit(cfg.MinSamplesSplit)}
}
