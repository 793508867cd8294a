// Package split produces train/test index partitions: plain and stratified
// k-fold as well as single holdout splits.
package split

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-grove/grove/internal/classifier"
)

// Fold is one train/test partition of the row indices.
type Fold struct {
	Train []int
	Test  []int
}

type options struct {
	shuffle  bool
	seed     int64
	stratify bool
}

type Option func(*options)

func WithShuffle(shuffle bool) Option {
	return func(o *options) {
		o.shuffle = shuffle
	}
}

func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithStratify makes TrainTestSplit keep the class distribution of y in
// both partitions.
func WithStratify() Option {
	return func(o *options) {
		o.stratify = true
	}
}

func newOptions(opts []Option) options {
	o := options{shuffle: true, seed: time.Now().UnixNano()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// KFold partitions n row indices into nSplits folds. The first
// n%nSplits folds receive one extra test row.
func KFold(n, nSplits int, opts ...Option) ([]Fold, error) {
	if nSplits <= 0 {
		return nil, fmt.Errorf("n_splits %d: %w", nSplits, classifier.ErrInvalidConfiguration)
	}
	if nSplits > n {
		return nil, fmt.Errorf("n_splits %d exceeds %d samples: %w", nSplits, n, classifier.ErrInvalidConfiguration)
	}

	o := newOptions(opts)
	indices := sequence(n)
	if o.shuffle {
		rand.New(rand.NewSource(o.seed)).Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, 0, nSplits)
	current := 0
	for _, size := range foldSizes(n, nSplits) {
		stop := current + size
		fold := Fold{
			Test:  append([]int(nil), indices[current:stop]...),
			Train: make([]int, 0, n-size),
		}
		fold.Train = append(fold.Train, indices[:current]...)
		fold.Train = append(fold.Train, indices[stop:]...)
		folds = append(folds, fold)
		current = stop
	}
	return folds, nil
}

// StratifiedKFold partitions rows per class so every fold keeps the class
// distribution of y. Classes are processed in sorted order.
func StratifiedKFold(y []string, nSplits int, opts ...Option) ([]Fold, error) {
	if nSplits <= 0 {
		return nil, fmt.Errorf("n_splits %d: %w", nSplits, classifier.ErrInvalidConfiguration)
	}
	if nSplits > len(y) {
		return nil, fmt.Errorf("n_splits %d exceeds %d samples: %w", nSplits, len(y), classifier.ErrInvalidConfiguration)
	}

	o := newOptions(opts)
	rnd := rand.New(rand.NewSource(o.seed))
	classes := classifier.Classes(y)

	chunks := make(map[string][][]int, len(classes))
	for _, class := range classes {
		var indices []int
		for i, label := range y {
			if label == class {
				indices = append(indices, i)
			}
		}
		if o.shuffle {
			rnd.Shuffle(len(indices), func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})
		}
		perClass := make([][]int, 0, nSplits)
		current := 0
		for _, size := range foldSizes(len(indices), nSplits) {
			perClass = append(perClass, indices[current:current+size])
			current += size
		}
		chunks[class] = perClass
	}

	folds := make([]Fold, nSplits)
	for f := 0; f < nSplits; f++ {
		for _, class := range classes {
			folds[f].Test = append(folds[f].Test, chunks[class][f]...)
		}
		for _, class := range classes {
			for i := 0; i < nSplits; i++ {
				if i == f {
					continue
				}
				folds[f].Train = append(folds[f].Train, chunks[class][i]...)
			}
		}
	}
	return folds, nil
}

// TrainTestSplit cuts a single holdout of size floor(n*testSize). With
// WithStratify the cut is applied per class of y.
func TrainTestSplit(y []string, testSize float64, opts ...Option) (train, test []int, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("test_size %v: %w", testSize, classifier.ErrInvalidConfiguration)
	}

	o := newOptions(opts)
	rnd := rand.New(rand.NewSource(o.seed))
	n := len(y)

	if !o.stratify {
		indices := sequence(n)
		if o.shuffle {
			rnd.Shuffle(n, func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})
		}
		nTest := int(float64(n) * testSize)
		return indices[nTest:], indices[:nTest], nil
	}

	for _, class := range classifier.Classes(y) {
		var indices []int
		for i, label := range y {
			if label == class {
				indices = append(indices, i)
			}
		}
		if o.shuffle {
			rnd.Shuffle(len(indices), func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})
		}
		nTest := int(float64(len(indices)) * testSize)
		test = append(test, indices[:nTest]...)
		train = append(train, indices[nTest:]...)
	}
	return train, test, nil
}

func foldSizes(n, nSplits int) []int {
	sizes := make([]int, nSplits)
	for i := range sizes {
		sizes[i] = n / nSplits
		if i < n%nSplits {
			sizes[i]++
		}
	}
	return sizes
}

func sequence(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
