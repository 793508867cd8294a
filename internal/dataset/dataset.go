package dataset

import (
	"fmt"
	"math"
)

var (
	ErrDimensionMismatch = fmt.Errorf("columns and labels must share one row count")
	ErrNotNumeric        = fmt.Errorf("column is not numeric")
)

type ColumnKind uint8

const (
	Numeric ColumnKind = iota
	Categorical
)

func (k ColumnKind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "categorical"
}

// Column is a single named feature. Exactly one of Nums/Cats is populated,
// matching Kind. Missing values are NaN for numeric columns and "" for
// categorical ones.
type Column struct {
	Name string
	Kind ColumnKind
	Nums []float64
	Cats []string
}

func NumericColumn(name string, values []float64) Column {
	return Column{Name: name, Kind: Numeric, Nums: values}
}

func CategoricalColumn(name string, values []string) Column {
	return Column{Name: name, Kind: Categorical, Cats: values}
}

func (c Column) len() int {
	if c.Kind == Numeric {
		return len(c.Nums)
	}
	return len(c.Cats)
}

// Dataset is an ordered sequence of equally sized feature columns. The
// column type tag is fixed at construction and consulted by every
// classifier instead of re-inspecting values per row.
type Dataset struct {
	cols []Column
	n    int
}

func New(cols ...Column) (*Dataset, error) {
	ds := &Dataset{cols: cols}
	if len(cols) > 0 {
		ds.n = cols[0].len()
	}
	for i := range cols {
		if cols[i].len() != ds.n {
			return nil, fmt.Errorf(
				"column %q has %d rows, want %d: %w",
				cols[i].Name, cols[i].len(), ds.n, ErrDimensionMismatch,
			)
		}
	}
	return ds, nil
}

func (ds *Dataset) NumRows() int { return ds.n }

func (ds *Dataset) NumCols() int { return len(ds.cols) }

func (ds *Dataset) Column(idx int) Column { return ds.cols[idx] }

func (ds *Dataset) Names() []string {
	names := make([]string, len(ds.cols))
	for i := range ds.cols {
		names[i] = ds.cols[i].Name
	}
	return names
}

// IsMissing reports whether the value at (row, col) is absent.
func (ds *Dataset) IsMissing(col, row int) bool {
	c := ds.cols[col]
	if c.Kind == Numeric {
		return math.IsNaN(c.Nums[row])
	}
	return c.Cats[row] == ""
}

// Select copies the given rows, in order, into a new dataset. Indices may
// repeat; they must be valid row positions.
func (ds *Dataset) Select(indices []int) *Dataset {
	cols := make([]Column, len(ds.cols))
	for i, c := range ds.cols {
		sub := Column{Name: c.Name, Kind: c.Kind}
		if c.Kind == Numeric {
			sub.Nums = make([]float64, len(indices))
			for j, idx := range indices {
				sub.Nums[j] = c.Nums[idx]
			}
		} else {
			sub.Cats = make([]string, len(indices))
			for j, idx := range indices {
				sub.Cats[j] = c.Cats[idx]
			}
		}
		cols[i] = sub
	}
	return &Dataset{cols: cols, n: len(indices)}
}

// Matrix returns the row-major numeric view of the dataset. Categorical
// columns have no numeric view and produce an error.
func (ds *Dataset) Matrix() ([][]float64, error) {
	for i := range ds.cols {
		if ds.cols[i].Kind != Numeric {
			return nil, fmt.Errorf("column %q: %w", ds.cols[i].Name, ErrNotNumeric)
		}
	}
	rows := make([][]float64, ds.n)
	for r := 0; r < ds.n; r++ {
		row := make([]float64, len(ds.cols))
		for c := range ds.cols {
			row[c] = ds.cols[c].Nums[r]
		}
		rows[r] = row
	}
	return rows, nil
}
