package grove

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/go-grove/grove/internal/dataset"
)

// LoadCSV reads a headered CSV file into a dataset plus the label column
// named by target. A column is numeric when every non-empty cell parses
// as a float; empty cells become NaN for numeric columns and stay ""
// for categorical ones.
func LoadCSV(path, target string) (*dataset.Dataset, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("unable open dataset file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("unable read dataset file %q: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("dataset file %q has no data rows", path)
	}

	header := records[0]
	rows := records[1:]
	targetIdx := -1
	for i, name := range header {
		if name == target {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return nil, nil, fmt.Errorf("target column %q not found in %q", target, path)
	}

	labels := make([]string, len(rows))
	for r, row := range rows {
		labels[r] = row[targetIdx]
	}

	var cols []dataset.Column
	for c, name := range header {
		if c == targetIdx {
			continue
		}
		if numeric(rows, c) {
			nums := make([]float64, len(rows))
			for r, row := range rows {
				if row[c] == "" {
					nums[r] = math.NaN()
					continue
				}
				nums[r], _ = strconv.ParseFloat(row[c], 64)
			}
			cols = append(cols, dataset.NumericColumn(name, nums))
			continue
		}
		cats := make([]string, len(rows))
		for r, row := range rows {
			cats[r] = row[c]
		}
		cols = append(cols, dataset.CategoricalColumn(name, cats))
	}

	ds, err := dataset.New(cols...)
	if err != nil {
		return nil, nil, fmt.Errorf("unable build dataset from %q: %w", path, err)
	}
	return ds, labels, nil
}

func numeric(rows [][]string, col int) bool {
	seen := false
	for _, row := range rows {
		if row[col] == "" {
			continue
		}
		if _, err := strconv.ParseFloat(row[col], 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}
