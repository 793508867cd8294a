package classifier

import "sort"

// Classes returns the distinct labels of y sorted ascending, the stored
// class ordering every model uses.
func Classes(y []string) []string {
	seen := make(map[string]struct{}, len(y))
	var classes []string
	for _, label := range y {
		if _, ok := seen[label]; !ok {
			seen[label] = struct{}{}
			classes = append(classes, label)
		}
	}
	sort.Strings(classes)
	return classes
}

// Majority returns the most frequent label in y. Ties resolve to the label
// encountered first.
func Majority(y []string) string {
	counts := make(map[string]int, len(y))
	var order []string
	for _, label := range y {
		if _, ok := counts[label]; !ok {
			order = append(order, label)
		}
		counts[label]++
	}
	var best string
	bestCount := -1
	for _, label := range order {
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}
	return best
}

// Counts returns per-label counts alongside first-encountered order.
func Counts(y []string) (map[string]int, []string) {
	counts := make(map[string]int, len(y))
	var order []string
	for _, label := range y {
		if _, ok := counts[label]; !ok {
			order = append(order, label)
		}
		counts[label]++
	}
	return counts, order
}
