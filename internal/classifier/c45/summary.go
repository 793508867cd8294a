package c45

import "fmt"

func (t *Tree) FeatureImportances() map[string]float64 {
	out := make(map[string]float64, len(t.importances))
	for k, v := range t.importances {
		out[k] = v
	}
	return out
}

func (t *Tree) Summary() map[string]interface{} {
	return map[string]interface{}{
		"algorithm": "C4.5 decision tree",
		"parameters": map[string]interface{}{
			"max_depth":         t.maxDepth,
			"min_samples_split": t.minSamplesSplit,
		},
	}
}

// Structure renders the fitted tree as nested maps for serialization.
func (t *Tree) Structure() map[string]interface{} {
	if t.root == nil {
		return nil
	}
	return t.structure(t.root)
}

func (t *Tree) structure(n node) map[string]interface{} {
	switch v := n.(type) {
	case leaf:
		return map[string]interface{}{"name": fmt.Sprintf("Leaf: %s", v.label)}
	case *numericSplit:
		return map[string]interface{}{
			"name": fmt.Sprintf("%s <= %.2f", t.features[v.feature], v.threshold),
			"children": []interface{}{
				t.structure(v.left),
				t.structure(v.right),
			},
		}
	case *categoricalSplit:
		children := make([]interface{}, 0, len(v.keys))
		for _, key := range v.keys {
			children = append(children, map[string]interface{}{
				"name":     fmt.Sprintf("== %s", key),
				"children": []interface{}{t.structure(v.branches[key])},
			})
		}
		return map[string]interface{}{
			"name":     t.features[v.feature],
			"children": children,
		}
	}
	return nil
}
