package chaid

type node interface {
	isNode()
}

// leaf keeps the class-count distribution for diagnostics; decisioning
// uses only the majority label.
type leaf struct {
	label        string
	samples      int
	distribution map[string]int
}

type split struct {
	feature     int
	numeric     bool
	binEdges    []float64         // numeric features
	categoryMap map[string]string // categorical merge mapping
	keys        []string          // child keys in materialization order
	children    map[string]node
	samples     int
}

func (leaf) isNode()   {}
func (*split) isNode() {}

func leafLabels(n node, out []string) []string {
	switch v := n.(type) {
	case leaf:
		out = append(out, v.label)
	case *split:
		for _, key := range v.keys {
			out = leafLabels(v.children[key], out)
		}
	}
	return out
}
