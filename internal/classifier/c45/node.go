package c45

// The tree is a tagged union over three node kinds so traversal stays
// exhaustive under a type switch instead of probing a generic map.
type node interface {
	isNode()
}

type leaf struct {
	label string
}

type numericSplit struct {
	feature   int
	threshold float64
	left      node
	right     node
}

type categoricalSplit struct {
	feature  int
	keys     []string
	branches map[string]node
}

func (leaf) isNode()             {}
func (*numericSplit) isNode()    {}
func (*categoricalSplit) isNode() {}

// leafLabels collects leaf labels left to right, one entry per leaf.
func leafLabels(n node, out []string) []string {
	switch v := n.(type) {
	case leaf:
		out = append(out, v.label)
	case *numericSplit:
		out = leafLabels(v.left, out)
		out = leafLabels(v.right, out)
	case *categoricalSplit:
		for _, key := range v.keys {
			out = leafLabels(v.branches[key], out)
		}
	}
	return out
}
