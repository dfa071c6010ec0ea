package classifier

import (
	"errors"
	"fmt"
)

const leaf = -1

// Tree is a fitted decision tree in scikit-learn's array layout. Node 0 is
// the root; leaves have ChildrenLeft[i] == -1. Value holds per-class sample
// counts (or fractions) at each node.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

var _ Classifier = (*Tree)(nil)

// Validate checks structural consistency so that prediction cannot index
// out of range or loop.
func (t *Tree) Validate(features int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return errors.New("tree has no nodes")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("tree arrays have inconsistent lengths (%d nodes)", n)
	}
	classes := len(t.Value[0])
	if classes == 0 {
		return errors.New("tree has no classes")
	}
	for i := 0; i < n; i++ {
		if len(t.Value[i]) != classes {
			return fmt.Errorf("node %d: %d class values, want %d", i, len(t.Value[i]), classes)
		}
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if l == leaf {
			continue
		}
		// Children always come after their parent in sklearn's depth-first
		// layout, which also rules out cycles.
		if l <= i || l >= n || r <= i || r >= n {
			return fmt.Errorf("node %d: children (%d, %d) out of range", i, l, r)
		}
		if f := t.Feature[i]; f < 0 || (features > 0 && f >= features) {
			return fmt.Errorf("node %d: feature %d out of range", i, f)
		}
	}
	return nil
}

// Classes returns the number of classes at the leaves.
func (t *Tree) Classes() int {
	if len(t.Value) == 0 {
		return 0
	}
	return len(t.Value[0])
}

// PredictProba walks the tree and returns the normalised class distribution
// of the reached leaf.
func (t *Tree) PredictProba(features []float32) ([]float64, error) {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		f := t.Feature[node]
		if f >= len(features) {
			return nil, fmt.Errorf("node %d splits on feature %d, vector has %d", node, f, len(features))
		}
		if float64(features[f]) <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return normalize(t.Value[node]), nil
}

// Forest averages the probabilities of its trees, as a random forest does.
type Forest struct {
	Trees []*Tree
}

var _ Classifier = (*Forest)(nil)

// Classes returns the number of classes of the first tree.
func (f *Forest) Classes() int {
	if len(f.Trees) == 0 {
		return 0
	}
	return f.Trees[0].Classes()
}

// PredictProba returns the mean of the per-tree distributions.
func (f *Forest) PredictProba(features []float32) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, errors.New("forest has no trees")
	}
	var sum []float64
	for i, t := range f.Trees {
		p, err := t.PredictProba(features)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		if sum == nil {
			sum = make([]float64, len(p))
		}
		if len(p) != len(sum) {
			return nil, fmt.Errorf("tree %d: %d classes, want %d", i, len(p), len(sum))
		}
		for j, v := range p {
			sum[j] += v
		}
	}
	for j := range sum {
		sum[j] /= float64(len(f.Trees))
	}
	return sum, nil
}
