package predict

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// zeroThreshold matches LightGBM's kZeroThreshold.
const zeroThreshold = 1e-35

// Booster evaluates a LightGBM model exported with Booster.dump_model().
// Only numerical "<=" splits are supported.
type Booster struct {
	numClass    int
	numFeatures int
	trees       []*treeNode
}

type boosterDump struct {
	NumClass      int        `json:"num_class"`
	MaxFeatureIdx int        `json:"max_feature_idx"`
	TreeInfo      []treeInfo `json:"tree_info"`
}

type treeInfo struct {
	TreeStructure *treeNode `json:"tree_structure"`
}

type treeNode struct {
	SplitFeature int       `json:"split_feature"`
	Threshold    float64   `json:"threshold"`
	DecisionType string    `json:"decision_type"`
	DefaultLeft  bool      `json:"default_left"`
	MissingType  string    `json:"missing_type"`
	LeftChild    *treeNode `json:"left_child"`
	RightChild   *treeNode `json:"right_child"`
	LeafValue    float64   `json:"leaf_value"`
}

func (n *treeNode) isLeaf() bool {
	return n.LeftChild == nil && n.RightChild == nil
}

// LoadBooster reads a model dump from path.
func LoadBooster(path string, maxFeatures int) (*Booster, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return ParseBooster(b, maxFeatures)
}

// ParseBooster decodes and validates a model dump. maxFeatures is the length
// of the feature vector the caller will pass to Predict.
func ParseBooster(b []byte, maxFeatures int) (*Booster, error) {
	var dump boosterDump
	if err := json.Unmarshal(b, &dump); err != nil {
		return nil, fmt.Errorf("%w: decode model: %v", ErrInvalidArtifact, err)
	}
	if dump.NumClass < 1 {
		return nil, fmt.Errorf("%w: num_class must be positive, got %d", ErrInvalidArtifact, dump.NumClass)
	}
	if len(dump.TreeInfo) == 0 {
		return nil, fmt.Errorf("%w: model has no trees", ErrInvalidArtifact)
	}
	numFeatures := dump.MaxFeatureIdx + 1
	if numFeatures > maxFeatures {
		return nil, fmt.Errorf("%w: model expects %d features, have %d", ErrInvalidArtifact, numFeatures, maxFeatures)
	}

	trees := make([]*treeNode, 0, len(dump.TreeInfo))
	for i, ti := range dump.TreeInfo {
		if ti.TreeStructure == nil {
			return nil, fmt.Errorf("%w: tree %d has no structure", ErrInvalidArtifact, i)
		}
		if err := validateNode(ti.TreeStructure, numFeatures); err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", ErrInvalidArtifact, i, err)
		}
		trees = append(trees, ti.TreeStructure)
	}

	return &Booster{
		numClass:    dump.NumClass,
		numFeatures: numFeatures,
		trees:       trees,
	}, nil
}

func validateNode(n *treeNode, numFeatures int) error {
	if n.isLeaf() {
		return nil
	}
	if n.LeftChild == nil || n.RightChild == nil {
		return fmt.Errorf("split node with a single child")
	}
	if n.DecisionType != "<=" {
		return fmt.Errorf("unsupported decision type %q", n.DecisionType)
	}
	if n.SplitFeature < 0 || n.SplitFeature >= numFeatures {
		return fmt.Errorf("split feature %d out of range", n.SplitFeature)
	}
	switch n.MissingType {
	case "", "None", "Zero", "NaN":
	default:
		return fmt.Errorf("unsupported missing type %q", n.MissingType)
	}
	if err := validateNode(n.LeftChild, numFeatures); err != nil {
		return err
	}
	return validateNode(n.RightChild, numFeatures)
}

// Classes returns the number of output classes; binary models report 2.
func (b *Booster) Classes() int {
	if b.numClass == 1 {
		return 2
	}
	return b.numClass
}

// RawScores returns the summed leaf values per class.
func (b *Booster) RawScores(x []float64) ([]float64, error) {
	if len(x) < b.numFeatures {
		return nil, fmt.Errorf("feature vector has %d values, model needs %d", len(x), b.numFeatures)
	}
	scores := make([]float64, b.numClass)
	for i, t := range b.trees {
		scores[i%b.numClass] += t.eval(x)
	}
	return scores, nil
}

// PredictClass returns the index of the most likely class.
func (b *Booster) PredictClass(x []float64) (int, error) {
	scores, err := b.RawScores(x)
	if err != nil {
		return 0, err
	}
	if b.numClass == 1 {
		if scores[0] > 0 {
			return 1, nil
		}
		return 0, nil
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best, nil
}

func (n *treeNode) eval(x []float64) float64 {
	for !n.isLeaf() {
		if n.goLeft(x[n.SplitFeature]) {
			n = n.LeftChild
		} else {
			n = n.RightChild
		}
	}
	return n.LeafValue
}

func (n *treeNode) goLeft(v float64) bool {
	if n.MissingType != "NaN" && math.IsNaN(v) {
		v = 0
	}
	if (n.MissingType == "Zero" && math.Abs(v) <= zeroThreshold) ||
		(n.MissingType == "NaN" && math.IsNaN(v)) {
		return n.DefaultLeft
	}
	return v <= n.Threshold
}
