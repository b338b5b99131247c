package predict

import (
	"encoding/json"
	"fmt"
	"os"
)

// LabelEncoder maps classifier output indices to label strings. It is the
// JSON export of a fitted scikit-learn LabelEncoder: {"classes": [...]}.
type LabelEncoder struct {
	classes []string
}

// LoadLabelEncoder reads an encoder export from path.
func LoadLabelEncoder(path string) (*LabelEncoder, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read label encoder: %w", err)
	}
	var doc struct {
		Classes []string `json:"classes"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode label encoder: %w", err)
	}
	return NewLabelEncoder(doc.Classes)
}

// NewLabelEncoder builds an encoder from classes in index order.
func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("%w: label encoder has no classes", ErrInvalidArtifact)
	}
	return &LabelEncoder{classes: append([]string(nil), classes...)}, nil
}

// Len returns the number of known classes.
func (e *LabelEncoder) Len() int { return len(e.classes) }

// Decode is the inverse transform for a single index.
func (e *LabelEncoder) Decode(idx int) (string, error) {
	if idx < 0 || idx >= len(e.classes) {
		return "", fmt.Errorf("class index %d out of range [0,%d)", idx, len(e.classes))
	}
	return e.classes[idx], nil
}
