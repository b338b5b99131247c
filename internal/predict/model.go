package predict

import (
	"context"
	"fmt"

	"github.com/kiranshivaraju/echoquiz/pkg/models"
)

// ModelPredictor runs the trained classifier and decodes its output with the
// paired label encoder.
type ModelPredictor struct {
	booster *Booster
	encoder *LabelEncoder
}

// NewModelPredictor pairs a booster with its encoder. The encoder must know
// every class index the booster can emit.
func NewModelPredictor(booster *Booster, encoder *LabelEncoder) (*ModelPredictor, error) {
	if encoder.Len() < booster.Classes() {
		return nil, fmt.Errorf("%w: encoder has %d classes, model emits %d",
			ErrInvalidArtifact, encoder.Len(), booster.Classes())
	}
	return &ModelPredictor{booster: booster, encoder: encoder}, nil
}

// LoadModelPredictor reads both artifacts from disk.
func LoadModelPredictor(modelPath, encoderPath string) (*ModelPredictor, error) {
	booster, err := LoadBooster(modelPath, len(models.FeatureNames))
	if err != nil {
		return nil, err
	}
	encoder, err := LoadLabelEncoder(encoderPath)
	if err != nil {
		return nil, err
	}
	return NewModelPredictor(booster, encoder)
}

func (p *ModelPredictor) Name() string { return "lightgbm" }

func (p *ModelPredictor) Predict(_ context.Context, m models.Measurements) (string, error) {
	idx, err := p.booster.PredictClass(m.Vector())
	if err != nil {
		return "", fmt.Errorf("run classifier: %w", err)
	}
	label, err := p.encoder.Decode(idx)
	if err != nil {
		return "", fmt.Errorf("decode class: %w", err)
	}
	return label, nil
}

var _ Predictor = (*ModelPredictor)(nil)
