package predict

import (
	"context"
	"fmt"

	"github.com/kiranshivaraju/echoquiz/internal/fields"
	"github.com/kiranshivaraju/echoquiz/pkg/models"
)

// Predictor classifies clip measurements into an EF category.
// Implementations must be safe for concurrent use.
type Predictor interface {
	Predict(ctx context.Context, m models.Measurements) (string, error)
	// Name identifies the strategy in logs (e.g. "lightgbm", "ef-formula").
	Name() string
}

// ParseMeasurements validates a decoded request body. Every measurement must
// be present and numeric; values are not range-checked.
func ParseMeasurements(body fields.Body) (models.Measurements, error) {
	vals := make([]float64, len(models.FeatureNames))
	for i, name := range models.FeatureNames {
		raw, ok := body[name]
		if !ok {
			return models.Measurements{}, fmt.Errorf("%w: missing field %s", ErrInvalidInput, name)
		}
		v, ok := fields.Number(raw)
		if !ok {
			return models.Measurements{}, fmt.Errorf("%w: field %s must be numeric", ErrInvalidInput, name)
		}
		vals[i] = v
	}
	return models.Measurements{
		ESV:            vals[0],
		EDV:            vals[1],
		FrameHeight:    vals[2],
		FrameWidth:     vals[3],
		FPS:            vals[4],
		NumberOfFrames: vals[5],
	}, nil
}
