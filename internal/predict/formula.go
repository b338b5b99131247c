package predict

import (
	"context"

	"github.com/kiranshivaraju/echoquiz/pkg/models"
)

// neutralEF is used when EDV is not positive.
const neutralEF = 50.0

// FormulaPredictor estimates EF from the two volumes and buckets it.
type FormulaPredictor struct{}

func NewFormulaPredictor() *FormulaPredictor {
	return &FormulaPredictor{}
}

func (p *FormulaPredictor) Name() string { return "ef-formula" }

func (p *FormulaPredictor) Predict(_ context.Context, m models.Measurements) (string, error) {
	return categorize(ejectionFraction(m.ESV, m.EDV)), nil
}

func ejectionFraction(esv, edv float64) float64 {
	if edv > 0 {
		return (edv - esv) / edv * 100
	}
	return neutralEF
}

func categorize(ef float64) string {
	if ef >= 55 {
		return models.LabelNormal
	}
	if ef >= 40 {
		return models.LabelReduced
	}
	return models.LabelAbnormal
}

var _ Predictor = (*FormulaPredictor)(nil)
