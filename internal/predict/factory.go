package predict

import (
	"log/slog"

	"github.com/kiranshivaraju/echoquiz/internal/config"
)

// NewPredictor picks the prediction strategy for the lifetime of the process.
// Called once at server startup. If the classifier artifacts cannot be
// loaded the EF formula is used instead; there is no later retry.
func NewPredictor(cfg config.ModelConfig) Predictor {
	p, err := LoadModelPredictor(cfg.ModelPath, cfg.EncoderPath)
	if err != nil {
		slog.Warn("classifier unavailable, falling back to EF formula",
			"model", cfg.ModelPath,
			"encoder", cfg.EncoderPath,
			"error", err,
		)
		return NewFormulaPredictor()
	}
	slog.Info("classifier loaded",
		"model", cfg.ModelPath,
		"classes", p.encoder.Len(),
	)
	return p
}
