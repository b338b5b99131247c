package models

// Measurements is the input to a prediction. Vector returns the features in
// the order the classifier was trained on.
type Measurements struct {
	ESV            float64 `json:"ESV"`
	EDV            float64 `json:"EDV"`
	FrameHeight    float64 `json:"FrameHeight"`
	FrameWidth     float64 `json:"FrameWidth"`
	FPS            float64 `json:"FPS"`
	NumberOfFrames float64 `json:"NumberOfFrames"`
}

// FeatureNames lists the measurement fields in classifier order.
var FeatureNames = []string{"ESV", "EDV", "FrameHeight", "FrameWidth", "FPS", "NumberOfFrames"}

func (m Measurements) Vector() []float64 {
	return []float64{m.ESV, m.EDV, m.FrameHeight, m.FrameWidth, m.FPS, m.NumberOfFrames}
}
