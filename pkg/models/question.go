package models

// EF categories shared by quiz answers and predictions.
const (
	LabelNormal   = "Normal"
	LabelReduced  = "Reduced"
	LabelAbnormal = "Abnormal"
)

// Question is a single quiz item built from a ClipRecord.
type Question struct {
	ID       string   `json:"id,omitempty"`
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
	Correct  string   `json:"correct"`
	VideoURL string   `json:"videoUrl"`
	Metadata Metadata `json:"metadata"`
}

// Metadata carries the clip measurements shown alongside a question.
type Metadata struct {
	ESV            float64 `json:"ESV"`
	EDV            float64 `json:"EDV"`
	FrameHeight    float64 `json:"FrameHeight"`
	FrameWidth     float64 `json:"FrameWidth"`
	FPS            float64 `json:"FPS"`
	NumberOfFrames float64 `json:"NumberOfFrames"`
}
