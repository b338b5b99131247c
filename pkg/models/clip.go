// Package models contains shared data models used across the echoquiz codebase.
package models

// ClipRecord is one row of the echo clip dataset. EF is kept as the raw cell
// text because the dataset contains rows where it is missing or non-numeric.
type ClipRecord struct {
	FileName       string
	EF             string
	ESV            float64
	EDV            float64
	FrameHeight    float64
	FrameWidth     float64
	FPS            float64
	NumberOfFrames float64
}

// Metadata returns the clip measurements as sent to quiz clients.
func (c ClipRecord) Metadata() Metadata {
	return Metadata{
		ESV:            c.ESV,
		EDV:            c.EDV,
		FrameHeight:    c.FrameHeight,
		FrameWidth:     c.FrameWidth,
		FPS:            c.FPS,
		NumberOfFrames: c.NumberOfFrames,
	}
}
