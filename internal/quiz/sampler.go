package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"

	"github.com/kiranshivaraju/echoquiz/pkg/models"
)

const (
	// MaxQuestions caps the number of questions served per request.
	MaxQuestions = 15

	questionPrompt = "What is the most likely EF value for this heart?"
)

// answerSet returns a fresh copy so callers can't mutate a shared slice.
func answerSet() []string {
	return []string{models.LabelNormal, models.LabelReduced, models.LabelAbnormal}
}

// Sampler draws random questions from the clip dataset. The dataset is
// re-read on every call.
type Sampler struct {
	datasetPath  string
	videoBaseURL string
	shuffle      func(n int, swap func(i, j int))
}

// NewSampler creates a Sampler reading from datasetPath. videoBaseURL must
// not carry a trailing slash.
func NewSampler(datasetPath, videoBaseURL string) *Sampler {
	return &Sampler{
		datasetPath:  datasetPath,
		videoBaseURL: videoBaseURL,
		shuffle:      rand.Shuffle,
	}
}

// SampleQuestions returns up to MaxQuestions questions built from rows with a
// numeric EF. Returns ErrDataUnavailable if the dataset file does not exist.
func (s *Sampler) SampleQuestions(ctx context.Context) ([]models.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clips, err := loadClips(s.datasetPath)
	if err != nil {
		return nil, err
	}

	type validClip struct {
		clip models.ClipRecord
		ef   float64
	}
	valid := make([]validClip, 0, len(clips))
	for _, c := range clips {
		if ef, ok := parseEF(c.EF); ok {
			valid = append(valid, validClip{clip: c, ef: ef})
		}
	}

	n := min(MaxQuestions, len(valid))
	s.shuffle(len(valid), func(i, j int) { valid[i], valid[j] = valid[j], valid[i] })

	questions := make([]models.Question, 0, n)
	for _, v := range valid[:n] {
		questions = append(questions, models.Question{
			ID:       v.clip.FileName,
			Question: questionPrompt,
			Answers:  answerSet(),
			Correct:  labelForEF(v.ef),
			VideoURL: s.videoURL(v.clip.FileName),
			Metadata: v.clip.Metadata(),
		})
	}
	return questions, nil
}

func (s *Sampler) videoURL(fileName string) string {
	return fmt.Sprintf("%s/%s.mp4", s.videoBaseURL, url.PathEscape(fileName))
}

// labelForEF buckets a dataset EF into its ground-truth answer.
func labelForEF(ef float64) string {
	switch {
	case ef >= 55:
		return models.LabelNormal
	case 40 <= ef && ef < 55:
		return models.LabelReduced
	default:
		return models.LabelAbnormal
	}
}
