package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/kiranshivaraju/echoquiz/internal/config"
	"github.com/kiranshivaraju/echoquiz/pkg/models"
)

// Service serves quiz questions, preferring a fresh sample from the dataset
// and falling back to the static question list when the dataset is absent.
type Service struct {
	sampler      *Sampler
	fallbackPath string
}

// NewService creates a Service from quiz configuration.
func NewService(cfg config.QuizConfig) *Service {
	return &Service{
		sampler:      NewSampler(cfg.DatasetPath, cfg.VideoBaseURL),
		fallbackPath: cfg.FallbackQuestionsPath,
	}
}

// Questions returns the encoded questions for one quiz round. Entries of the
// static list are passed through exactly as authored.
func (s *Service) Questions(ctx context.Context) ([]json.RawMessage, error) {
	questions, err := s.sampler.SampleQuestions(ctx)
	if err == nil {
		return encodeQuestions(questions)
	}
	if !errors.Is(err, ErrDataUnavailable) {
		return nil, fmt.Errorf("sample questions: %w", err)
	}

	slog.Warn("dataset unavailable, serving static questions",
		"dataset", s.sampler.datasetPath,
		"fallback", s.fallbackPath,
	)
	return loadStaticQuestions(s.fallbackPath)
}

func encodeQuestions(questions []models.Question) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(questions))
	for _, q := range questions {
		b, err := json.Marshal(q)
		if err != nil {
			return nil, fmt.Errorf("encode question %s: %w", q.ID, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// loadStaticQuestions reads the pre-authored question list. Only the
// top-level array is checked; its entries are not interpreted.
func loadStaticQuestions(path string) ([]json.RawMessage, error) {
	if path == "" {
		return nil, fmt.Errorf("no fallback question list configured: %w", ErrDataUnavailable)
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("fallback questions %s: %w", path, ErrDataUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("read fallback questions: %w", err)
	}

	var questions []json.RawMessage
	if err := json.Unmarshal(b, &questions); err != nil {
		return nil, fmt.Errorf("decode fallback questions: %w", err)
	}
	return questions, nil
}
