package results

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kiranshivaraju/echoquiz/internal/fields"
	"github.com/kiranshivaraju/echoquiz/internal/store"
	"github.com/kiranshivaraju/echoquiz/pkg/models"
)

// TimestampLayout is the format of server-generated timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

const defaultUserID = "unknown"

var (
	// ErrMissingField is returned when a required result field is absent or
	// empty after defaults are applied.
	ErrMissingField = errors.New("missing required fields")
	// ErrInvalidInput is returned when a score field is not numeric.
	ErrInvalidInput = errors.New("invalid result input")
)

// Recorder validates quiz result submissions and appends them to a store.
type Recorder struct {
	store store.ResultStore
	now   func() time.Time
}

// NewRecorder creates a Recorder backed by s.
func NewRecorder(s store.ResultStore) *Recorder {
	return &Recorder{store: s, now: time.Now}
}

// Submit applies defaults, validates, and appends one result. Nothing is
// written when validation fails. Store failures are returned to the caller.
func (r *Recorder) Submit(ctx context.Context, body fields.Body) (*models.ResultRecord, error) {
	rec, err := r.build(body)
	if err != nil {
		return nil, err
	}

	if err := r.store.AppendResult(ctx, rec); err != nil {
		slog.Error("failed to save result", "user_id", rec.UserID, "error", err)
		return nil, fmt.Errorf("save result: %w", err)
	}
	slog.Info("result saved",
		"user_id", rec.UserID,
		"score", rec.Score,
		"ai_score", rec.AIScore,
		"total", rec.Total,
	)
	return rec, nil
}

// List returns every stored result in insertion order.
func (r *Recorder) List(ctx context.Context) ([]*models.ResultRecord, error) {
	recs, err := r.store.ListResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return recs, nil
}

func (r *Recorder) build(body fields.Body) (*models.ResultRecord, error) {
	userID := defaultUserID
	if raw, ok := body["userID"]; ok {
		if fields.IsBlank(raw) {
			return nil, fmt.Errorf("%w: userID", ErrMissingField)
		}
		v, ok := fields.Text(raw)
		if !ok {
			return nil, fmt.Errorf("%w: userID must be a scalar", ErrInvalidInput)
		}
		userID = v
	}

	timestamp := r.now().Format(TimestampLayout)
	if raw, ok := body["timestamp"]; ok && !fields.IsBlank(raw) {
		v, ok := fields.Text(raw)
		if !ok {
			return nil, fmt.Errorf("%w: timestamp must be a scalar", ErrInvalidInput)
		}
		timestamp = v
	}

	nums := make(map[string]float64, 3)
	for _, name := range []string{"score", "ai_score", "total"} {
		raw, ok := body[name]
		if !ok || fields.IsBlank(raw) {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, name)
		}
		v, ok := fields.Number(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be numeric", ErrInvalidInput, name)
		}
		nums[name] = v
	}

	return &models.ResultRecord{
		UserID:    userID,
		Score:     nums["score"],
		AIScore:   nums["ai_score"],
		Total:     nums["total"],
		Timestamp: timestamp,
	}, nil
}
