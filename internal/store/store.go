package store

import (
	"context"

	"github.com/kiranshivaraju/echoquiz/pkg/models"
)

// ResultStore persists quiz results. Records are append-only; there is no
// update or delete. Implementations must be safe for concurrent use.
type ResultStore interface {
	Ping(ctx context.Context) error
	AppendResult(ctx context.Context, rec *models.ResultRecord) error
	ListResults(ctx context.Context) ([]*models.ResultRecord, error)
}

// ResultColumns is the fixed column order of the tabular results file.
var ResultColumns = []string{"userID", "score", "ai_score", "total", "timestamp"}
