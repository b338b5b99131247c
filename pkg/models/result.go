package models

import (
	"time"

	"github.com/google/uuid"
)

// ResultRecord is one submitted quiz result. Records are append-only.
// ID and CreatedAt are only populated by stores that track them.
type ResultRecord struct {
	ID        *uuid.UUID `db:"id"         json:"id,omitempty"`
	UserID    string     `db:"user_id"    json:"userID"`
	Score     float64    `db:"score"      json:"score"`
	AIScore   float64    `db:"ai_score"   json:"ai_score"`
	Total     float64    `db:"total"      json:"total"`
	Timestamp string     `db:"timestamp"  json:"timestamp"`
	CreatedAt *time.Time `db:"created_at" json:"created_at,omitempty"`
}
