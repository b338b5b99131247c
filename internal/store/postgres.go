package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranshivaraju/echoquiz/pkg/models"
)

// PostgresStore implements ResultStore using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// AppendResult inserts rec, assigning its ID and CreatedAt.
func (s *PostgresStore) AppendResult(ctx context.Context, rec *models.ResultRecord) error {
	id := uuid.New()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO quiz_results (id, user_id, score, ai_score, total, "timestamp", created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, rec.UserID, rec.Score, rec.AIScore, rec.Total, rec.Timestamp, now)
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}
	rec.ID = &id
	rec.CreatedAt = &now
	return nil
}

func (s *PostgresStore) ListResults(ctx context.Context) ([]*models.ResultRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, score, ai_score, total, "timestamp", created_at
		 FROM quiz_results ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	defer rows.Close()

	records := []*models.ResultRecord{}
	for rows.Next() {
		var (
			r         models.ResultRecord
			id        uuid.UUID
			createdAt time.Time
		)
		if err := rows.Scan(&id, &r.UserID, &r.Score, &r.AIScore, &r.Total, &r.Timestamp, &createdAt); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		r.ID = &id
		r.CreatedAt = &createdAt
		records = append(records, &r)
	}
	return records, rows.Err()
}

var _ ResultStore = (*PostgresStore)(nil)
