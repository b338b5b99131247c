package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/kiranshivaraju/echoquiz/pkg/models"
)

// CSVStore appends results to a CSV file. The header row is written when
// the file is new or empty.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

// NewCSVStore creates a CSVStore writing to path. The file is created lazily
// on first append.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Ping checks that the results directory is reachable.
func (s *CSVStore) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat results dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("results dir %s is not a directory", dir)
	}
	return nil
}

func (s *CSVStore) AppendResult(_ context.Context, rec *models.ResultRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open results file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat results file: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(ResultColumns); err != nil {
			return fmt.Errorf("write results header: %w", err)
		}
	}
	if err := w.Write([]string{
		rec.UserID,
		formatNumber(rec.Score),
		formatNumber(rec.AIScore),
		formatNumber(rec.Total),
		rec.Timestamp,
	}); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush results file: %w", err)
	}
	return f.Close()
}

func (s *CSVStore) ListResults(_ context.Context) ([]*models.ResultRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []*models.ResultRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open results file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(ResultColumns)

	records := []*models.ResultRecord{}
	for line := 1; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read results file: %w", err)
		}
		if line == 1 && row[0] == ResultColumns[0] {
			continue
		}
		rec, err := parseResultRow(row)
		if err != nil {
			return nil, fmt.Errorf("results file line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseResultRow(row []string) (*models.ResultRecord, error) {
	nums := make([]float64, 3)
	for i, cell := range row[1:4] {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", ResultColumns[i+1], err)
		}
		nums[i] = v
	}
	return &models.ResultRecord{
		UserID:    row[0],
		Score:     nums[0],
		AIScore:   nums[1],
		Total:     nums[2],
		Timestamp: row[4],
	}, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var _ ResultStore = (*CSVStore)(nil)
