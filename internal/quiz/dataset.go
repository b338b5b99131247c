package quiz

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/kiranshivaraju/echoquiz/pkg/models"
)

// Dataset column names as written by the EchoNet FileList export.
const (
	colFileName       = "FileName"
	colEF             = "EF"
	colESV            = "ESV"
	colEDV            = "EDV"
	colFrameHeight    = "FrameHeight"
	colFrameWidth     = "FrameWidth"
	colFPS            = "FPS"
	colNumberOfFrames = "NumberOfFrames"
)

// loadClips reads every row of the dataset at path. Rows are returned as-is;
// EF filtering happens in the sampler.
func loadClips(path string) ([]models.ClipRecord, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("dataset %s: %w", path, ErrDataUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return readClips(f)
}

func readClips(r io.Reader) ([]models.ClipRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("dataset is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colFileName, colEF} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("dataset is missing column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var clips []models.ClipRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row: %w", err)
		}
		clips = append(clips, models.ClipRecord{
			FileName:       cell(row, colFileName),
			EF:             cell(row, colEF),
			ESV:            measurement(cell(row, colESV)),
			EDV:            measurement(cell(row, colEDV)),
			FrameHeight:    measurement(cell(row, colFrameHeight)),
			FrameWidth:     measurement(cell(row, colFrameWidth)),
			FPS:            measurement(cell(row, colFPS)),
			NumberOfFrames: measurement(cell(row, colNumberOfFrames)),
		})
	}
	return clips, nil
}

// parseEF reports whether raw holds a usable ejection fraction.
func parseEF(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// measurement parses a metadata cell; blanks and junk read as zero.
func measurement(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
