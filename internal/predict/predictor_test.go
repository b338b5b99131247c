package predict_test

import (
	"encoding/json"
	"testing"

	"github.com/kiranshivaraju/echoquiz/internal/fields"
	"github.com/kiranshivaraju/echoquiz/internal/predict"
	"github.com/kiranshivaraju/echoquiz/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func body(t *testing.T, raw string) fields.Body {
	t.Helper()
	var b fields.Body
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	return b
}

func TestParseMeasurements_Valid(t *testing.T) {
	m, err := predict.ParseMeasurements(body(t,
		`{"ESV": 54, "EDV": "120", "FrameHeight": 112, "FrameWidth": 112, "FPS": 50.5, "NumberOfFrames": 201}`))
	require.NoError(t, err)
	assert.Equal(t, models.Measurements{
		ESV: 54, EDV: 120, FrameHeight: 112, FrameWidth: 112, FPS: 50.5, NumberOfFrames: 201,
	}, m)
	assert.Equal(t, []float64{54, 120, 112, 112, 50.5, 201}, m.Vector())
}

func TestParseMeasurements_NoRangeChecks(t *testing.T) {
	m, err := predict.ParseMeasurements(body(t,
		`{"ESV": -5, "EDV": 0, "FrameHeight": 0, "FrameWidth": 1e9, "FPS": -1, "NumberOfFrames": 0}`))
	require.NoError(t, err)
	assert.Equal(t, -5.0, m.ESV)
	assert.Equal(t, 1e9, m.FrameWidth)
}

func TestParseMeasurements_MissingField(t *testing.T) {
	_, err := predict.ParseMeasurements(body(t,
		`{"ESV": 54, "EDV": 120, "FrameHeight": 112, "FrameWidth": 112, "FPS": 50}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, predict.ErrInvalidInput)
	assert.Contains(t, err.Error(), "NumberOfFrames")
}

func TestParseMeasurements_NonNumeric(t *testing.T) {
	for _, bad := range []string{`"abc"`, `null`, `true`, `[1]`, `""`} {
		t.Run(bad, func(t *testing.T) {
			_, err := predict.ParseMeasurements(body(t,
				`{"ESV": `+bad+`, "EDV": 120, "FrameHeight": 112, "FrameWidth": 112, "FPS": 50, "NumberOfFrames": 10}`))
			require.Error(t, err)
			assert.ErrorIs(t, err, predict.ErrInvalidInput)
			assert.Contains(t, err.Error(), "ESV")
		})
	}
}

func TestParseMeasurements_EmptyBody(t *testing.T) {
	_, err := predict.ParseMeasurements(fields.Body{})
	assert.ErrorIs(t, err, predict.ErrInvalidInput)
}
