package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/kiranshivaraju/echoquiz/internal/fields"
	"github.com/kiranshivaraju/echoquiz/internal/predict"
	"github.com/kiranshivaraju/echoquiz/internal/quiz"
	"github.com/kiranshivaraju/echoquiz/internal/results"
	"github.com/kiranshivaraju/echoquiz/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockQuestions struct {
	questions []json.RawMessage
	err       error
}

func (m *mockQuestions) Questions(_ context.Context) ([]json.RawMessage, error) {
	return m.questions, m.err
}

type mockPredictor struct {
	label string
	err   error
	got   models.Measurements
}

func (m *mockPredictor) Name() string { return "mock" }
func (m *mockPredictor) Predict(_ context.Context, ms models.Measurements) (string, error) {
	m.got = ms
	return m.label, m.err
}

type mockRecorder struct {
	err    error
	bodies []fields.Body
	recs   []*models.ResultRecord
}

func (m *mockRecorder) Submit(_ context.Context, body fields.Body) (*models.ResultRecord, error) {
	m.bodies = append(m.bodies, body)
	if m.err != nil {
		return nil, m.err
	}
	return &models.ResultRecord{UserID: "u"}, nil
}

func (m *mockRecorder) List(_ context.Context) ([]*models.ResultRecord, error) {
	return m.recs, m.err
}

// --- helpers ---

func postJSON(t *testing.T, path, body string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func errorText(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

const validMeasurements = `{"ESV":54,"EDV":120,"FrameHeight":112,"FrameWidth":112,"FPS":50,"NumberOfFrames":201}`

// ========================================
// Index
// ========================================

func TestIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	NewIndexHandler()(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Health Echo Quiz API Server", rec.Body.String())
}

// ========================================
// Questions
// ========================================

func TestQuestions_Success(t *testing.T) {
	raw, err := json.Marshal(models.Question{
		ID:       "0X1A",
		Question: "What is the EF category?",
		Answers:  []string{models.LabelNormal, models.LabelReduced, models.LabelAbnormal},
		Correct:  models.LabelNormal,
		VideoURL: "http://127.0.0.1:5000/videos/0X1A.mp4",
	})
	require.NoError(t, err)
	src := &mockQuestions{questions: []json.RawMessage{raw}}

	rec := httptest.NewRecorder()
	NewQuestionsHandler(src)(rec, httptest.NewRequest(http.MethodGet, "/api/questions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Normal", got[0]["correct"])
	assert.Equal(t, "http://127.0.0.1:5000/videos/0X1A.mp4", got[0]["videoUrl"])
}

func TestQuestions_RawEntriesUnchanged(t *testing.T) {
	entry := `{"id":"s1","correct":"Normal","explanation":"why","metadata":{"ESV":"40"}}`
	src := &mockQuestions{questions: []json.RawMessage{json.RawMessage(entry)}}

	rec := httptest.NewRecorder()
	NewQuestionsHandler(src)(rec, httptest.NewRequest(http.MethodGet, "/api/questions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "["+entry+"]", rec.Body.String())
}

func TestQuestions_EmptyIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	NewQuestionsHandler(&mockQuestions{})(rec, httptest.NewRequest(http.MethodGet, "/api/questions", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestQuestions_DataUnavailable(t *testing.T) {
	src := &mockQuestions{err: fmt.Errorf("fallback questions quiz_question.json: %w", quiz.ErrDataUnavailable)}

	rec := httptest.NewRecorder()
	NewQuestionsHandler(src)(rec, httptest.NewRequest(http.MethodGet, "/api/questions", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, errorText(t, rec), "quiz_question.json")
}

// ========================================
// Predict
// ========================================

func TestPredict_Success(t *testing.T) {
	p := &mockPredictor{label: models.LabelNormal}

	rec := httptest.NewRecorder()
	NewPredictHandler(p)(rec, postJSON(t, "/api/predict", validMeasurements))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"prediction":"Normal"}`, rec.Body.String())
	assert.Equal(t, 54.0, p.got.ESV)
	assert.Equal(t, 201.0, p.got.NumberOfFrames)
}

func TestPredict_FormulaEndToEnd(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"normal", validMeasurements, models.LabelNormal},
		{"abnormal", `{"ESV":80,"EDV":120,"FrameHeight":112,"FrameWidth":112,"FPS":50,"NumberOfFrames":201}`, models.LabelAbnormal},
		{"zero edv", `{"ESV":10,"EDV":0,"FrameHeight":112,"FrameWidth":112,"FPS":50,"NumberOfFrames":201}`, models.LabelReduced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewPredictHandler(predict.NewFormulaPredictor())(rec, postJSON(t, "/api/predict", tt.body))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"prediction":%q}`, tt.want), rec.Body.String())
		})
	}
}

func TestPredict_MissingField(t *testing.T) {
	p := &mockPredictor{label: models.LabelNormal}

	rec := httptest.NewRecorder()
	NewPredictHandler(p)(rec, postJSON(t, "/api/predict", `{"ESV":54,"EDV":120}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorText(t, rec), "FrameHeight")
}

func TestPredict_NonNumericField(t *testing.T) {
	body := `{"ESV":"abc","EDV":120,"FrameHeight":112,"FrameWidth":112,"FPS":50,"NumberOfFrames":201}`

	rec := httptest.NewRecorder()
	NewPredictHandler(&mockPredictor{})(rec, postJSON(t, "/api/predict", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredict_InvalidJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	NewPredictHandler(&mockPredictor{})(rec, postJSON(t, "/api/predict", `{not json`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorText(t, rec), "invalid JSON body")
}

func TestPredict_TrailingDataRejected(t *testing.T) {
	p := &mockPredictor{label: models.LabelNormal}

	for _, body := range []string{validMeasurements + " junk", validMeasurements + `{}`} {
		rec := httptest.NewRecorder()
		NewPredictHandler(p)(rec, postJSON(t, "/api/predict", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, errorText(t, rec), "invalid JSON body")
	}
}

func TestPredict_TrailingWhitespaceAccepted(t *testing.T) {
	p := &mockPredictor{label: models.LabelNormal}

	rec := httptest.NewRecorder()
	NewPredictHandler(p)(rec, postJSON(t, "/api/predict", validMeasurements+"\n\t "))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPredict_ClassifierFailure(t *testing.T) {
	p := &mockPredictor{err: errors.New("tree evaluation failed")}

	rec := httptest.NewRecorder()
	NewPredictHandler(p)(rec, postJSON(t, "/api/predict", validMeasurements))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "tree evaluation failed", errorText(t, rec))
}

func TestPredict_PredictorInvalidInput(t *testing.T) {
	p := &mockPredictor{err: fmt.Errorf("%w: feature count", predict.ErrInvalidInput)}

	rec := httptest.NewRecorder()
	NewPredictHandler(p)(rec, postJSON(t, "/api/predict", validMeasurements))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ========================================
// Submit results
// ========================================

func TestSubmitResults_Saved(t *testing.T) {
	rr := &mockRecorder{}

	rec := httptest.NewRecorder()
	NewSubmitResultsHandler(rr)(rec, postJSON(t, "/api/submit_results", `{"userID":"u1","score":7,"ai_score":9,"total":10}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"saved"}`, rec.Body.String())
	require.Len(t, rr.bodies, 1)
	assert.Contains(t, rr.bodies[0], "score")
}

func TestSubmitResults_MissingField(t *testing.T) {
	rr := &mockRecorder{err: fmt.Errorf("%w: score", results.ErrMissingField)}

	rec := httptest.NewRecorder()
	NewSubmitResultsHandler(rr)(rec, postJSON(t, "/api/submit_results", `{"ai_score":9,"total":10}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields", errorText(t, rec))
}

func TestSubmitResults_InvalidInput(t *testing.T) {
	rr := &mockRecorder{err: fmt.Errorf("%w: score must be numeric", results.ErrInvalidInput)}

	rec := httptest.NewRecorder()
	NewSubmitResultsHandler(rr)(rec, postJSON(t, "/api/submit_results", `{"score":"seven","ai_score":9,"total":10}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitResults_StoreFailure(t *testing.T) {
	rr := &mockRecorder{err: errors.New("save result: disk full")}

	rec := httptest.NewRecorder()
	NewSubmitResultsHandler(rr)(rec, postJSON(t, "/api/submit_results", `{"score":7,"ai_score":9,"total":10}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "save result: disk full", errorText(t, rec))
}

func TestSubmitResults_InvalidJSON(t *testing.T) {
	rr := &mockRecorder{}

	rec := httptest.NewRecorder()
	NewSubmitResultsHandler(rr)(rec, postJSON(t, "/api/submit_results", `[1,2]`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rr.bodies)
}

func TestSubmitResults_TrailingDataRejected(t *testing.T) {
	rr := &mockRecorder{}

	rec := httptest.NewRecorder()
	NewSubmitResultsHandler(rr)(rec, postJSON(t, "/api/submit_results", `{"score":7,"ai_score":9,"total":10} junk`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rr.bodies)
}

func TestSubmitResults_NullBodyReachesRecorder(t *testing.T) {
	rr := &mockRecorder{err: results.ErrMissingField}

	rec := httptest.NewRecorder()
	NewSubmitResultsHandler(rr)(rec, postJSON(t, "/api/submit_results", `null`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, rr.bodies, 1)
	assert.NotNil(t, rr.bodies[0])
}

// ========================================
// List results
// ========================================

func TestListResults(t *testing.T) {
	rr := &mockRecorder{recs: []*models.ResultRecord{
		{UserID: "u1", Score: 7, AIScore: 9, Total: 10, Timestamp: "2024-01-02 03:04:05"},
	}}

	rec := httptest.NewRecorder()
	NewListResultsHandler(rr)(rec, httptest.NewRequest(http.MethodGet, "/api/results", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0]["userID"])
	assert.Equal(t, 9.0, got[0]["ai_score"])
}

func TestListResults_Empty(t *testing.T) {
	rec := httptest.NewRecorder()
	NewListResultsHandler(&mockRecorder{})(rec, httptest.NewRequest(http.MethodGet, "/api/results", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

// ========================================
// Videos
// ========================================

func videoRouter(dirs ...string) http.Handler {
	r := chi.NewRouter()
	r.Get("/videos/*", NewVideoHandler(dirs))
	return r
}

func writeVideo(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestVideo_Served(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, "0X1A.mp4", "fake-mp4-bytes")

	rec := httptest.NewRecorder()
	videoRouter(dir).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos/0X1A.mp4", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "video/mp4", rec.Header().Get("Content-Type"))
	assert.Equal(t, "fake-mp4-bytes", rec.Body.String())
}

func TestVideo_Range(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, "0X1A.mp4", "0123456789")

	req := httptest.NewRequest(http.MethodGet, "/videos/0X1A.mp4", nil)
	req.Header.Set("Range", "bytes=2-5")
	rec := httptest.NewRecorder()
	videoRouter(dir).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, "2345", rec.Body.String())
}

func TestVideo_FirstExistingDirectoryWins(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	dir := t.TempDir()
	writeVideo(t, dir, "clip.mp4", "second")

	rec := httptest.NewRecorder()
	videoRouter(missing, dir).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos/clip.mp4", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "second", rec.Body.String())
}

func TestVideo_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	videoRouter(t.TempDir()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos/nope.mp4", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "File not found", errorText(t, rec))
}

func TestVideo_DirectoryIsNotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	rec := httptest.NewRecorder()
	videoRouter(dir).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos/sub", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVideo_NoDirectory(t *testing.T) {
	rec := httptest.NewRecorder()
	videoRouter(filepath.Join(t.TempDir(), "gone")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos/a.mp4", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVideo_TraversalConfined(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "videos")
	require.NoError(t, os.Mkdir(dir, 0o755))
	writeVideo(t, root, "secret.txt", "secret")

	rec := httptest.NewRecorder()
	videoRouter(dir).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos/..%2fsecret.txt", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEqual(t, "secret", rec.Body.String())
}
