package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edunova/internal/generation"
	"github.com/abhisek/edunova/internal/llm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(responses ...llm.MockResponse) (*Server, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	runner := generation.NewRunner(generation.NewClient(mock, 0), nil, nil)
	return New(Config{Runner: runner}), mock
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer()
	w := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestContentTypes(t *testing.T) {
	s, _ := newTestServer()
	w := do(t, s, http.MethodGet, "/api/content-types", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		ContentTypes []contentTypeInfo `json:"contentTypes"`
		AgeGroups    []string          `json:"ageGroups"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.ContentTypes, 5)
	assert.Equal(t, "Lesson Plan", body.ContentTypes[0].Label)
	assert.True(t, body.ContentTypes[1].Interactive)
	assert.Equal(t, []string{"6-8", "9-12"}, body.AgeGroups)
}

func TestGenerate_Quiz(t *testing.T) {
	text := "QUESTION 1: Largest planet?\nA) Earth\nB) Jupiter\nC) Mars\nD) Venus\nCORRECT: B"
	s, mock := newTestServer(llm.MockResponse{Content: text})

	w := do(t, s, http.MethodPost, "/api/generate", `{"ageGroup":"6-8","contentType":"quiz","topic":"Solar System"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp generateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Failed)
	assert.Equal(t, text, resp.Text)
	assert.Equal(t, "quiz_Solar_System_age_6-8.txt", resp.Filename)
	require.Len(t, resp.Quiz, 1)
	assert.Equal(t, "Jupiter", resp.Quiz[0].Options[1])
	assert.Nil(t, resp.Flashcards)
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerate_FailureIsFallback(t *testing.T) {
	s, _ := newTestServer(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})

	w := do(t, s, http.MethodPost, "/api/generate", `{"ageGroup":"9-12","contentType":"flashcards","topic":"Cells"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp generateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Failed)
	assert.Equal(t, generation.FallbackMessage, resp.Text)
	assert.Equal(t, "transport", resp.ErrorKind)
	assert.Nil(t, resp.Flashcards, "failed results are plain text")
}

func TestGenerate_Validation(t *testing.T) {
	s, mock := newTestServer(llm.MockResponse{Content: "unused"})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"empty topic", `{"ageGroup":"6-8","contentType":"quiz","topic":"  "}`, "topic"},
		{"bad age", `{"ageGroup":"3-5","contentType":"quiz","topic":"x"}`, "ageGroup"},
		{"bad type", `{"ageGroup":"6-8","contentType":"poem","topic":"x"}`, "contentType"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/generate", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var env errorEnvelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, "validation", env.Error.Code)
			assert.Equal(t, tt.field, env.Error.Field)
		})
	}
	assert.Zero(t, mock.CallCount(), "invalid requests are never sent")

	w := do(t, s, http.MethodPost, "/api/generate", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownload(t *testing.T) {
	s, _ := newTestServer()

	w := do(t, s, http.MethodPost, "/api/download",
		`{"ageGroup":"6-8","contentType":"lesson-plan","topic":"Solar  System","text":"Hello"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello", w.Body.String())
	assert.Equal(t, `attachment; filename=lesson_plan_Solar_System_age_6-8.txt`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))

	w = do(t, s, http.MethodPost, "/api/download",
		`{"ageGroup":"9-12","contentType":"quiz","topic":"Système solaire","text":"Bonjour"}`)
	require.Equal(t, http.StatusOK, w.Code)
	disposition := w.Header().Get("Content-Disposition")
	assert.Equal(t, `attachment; filename*=utf-8''quiz_Syst%C3%A8me_solaire_age_9-12.txt`, disposition)
	_, params, err := mime.ParseMediaType(disposition)
	require.NoError(t, err)
	assert.Equal(t, "quiz_Système_solaire_age_9-12.txt", params["filename"])

	w = do(t, s, http.MethodPost, "/api/download", `{"ageGroup":"6-8","contentType":"quiz","topic":"x","text":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORS(t *testing.T) {
	mock := llm.NewMockProvider()
	s := New(Config{
		Runner:       generation.NewRunner(generation.NewClient(mock, 0), nil, nil),
		AllowOrigins: []string{"http://localhost:5173"},
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
