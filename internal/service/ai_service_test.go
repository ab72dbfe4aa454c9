package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Tejas411/LearnPal/internal/config"
	"github.com/Tejas411/LearnPal/internal/model"
	"github.com/Tejas411/LearnPal/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider stands in for the chat completions endpoint and replies
// with a fixed message content.
func fakeProvider(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestAIService(baseURL string) *AIService {
	return NewAIService(config.AIConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "gpt-4o",
	})
}

func TestGenerateSyllabus(t *testing.T) {
	syllabusJSON := `{
		"title": "Learn Go",
		"description": "A practical Go course.",
		"difficulty": "beginner",
		"estimatedHours": 40,
		"modules": [
			{
				"title": "Basics",
				"description": "Syntax and tooling",
				"orderIndex": 0,
				"tasks": [
					{"title": "Install Go", "type": "document", "estimatedMinutes": 30, "orderIndex": 0},
					{"title": "Tour of Go", "type": "video", "estimatedMinutes": 60, "orderIndex": 1}
				]
			}
		]
	}`

	srv := fakeProvider(t, http.StatusOK, syllabusJSON)
	defer srv.Close()

	svc := newTestAIService(srv.URL)
	syllabus, err := svc.GenerateSyllabus(context.Background(), "Go", "beginner", "1-2 hours per day")

	require.NoError(t, err)
	assert.Equal(t, "Learn Go", syllabus.Title)
	assert.Equal(t, model.Beginner, syllabus.Difficulty)
	assert.Equal(t, 40, syllabus.EstimatedHours)
	require.Len(t, syllabus.Modules, 1)
	assert.Len(t, syllabus.Modules[0].Tasks, 2)
	assert.Equal(t, model.TaskVideo, syllabus.Modules[0].Tasks[1].Type)
}

func TestGenerateSyllabusRejectsEmptyModules(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK, `{"title": "Empty", "modules": []}`)
	defer srv.Close()

	svc := newTestAIService(srv.URL)
	_, err := svc.GenerateSyllabus(context.Background(), "Go", "", "")

	assert.ErrorIs(t, err, util.ErrSyllabusGeneration)
}

func TestGenerateSyllabusRejectsUnparseableResponse(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK, "sorry, here is your syllabus in prose")
	defer srv.Close()

	svc := newTestAIService(srv.URL)
	_, err := svc.GenerateSyllabus(context.Background(), "Go", "", "")

	assert.ErrorIs(t, err, util.ErrSyllabusGeneration)
}

func TestGenerateSyllabusProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer srv.Close()

	svc := newTestAIService(srv.URL)
	_, err := svc.GenerateSyllabus(context.Background(), "Go", "", "")

	assert.ErrorIs(t, err, util.ErrSyllabusGeneration)
}

func TestGenerateTaskContentTrimsWhitespace(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK, "\n  Learning objectives: ...  \n")
	defer srv.Close()

	svc := newTestAIService(srv.URL)
	content, err := svc.GenerateTaskContent(context.Background(), "Install Go", model.TaskDocument, "Basics")

	require.NoError(t, err)
	assert.Equal(t, "Learning objectives: ...", content)
}

func TestUpdateConfigSwitchesProvider(t *testing.T) {
	old := fakeProvider(t, http.StatusOK, "from old")
	old.Close() // the old endpoint is gone

	srv := fakeProvider(t, http.StatusOK, "from new")
	defer srv.Close()

	svc := newTestAIService(old.URL)
	svc.UpdateConfig(config.AIConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "gpt-4o"})

	content, err := svc.GenerateTaskContent(context.Background(), "t", model.TaskDocument, "m")
	require.NoError(t, err)
	assert.Equal(t, "from new", content)
}
