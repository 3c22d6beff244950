package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-organizer/internal/repository"
	"home-organizer/internal/service"
)

func newTestServer(t *testing.T, secret string) *Server {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := repository.NewDB(dsn)
	require.NoError(t, err)

	personRepo := repository.NewPersonRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	instanceRepo := repository.NewInstanceRepository(db)

	planner := service.NewPlannerService(taskRepo, personRepo, instanceRepo)
	tasks := service.NewTaskService(taskRepo, personRepo, instanceRepo)

	return NewServer("127.0.0.1:0", NewHandlers(planner, tasks, personRepo, secret))
}

func doJSON(t *testing.T, srv *Server, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, "")
	rec := doJSON(t, srv, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestMonthFlow(t *testing.T) {
	srv := newTestServer(t, "")

	rec := doJSON(t, srv, http.MethodPost, "/api/people", map[string]any{"name": "Alex", "color": "#f00"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/tasks", map[string]any{
		"title":      "Take out trash",
		"assigneeId": 1,
		"recurrence": map[string]any{
			"freq":      "weekly",
			"byWeekday": "mon,wed",
			"startDate": "2024-01-01",
		},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/instances", map[string]any{
		"taskId": 1, "date": "2024-01-03", "status": "done",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/month?year=2024&month=1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Range struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"range"`
		People      []map[string]any `json:"people"`
		Occurrences []struct {
			Date   string `json:"date"`
			Status string `json:"status"`
		} `json:"occurrences"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "2024-01-01", payload.Range.Start)
	assert.Equal(t, "2024-01-31", payload.Range.End)
	assert.Len(t, payload.People, 1)
	require.Len(t, payload.Occurrences, 10)

	done := 0
	for _, occ := range payload.Occurrences {
		if occ.Status == "done" {
			done++
			assert.Equal(t, "2024-01-03", occ.Date)
		}
	}
	assert.Equal(t, 1, done)
}

func TestStopEndpoint(t *testing.T) {
	srv := newTestServer(t, "")

	rec := doJSON(t, srv, http.MethodPost, "/api/tasks", map[string]any{
		"title":      "Feed the cat",
		"recurrence": map[string]any{"freq": "daily", "startDate": "2024-01-01"},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/tasks/1/stop", map[string]any{"date": "2024-02-10"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/tasks/1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Rule struct {
			EndDate *string `json:"endDate"`
		} `json:"rule"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotNil(t, payload.Rule.EndDate)
	assert.Equal(t, "2024-02-09", *payload.Rule.EndDate)

	rec = doJSON(t, srv, http.MethodPost, "/api/tasks/1/stop", map[string]any{"date": "bogus"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/tasks/99/stop", map[string]any{"date": "2024-02-10"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidationResponses(t *testing.T) {
	srv := newTestServer(t, "")

	rec := doJSON(t, srv, http.MethodPost, "/api/people", map[string]any{"name": "Alex"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/tasks", map[string]any{"title": "No rule"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/tasks/99", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/month?year=2024&month=42", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSoftDeletePerson(t *testing.T) {
	srv := newTestServer(t, "")

	rec := doJSON(t, srv, http.MethodPost, "/api/people", map[string]any{"name": "Sam", "color": "#0f0"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/api/people/1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/people", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		People []map[string]any `json:"people"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Empty(t, payload.People)
}

func TestTelegramWebhook(t *testing.T) {
	srv := newTestServer(t, "hunter2")

	body := map[string]any{"message": map[string]any{"text": "/chore wash dishes daily"}}

	rec := doJSON(t, srv, http.MethodPost, "/api/telegram/webhook", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	headers := map[string]string{"X-Telegram-Bot-Api-Secret-Token": "hunter2"}
	rec = doJSON(t, srv, http.MethodPost, "/api/telegram/webhook", body, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/api/tasks/1", nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Task map[string]any `json:"task"`
		Rule map[string]any `json:"rule"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "wash dishes", payload.Task["title"])
	assert.Equal(t, "daily", payload.Rule["freq"])

	rec = doJSON(t, srv, http.MethodPost, "/api/telegram/webhook",
		map[string]any{"message": map[string]any{"text": "hello"}}, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"ignored":true}`, rec.Body.String())
}
