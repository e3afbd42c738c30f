package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/timesheet/internal/workdate"
	"github.com/julianstephens/timesheet/internal/worklog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{BaseURL: server.URL + "/", OrgID: "42"})
	client.SetToken("secret-token")
	return client
}

func TestClient_FetchWorklogs(t *testing.T) {
	period := workdate.DefaultRules().MonthPeriod(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/worklog/_search", r.URL.Path)
		assert.Equal(t, "250", r.URL.Query().Get("perPage"))
		assert.Equal(t, "OAuth secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "42", r.Header.Get("X-Org-ID"))
		assert.Empty(t, r.Header.Get("X-Cloud-Org-ID"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1130000012345678", body["createdBy"])
		assert.Equal(t, map[string]any{
			"from": "2024-09-30T21:00:00.000+0000",
			"to":   "2024-10-31T20:59:59.999+0000",
		}, body["start"])

		_, _ = io.WriteString(w, `[
			{"id": 1, "issue": {"id": "a1", "key": "TASK-1", "display": "Fix login"},
			 "start": "2024-10-01T09:00:00.000+0000", "duration": "PT2H", "comment": "review"},
			{"id": 2, "issue": {"id": "b2", "key": "OPS-7", "display": "Deploy"},
			 "start": "2024-10-03T09:00:00.000+0000", "duration": "PT30M"}
		]`)
	})

	got, err := client.FetchWorklogs(context.Background(), worklog.Query{UserID: "1130000012345678", Period: period})
	require.NoError(t, err)

	assert.Equal(t, []worklog.Worklog{
		{ID: 1, Start: "2024-10-01T09:00:00.000+0000", Duration: "PT2H",
			Issue: worklog.Issue{ID: "a1", Key: "TASK-1", Display: "Fix login", Comment: "review"}},
		{ID: 2, Start: "2024-10-03T09:00:00.000+0000", Duration: "PT30M",
			Issue: worklog.Issue{ID: "b2", Key: "OPS-7", Display: "Deploy"}},
	}, got)
}

func TestClient_FetchWorklogsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	got, err := client.FetchWorklogs(context.Background(), worklog.Query{UserID: "1"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClient_ErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorMessages":["boom"]}`, http.StatusInternalServerError)
	})

	_, err := client.FetchWorklogs(context.Background(), worklog.Query{UserID: "1"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Contains(t, apiErr.Body, "boom")
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestClient_Unauthorized(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		_, err := client.Myself(context.Background())
		assert.ErrorIs(t, err, ErrUnauthorized, "status %d", status)
	}
}

func TestClient_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"not": "a list"`)
	})

	_, err := client.FetchWorklogs(context.Background(), worklog.Query{UserID: "1"})
	assert.Error(t, err)
}

func TestClient_Myself(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/myself", r.URL.Path)
		_, _ = io.WriteString(w, `{"uid": 1130000012345678, "login": "jdoe", "display": "Jane Doe"}`)
	})

	user, err := client.Myself(context.Background())
	require.NoError(t, err)
	assert.Equal(t, User{ID: "1130000012345678", Login: "jdoe", Name: "Jane Doe"}, user)
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"uid": 1}`)
	})
	client.ResetToken()

	_, err := client.Myself(context.Background())
	require.NoError(t, err)
}

func TestClient_DeleteWorklog(t *testing.T) {
	var called bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/issues/TASK-1/worklog/17", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteWorklog(context.Background(), "TASK-1", 17))
	assert.True(t, called)
}

func TestClient_DeleteWorklogNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.DeleteWorklog(context.Background(), "TASK-1", 17)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClient_UpdateWorklog(t *testing.T) {
	comment := "pairing"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/issues/a1/worklog/5", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"duration": "PT1H15M", "comment": "pairing"}, body)

		_, _ = io.WriteString(w, `{"id": 5, "issue": {"id": "a1", "key": "TASK-1", "display": "Fix"},
			"start": "2024-10-01T09:00:00.000+0000", "duration": "PT1H15M", "comment": "pairing"}`)
	})

	got, err := client.UpdateWorklog(context.Background(), UpdateParams{
		IssueID: "a1", WorklogID: 5, Duration: "PT1H15M", Comment: &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, "PT1H15M", got.Duration)
	assert.Equal(t, "pairing", got.Issue.Comment)
}

func TestClient_UpdateWorklogWithoutComment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasComment := body["comment"]
		assert.False(t, hasComment)
		_, _ = io.WriteString(w, `{"id": 5, "duration": "PT1H"}`)
	})

	_, err := client.UpdateWorklog(context.Background(), UpdateParams{IssueID: "a1", WorklogID: 5, Duration: "PT1H"})
	require.NoError(t, err)
}

func TestClient_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchWorklogs(ctx, worklog.Query{UserID: "1"})
	assert.ErrorIs(t, err, context.Canceled)
}
