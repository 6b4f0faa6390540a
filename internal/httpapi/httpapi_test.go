package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accessgate/core/logger"
	"github.com/dmitrymomot/accessgate/core/mediator"
	"github.com/dmitrymomot/accessgate/core/response"
	"github.com/dmitrymomot/accessgate/core/result"
	"github.com/dmitrymomot/accessgate/internal/app"
	"github.com/dmitrymomot/accessgate/internal/domain"
	"github.com/dmitrymomot/accessgate/internal/httpapi"
	"github.com/dmitrymomot/accessgate/internal/repository/memory"
	"github.com/dmitrymomot/accessgate/internal/users"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newServer(t *testing.T) (*httptest.Server, *lockedBuffer) {
	t.Helper()

	logs := &lockedBuffer{}
	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(logs))

	a, err := app.New(app.Repositories{
		Users:          memory.NewUsers(),
		Activities:     memory.NewActivities(),
		AccessRequests: memory.NewAccessRequests(),
		Tx:             memory.Transactor{},
	}, app.WithLogger(log))
	require.NoError(t, err)

	srv := httptest.NewServer(httpapi.New(a.Commands, a.Queries, httpapi.WithLogger(log)).Router())
	t.Cleanup(srv.Close)
	return srv, logs
}

// customServer serves a single GetUser query handler without any behaviors.
func customServer(t *testing.T, getUser func(context.Context, users.GetUser) (result.Of[domain.User], error)) (*httptest.Server, *lockedBuffer) {
	t.Helper()

	logs := &lockedBuffer{}
	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(logs))

	queries := mediator.NewRegistry()
	require.NoError(t, mediator.RegisterFunc(queries, getUser))
	commands := mediator.NewRegistry()
	require.NoError(t, mediator.RegisterFunc(commands, func(context.Context, users.CreateUser) (result.Of[domain.User], error) {
		return result.FailureOf[domain.User](result.ErrNullValue), nil
	}))

	api := httpapi.New(mediator.NewCommandDispatcher(commands), mediator.NewQueryDispatcher(queries), httpapi.WithLogger(log))
	srv := httptest.NewServer(api.Router())
	t.Cleanup(srv.Close)
	return srv, logs
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	if resp.StatusCode != http.StatusNoContent && strings.Contains(resp.Header.Get("Content-Type"), "json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp, decoded
}

func createUser(t *testing.T, srv *httptest.Server, userName string) string {
	t.Helper()
	resp, body := do(t, srv, http.MethodPost, "/api/v1/users", `{"userName":"`+userName+`","email":"`+userName+`@example.com"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["id"].(string)
}

func TestUsersEndpoints(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	id := createUser(t, srv, "jdoe")

	resp, body := do(t, srv, http.MethodGet, "/api/v1/users/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "jdoe", body["userName"])

	resp, body = do(t, srv, http.MethodPut, "/api/v1/users/"+id, `{"userName":"jdoe","email":"jane@example.com","fullName":"Jane Doe"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Jane Doe", body["fullName"])

	resp, _ = do(t, srv, http.MethodDelete, "/api/v1/users/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = do(t, srv, http.MethodGet, "/api/v1/users/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, response.TitleNotFound, body["title"])
}

func TestValidationProblem(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	resp, body := do(t, srv, http.MethodPost, "/api/v1/users", `{"userName":"","email":"not-an-email"}`)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, response.ContentTypeProblem, resp.Header.Get("Content-Type"))
	assert.Equal(t, response.TitleValidation, body["title"])
	assert.Equal(t, response.TypeBadRequest, body["type"])
	assert.Equal(t, "/api/v1/users", body["instance"])

	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "UserName")
	assert.Contains(t, errs, "Email")
}

func TestNotFoundProblem(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	resp, body := do(t, srv, http.MethodGet, "/api/v1/activities/"+uuid.NewString(), "")

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, response.TypeNotFound, body["type"])
	errs, ok := body["errors"].([]any)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "NotFound.Activity", errs[0].(map[string]any)["code"])
}

func TestAccessRequestFlow(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	jane := createUser(t, srv, "jdoe")
	boss := createUser(t, srv, "boss")
	resp, activity := do(t, srv, http.MethodPost, "/api/v1/activities", `{"name":"deploy"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	activityID := activity["id"].(string)

	request := `{"userId":"` + jane + `","activityId":"` + activityID + `","reason":"release"}`
	resp, created := do(t, srv, http.MethodPost, "/api/v1/access-requests", request)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", created["status"])
	requestID := created["id"].(string)

	// A second open request is a domain failure without a dedicated status.
	resp, body := do(t, srv, http.MethodPost, "/api/v1/access-requests", request)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Conflict.AccessRequest", body["errors"].([]any)[0].(map[string]any)["code"])

	resp, body = do(t, srv, http.MethodGet, "/api/v1/users/"+jane+"/access/"+activityID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["granted"])

	resp, body = do(t, srv, http.MethodPost, "/api/v1/access-requests/"+requestID+"/decision", `{"decision":"approve","decidedBy":"`+boss+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", body["status"])

	resp, body = do(t, srv, http.MethodGet, "/api/v1/users/"+jane+"/access/"+activityID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["granted"])
	assert.Equal(t, requestID, body["requestId"])

	resp, body = do(t, srv, http.MethodPost, "/api/v1/access-requests/"+requestID+"/revocation", `{"revokedBy":"`+boss+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "revoked", body["status"])

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/access-requests?userId="+jane+"&status=revoked", nil)
	require.NoError(t, err)
	listResp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer listResp.Body.Close()
	var list []domain.AccessRequest
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, requestID, list[0].ID.String())

	resp, _ = do(t, srv, http.MethodGet, "/api/v1/access-requests?status=archived", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMalformedInput(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		resp, body := do(t, srv, http.MethodPost, "/api/v1/users", `{"userName":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, response.TitleBadRequest, body["title"])
		assert.Equal(t, "The request body is not valid JSON.", body["detail"])
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()

		resp, body := do(t, srv, http.MethodGet, "/api/v1/users/42", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "id must be a UUID.", body["detail"])
	})

	t.Run("invalid query id", func(t *testing.T) {
		t.Parallel()

		resp, _ := do(t, srv, http.MethodGet, "/api/v1/access-requests?userId=nope", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUnexpectedFailuresAreOpaque(t *testing.T) {
	t.Parallel()

	t.Run("handler panic", func(t *testing.T) {
		t.Parallel()

		srv, logs := customServer(t, func(context.Context, users.GetUser) (result.Of[domain.User], error) {
			panic("lookup exploded")
		})

		resp, body := do(t, srv, http.MethodGet, "/api/v1/users/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, response.TitleInternal, body["title"])
		assert.NotContains(t, body, "errors")
		assert.NotContains(t, body, "detail")
		assert.Contains(t, logs.String(), "lookup exploded")
	})

	t.Run("handler error", func(t *testing.T) {
		t.Parallel()

		srv, logs := customServer(t, func(context.Context, users.GetUser) (result.Of[domain.User], error) {
			return result.Of[domain.User]{}, errors.New("connection refused")
		})

		resp, body := do(t, srv, http.MethodGet, "/api/v1/users/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.NotContains(t, body, "errors")
		assert.Contains(t, logs.String(), "connection refused")
	})

	t.Run("null value maps to bad request", func(t *testing.T) {
		t.Parallel()

		srv, _ := customServer(t, func(context.Context, users.GetUser) (result.Of[domain.User], error) {
			return result.NotFoundOf[domain.User](), nil
		})
		resp, body := do(t, srv, http.MethodPost, "/api/v1/users", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, response.TitleBadRequest, body["title"])
		assert.Equal(t, "Error.NullValue", body["errors"].([]any)[0].(map[string]any)["code"])
	})
}

func TestHealthAndRequestID(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)

	resp, err := srv.Client().Get(srv.URL + "/live")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	a, err := app.New(app.Repositories{
		Users:          memory.NewUsers(),
		Activities:     memory.NewActivities(),
		AccessRequests: memory.NewAccessRequests(),
		Tx:             memory.Transactor{},
	})
	require.NoError(t, err)
	api := httpapi.New(a.Commands, a.Queries,
		httpapi.WithLogger(logger.New(logger.WithLevel(slog.LevelError), logger.WithOutput(&lockedBuffer{}))),
		httpapi.WithReadinessChecks(func(context.Context) error { return errors.New("db down") }),
	)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
