package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/convoapp/convo/config"
	"github.com/convoapp/convo/internal/logging"
	store "github.com/convoapp/convo/internal/repository"
	"github.com/convoapp/convo/internal/service"
	"github.com/convoapp/convo/policy"
	"github.com/convoapp/convo/tests/helpers"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T) (*echo.Echo, *store.SQLiteStore) {
	t.Helper()

	db := helpers.NewTestSQLiteStore(t)
	cfg := &config.Config{APIKey: testAPIKey}
	logs := logging.NewRecorder(nil)

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)

	svc := service.New(db, cfg, logs)
	h := NewHandler(svc, engine, cfg, logs)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(logs)
	h.RegisterRoutes(e)
	return e, db
}

// doRequest sends a request through the full router (middleware included).
// An empty apiKey leaves the credential header unset.
func doRequest(t *testing.T, e *echo.Echo, method, path string, body interface{}, apiKey string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if apiKey != "" {
		req.Header.Set(HeaderAPIKey, apiKey)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) envelope {
	t.Helper()
	require.Equal(t, code, rec.Code, "body: %s", rec.Body.String())
	env := decodeEnvelope(t, rec)
	require.Equal(t, code, env.Code)
	return env
}
