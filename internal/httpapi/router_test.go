package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251219-go-pkg-pctexp/pkg/pctexp"
)

func newTestServer(opts Options) *echo.Echo {
	if opts.Env == nil {
		opts.Env = pctexp.Map{"HOME_DIR": "/srv"}
	}

	return New(opts)
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

func TestHealth(t *testing.T) {
	e := newTestServer(Options{})
	rec := doJSON(t, e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, HealthResponse{Status: "ok"}, decode[HealthResponse](t, rec))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestSplitEndpoint(t *testing.T) {
	e := newTestServer(Options{})

	rec := doJSON(t, e, http.MethodPost, "/v1/split", `{"text":"%foo%%bar%"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, SplitResponse{Entries: []Entry{
		{Kind: "var", Text: "foo", Offset: 1},
		{Kind: "var", Text: "bar", Offset: 6},
	}}, decode[SplitResponse](t, rec))

	rec = doJSON(t, e, http.MethodPost, "/v1/split", `{"text":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"entries":[]}`, rec.Body.String())

	rec = doJSON(t, e, http.MethodPost, "/v1/split", `{"text":"abc%missing"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	er := decode[ErrorResponse](t, rec)
	assert.Equal(t, CodeInvalidFormat, er.Code)
	require.NotNil(t, er.Offset)
	assert.Equal(t, 3, *er.Offset)
}

func TestCheckEndpoint(t *testing.T) {
	e := newTestServer(Options{})

	rec := doJSON(t, e, http.MethodPost, "/v1/check", `{"text":"%a%-%b%-%a%"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, CheckResponse{Valid: true, Names: []string{"a", "b"}}, decode[CheckResponse](t, rec))

	rec = doJSON(t, e, http.MethodPost, "/v1/check", `{"text":"plain"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid":true,"names":[]}`, rec.Body.String())
}

func TestExpandEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		allowEnv bool
		body     string
		status   int
		result   string
		code     string
	}{
		{
			name:   "vars only",
			body:   `{"text":"foo%bar%","vars":{"bar":"X"}}`,
			status: http.StatusOK,
			result: "fooX",
		},
		{
			name:   "empty text",
			body:   `{"text":""}`,
			status: http.StatusOK,
			result: "",
		},
		{
			name:   "missing variable",
			body:   `{"text":"%nope%"}`,
			status: http.StatusUnprocessableEntity,
			code:   CodeMissingVariable,
		},
		{
			name:   "unterminated",
			body:   `{"text":"abc%missing","vars":{"missing":"x"}}`,
			status: http.StatusUnprocessableEntity,
			code:   CodeInvalidFormat,
		},
		{
			name:   "env refused by default",
			body:   `{"text":"%HOME_DIR%","env":true}`,
			status: http.StatusForbidden,
			code:   CodeEnvForbidden,
		},
		{
			name:     "env allowed",
			allowEnv: true,
			body:     `{"text":"%HOME_DIR%/%app%","env":true,"vars":{"app":"x"}}`,
			status:   http.StatusOK,
			result:   "/srv/x",
		},
		{
			name:     "request vars win over env",
			allowEnv: true,
			body:     `{"text":"%HOME_DIR%","env":true,"vars":{"HOME_DIR":"/tmp"}}`,
			status:   http.StatusOK,
			result:   "/tmp",
		},
		{
			name:   "bad json",
			body:   `{"text":`,
			status: http.StatusBadRequest,
			code:   CodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(Options{AllowEnv: tt.allowEnv})
			rec := doJSON(t, e, http.MethodPost, "/v1/expand", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			if tt.code != "" {
				assert.Equal(t, tt.code, decode[ErrorResponse](t, rec).Code)

				return
			}
			assert.Equal(t, tt.result, decode[ExpandResponse](t, rec).Result)
		})
	}
}

func TestExpandEndpoint_MissingVariableDetails(t *testing.T) {
	e := newTestServer(Options{})
	rec := doJSON(t, e, http.MethodPost, "/v1/expand", `{"text":"ab%who%"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	er := decode[ErrorResponse](t, rec)
	assert.Equal(t, "who", er.Name)
	require.NotNil(t, er.Offset)
	assert.Equal(t, 3, *er.Offset)
}

func TestBodyLimit(t *testing.T) {
	e := newTestServer(Options{BodyLimit: "1K"})
	body := `{"text":"` + strings.Repeat("a", 4096) + `"}`
	rec := doJSON(t, e, http.MethodPost, "/v1/split", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
