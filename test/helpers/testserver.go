// Package helpers runs the full HTTP application against throwaway dependencies.
package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rgrams-coder/mmles/internal/app"
	"github.com/rgrams-coder/mmles/internal/auth"
	"github.com/rgrams-coder/mmles/internal/config"
	"github.com/rgrams-coder/mmles/internal/database/dbtest"
	"github.com/rgrams-coder/mmles/internal/email"
	"github.com/rgrams-coder/mmles/internal/events"
	"github.com/rgrams-coder/mmles/internal/payment/paymenttest"
	"github.com/rgrams-coder/mmles/internal/storage"
)

const JWTSecret = "jwt_secret_for_tests"

type TestServer struct {
	Server    *httptest.Server
	DB        *gorm.DB
	Config    *config.Config
	Gateway   *paymenttest.Gateway
	Mailer    *email.RecordingProvider
	Publisher *events.RecordingPublisher
}

// NewTestServer starts the router over a private in-memory database, local storage in
// a temp dir and recording side-effect sinks. Everything is released by t.Cleanup.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = JWTSecret
	cfg.JWT.TTL = 60
	cfg.Payment.Currency = "INR"
	cfg.Upload.MaxSize = 1 << 20
	cfg.CORS.AllowedOrigins = []string{"*"}

	store, err := storage.NewLocalStorage(storage.Config{Type: "local", BasePath: t.TempDir()})
	require.NoError(t, err)

	ts := &TestServer{
		DB:        dbtest.NewTestDB(t),
		Config:    cfg,
		Gateway:   &paymenttest.Gateway{},
		Mailer:    email.NewRecordingProvider(),
		Publisher: &events.RecordingPublisher{},
	}

	router := app.SetupRouter(cfg, ts.DB, app.Deps{
		Gateway:   ts.Gateway,
		Storage:   store,
		Mailer:    ts.Mailer,
		Publisher: ts.Publisher,
		Hasher:    &auth.PasswordHasher{Cost: 4},
	})
	ts.Server = httptest.NewServer(router)
	t.Cleanup(ts.Server.Close)

	return ts
}

// SendRequest sends body as JSON and returns the response with its body read.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "encode request body")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(t, req, token)
}

// SendMultipart posts fields and an optional file as multipart/form-data.
func (ts *TestServer) SendMultipart(t *testing.T, path, token string, fields map[string]string, fileName string, content []byte) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return ts.do(t, req, token)
}

func (ts *TestServer) do(t *testing.T, req *http.Request, token string) (*http.Response, string) {
	t.Helper()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "send %s %s", req.Method, req.URL.Path)
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(resBody)
}

// ServeInProcess runs req through the router without a network hop, so a test sees
// exactly how much of the request body the server consumed.
func (ts *TestServer) ServeInProcess(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.Server.Config.Handler.ServeHTTP(rec, req)
	return rec
}

// Decode unmarshals a response body into out.
func Decode(t *testing.T, body string, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out), "decode %s", body)
}
