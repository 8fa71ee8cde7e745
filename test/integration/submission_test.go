package integration_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/mmles/internal/events"
	"github.com/rgrams-coder/mmles/test/helpers"
)

func TestLegalAdvice(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	aliceToken := helpers.RegisterAndLogin(t, ts, "alice", "secret-pass")
	bobToken := helpers.RegisterAndLogin(t, ts, "bob", "secret-pass")

	res, _ := ts.SendMultipart(t, "/api/legal-advice/submit", "", map[string]string{"title": "t", "description": "d"}, "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body := ts.SendMultipart(t, "/api/legal-advice/submit", aliceToken, map[string]string{
		"title":       "Royalty dispute",
		"description": "Is the revised royalty applicable to old leases?",
	}, "notes.txt", []byte("royalty notice text"))
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created struct {
		Message string `json:"message"`
		Request struct {
			ID      string `json:"id"`
			FileURL string `json:"fileUrl"`
			Status  string `json:"status"`
		} `json:"request"`
	}
	helpers.Decode(t, body, &created)
	assert.Equal(t, "pending", created.Request.Status)
	require.NotEmpty(t, created.Request.FileURL)

	res, _ = ts.SendMultipart(t, "/api/legal-advice/submit", aliceToken, map[string]string{"title": "no description"}, "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/legal-advice/requests", aliceToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Royalty dispute")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/legal-advice/requests", bobToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `[]`, body)

	res, body = ts.SendRequest(t, http.MethodGet, created.Request.FileURL+"?download=true", aliceToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, "royalty notice text", body)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/plain")
	assert.Contains(t, res.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, res.Header.Get("Content-Disposition"), "notes.txt")

	res, _ = ts.SendRequest(t, http.MethodGet, created.Request.FileURL, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/files/legal-advice/missing-id", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	assert.Len(t, ts.Publisher.OfType(events.SubmissionCreated), 1)
}

func TestMiningPlan(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	aliceToken := helpers.RegisterAndLogin(t, ts, "alice", "secret-pass")
	bobToken := helpers.RegisterAndLogin(t, ts, "bob", "secret-pass")

	res, body := ts.SendMultipart(t, "/api/mining-plan/submit", aliceToken, map[string]string{
		"title":       "Progressive closure plan",
		"description": "Review of the five-year plan",
		"username":    "alice",
	}, "", nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	assert.Contains(t, body, `"query"`)

	res, _ = ts.SendMultipart(t, "/api/mining-plan/submit", bobToken, map[string]string{
		"title":       "spoof",
		"description": "posting as alice",
		"username":    "alice",
	}, "", nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendMultipart(t, "/api/mining-plan/submit", aliceToken, map[string]string{
		"title":       "binary",
		"description": "not an allowed type",
	}, "tool.exe", append([]byte("MZ\x90\x00\x03\x00\x00\x00"), make([]byte, 64)...))
	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/mining-plan/queries/alice", aliceToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Progressive closure plan")
	assert.NotContains(t, body, "spoof")

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/mining-plan/queries/alice", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// endlessFile is a multipart body whose file part never ends; it counts what is read.
type endlessFile struct {
	head io.Reader
	read int64
}

func newEndlessFile(boundary string) *endlessFile {
	head := "--" + boundary + "\r\n" +
		"Content-Disposition: form-data; name=\"title\"\r\n\r\nBig\r\n" +
		"--" + boundary + "\r\n" +
		"Content-Disposition: form-data; name=\"description\"\r\n\r\nHuge plan\r\n" +
		"--" + boundary + "\r\n" +
		"Content-Disposition: form-data; name=\"file\"; filename=\"plan.txt\"\r\n" +
		"Content-Type: text/plain\r\n\r\n"
	return &endlessFile{head: strings.NewReader(head)}
}

func (f *endlessFile) Read(p []byte) (int, error) {
	n, err := f.head.Read(p)
	if err == io.EOF {
		for i := range p {
			p[i] = 'a'
		}
		n, err = len(p), nil
	}
	f.read += int64(n)
	return n, err
}

func TestSubmit_OversizedBody(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token := helpers.RegisterAndLogin(t, ts, "alice", "secret-pass")
	limit := ts.Config.Upload.MaxSize

	t.Run("streamed body stops at the limit", func(t *testing.T) {
		body := newEndlessFile("xyz")
		req := httptest.NewRequest(http.MethodPost, "/api/mining-plan/submit", body)
		req.ContentLength = -1
		req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

		rec := ts.ServeInProcess(req, token)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())
		assert.Less(t, body.read, 4*limit, "the body is not drained")
	})

	t.Run("declared length is refused before reading", func(t *testing.T) {
		body := newEndlessFile("xyz")
		req := httptest.NewRequest(http.MethodPost, "/api/legal-advice/submit", body)
		req.ContentLength = 10 << 30
		req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

		rec := ts.ServeInProcess(req, token)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())
		assert.Zero(t, body.read)
	})

	for _, table := range []string{"legal_advice_requests", "mining_plan_queries"} {
		var count int64
		require.NoError(t, ts.DB.Table(table).Count(&count).Error)
		assert.Zero(t, count, table)
	}
}
