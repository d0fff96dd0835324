package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/matchstats/config"
	"github.com/ridoystarlord/matchstats/report"
	"github.com/ridoystarlord/matchstats/utils"
)

func newTestServer(t *testing.T) (*DashboardServer, *config.Config) {
	t.Helper()
	c := config.Default()
	return NewDashboardServer(&c, utils.NewLogger("error", io.Discard)), &c
}

func uploadRequest(t *testing.T, path, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestDashboardIndexPrompts(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), missingInputPrompt)
	assert.Contains(t, rec.Body.String(), `action="/analyze"`)
}

func TestDashboardIndexAnalyzesConfiguredFile(t *testing.T) {
	srv, c := newTestServer(t)
	c.Data.File = useTable(t, "matches.csv", matchesCSV)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Key Insights")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestDashboardUnknownPath(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tables", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardAnalyzeUpload(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "/analyze", "matches.csv", matchesCSV))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "File uploaded successfully!")
	assert.Contains(t, body, "matches.csv")
	assert.Contains(t, body, "Wankhede Stadium")
	assert.Contains(t, body, "Key Insights")
	assert.Contains(t, body, "Additional Insights")
	assert.NotContains(t, body, `class="card error"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestDashboardAnalyzeWithoutFile(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "/analyze", "", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), missingInputPrompt)
	assert.NotContains(t, rec.Body.String(), "Key Insights")
}

func TestDashboardAnalyzeMalformed(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "/analyze", "matches.csv", "1,2008,Mumbai\n"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="card error"`)
}

func TestDashboardAnalyzeEmptyAggregation(t *testing.T) {
	srv, c := newTestServer(t)
	c.Analysis.Season = 2020

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "/analyze", "matches.csv", matchesCSV))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty aggregation")
	assert.Contains(t, rec.Body.String(), "File uploaded successfully!")
}

func TestDashboardAnalyzeMethod(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyze", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDashboardAPIAnalyze(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "/api/analyze", "matches.csv", matchesCSV))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var rep report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, "matches.csv", rep.Source)
	assert.Equal(t, 4, rep.Records)
	assert.Empty(t, rep.Error)

	it, ok := rep.Item("top_city")
	require.True(t, ok)
	assert.Equal(t, "Bangalore", it.Text)
}

func TestDashboardAPIPartialReport(t *testing.T) {
	srv, c := newTestServer(t)
	c.Analysis.Season = 2020

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "/api/analyze", "matches.csv", matchesCSV))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var rep report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Contains(t, rep.Error, "most_wins_season")
	assert.Empty(t, rep.Sections)
}

func TestDashboardAPIMissingFile(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "/api/analyze", "", ""))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, missingInputPrompt, body["error"])
}

func TestDashboardHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
