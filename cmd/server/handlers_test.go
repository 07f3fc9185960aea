package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/internal/metrics"
	"github.com/rhyrak/go-timetable/pkg/config"
)

const uploadCSV = "Course Code,CRN,Days,Time\nCS101,A,U T,10:00-11:00\nCS101,B,M,09:00-10:00\nCS102,C,U,10:30-11:30\n"

func testServer(t *testing.T) (*server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Env:   config.EnvDevelopment,
		Input: config.InputConfig{Delimiter: ","},
		Export: config.ExportConfig{
			CSVFile:      "schedule.csv",
			GeneratedDir: t.TempDir(),
		},
		Optimizer: config.OptimizerConfig{Builder: "daybucket", Colorer: "greedy"},
	}
	srv := newServer(cfg, nil, metrics.NewService())
	return srv, srv.routes()
}

func upload(t *testing.T, r http.Handler, content string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if content != "" {
		fw, err := mw.CreateFormFile("courses", "courses.csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/schedule", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPostScheduleAndFetch(t *testing.T) {
	_, r := testServer(t)

	w := upload(t, r, uploadCSV, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ID    string         `json:"id"`
		Valid bool           `json:"valid"`
		Stats map[string]int `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, 3, resp.Stats["vertices"])
	assert.Equal(t, 2, resp.Stats["edges"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/schedule", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), resp.ID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/schedule/"+resp.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Data string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	assert.Contains(t, data.Data, "Course Code,CRN,Section")
	assert.Contains(t, data.Data, "CS102,C")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/schedule/"+resp.ID+"/pdf", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestPostScheduleOverrides(t *testing.T) {
	_, r := testServer(t)
	semi := "Course Code;CRN;Days;Time\nCS101;A;U;10:00-11:00\nCS102;C;U;10:30-11:30\n"

	w := upload(t, r, semi, map[string]string{"delimiter": ";", "colorer": "dsatur", "ignore": "CS102"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Stats map[string]int `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Stats["kept"])
	assert.Equal(t, 1, resp.Stats["filtered"])
}

func TestPostScheduleErrors(t *testing.T) {
	_, r := testServer(t)

	w := upload(t, r, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = upload(t, r, uploadCSV, map[string]string{"colorer": "random"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = upload(t, r, "Course Code,CRN\n,X\n", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_DATASET")

	w = upload(t, r, "Name,Days\nIntro,U\n", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_COLUMNS")
}

func TestGetScheduleUnknownID(t *testing.T) {
	_, r := testServer(t)

	for _, path := range []string{"/schedule/not-a-uuid", "/schedule/6f1c2b52-9d3e-4a57-8a44-1b2f3c4d5e6f", "/schedule/..%2Fetc/pdf"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestListEmptyAndMetrics(t *testing.T) {
	_, r := testServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/schedule", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"scheduleIds":[]}`, w.Body.String())

	upload(t, r, uploadCSV, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `optimizer_runs_total{outcome="valid"} 1`)
}
