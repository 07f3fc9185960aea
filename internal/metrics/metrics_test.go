package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/internal/scheduler"
	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

func family(t *testing.T, s *Service, name string) *dto.MetricFamily {
	t.Helper()
	families, err := s.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return nil
}

func counterByLabel(f *dto.MetricFamily, value string) float64 {
	for _, m := range f.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetValue() == value {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestObserveRun(t *testing.T) {
	s := NewService()
	s.ObserveRun(scheduler.Stats{Vertices: 10, Edges: 12, Colors: 4}, true, nil)
	s.ObserveRun(scheduler.Stats{}, false, appErrors.ErrEmptyDataset)
	s.ObserveRun(scheduler.Stats{Vertices: 3}, false, nil)

	runs := family(t, s, "optimizer_runs_total")
	assert.Equal(t, 1.0, counterByLabel(runs, "valid"))
	assert.Equal(t, 1.0, counterByLabel(runs, "invalid"))
	assert.Equal(t, 1.0, counterByLabel(runs, appErrors.ErrEmptyDataset.Code))

	vertices := family(t, s, "optimizer_last_vertices")
	assert.Equal(t, 3.0, vertices.GetMetric()[0].GetGauge().GetValue())
}

func TestObserveStage(t *testing.T) {
	s := NewService()
	s.ObserveStage(scheduler.StageGraph, 20*time.Millisecond)

	stages := family(t, s, "optimizer_stage_duration_seconds")
	require.Len(t, stages.GetMetric(), 1)
	assert.Equal(t, uint64(1), stages.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestHandlerServesExposition(t *testing.T) {
	s := NewService()
	s.ObserveRun(scheduler.Stats{}, true, nil)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "optimizer_runs_total")
}

func TestMiddlewareLabelsRoutesByTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewService()
	r := gin.New()
	r.Use(s.Middleware())
	r.GET("/schedule/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, target := range []string{"/schedule/a", "/schedule/b", "/wp-login.php", "/.env", "/x/y/z"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	paths := map[string]uint64{}
	for _, m := range family(t, s, "http_request_duration_seconds").GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "path" {
				paths[l.GetValue()] += m.GetHistogram().GetSampleCount()
			}
		}
	}
	assert.Equal(t, map[string]uint64{"/schedule/:id": 2, unmatchedRoute: 3}, paths)
}
