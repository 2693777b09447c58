package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
)

func TestStatusBucket(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{422, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}

	for _, tt := range tests {
		if got := statusBucket(tt.code); got != tt.want {
			t.Errorf("statusBucket(%d) = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestObserveEvaluation(t *testing.T) {
	EvaluationsTotal.Reset()
	ViolationsTotal.Reset()
	RegulatoryWarningsTotal.Reset()

	ObserveEvaluation("blocked",
		[]string{"daily_limit", "velocity_limit"},
		[]string{"ctr_threshold"},
		2*time.Millisecond,
	)

	m := &dto.Metric{}
	counter, err := EvaluationsTotal.GetMetricWithLabelValues("blocked")
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues failed: %v", err)
	}
	_ = counter.Write(m)
	if m.Counter.GetValue() != 1.0 {
		t.Errorf("expected blocked counter 1, got %f", m.Counter.GetValue())
	}

	for _, vtype := range []string{"daily_limit", "velocity_limit"} {
		m := &dto.Metric{}
		counter, err := ViolationsTotal.GetMetricWithLabelValues(vtype)
		if err != nil {
			t.Fatalf("GetMetricWithLabelValues failed: %v", err)
		}
		_ = counter.Write(m)
		if m.Counter.GetValue() != 1.0 {
			t.Errorf("expected %s counter 1, got %f", vtype, m.Counter.GetValue())
		}
	}

	m = &dto.Metric{}
	counter, err = RegulatoryWarningsTotal.GetMetricWithLabelValues("ctr_threshold")
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues failed: %v", err)
	}
	_ = counter.Write(m)
	if m.Counter.GetValue() != 1.0 {
		t.Errorf("expected ctr_threshold counter 1, got %f", m.Counter.GetValue())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}

	body := w.Body.String()
	if len(body) == 0 {
		t.Error("Expected non-empty metrics response")
	}

	// Gauges always appear; counters/histograms only after first observation.
	for _, name := range []string{
		"remitd_goroutines",
		"remitd_db_open_connections",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("Expected metrics output to contain %s", name)
		}
	}

	// Trigger a counter so we can verify it appears
	TransfersTotal.WithLabelValues("completed").Inc()

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/metrics", nil)
	r.ServeHTTP(w, req)
	body = w.Body.String()

	if !strings.Contains(body, "remitd_transfers_total") {
		t.Error("Expected remitd_transfers_total after incrementing")
	}
}

func TestMiddleware_RecordsMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}
