package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordSeed(t *testing.T) {
	before := testutil.ToFloat64(SeedRowsInserted.WithLabelValues("videos"))
	RecordSeed("videos", 28, nil)
	if got := testutil.ToFloat64(SeedRowsInserted.WithLabelValues("videos")) - before; got != 28 {
		t.Errorf("inserted delta = %v, want 28", got)
	}

	failures := testutil.ToFloat64(SeedFailures.WithLabelValues("events"))
	RecordSeed("events", 0, errors.New("boom"))
	if got := testutil.ToFloat64(SeedFailures.WithLabelValues("events")) - failures; got != 1 {
		t.Errorf("failures delta = %v, want 1", got)
	}
}

func TestRecordClassifierPass(t *testing.T) {
	past := testutil.ToFloat64(ClassifierEventsMoved.WithLabelValues("past"))
	at := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)
	RecordClassifierPass("cron", 4, 0, at)
	if got := testutil.ToFloat64(ClassifierEventsMoved.WithLabelValues("past")) - past; got != 4 {
		t.Errorf("past delta = %v, want 4", got)
	}
	if got := testutil.ToFloat64(ClassifierLastRun); got != float64(at.Unix()) {
		t.Errorf("last run = %v", got)
	}
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/videos/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/videos/{id}", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/videos/7", nil))
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/videos/{id}", "404"))
	if after-before != 1 {
		t.Errorf("request counter delta = %v, want 1", after-before)
	}
}
