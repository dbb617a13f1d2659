package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type observation struct{ method, route, code string }

type fakeObserver struct {
	mu  sync.Mutex
	got []observation
}

func (f *fakeObserver) ObserveHTTP(method, route, code string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, observation{method, route, code})
}

func TestMetrics_LabelsByRouteTemplate(t *testing.T) {
	obs := &fakeObserver{}
	e := echo.New()
	e.Use(Metrics(obs))
	e.GET("/contracts/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot, "no") })

	for _, path := range []string{"/contracts/1", "/contracts/2", "/boom"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	want := []observation{
		{"GET", "/contracts/:id", "200"},
		{"GET", "/contracts/:id", "200"},
		{"GET", "/boom", "418"},
	}
	if len(obs.got) != len(want) {
		t.Fatalf("observations = %+v", obs.got)
	}
	for i := range want {
		if obs.got[i] != want[i] {
			t.Fatalf("observation %d = %+v, want %+v", i, obs.got[i], want[i])
		}
	}
}

func TestRequestLogger_WritesOneLinePerRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := echo.New()
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/fail", func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadRequest, "bad") })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("log entries = %d", len(entries))
	}
	ok := entries[0].ContextMap()
	if entries[0].Message != "request" || ok["route"] != "/health" || ok["status"] != int64(http.StatusOK) {
		t.Fatalf("unexpected first entry: %s %v", entries[0].Message, ok)
	}
	if entries[1].Message != "request failed" || entries[1].Level != zap.ErrorLevel {
		t.Fatalf("unexpected second entry: %s %v", entries[1].Message, entries[1].Level)
	}
}
