package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNormalizeEndpoint(t *testing.T) {
	cases := map[string]string{
		"/sheep/all":     "/sheep/all",
		"/sheep/42":      "/sheep/:id",
		"sheep/42?x=1":   "/sheep/:id",
		"/auth/login":    "/auth/login",
		"/rdv":           "/rdv",
		"":               "/",
		"/user/abc/more": "/user/:id/:id",
	}
	for in, want := range cases {
		if got := NormalizeEndpoint(in); got != want {
			t.Fatalf("NormalizeEndpoint(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestObserveBackend_CountsByOutcome(t *testing.T) {
	m := New()

	m.ObserveBackend("GET", "/sheep/1", 200, time.Millisecond)
	m.ObserveBackend("GET", "/sheep/2", 200, time.Millisecond)
	m.ObserveBackend("GET", "/sheep/3", 404, time.Millisecond)
	m.ObserveBackend("GET", "/sheep/4", 0, time.Millisecond)

	if got := testutil.ToFloat64(m.backendRequests.WithLabelValues("GET", "/sheep/:id", "ok")); got != 2 {
		t.Fatalf("expected 2 ok, got %v", got)
	}
	if got := testutil.ToFloat64(m.backendRequests.WithLabelValues("GET", "/sheep/:id", "http_404")); got != 1 {
		t.Fatalf("expected 1 http_404, got %v", got)
	}
	if got := testutil.ToFloat64(m.backendRequests.WithLabelValues("GET", "/sheep/:id", "network_error")); got != 1 {
		t.Fatalf("expected 1 network_error, got %v", got)
	}
}

func TestObserveTransition_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveTransition("approve", errors.New("x"))
	m.ObserveBackend("GET", "/", 200, 0)
	m.ObserveHTTP("GET", 200)
}
