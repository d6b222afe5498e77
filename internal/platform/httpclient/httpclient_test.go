package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []int
}

func (o *recordingObserver) ObserveBackend(_, _ string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, status)
}

func TestDoJSON_ReadsTokenAtCallTime(t *testing.T) {
	var got []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	token := ""
	c.Token = func(context.Context) string { return token }

	if err := c.DoJSON(context.Background(), http.MethodGet, "/a", nil, nil, nil); err != nil {
		t.Fatalf("call 1: %v", err)
	}
	token = "tok-2"
	if err := c.DoJSON(context.Background(), http.MethodGet, "a", nil, nil, nil); err != nil {
		t.Fatalf("call 2: %v", err)
	}

	if got[0] != "" {
		t.Fatalf("expected no auth header without token, got %q", got[0])
	}
	if got[1] != "Bearer tok-2" {
		t.Fatalf("expected fresh token, got %q", got[1])
	}
}

func TestDoJSON_HTTPErrorMessage(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message", 400, `{"message":"Email already used","error":"x"}`, "Email already used"},
		{"error", 401, `{"error":"bad credentials"}`, "bad credentials"},
		{"generic", 500, `<html>oops</html>`, "HTTP error! status: 500"},
		{"empty", 404, ``, "HTTP error! status: 404"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			c, _ := NewWithBaseURL(ts.URL, time.Second)
			err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)

			var he *HTTPError
			if !errors.As(err, &he) {
				t.Fatalf("expected *HTTPError, got %T %v", err, err)
			}
			if he.Message != tc.want || he.Error() != tc.want {
				t.Fatalf("expected message %q, got %q", tc.want, he.Message)
			}
			if StatusCode(err) != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, StatusCode(err))
			}
		})
	}
}

func TestDoJSON_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	obs := &recordingObserver{}
	c, _ := NewWithBaseURL(url, time.Second)
	c.Observer = obs

	err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	if !IsNetwork(err) {
		t.Fatalf("expected network error, got %T %v", err, err)
	}
	if StatusCode(err) != 0 {
		t.Fatalf("network error has no status")
	}
	if len(obs.calls) != 1 || obs.calls[0] != 0 {
		t.Fatalf("expected one observation with status 0, got %#v", obs.calls)
	}
}

func TestDoJSON_DecodesBodyAndSendsJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected json content type")
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		_, _ = w.Write([]byte(`{"id":"42"}`))
	}))
	defer ts.Close()

	c, _ := NewWithBaseURL(ts.URL, time.Second)
	var out struct {
		ID string `json:"id"`
	}
	if err := c.DoJSON(context.Background(), http.MethodPost, "/sheep", nil, map[string]any{"race": "x"}, &out); err != nil {
		t.Fatalf("do: %v", err)
	}
	if out.ID != "42" {
		t.Fatalf("expected id 42, got %q", out.ID)
	}
}

func TestResolveURL_RelativeNeedsBase(t *testing.T) {
	c := New(0)
	if _, err := c.resolveURL("/x"); err == nil {
		t.Fatalf("expected error without BaseURL")
	}
	if u, err := c.resolveURL("http://h/x"); err != nil || u != "http://h/x" {
		t.Fatalf("absolute url should pass through, got %q %v", u, err)
	}
}

func TestGatewayStatus(t *testing.T) {
	cases := []struct {
		err    error
		want   int
		wantOK bool
	}{
		{&HTTPError{StatusCode: 404}, http.StatusNotFound, true},
		{fmt.Errorf("wrapped: %w", &HTTPError{StatusCode: 401}), http.StatusUnauthorized, true},
		{&HTTPError{StatusCode: 503}, http.StatusBadGateway, true},
		{&NetworkError{Err: errors.New("dial")}, http.StatusBadGateway, true},
		{errors.New("other"), 0, false},
	}
	for _, tc := range cases {
		got, ok := GatewayStatus(tc.err)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("GatewayStatus(%v) = %d,%v want %d,%v", tc.err, got, ok, tc.want, tc.wantOK)
		}
	}
}
