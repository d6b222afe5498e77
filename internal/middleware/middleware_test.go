package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"sheep-dashboard/internal/platform/logger"
	"sheep-dashboard/internal/ports/auth"
	"sheep-dashboard/internal/ports/capabilities"
)

// -------------------------
// Fakes
// -------------------------

type fakeProvider struct {
	claims auth.Claims
	ok     bool
}

func (f fakeProvider) Claims(context.Context) (auth.Claims, bool) { return f.claims, f.ok }

type fakeResolver struct {
	allowed map[capabilities.Capability]bool
}

func (f fakeResolver) Resolve(context.Context, auth.Claims) []capabilities.Capability { return nil }

func (f fakeResolver) Has(_ context.Context, _ auth.Claims, c capabilities.Capability) bool {
	return f.allowed[c]
}

func (f fakeResolver) Nav(context.Context, auth.Claims) []capabilities.NavItem { return nil }

type countingObserver struct{ statuses []int }

func (c *countingObserver) ObserveHTTP(_ string, status int) { c.statuses = append(c.statuses, status) }

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// -------------------------
// Tests
// -------------------------

func TestAuthContext_SetsClaimsFromProvider(t *testing.T) {
	var got auth.Claims
	var found bool
	h := AuthContext(fakeProvider{claims: auth.Claims{UserID: "u1", Role: "user"}, ok: true})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, found = GetClaims(r.Context())
		}),
	)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !found || got.UserID != "u1" {
		t.Fatalf("expected claims for u1, got %#v found=%v", got, found)
	}
}

func TestAuthContext_NoSession(t *testing.T) {
	var found bool
	h := AuthContext(fakeProvider{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = GetClaims(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if found {
		t.Fatalf("expected no claims")
	}
}

func TestRequire_StatusCodes(t *testing.T) {
	res := fakeResolver{allowed: map[capabilities.Capability]bool{capabilities.SheepRead: true}}

	cases := []struct {
		name   string
		claims *auth.Claims
		cap    capabilities.Capability
		want   int
	}{
		{"anonymous", nil, capabilities.SheepRead, http.StatusUnauthorized},
		{"missing capability", &auth.Claims{UserID: "u1"}, capabilities.SheepWrite, http.StatusForbidden},
		{"allowed", &auth.Claims{UserID: "u1"}, capabilities.SheepRead, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), *tc.claims))
			}
			rec := httptest.NewRecorder()
			Require(res, tc.cap)(okHandler).ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireAuth(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRecover_LogsAndAnswers500(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := Recover(logger.FromZap(zap.New(core)))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Fatalf("expected panic to be logged")
	}
}

func TestRequestLogger_ObservesStatus(t *testing.T) {
	obs := &countingObserver{}
	h := RequestLogger(logger.Nop(), obs)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if len(obs.statuses) != 1 || obs.statuses[0] != http.StatusTeapot {
		t.Fatalf("expected one 418 observation, got %v", obs.statuses)
	}
}
