package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sheep-dashboard/internal/domain/catalog"
	"sheep-dashboard/internal/platform/kv"
	"sheep-dashboard/internal/platform/logger"
	"sheep-dashboard/internal/ports/auth"
)

const demoTokenPrefix = "demo-token-"

type Options struct {
	DemoEnabled bool
	Log         logger.Logger
}

// Store mantiene la sesión actual y la persiste en el kv durable.
type Store struct {
	backend Backend
	kv      kv.Store
	log     logger.Logger
	now     func() time.Time

	demoEnabled bool

	mu     sync.RWMutex
	status Status
	user   *catalog.User
	token  string
}

var _ auth.ClaimsProvider = (*Store)(nil)

func NewStore(backend Backend, store kv.Store, opts Options) *Store {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		backend:     backend,
		kv:          store,
		log:         log.With(map[string]any{"component": "session.store"}),
		now:         time.Now,
		demoEnabled: opts.DemoEnabled,
		status:      StatusAnonymous,
	}
}

// StoredToken lee el token del kv en cada llamada (nunca se cachea).
func StoredToken(store kv.Store) func(ctx context.Context) string {
	return func(ctx context.Context) string {
		tok, ok, err := store.Get(ctx, KeyAuthToken)
		if err != nil || !ok {
			return ""
		}
		return tok
	}
}

// Restore levanta la sesión guardada al arrancar.
// Si el token es un JWT vencido se limpia el storage.
func (s *Store) Restore(ctx context.Context) error {
	token, ok, err := s.kv.Get(ctx, KeyAuthToken)
	if err != nil {
		return fmt.Errorf("session: read token: %w", err)
	}
	if !ok || strings.TrimSpace(token) == "" {
		return nil
	}

	var u catalog.User
	found, err := kv.GetJSON(ctx, s.kv, KeyUser, &u)
	if err != nil {
		s.log.Warn("stored user unreadable; clearing session", map[string]any{"err": err})
		return s.clear(ctx)
	}
	if !found {
		return nil
	}

	if expired(token, s.now()) {
		s.log.Info("stored token expired; clearing session", nil)
		return s.clear(ctx)
	}

	if u.Role == "" {
		if role, ok, _ := s.kv.Get(ctx, KeyUserRole); ok {
			u.Role = catalog.Role(role)
		}
	}

	s.mu.Lock()
	s.status = StatusAuthenticated
	s.user = &u
	s.token = token
	s.mu.Unlock()
	return nil
}

// expired solo mira exp sin verificar firma: la firma la valida el backend.
func expired(token string, now time.Time) bool {
	if strings.HasPrefix(token, demoTokenPrefix) {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.Time.After(now)
}

func (s *Store) Login(ctx context.Context, in Credentials) (Snapshot, error) {
	s.setStatus(StatusAuthenticating)

	res, err := s.backend.Login(ctx, in)
	if err == nil && (strings.TrimSpace(res.Token) == "" || res.User == nil) {
		err = errors.New("session: login response without token or user")
	}
	if err != nil {
		// fallo = anónimo también en storage (StoredToken lee de ahí)
		if cerr := s.clear(ctx); cerr != nil {
			s.log.Warn("clear session after failed login", map[string]any{"err": cerr})
		}
		s.log.Info("login failed", map[string]any{"email": strings.TrimSpace(in.Email), "err": err})
		return s.Snapshot(), &LoginError{Cause: err}
	}

	if err := s.persist(ctx, res.Token, *res.User); err != nil {
		s.setStatus(StatusAnonymous)
		return s.Snapshot(), err
	}
	return s.Snapshot(), nil
}

// Register valida localmente; si el backend devuelve token+user queda
// autenticado, si no (loggedIn=false) la UI debe mandar a login.
func (s *Store) Register(ctx context.Context, in RegisterInput) (snap Snapshot, loggedIn bool, err error) {
	if err := validateRegistration(in); err != nil {
		return s.Snapshot(), false, err
	}

	res, err := s.backend.Register(ctx, in)
	if err != nil {
		return s.Snapshot(), false, err
	}
	if strings.TrimSpace(res.Token) == "" || res.User == nil {
		return s.Snapshot(), false, nil
	}
	if err := s.persist(ctx, res.Token, *res.User); err != nil {
		return s.Snapshot(), false, err
	}
	return s.Snapshot(), true, nil
}

func (s *Store) Logout(ctx context.Context) error {
	return s.clear(ctx)
}

// UpdateProfile hace PUT /user/:id del usuario actual.
func (s *Store) UpdateProfile(ctx context.Context, in catalog.User) (catalog.User, error) {
	s.mu.RLock()
	cur := s.user
	s.mu.RUnlock()
	if cur == nil {
		return catalog.User{}, ErrNotAuthenticated
	}

	updated, err := s.backend.UpdateUser(ctx, cur.ID, in)
	if err != nil {
		return catalog.User{}, err
	}
	// sin user en la respuesta: no tocamos lo guardado
	if updated.Email == "" && updated.FirstName == "" {
		return *cur, nil
	}
	if updated.ID == "" {
		updated.ID = cur.ID
	}
	if updated.Role == "" {
		updated.Role = cur.Role
	}

	if err := kv.SetJSON(ctx, s.kv, KeyUser, updated); err != nil {
		return catalog.User{}, err
	}
	if err := s.kv.Set(ctx, KeyUserRole, string(updated.Role)); err != nil {
		return catalog.User{}, err
	}

	s.mu.Lock()
	s.user = &updated
	s.mu.Unlock()
	return updated, nil
}

// DemoLogin entra con una cuenta local (user|admin) sin llamar al backend.
func (s *Store) DemoLogin(ctx context.Context, kind string) (Snapshot, error) {
	if !s.demoEnabled {
		return s.Snapshot(), ErrDemoDisabled
	}
	u, ok := demoAccounts[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return s.Snapshot(), ErrInvalidDemoKind
	}

	token := fmt.Sprintf("%s%s-%d", demoTokenPrefix, u.Role, s.now().UnixMilli())
	if err := s.persist(ctx, token, u); err != nil {
		return s.Snapshot(), err
	}
	return s.Snapshot(), nil
}

func (s *Store) persist(ctx context.Context, token string, u catalog.User) error {
	if err := s.kv.Set(ctx, KeyAuthToken, token); err != nil {
		return fmt.Errorf("session: persist token: %w", err)
	}
	if err := kv.SetJSON(ctx, s.kv, KeyUser, u); err != nil {
		return fmt.Errorf("session: persist user: %w", err)
	}
	if err := s.kv.Set(ctx, KeyUserRole, string(u.Role)); err != nil {
		return fmt.Errorf("session: persist role: %w", err)
	}

	s.mu.Lock()
	s.status = StatusAuthenticated
	s.user = &u
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *Store) clear(ctx context.Context) error {
	s.mu.Lock()
	s.status = StatusAnonymous
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, KeyAuthToken, KeyUser, KeyUserRole); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

func (s *Store) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	if st != StatusAuthenticated {
		s.user = nil
		s.token = ""
	}
	s.mu.Unlock()
}

// -------------------------
// Lecturas
// -------------------------

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{Status: s.status, Demo: strings.HasPrefix(s.token, demoTokenPrefix)}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status == StatusAuthenticated
}

func (s *Store) IsAdmin() bool { return s.HasRole(catalog.RoleAdmin) }

func (s *Store) HasRole(r catalog.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == r
}

// IsDemo mira el token guardado, no el de memoria.
func (s *Store) IsDemo(ctx context.Context) bool {
	tok, ok, err := s.kv.Get(ctx, KeyAuthToken)
	return err == nil && ok && strings.HasPrefix(tok, demoTokenPrefix)
}

func (s *Store) HomeRoute() string {
	if s.IsAdmin() {
		return "/admin/dashboard"
	}
	return "/dashboard"
}

func (s *Store) Claims(_ context.Context) (auth.Claims, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status != StatusAuthenticated || s.user == nil {
		return auth.Claims{}, false
	}
	return auth.Claims{
		UserID: s.user.ID,
		Email:  s.user.Email,
		Role:   string(s.user.Role),
		Demo:   strings.HasPrefix(s.token, demoTokenPrefix),
	}, true
}

// CurrentUser devuelve copia del usuario logueado.
func (s *Store) CurrentUser() (catalog.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return catalog.User{}, false
	}
	return *s.user, true
}
