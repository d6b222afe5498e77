package router

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "sheep-dashboard/docs"
	"sheep-dashboard/internal/adapters/backend"
	"sheep-dashboard/internal/adapters/capabilities/roles"
	"sheep-dashboard/internal/adapters/storage/kvstore"
	pg "sheep-dashboard/internal/adapters/storage/postgres"
	"sheep-dashboard/internal/domain/catalog"
	"sheep-dashboard/internal/domain/notifications"
	"sheep-dashboard/internal/domain/session"
	"sheep-dashboard/internal/middleware"
	"sheep-dashboard/internal/platform/kv"
	"sheep-dashboard/internal/platform/logger"
	"sheep-dashboard/internal/platform/metrics"
)

const (
	NotificationsKV       = "kv"
	NotificationsPostgres = "postgres"
)

type Options struct {
	Logger  logger.Logger    // nil => Nop
	Metrics *metrics.Metrics // nil => registry propio

	// KV durable (token, user, userRole, admin_notifications). nil => memoria.
	KV kv.Store

	BackendURL     string
	BackendTimeout time.Duration

	// "kv" (default) o "postgres"; postgres requiere DB.
	NotificationsStore string
	DB                 *sql.DB

	DemoEnabled bool
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	store := opts.KV
	if store == nil {
		store = kv.NewMemory()
	}

	// El token se lee del kv en cada llamada al backend.
	api, err := backend.New(backend.Config{
		BaseURL:  opts.BackendURL,
		Timeout:  opts.BackendTimeout,
		Token:    session.StoredToken(store),
		Observer: m,
	})
	if err != nil {
		return nil, fmt.Errorf("router: backend client: %w", err)
	}

	var notifRepo notifications.Repository
	switch strings.ToLower(strings.TrimSpace(opts.NotificationsStore)) {
	case "", NotificationsKV:
		notifRepo = kvstore.NewNotificationsRepo(store)
	case NotificationsPostgres:
		if opts.DB == nil {
			return nil, fmt.Errorf("router: notifications store %q requires a database", NotificationsPostgres)
		}
		notifRepo = pg.NewNotificationsRepo(opts.DB)
	default:
		return nil, fmt.Errorf("router: unknown notifications store %q", opts.NotificationsStore)
	}

	// Stores / services por módulo
	catalogStore := catalog.NewStore(api, log)
	sessionStore := session.NewStore(api, store, session.Options{DemoEnabled: opts.DemoEnabled, Log: log})
	notifSvc := notifications.NewService(notifRepo, catalogStore, notifications.Options{Log: log, Metrics: m})
	resolver := roles.NewResolver()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sessionStore.Restore(ctx); err != nil {
		// sesión corrupta: arrancamos anónimos
		log.Warn("session restore failed", map[string]any{"err": err})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log, m))
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(sessionStore))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por módulo
	session.RegisterRoutes(r, sessionStore, resolver)
	catalog.RegisterRoutes(r, catalogStore, resolver)
	notifications.RegisterRoutes(r, notifSvc, catalogStore, sessionStore, resolver)

	return r, nil
}
