package capabilities

import (
	"context"

	"sheep-dashboard/internal/ports/auth"
)

// Capability es un permiso con nombre; se resuelve a partir del rol.
type Capability string

const (
	DashboardView       Capability = "dashboard:view"
	ProfileEdit         Capability = "profile:edit"
	SheepRead           Capability = "sheep:read"
	SheepWrite          Capability = "sheep:write"
	SheepBuy            Capability = "sheep:buy"
	CentersRead         Capability = "centers:read"
	CentersWrite        Capability = "centers:write"
	AppointmentsRead    Capability = "appointments:read"
	AppointmentsWrite   Capability = "appointments:write"
	PaymentsView        Capability = "payments:view"
	UsersManage         Capability = "users:manage"
	NotificationsManage Capability = "notifications:manage"
	AdminDashboard      Capability = "admin:dashboard"
)

// NavItem es una entrada del menú que la UI renderiza.
type NavItem struct {
	Path       string     `json:"path"`
	Label      string     `json:"label"`
	Capability Capability `json:"capability"`
}

// Resolver: el guard de rutas y el menú usan la misma fuente.
type Resolver interface {
	Resolve(ctx context.Context, claims auth.Claims) []Capability
	Has(ctx context.Context, claims auth.Claims, c Capability) bool
	Nav(ctx context.Context, claims auth.Claims) []NavItem
}
