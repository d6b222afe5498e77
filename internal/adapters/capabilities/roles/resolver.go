package roles

import (
	"context"
	"strings"

	"sheep-dashboard/internal/ports/auth"
	"sheep-dashboard/internal/ports/capabilities"
)

// Resolver resuelve capabilities con una tabla local rol -> permisos.
// Roles desconocidos se tratan como "user".
type Resolver struct {
	byRole map[string][]capabilities.Capability
	nav    []capabilities.NavItem
}

var _ capabilities.Resolver = (*Resolver)(nil)

var userCaps = []capabilities.Capability{
	capabilities.DashboardView,
	capabilities.ProfileEdit,
	capabilities.SheepRead,
	capabilities.SheepBuy,
	capabilities.CentersRead,
	capabilities.AppointmentsRead,
	capabilities.AppointmentsWrite,
	capabilities.PaymentsView,
}

// admin no compra: gestiona inventario y solicitudes.
var adminCaps = []capabilities.Capability{
	capabilities.DashboardView,
	capabilities.ProfileEdit,
	capabilities.SheepRead,
	capabilities.SheepWrite,
	capabilities.CentersRead,
	capabilities.CentersWrite,
	capabilities.AppointmentsRead,
	capabilities.AppointmentsWrite,
	capabilities.PaymentsView,
	capabilities.UsersManage,
	capabilities.NotificationsManage,
	capabilities.AdminDashboard,
}

var defaultNav = []capabilities.NavItem{
	{Path: "/dashboard", Label: "Dashboard", Capability: capabilities.DashboardView},
	{Path: "/sheeps", Label: "Sheeps", Capability: capabilities.SheepRead},
	{Path: "/point-of-sale", Label: "Points of sale", Capability: capabilities.CentersRead},
	{Path: "/appointments", Label: "Appointments", Capability: capabilities.AppointmentsRead},
	{Path: "/payment", Label: "Payment", Capability: capabilities.PaymentsView},
	{Path: "/profile", Label: "Profile", Capability: capabilities.ProfileEdit},
	{Path: "/admin/dashboard", Label: "Admin dashboard", Capability: capabilities.AdminDashboard},
	{Path: "/admin/users", Label: "Users", Capability: capabilities.UsersManage},
	{Path: "/admin/notifications", Label: "Notifications", Capability: capabilities.NotificationsManage},
}

func NewResolver() *Resolver {
	return &Resolver{
		byRole: map[string][]capabilities.Capability{
			"user":  userCaps,
			"admin": adminCaps,
		},
		nav: defaultNav,
	}
}

func (r *Resolver) Resolve(_ context.Context, claims auth.Claims) []capabilities.Capability {
	if strings.TrimSpace(claims.UserID) == "" {
		return nil
	}
	caps, ok := r.byRole[strings.ToLower(strings.TrimSpace(claims.Role))]
	if !ok {
		caps = r.byRole["user"]
	}
	out := make([]capabilities.Capability, len(caps))
	copy(out, caps)
	return out
}

func (r *Resolver) Has(ctx context.Context, claims auth.Claims, c capabilities.Capability) bool {
	for _, have := range r.Resolve(ctx, claims) {
		if have == c {
			return true
		}
	}
	return false
}

// Nav filtra el menú con las mismas capabilities que usa el guard.
func (r *Resolver) Nav(ctx context.Context, claims auth.Claims) []capabilities.NavItem {
	caps := r.Resolve(ctx, claims)
	set := make(map[capabilities.Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}

	out := make([]capabilities.NavItem, 0, len(r.nav))
	for _, item := range r.nav {
		if _, ok := set[item.Capability]; ok {
			out = append(out, item)
		}
	}
	return out
}
