package catalog

import "context"

// Backend es el API REST de ovejas visto desde el store.
// La implementación vive en adapters/backend.
type Backend interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id string) (User, error)
	UpdateUser(ctx context.Context, id string, u User) (User, error)
	DeleteUser(ctx context.Context, id string) error

	ListCenters(ctx context.Context) ([]Center, error)
	GetCenter(ctx context.Context, id string) (Center, error)
	CreateCenter(ctx context.Context, c Center) (Center, error)
	UpdateCenter(ctx context.Context, id string, c Center) (Center, error)
	DeleteCenter(ctx context.Context, id string) error

	ListSheep(ctx context.Context) ([]Sheep, error)
	GetSheep(ctx context.Context, id string) (Sheep, error)
	CreateSheep(ctx context.Context, s Sheep) (Sheep, error)
	UpdateSheep(ctx context.Context, id string, s Sheep) (Sheep, error)
	DeleteSheep(ctx context.Context, id string) error

	ListAppointments(ctx context.Context) ([]Appointment, error)
	GetAppointment(ctx context.Context, id string) (Appointment, error)
	CreateAppointment(ctx context.Context, a Appointment) (Appointment, error)
	UpdateAppointment(ctx context.Context, id string, a Appointment) (Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
}
