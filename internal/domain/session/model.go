package session

import (
	"context"

	"sheep-dashboard/internal/domain/catalog"
)

// Status del auth store.
// @Enum anonymous, authenticating, authenticated
type Status string

const (
	StatusAnonymous      Status = "anonymous"
	StatusAuthenticating Status = "authenticating"
	StatusAuthenticated  Status = "authenticated"
)

// Keys del storage durable (mismos nombres que usa la UI).
const (
	KeyAuthToken = "authToken"
	KeyUser      = "user"
	KeyUserRole  = "userRole"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput llega con los nombres del formulario (name, cin, payslip).
// El adapter los traduce a los del backend.
type RegisterInput struct {
	Name            string `json:"name"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	CIN             string `json:"cin"`
	Payslip         string `json:"payslip"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role,omitempty"`
}

// AuthResult: User es nil si el backend no lo devolvió.
type AuthResult struct {
	Token string
	User  *catalog.User
}

// Snapshot es la vista pública de la sesión actual.
type Snapshot struct {
	Status Status        `json:"status"`
	User   *catalog.User `json:"user,omitempty"`
	Demo   bool          `json:"demo"`
}

// Backend: lo que el auth store necesita del API REST.
type Backend interface {
	Login(ctx context.Context, in Credentials) (AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	UpdateUser(ctx context.Context, id string, u catalog.User) (catalog.User, error)
}
