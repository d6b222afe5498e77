package auth

import "context"

// ClaimsProvider devuelve la sesión activa (ok=false si no hay).
type ClaimsProvider interface {
	Claims(ctx context.Context) (Claims, bool)
}
