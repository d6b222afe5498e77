package auth

// Claims representa la sesión que está usando el dashboard.
type Claims struct {
	UserID string
	Email  string
	Role   string
	Demo   bool
}
