package session

import (
	"strconv"
	"strings"
)

const minPasswordLen = 8

// validateRegistration corre antes de cualquier llamada de red.
// El orden de los chequeos es el del formulario.
func validateRegistration(in RegisterInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return invalid("name", "Name is required")
	case strings.TrimSpace(in.LastName) == "":
		return invalid("lastName", "Last name is required")
	case strings.TrimSpace(in.Email) == "":
		return invalid("email", "Email is required")
	case strings.TrimSpace(in.CIN) == "":
		return invalid("cin", "CIN is required")
	}
	if _, err := strconv.ParseInt(strings.TrimSpace(in.CIN), 10, 64); err != nil {
		return invalid("cin", "CIN must be a valid number")
	}

	payslip := strings.TrimSpace(in.Payslip)
	if payslip == "" {
		return invalid("payslip", "Payslip URL is required")
	}
	if !strings.HasPrefix(payslip, "http://") && !strings.HasPrefix(payslip, "https://") {
		return invalid("payslip", "Payslip must be a valid URL")
	}

	switch {
	case strings.TrimSpace(in.Address) == "":
		return invalid("address", "Address is required")
	case len(in.Password) < minPasswordLen:
		return invalid("password", "Password must be at least 8 characters long")
	case in.Password != in.ConfirmPassword:
		return invalid("confirmPassword", "Passwords do not match")
	}
	return nil
}
