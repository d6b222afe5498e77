package session

import "sheep-dashboard/internal/domain/catalog"

var demoAccounts = map[string]catalog.User{
	"user": {
		ID:         "demo-user-001",
		FirstName:  "John",
		LastName:   "Doe",
		Email:      "demo.user@example.com",
		Role:       catalog.RoleUser,
		NumNat:     12345678,
		Address:    "123 Demo Street, Demo City, DC 12345",
		ReceiptURL: "https://example.com/demo-payslip.pdf",
	},
	"admin": {
		ID:         "demo-admin-001",
		FirstName:  "Jane",
		LastName:   "Smith",
		Email:      "demo.admin@example.com",
		Role:       catalog.RoleAdmin,
		NumNat:     87654321,
		Address:    "456 Admin Avenue, Admin City, AC 54321",
		ReceiptURL: "https://example.com/admin-payslip.pdf",
	},
}
