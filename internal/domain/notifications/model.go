package notifications

import "time"

// Status de una solicitud de compra.
// @Enum pending, approved, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

const TypeBuyRequest = "buy_request"

// SheepInfo es la foto de la oveja al momento de pedirla
// (si luego cambia el precio, la solicitud conserva el original).
type SheepInfo struct {
	Race   string  `json:"race"`
	Weight float64 `json:"weight"`
	Age    int     `json:"age"`
	Price  float64 `json:"price"`
	Origin string  `json:"origin"`
}

// Notification tiene los mismos nombres de campo que el array
// admin_notifications del storage durable.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail"`
	SheepID   string    `json:"sheepId"`
	SheepInfo SheepInfo `json:"sheepInfo"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`

	CreatedAt     time.Time  `json:"createdAt"`
	RequestedAt   *time.Time `json:"requestedAt,omitempty"`
	AdminResponse string     `json:"adminResponse,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`

	// Version sube en cada cambio de estado (compare-and-set en Update).
	Version int `json:"version"`
}

type Stats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}
