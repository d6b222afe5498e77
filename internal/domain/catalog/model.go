package catalog

// Role controla acceso a rutas y menú.
// @Enum user, admin
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User es propiedad del backend; aquí solo se cachea.
type User struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	NumNat     int64  `json:"num_nat,omitempty"` // CIN
	Address    string `json:"address,omitempty"`
	ReceiptURL string `json:"receiptUrl,omitempty"`
}

// FullName para mensajes ("<nombre> wants to buy ...").
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// Health del animal. Default "good".
type Health string

const (
	HealthGood Health = "good"
)

type Sheep struct {
	ID       string  `json:"id"`
	Race     string  `json:"race"`
	Origin   string  `json:"origin"`
	Weight   float64 `json:"weight"`
	Age      int     `json:"age"`
	Price    float64 `json:"price"`
	Health   Health  `json:"health"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// Center es un punto de venta.
type Center struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Weather  string `json:"weather"`
}

// AppointmentStatus
// @Enum pending, confirmed, cancelled, completed
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCancelled, AppointmentCompleted:
		return true
	}
	return false
}

// Appointment (RDV). Date va en ISO tal como lo manda la UI.
type Appointment struct {
	ID             string            `json:"id"`
	UserID         string            `json:"userId"`
	PointDeVenteID string            `json:"pointDeVenteId"`
	Date           string            `json:"date"`
	Status         AppointmentStatus `json:"status"`
	Reason         string            `json:"reason,omitempty"`
	Notes          string            `json:"notes,omitempty"`
}

// Summary alimenta el dashboard de admin.
type Summary struct {
	Users        int                       `json:"users"`
	Centers      int                       `json:"centers"`
	Sheep        int                       `json:"sheep"`
	Appointments int                       `json:"appointments"`
	ByStatus     map[AppointmentStatus]int `json:"appointmentsByStatus"`
}
