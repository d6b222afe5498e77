package catalog

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

func validateCenter(c Center) error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("name", "Name is required")
	}
	return nil
}

// normalizeAppointment aplica default de status y valida campos requeridos.
func normalizeAppointment(a Appointment) (Appointment, error) {
	a.UserID = strings.TrimSpace(a.UserID)
	a.PointDeVenteID = strings.TrimSpace(a.PointDeVenteID)
	a.Date = strings.TrimSpace(a.Date)
	a.Reason = strings.TrimSpace(a.Reason)
	a.Notes = strings.TrimSpace(a.Notes)

	if a.UserID == "" {
		return a, invalid("userId", "User is required")
	}
	if a.PointDeVenteID == "" {
		return a, invalid("pointDeVenteId", "Point of sale is required")
	}
	if a.Date == "" {
		return a, invalid("date", "Date is required")
	}
	if a.Status == "" {
		a.Status = AppointmentPending
	}
	if !a.Status.Valid() {
		return a, invalid("status", "Invalid appointment status")
	}
	return a, nil
}

func normalizeSheep(s Sheep) (Sheep, error) {
	s.Race = strings.TrimSpace(s.Race)
	s.Origin = strings.TrimSpace(s.Origin)

	switch {
	case s.Price < 0 || math.IsNaN(s.Price):
		return s, invalid("price", "Price must be a positive number")
	case s.Weight < 0 || math.IsNaN(s.Weight):
		return s, invalid("weight", "Weight must be a positive number")
	case s.Age < 0:
		return s, invalid("age", "Age must be a positive number")
	}
	if strings.TrimSpace(string(s.Health)) == "" {
		s.Health = HealthGood
	}
	return s, nil
}

// SortKey para los listados de ovejas.
type SortKey string

const (
	SortByID     SortKey = "id"
	SortByPrice  SortKey = "price"
	SortByWeight SortKey = "weight"
	SortByAge    SortKey = "age"
)

// SortSheep ordena ascendente sin tocar el slice original.
// Ids numéricos se comparan como número.
func SortSheep(in []Sheep, by SortKey) ([]Sheep, error) {
	out := make([]Sheep, len(in))
	copy(out, in)

	var less func(a, b Sheep) bool
	switch SortKey(strings.ToLower(strings.TrimSpace(string(by)))) {
	case SortByID, "":
		less = func(a, b Sheep) bool { return lessID(a.ID, b.ID) }
	case SortByPrice:
		less = func(a, b Sheep) bool { return a.Price < b.Price }
	case SortByWeight:
		less = func(a, b Sheep) bool { return a.Weight < b.Weight }
	case SortByAge:
		less = func(a, b Sheep) bool { return a.Age < b.Age }
	default:
		return nil, invalid("sort", "Unknown sort key")
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out, nil
}

func lessID(a, b string) bool {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
