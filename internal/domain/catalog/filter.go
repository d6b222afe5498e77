package catalog

import "strings"

// FilterSheep: id contiene q (tal cual) o race/origin contienen q sin importar mayúsculas.
// q vacío devuelve todo.
func FilterSheep(in []Sheep, q string) []Sheep {
	q = strings.TrimSpace(q)
	if q == "" {
		return in
	}
	lq := strings.ToLower(q)

	out := make([]Sheep, 0, len(in))
	for _, s := range in {
		if strings.Contains(s.ID, q) ||
			strings.Contains(strings.ToLower(s.Race), lq) ||
			strings.Contains(strings.ToLower(s.Origin), lq) {
			out = append(out, s)
		}
	}
	return out
}

// FilterUsers busca en nombre completo y email; role "" o "all" no filtra rol.
func FilterUsers(in []User, q string, role string) []User {
	lq := strings.ToLower(strings.TrimSpace(q))
	role = strings.ToLower(strings.TrimSpace(role))

	out := make([]User, 0, len(in))
	for _, u := range in {
		full := strings.ToLower(u.FirstName + " " + u.LastName)
		if lq != "" && !strings.Contains(full, lq) && !strings.Contains(strings.ToLower(u.Email), lq) {
			continue
		}
		if role != "" && role != "all" && string(u.Role) != role {
			continue
		}
		out = append(out, u)
	}
	return out
}
