package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/patrickmn/go-cache"

	"sheep-dashboard/internal/platform/logger"
)

// Collection identifica cada lista cacheada.
type Collection string

const (
	Users        Collection = "users"
	Centers      Collection = "centers"
	Appointments Collection = "appointments"
	SheepList    Collection = "sheep"
)

// State es lo que la UI consulta para spinners/banners.
type State struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Store cachea las listas del backend. Las mutaciones llaman al API y luego
// recargan la lista completa (no hay update optimista).
type Store struct {
	backend Backend
	cache   *cache.Cache
	log     logger.Logger

	mu    sync.Mutex
	state map[Collection]State
}

func NewStore(backend Backend, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		backend: backend,
		// sin expiración: las listas se reescriben enteras en cada fetch
		cache: cache.New(cache.NoExpiration, 0),
		log:   log.With(map[string]any{"component": "catalog.store"}),
		state: make(map[Collection]State),
	}
}

func (s *Store) State(c Collection) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state[c]
}

func (s *Store) setState(c Collection, st State) {
	s.mu.Lock()
	s.state[c] = st
	s.mu.Unlock()
}

func (s *Store) recordError(c Collection, err error) {
	s.mu.Lock()
	st := s.state[c]
	st.Loading = false
	st.Error = err.Error()
	s.state[c] = st
	s.mu.Unlock()
}

func fetchList[T any](ctx context.Context, s *Store, c Collection, list func(context.Context) ([]T, error)) ([]T, error) {
	s.setState(c, State{Loading: true})

	items, err := list(ctx)
	if err != nil {
		s.cache.Set(string(c), []T{}, cache.NoExpiration)
		s.setState(c, State{Error: err.Error()})
		s.log.Warn("fetch failed", map[string]any{"collection": string(c), "err": err})
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	s.cache.Set(string(c), items, cache.NoExpiration)
	s.setState(c, State{})
	return items, nil
}

func cachedList[T any](s *Store, c Collection) []T {
	v, ok := s.cache.Get(string(c))
	if !ok {
		return []T{}
	}
	items, _ := v.([]T)
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// afterMutation: si la mutación falló se registra y se devuelve ese error.
// Si la mutación pasó, el refetch se intenta siempre; su error queda solo en State.
func (s *Store) afterMutation(ctx context.Context, c Collection, err error, refetch func(context.Context) error) error {
	if err != nil {
		s.recordError(c, err)
		return err
	}
	if rerr := refetch(ctx); rerr != nil {
		s.log.Warn("refetch after mutation failed", map[string]any{"collection": string(c), "err": rerr})
	}
	return nil
}

func cleanID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", invalid("id", "id is required")
	}
	return id, nil
}

// -------------------------
// Users
// -------------------------

func (s *Store) FetchUsers(ctx context.Context) ([]User, error) {
	return fetchList(ctx, s, Users, s.backend.ListUsers)
}

func (s *Store) Users() []User { return cachedList[User](s, Users) }

func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	id, err := cleanID(id)
	if err != nil {
		return User{}, err
	}
	u, err := s.backend.GetUser(ctx, id)
	if err != nil {
		s.recordError(Users, err)
		return User{}, err
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, u User) (User, error) {
	id, err := cleanID(id)
	if err != nil {
		return User{}, err
	}
	out, err := s.backend.UpdateUser(ctx, id, u)
	err = s.afterMutation(ctx, Users, err, s.refetchUsers)
	return out, err
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	id, err := cleanID(id)
	if err != nil {
		return err
	}
	return s.afterMutation(ctx, Users, s.backend.DeleteUser(ctx, id), s.refetchUsers)
}

func (s *Store) refetchUsers(ctx context.Context) error {
	_, err := s.FetchUsers(ctx)
	return err
}

// -------------------------
// Centers
// -------------------------

func (s *Store) FetchCenters(ctx context.Context) ([]Center, error) {
	return fetchList(ctx, s, Centers, s.backend.ListCenters)
}

func (s *Store) Centers() []Center { return cachedList[Center](s, Centers) }

func (s *Store) GetCenterByID(ctx context.Context, id string) (Center, error) {
	id, err := cleanID(id)
	if err != nil {
		return Center{}, err
	}
	c, err := s.backend.GetCenter(ctx, id)
	if err != nil {
		s.recordError(Centers, err)
		return Center{}, err
	}
	return c, nil
}

func (s *Store) AddCenter(ctx context.Context, c Center) (Center, error) {
	if err := validateCenter(c); err != nil {
		return Center{}, err
	}
	out, err := s.backend.CreateCenter(ctx, c)
	err = s.afterMutation(ctx, Centers, err, s.refetchCenters)
	return out, err
}

func (s *Store) UpdateCenter(ctx context.Context, id string, c Center) (Center, error) {
	id, err := cleanID(id)
	if err != nil {
		return Center{}, err
	}
	if err := validateCenter(c); err != nil {
		return Center{}, err
	}
	out, err := s.backend.UpdateCenter(ctx, id, c)
	err = s.afterMutation(ctx, Centers, err, s.refetchCenters)
	return out, err
}

func (s *Store) DeleteCenter(ctx context.Context, id string) error {
	id, err := cleanID(id)
	if err != nil {
		return err
	}
	return s.afterMutation(ctx, Centers, s.backend.DeleteCenter(ctx, id), s.refetchCenters)
}

func (s *Store) refetchCenters(ctx context.Context) error {
	_, err := s.FetchCenters(ctx)
	return err
}

// -------------------------
// Appointments
// -------------------------

func (s *Store) FetchAppointments(ctx context.Context) ([]Appointment, error) {
	return fetchList(ctx, s, Appointments, s.backend.ListAppointments)
}

func (s *Store) Appointments() []Appointment { return cachedList[Appointment](s, Appointments) }

func (s *Store) GetAppointmentByID(ctx context.Context, id string) (Appointment, error) {
	id, err := cleanID(id)
	if err != nil {
		return Appointment{}, err
	}
	a, err := s.backend.GetAppointment(ctx, id)
	if err != nil {
		s.recordError(Appointments, err)
		return Appointment{}, err
	}
	return a, nil
}

func (s *Store) AddAppointment(ctx context.Context, a Appointment) (Appointment, error) {
	a, err := normalizeAppointment(a)
	if err != nil {
		return Appointment{}, err
	}
	out, err := s.backend.CreateAppointment(ctx, a)
	err = s.afterMutation(ctx, Appointments, err, s.refetchAppointments)
	return out, err
}

func (s *Store) UpdateAppointment(ctx context.Context, id string, a Appointment) (Appointment, error) {
	id, err := cleanID(id)
	if err != nil {
		return Appointment{}, err
	}
	a, err = normalizeAppointment(a)
	if err != nil {
		return Appointment{}, err
	}
	out, err := s.backend.UpdateAppointment(ctx, id, a)
	err = s.afterMutation(ctx, Appointments, err, s.refetchAppointments)
	return out, err
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	id, err := cleanID(id)
	if err != nil {
		return err
	}
	return s.afterMutation(ctx, Appointments, s.backend.DeleteAppointment(ctx, id), s.refetchAppointments)
}

func (s *Store) refetchAppointments(ctx context.Context) error {
	_, err := s.FetchAppointments(ctx)
	return err
}

// -------------------------
// Sheep
// -------------------------

func (s *Store) FetchSheep(ctx context.Context) ([]Sheep, error) {
	return fetchList(ctx, s, SheepList, s.backend.ListSheep)
}

func (s *Store) Sheep() []Sheep { return cachedList[Sheep](s, SheepList) }

func (s *Store) GetSheepByID(ctx context.Context, id string) (Sheep, error) {
	id, err := cleanID(id)
	if err != nil {
		return Sheep{}, err
	}
	sh, err := s.backend.GetSheep(ctx, id)
	if err != nil {
		s.recordError(SheepList, err)
		return Sheep{}, err
	}
	return sh, nil
}

func (s *Store) AddSheep(ctx context.Context, sh Sheep) (Sheep, error) {
	sh, err := normalizeSheep(sh)
	if err != nil {
		return Sheep{}, err
	}
	out, err := s.backend.CreateSheep(ctx, sh)
	err = s.afterMutation(ctx, SheepList, err, s.refetchSheep)
	return out, err
}

func (s *Store) UpdateSheep(ctx context.Context, id string, sh Sheep) (Sheep, error) {
	id, err := cleanID(id)
	if err != nil {
		return Sheep{}, err
	}
	sh, err = normalizeSheep(sh)
	if err != nil {
		return Sheep{}, err
	}
	out, err := s.backend.UpdateSheep(ctx, id, sh)
	err = s.afterMutation(ctx, SheepList, err, s.refetchSheep)
	return out, err
}

func (s *Store) DeleteSheep(ctx context.Context, id string) error {
	id, err := cleanID(id)
	if err != nil {
		return err
	}
	return s.afterMutation(ctx, SheepList, s.backend.DeleteSheep(ctx, id), s.refetchSheep)
}

func (s *Store) refetchSheep(ctx context.Context) error {
	_, err := s.FetchSheep(ctx)
	return err
}

// Summary cuenta sobre lo cacheado (el dashboard hace fetch antes).
func (s *Store) Summary() Summary {
	appts := s.Appointments()
	by := make(map[AppointmentStatus]int)
	for _, a := range appts {
		by[a.Status]++
	}
	return Summary{
		Users:        len(s.Users()),
		Centers:      len(s.Centers()),
		Sheep:        len(s.Sheep()),
		Appointments: len(appts),
		ByStatus:     by,
	}
}
