package catalog

import (
	"context"
	"errors"
	"strconv"
	"testing"
)

// -------------------------
// Fake backend (in-memory)
// -------------------------

type fakeBackend struct {
	nextID int

	users        []User
	centers      []Center
	sheep        []Sheep
	appointments []Appointment

	listErr   error // afecta a todos los List*
	createErr error
	calls     map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: map[string]int{}}
}

func (f *fakeBackend) id() string {
	f.nextID++
	return strconv.Itoa(f.nextID)
}

func (f *fakeBackend) ListUsers(ctx context.Context) ([]User, error) {
	f.calls["ListUsers"]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]User(nil), f.users...), nil
}

func (f *fakeBackend) GetUser(ctx context.Context, id string) (User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (f *fakeBackend) UpdateUser(ctx context.Context, id string, u User) (User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u.ID = id
			f.users[i] = u
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (f *fakeBackend) DeleteUser(ctx context.Context, id string) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeBackend) ListCenters(ctx context.Context) ([]Center, error) {
	f.calls["ListCenters"]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]Center(nil), f.centers...), nil
}

func (f *fakeBackend) GetCenter(ctx context.Context, id string) (Center, error) {
	for _, c := range f.centers {
		if c.ID == id {
			return c, nil
		}
	}
	return Center{}, ErrNotFound
}

func (f *fakeBackend) CreateCenter(ctx context.Context, c Center) (Center, error) {
	if f.createErr != nil {
		return Center{}, f.createErr
	}
	c.ID = f.id()
	f.centers = append(f.centers, c)
	return c, nil
}

func (f *fakeBackend) UpdateCenter(ctx context.Context, id string, c Center) (Center, error) {
	for i := range f.centers {
		if f.centers[i].ID == id {
			c.ID = id
			f.centers[i] = c
			return c, nil
		}
	}
	return Center{}, ErrNotFound
}

func (f *fakeBackend) DeleteCenter(ctx context.Context, id string) error {
	for i := range f.centers {
		if f.centers[i].ID == id {
			f.centers = append(f.centers[:i], f.centers[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeBackend) ListSheep(ctx context.Context) ([]Sheep, error) {
	f.calls["ListSheep"]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]Sheep(nil), f.sheep...), nil
}

func (f *fakeBackend) GetSheep(ctx context.Context, id string) (Sheep, error) {
	for _, s := range f.sheep {
		if s.ID == id {
			return s, nil
		}
	}
	return Sheep{}, ErrNotFound
}

func (f *fakeBackend) CreateSheep(ctx context.Context, s Sheep) (Sheep, error) {
	f.calls["CreateSheep"]++
	if f.createErr != nil {
		return Sheep{}, f.createErr
	}
	s.ID = f.id()
	f.sheep = append(f.sheep, s)
	return s, nil
}

func (f *fakeBackend) UpdateSheep(ctx context.Context, id string, s Sheep) (Sheep, error) {
	for i := range f.sheep {
		if f.sheep[i].ID == id {
			s.ID = id
			f.sheep[i] = s
			return s, nil
		}
	}
	return Sheep{}, ErrNotFound
}

func (f *fakeBackend) DeleteSheep(ctx context.Context, id string) error {
	for i := range f.sheep {
		if f.sheep[i].ID == id {
			f.sheep = append(f.sheep[:i], f.sheep[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeBackend) ListAppointments(ctx context.Context) ([]Appointment, error) {
	f.calls["ListAppointments"]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]Appointment(nil), f.appointments...), nil
}

func (f *fakeBackend) GetAppointment(ctx context.Context, id string) (Appointment, error) {
	for _, a := range f.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return Appointment{}, ErrNotFound
}

func (f *fakeBackend) CreateAppointment(ctx context.Context, a Appointment) (Appointment, error) {
	if f.createErr != nil {
		return Appointment{}, f.createErr
	}
	a.ID = f.id()
	f.appointments = append(f.appointments, a)
	return a, nil
}

func (f *fakeBackend) UpdateAppointment(ctx context.Context, id string, a Appointment) (Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			a.ID = id
			f.appointments[i] = a
			return a, nil
		}
	}
	return Appointment{}, ErrNotFound
}

func (f *fakeBackend) DeleteAppointment(ctx context.Context, id string) error {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments = append(f.appointments[:i], f.appointments[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// -------------------------
// Tests
// -------------------------

func TestAddSheep_RefetchIncludesNewEntry(t *testing.T) {
	ctx := context.Background()
	be := newFakeBackend()
	st := NewStore(be, nil)

	created, err := st.AddSheep(ctx, Sheep{Race: "Ouled Djellal", Origin: "Djelfa", Weight: 55.5, Age: 2, Price: 4000})
	if err != nil {
		t.Fatalf("add sheep: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected server-assigned id")
	}
	if created.Health != HealthGood {
		t.Fatalf("expected default health good, got %q", created.Health)
	}

	got := st.Sheep()
	if len(got) != 1 || got[0].ID != created.ID || got[0].Race != "Ouled Djellal" || got[0].Price != 4000 {
		t.Fatalf("expected cached list to contain new sheep, got %#v", got)
	}
	if be.calls["ListSheep"] != 1 {
		t.Fatalf("expected exactly one refetch, got %d", be.calls["ListSheep"])
	}
}

func TestFetch_ErrorRecordsStateAndEmptiesList(t *testing.T) {
	ctx := context.Background()
	be := newFakeBackend()
	be.sheep = []Sheep{{ID: "1", Race: "Rembi"}}
	st := NewStore(be, nil)

	if _, err := st.FetchSheep(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(st.Sheep()) != 1 {
		t.Fatalf("expected 1 cached sheep")
	}

	be.listErr = errors.New("HTTP error! status: 500")
	if _, err := st.FetchSheep(ctx); err == nil {
		t.Fatalf("expected fetch error")
	}

	state := st.State(SheepList)
	if state.Loading {
		t.Fatalf("loading must be reset after failure")
	}
	if state.Error != "HTTP error! status: 500" {
		t.Fatalf("expected recorded error, got %q", state.Error)
	}
	if len(st.Sheep()) != 0 {
		t.Fatalf("expected list emptied on failure")
	}
}

func TestMutation_RefetchFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	be := newFakeBackend()
	st := NewStore(be, nil)

	be.listErr = errors.New("network down")
	c, err := st.AddCenter(ctx, Center{Name: "C1", Location: "Alger"})
	if err != nil {
		t.Fatalf("mutation should succeed even if refetch fails, got %v", err)
	}
	if c.ID == "" {
		t.Fatalf("expected created center")
	}
	if st.State(Centers).Error != "network down" {
		t.Fatalf("expected refetch error recorded, got %q", st.State(Centers).Error)
	}
}

func TestMutation_ErrorIsReturnedWithoutRefetch(t *testing.T) {
	ctx := context.Background()
	be := newFakeBackend()
	be.createErr = errors.New("Sheep already exists")
	st := NewStore(be, nil)

	if _, err := st.AddSheep(ctx, Sheep{Race: "x"}); err == nil || err.Error() != "Sheep already exists" {
		t.Fatalf("expected mutation error, got %v", err)
	}
	if be.calls["ListSheep"] != 0 {
		t.Fatalf("no refetch expected after failed mutation")
	}
	if st.State(SheepList).Error != "Sheep already exists" {
		t.Fatalf("expected mutation error recorded")
	}
}

func TestAddSheep_RejectsNegativeValuesBeforeNetwork(t *testing.T) {
	be := newFakeBackend()
	st := NewStore(be, nil)

	cases := []Sheep{
		{Race: "x", Price: -1},
		{Race: "x", Weight: -0.5},
		{Race: "x", Age: -2},
	}
	for _, in := range cases {
		_, err := st.AddSheep(context.Background(), in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %#v, got %v", in, err)
		}
	}
	if be.calls["CreateSheep"] != 0 {
		t.Fatalf("validation must happen before any backend call")
	}
}

func TestAddAppointment_DefaultsAndValidation(t *testing.T) {
	ctx := context.Background()
	be := newFakeBackend()
	st := NewStore(be, nil)

	a, err := st.AddAppointment(ctx, Appointment{UserID: "u1", PointDeVenteID: "C1", Date: "2024-07-01T10:00:00Z"})
	if err != nil {
		t.Fatalf("add appointment: %v", err)
	}
	if a.Status != AppointmentPending {
		t.Fatalf("expected default pending, got %q", a.Status)
	}

	_, err = st.AddAppointment(ctx, Appointment{UserID: "u1", PointDeVenteID: "C1", Date: "d", Status: "archived"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "status" {
		t.Fatalf("expected status validation error, got %v", err)
	}

	_, err = st.AddAppointment(ctx, Appointment{PointDeVenteID: "C1", Date: "d"})
	if !errors.As(err, &ve) || ve.Field != "userId" {
		t.Fatalf("expected userId validation error, got %v", err)
	}
}

func TestDeleteAndUpdate_RefetchLists(t *testing.T) {
	ctx := context.Background()
	be := newFakeBackend()
	be.users = []User{{ID: "u1", FirstName: "A"}, {ID: "u2", FirstName: "B"}}
	st := NewStore(be, nil)

	if err := st.DeleteUser(ctx, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	users := st.Users()
	if len(users) != 1 || users[0].ID != "u2" {
		t.Fatalf("expected only u2 after delete, got %#v", users)
	}

	if _, err := st.UpdateUser(ctx, "u2", User{FirstName: "Bee"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if st.Users()[0].FirstName != "Bee" {
		t.Fatalf("expected refetched update")
	}

	if err := st.DeleteUser(ctx, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank id, got %v", err)
	}
}

func TestSortSheep(t *testing.T) {
	in := []Sheep{
		{ID: "10", Price: 300, Weight: 40, Age: 3},
		{ID: "2", Price: 100, Weight: 60, Age: 1},
		{ID: "7", Price: 200, Weight: 50, Age: 2},
	}

	byID, _ := SortSheep(in, SortByID)
	if byID[0].ID != "2" || byID[2].ID != "10" {
		t.Fatalf("expected numeric id order, got %#v", byID)
	}
	byPrice, _ := SortSheep(in, SortByPrice)
	if byPrice[0].Price != 100 {
		t.Fatalf("expected cheapest first")
	}
	byWeight, _ := SortSheep(in, SortByWeight)
	if byWeight[0].Weight != 40 {
		t.Fatalf("expected lightest first")
	}
	if in[0].ID != "10" {
		t.Fatalf("input slice must not be modified")
	}
	if _, err := SortSheep(in, "colour"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid sort key error")
	}
}

func TestSummary_CountsCachedLists(t *testing.T) {
	ctx := context.Background()
	be := newFakeBackend()
	be.users = []User{{ID: "u1"}}
	be.centers = []Center{{ID: "c1"}, {ID: "c2"}}
	be.appointments = []Appointment{
		{ID: "a1", Status: AppointmentConfirmed},
		{ID: "a2", Status: AppointmentPending},
		{ID: "a3", Status: AppointmentConfirmed},
	}
	st := NewStore(be, nil)

	_, _ = st.FetchUsers(ctx)
	_, _ = st.FetchCenters(ctx)
	_, _ = st.FetchAppointments(ctx)
	_, _ = st.FetchSheep(ctx)

	sum := st.Summary()
	if sum.Users != 1 || sum.Centers != 2 || sum.Sheep != 0 || sum.Appointments != 3 {
		t.Fatalf("unexpected summary %#v", sum)
	}
	if sum.ByStatus[AppointmentConfirmed] != 2 {
		t.Fatalf("expected 2 confirmed, got %d", sum.ByStatus[AppointmentConfirmed])
	}
}
