package notifications

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"sheep-dashboard/internal/domain/catalog"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	mu        sync.Mutex
	byID      map[string]Notification
	updateErr error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Notification{}}
}

func (r *testRepo) Create(ctx context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[n.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[n.ID] = n
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[id]
	if !ok {
		return Notification{}, ErrNotFound
	}
	return n, nil
}

func (r *testRepo) Update(ctx context.Context, n Notification, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	cur, ok := r.byID[n.ID]
	if !ok {
		return ErrNotFound
	}
	if cur.Version != expectedVersion {
		return ErrConflict
	}
	r.byID[n.ID] = n
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) List(ctx context.Context) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, 0, len(r.byID))
	for _, n := range r.byID {
		out = append(out, n)
	}
	return out, nil
}

// -------------------------
// Test scheduler
// -------------------------

type testScheduler struct {
	mu    sync.Mutex
	err   error
	delay time.Duration
	appts []catalog.Appointment
}

func (s *testScheduler) AddAppointment(ctx context.Context, a catalog.Appointment) (catalog.Appointment, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return catalog.Appointment{}, s.err
	}
	a.ID = "rdv-" + strconv.Itoa(len(s.appts)+1)
	s.appts = append(s.appts, a)
	return a, nil
}

func (s *testScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appts)
}

type testObserver struct {
	mu    sync.Mutex
	calls map[string]int
}

func (o *testObserver) ObserveTransition(action string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.calls == nil {
		o.calls = map[string]int{}
	}
	key := action + ":ok"
	if err != nil {
		key = action + ":error"
	}
	o.calls[key]++
}

// -------------------------
// Helpers
// -------------------------

func newTestService(t *testing.T) (*Service, *testRepo, *testScheduler) {
	t.Helper()
	repo := newTestRepo()
	sched := &testScheduler{}
	svc := NewService(repo, sched, Options{})

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	tick := 0
	svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	seq := 0
	svc.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		seq++
		return "n-" + strconv.Itoa(seq)
	}
	return svc, repo, sched
}

func mustCreate(t *testing.T, svc *Service, userID, sheepID string) Notification {
	t.Helper()
	n, err := svc.CreateBuyRequest(context.Background(), BuyRequestInput{
		UserID:    userID,
		UserName:  "Amina Benali",
		UserEmail: "amina@example.dz",
		SheepID:   sheepID,
		Sheep:     SheepInfo{Race: "Ouled Djellal", Weight: 55, Age: 2, Price: 4000, Origin: "Djelfa"},
	})
	if err != nil {
		t.Fatalf("create buy request: %v", err)
	}
	return n
}

// -------------------------
// Tests
// -------------------------

func TestCreateBuyRequest_FieldsAndOrdering(t *testing.T) {
	svc, _, _ := newTestService(t)

	first := mustCreate(t, svc, "u1", "3")
	second := mustCreate(t, svc, "u2", "7")

	if second.Status != StatusPending || second.Type != TypeBuyRequest {
		t.Fatalf("unexpected status/type %s/%s", second.Status, second.Type)
	}
	if second.Message != "Amina Benali wants to buy Sheep #7" {
		t.Fatalf("unexpected message %q", second.Message)
	}

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != second.ID || items[1].ID != first.ID {
		t.Fatalf("expected newest first, got %#v", items)
	}
}

func TestCreateBuyRequest_RequiresUserAndSheep(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.CreateBuyRequest(context.Background(), BuyRequestInput{SheepID: "1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestApprove_CreatesExactlyOneAppointmentForRequester(t *testing.T) {
	ctx := context.Background()
	svc, repo, sched := newTestService(t)
	n := mustCreate(t, svc, "u1", "7")

	got, appt, err := svc.Approve(ctx, n.ID, ApproveInput{Date: "2024-07-01T10:00", PointOfSaleID: "C1", Notes: "bring papers"})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if sched.count() != 1 {
		t.Fatalf("expected exactly one appointment, got %d", sched.count())
	}
	if appt.UserID != "u1" || appt.PointDeVenteID != "C1" || appt.Status != catalog.AppointmentConfirmed {
		t.Fatalf("unexpected appointment %#v", appt)
	}
	if appt.Date != "2024-07-01T10:00:00.000Z" {
		t.Fatalf("expected ISO date, got %q", appt.Date)
	}
	if appt.Notes != "bring papers" {
		t.Fatalf("expected notes carried, got %q", appt.Notes)
	}
	if got.Status != StatusApproved || got.UpdatedAt == nil {
		t.Fatalf("expected approved with updatedAt, got %#v", got)
	}
	if got.AdminResponse != "Appointment scheduled for 7/1/2024, 10:00:00 AM" {
		t.Fatalf("unexpected admin response %q", got.AdminResponse)
	}
	if stored, _ := repo.GetByID(ctx, n.ID); stored.Version != n.Version+1 {
		t.Fatalf("expected version bump, got %d", stored.Version)
	}
}

func TestApproveReject_TerminalStatesFailWithBadState(t *testing.T) {
	ctx := context.Background()
	svc, repo, sched := newTestService(t)

	approved := mustCreate(t, svc, "u1", "1")
	if _, _, err := svc.Approve(ctx, approved.ID, ApproveInput{Date: "2024-07-01", PointOfSaleID: "C1"}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	rejected := mustCreate(t, svc, "u2", "2")
	if _, err := svc.Reject(ctx, rejected.ID, ""); err != nil {
		t.Fatalf("reject: %v", err)
	}

	before := sched.count()
	for _, id := range []string{approved.ID, rejected.ID} {
		snapshot, _ := repo.GetByID(ctx, id)

		if _, _, err := svc.Approve(ctx, id, ApproveInput{Date: "2024-07-02", PointOfSaleID: "C2"}); !errors.Is(err, ErrBadState) {
			t.Fatalf("approve %s: expected ErrBadState, got %v", id, err)
		}
		if _, err := svc.Reject(ctx, id, "late"); !errors.Is(err, ErrBadState) {
			t.Fatalf("reject %s: expected ErrBadState, got %v", id, err)
		}

		after, _ := repo.GetByID(ctx, id)
		if after.Status != snapshot.Status || after.AdminResponse != snapshot.AdminResponse || after.Version != snapshot.Version {
			t.Fatalf("terminal notification %s changed: %#v -> %#v", id, snapshot, after)
		}
	}
	if sched.count() != before {
		t.Fatalf("no appointment may be created for terminal notifications")
	}
}

func TestReject_DefaultReason(t *testing.T) {
	svc, _, _ := newTestService(t)
	n := mustCreate(t, svc, "u1", "1")

	got, err := svc.Reject(context.Background(), n.ID, "  ")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got.Status != StatusRejected || got.AdminResponse != DefaultRejectReason {
		t.Fatalf("unexpected result %#v", got)
	}
}

func TestApprove_Step1FailureLeavesPending(t *testing.T) {
	ctx := context.Background()
	svc, repo, sched := newTestService(t)
	n := mustCreate(t, svc, "u1", "1")
	sched.err = errors.New("HTTP error! status: 500")

	_, _, err := svc.Approve(ctx, n.ID, ApproveInput{Date: "2024-07-01T10:00", PointOfSaleID: "C1"})
	if err == nil || errors.Is(err, ErrOrphanedAppointment) {
		t.Fatalf("expected plain appointment error, got %v", err)
	}
	if !errors.Is(err, sched.err) {
		t.Fatalf("expected cause to be wrapped")
	}
	stored, _ := repo.GetByID(ctx, n.ID)
	if stored.Status != StatusPending || stored.Version != n.Version {
		t.Fatalf("notification must stay pending, got %#v", stored)
	}
}

func TestApprove_Step2FailureReportsOrphan(t *testing.T) {
	ctx := context.Background()
	svc, repo, sched := newTestService(t)
	n := mustCreate(t, svc, "u1", "1")
	repo.updateErr = errors.New("disk full")

	_, appt, err := svc.Approve(ctx, n.ID, ApproveInput{Date: "2024-07-01T10:00", PointOfSaleID: "C1"})
	if !errors.Is(err, ErrOrphanedAppointment) {
		t.Fatalf("expected ErrOrphanedAppointment, got %v", err)
	}
	var oe *OrphanedAppointmentError
	if !errors.As(err, &oe) || oe.AppointmentID != "rdv-1" || appt.ID != "rdv-1" {
		t.Fatalf("expected orphan to carry appointment id, got %#v", oe)
	}
	if !errors.Is(err, repo.updateErr) {
		t.Fatalf("expected underlying cause reachable")
	}
	if sched.count() != 1 {
		t.Fatalf("expected the orphan appointment to exist")
	}
}

func TestApprove_VersionConflictIsOrphanWithConflictCause(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)
	n := mustCreate(t, svc, "u1", "1")
	repo.updateErr = ErrConflict

	_, _, err := svc.Approve(ctx, n.ID, ApproveInput{Date: "2024-07-01", PointOfSaleID: "C1"})
	if !errors.Is(err, ErrOrphanedAppointment) || !errors.Is(err, ErrConflict) {
		t.Fatalf("expected orphan wrapping conflict, got %v", err)
	}
}

func TestApprove_ValidatesInput(t *testing.T) {
	svc, _, sched := newTestService(t)
	n := mustCreate(t, svc, "u1", "1")

	cases := []ApproveInput{
		{Date: "", PointOfSaleID: "C1"},
		{Date: "next tuesday", PointOfSaleID: "C1"},
		{Date: "2024-07-01", PointOfSaleID: " "},
	}
	for _, in := range cases {
		if _, _, err := svc.Approve(context.Background(), n.ID, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %#v, got %v", in, err)
		}
	}
	if _, _, err := svc.Approve(context.Background(), "missing", ApproveInput{Date: "2024-07-01", PointOfSaleID: "C1"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if sched.count() != 0 {
		t.Fatalf("no appointment expected")
	}
}

func TestApprove_ConcurrentSameIDCreatesOneAppointment(t *testing.T) {
	ctx := context.Background()
	svc, _, sched := newTestService(t)
	sched.delay = 5 * time.Millisecond
	n := mustCreate(t, svc, "u1", "1")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Approve(ctx, n.ID, ApproveInput{Date: "2024-07-01", PointOfSaleID: "C1"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok, bad := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrBadState):
			bad++
		default:
			t.Fatalf("unexpected error %v", err)
		}
	}
	if ok != 1 || bad != 7 || sched.count() != 1 {
		t.Fatalf("expected 1 success / 7 bad state / 1 appointment, got %d/%d/%d", ok, bad, sched.count())
	}
}

func TestDelete_RemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	a := mustCreate(t, svc, "u1", "1")
	b := mustCreate(t, svc, "u2", "2")
	c := mustCreate(t, svc, "u3", "3")
	if _, _, err := svc.Approve(ctx, b.ID, ApproveInput{Date: "2024-07-01", PointOfSaleID: "C1"}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := svc.Delete(ctx, b.ID); err != nil {
		t.Fatalf("delete approved: %v", err)
	}
	items, _ := svc.List(ctx)
	if len(items) != 2 || items[0].ID != c.ID || items[1].ID != a.ID {
		t.Fatalf("expected only a and c left, got %#v", items)
	}
	if err := svc.Delete(ctx, b.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStats_CountsByStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	obs := &testObserver{}
	svc.obs = obs

	a := mustCreate(t, svc, "u1", "1")
	b := mustCreate(t, svc, "u2", "2")
	_ = mustCreate(t, svc, "u3", "3")
	_, _, _ = svc.Approve(ctx, a.ID, ApproveInput{Date: "2024-07-01", PointOfSaleID: "C1"})
	_, _ = svc.Reject(ctx, b.ID, "")
	_, _ = svc.Reject(ctx, b.ID, "")

	st, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st != (Stats{Pending: 1, Approved: 1, Rejected: 1, Total: 3}) {
		t.Fatalf("unexpected stats %#v", st)
	}
	if obs.calls["reject:error"] != 1 || obs.calls["approve:ok"] != 1 || obs.calls["create:ok"] != 3 {
		t.Fatalf("unexpected observations %#v", obs.calls)
	}
}

func TestScenario_OuledDjellalBuyRequestToAppointment(t *testing.T) {
	ctx := context.Background()
	svc, _, sched := newTestService(t)

	n := mustCreate(t, svc, "u1", "7")

	pending, _ := svc.List(ctx)
	if len(pending) != 1 || pending[0].Status != StatusPending || pending[0].SheepInfo.Price != 4000 || pending[0].SheepInfo.Race != "Ouled Djellal" {
		t.Fatalf("admin should see pending request with price 4000, got %#v", pending)
	}

	if _, _, err := svc.Approve(ctx, n.ID, ApproveInput{Date: "2024-07-01T10:00", PointOfSaleID: "C1"}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if sched.count() != 1 {
		t.Fatalf("expected one appointment")
	}
	a := sched.appts[0]
	if a.UserID != "u1" || a.PointDeVenteID != "C1" || a.Status != catalog.AppointmentConfirmed {
		t.Fatalf("unexpected appointment %#v", a)
	}
	got, _ := svc.Get(ctx, n.ID)
	if got.Status != StatusApproved {
		t.Fatalf("expected approved, got %s", got.Status)
	}
}
