package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"clinic-app-server/internal/models"
)

// memStore is an in-memory Store with the same uniqueness behavior as the
// real one: live appointments are keyed by slot, cancelled ones are not.
type memStore struct {
	mu    sync.Mutex
	slots map[string]bool
	rows  []*models.Appointment

	// createDelay widens the check-to-insert window to provoke races.
	createDelay time.Duration
}

func newMemStore() *memStore {
	return &memStore{slots: make(map[string]bool)}
}

func (s *memStore) SlotTaken(ctx context.Context, doctorID string, date time.Time, at string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[models.SlotOf(doctorID, date, at)], nil
}

func (s *memStore) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	time.Sleep(s.createDelay)
	s.mu.Lock()
	defer s.mu.Unlock()
	if appt.SlotKey != nil {
		if s.slots[*appt.SlotKey] {
			return ErrSlotTaken
		}
		s.slots[*appt.SlotKey] = true
	}
	s.rows = append(s.rows, appt)
	return nil
}

func (s *memStore) cancel(appt *models.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if appt.SlotKey != nil {
		delete(s.slots, *appt.SlotKey)
	}
	appt.Status = models.StatusCancelled
	appt.SlotKey = nil
}

func newAppointment(doctorID, date, at string) *models.Appointment {
	day, _ := time.Parse("2006-01-02", date)
	return &models.Appointment{
		PatientID: "P1",
		DoctorID:  doctorID,
		Date:      day,
		Time:      at,
		Reason:    "checkup",
	}
}

func TestReserve_DuplicateSlot(t *testing.T) {
	store := newMemStore()
	r := NewReserver(store)
	ctx := context.Background()

	if err := r.Reserve(ctx, newAppointment("D1", "2024-06-01", "09:00")); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	err := r.Reserve(ctx, newAppointment("D1", "2024-06-01", "09:00"))
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("second reserve = %v, want ErrSlotTaken", err)
	}
}

func TestReserve_NoOverlapCheck(t *testing.T) {
	store := newMemStore()
	r := NewReserver(store)
	ctx := context.Background()

	// Slots are exact-time matches only; a 30-minute appointment at 09:00
	// does not block 09:15.
	if err := r.Reserve(ctx, newAppointment("D1", "2024-06-01", "09:00")); err != nil {
		t.Fatalf("09:00 reserve: %v", err)
	}
	if err := r.Reserve(ctx, newAppointment("D1", "2024-06-01", "09:15")); err != nil {
		t.Fatalf("09:15 reserve: %v", err)
	}
}

func TestReserve_DifferentDoctorsShareTime(t *testing.T) {
	store := newMemStore()
	r := NewReserver(store)
	ctx := context.Background()

	if err := r.Reserve(ctx, newAppointment("D1", "2024-06-01", "09:00")); err != nil {
		t.Fatalf("D1 reserve: %v", err)
	}
	if err := r.Reserve(ctx, newAppointment("D2", "2024-06-01", "09:00")); err != nil {
		t.Fatalf("D2 reserve: %v", err)
	}
}

func TestReserve_DayGranularity(t *testing.T) {
	store := newMemStore()
	r := NewReserver(store)
	ctx := context.Background()

	morning := newAppointment("D1", "2024-06-01", "09:00")
	morning.Date = morning.Date.Add(3 * time.Hour) // same day, different timestamp

	if err := r.Reserve(ctx, newAppointment("D1", "2024-06-01", "09:00")); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	if err := r.Reserve(ctx, morning); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("same-day reserve = %v, want ErrSlotTaken", err)
	}
}

func TestReserve_CancelledSlotReusable(t *testing.T) {
	store := newMemStore()
	r := NewReserver(store)
	ctx := context.Background()

	first := newAppointment("D1", "2024-06-01", "09:00")
	if err := r.Reserve(ctx, first); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	store.cancel(first)

	if err := r.Reserve(ctx, newAppointment("D1", "2024-06-01", "09:00")); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestReserve_ConcurrentSingleWinner(t *testing.T) {
	store := newMemStore()
	store.createDelay = time.Millisecond
	r := NewReserver(store)
	ctx := context.Background()

	const callers = 16
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- r.Reserve(ctx, newAppointment("D1", "2024-06-01", "09:00"))
		}()
	}
	wg.Wait()
	close(errs)

	var wins, losses int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotTaken):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || losses != callers-1 {
		t.Fatalf("wins = %d, losses = %d, want 1 and %d", wins, losses, callers-1)
	}
	if len(store.rows) != 1 {
		t.Fatalf("stored rows = %d, want 1", len(store.rows))
	}
}

func TestReserve_SetsDefaults(t *testing.T) {
	store := newMemStore()
	r := NewReserver(store)

	appt := newAppointment("D1", "2024-06-01", "09:00")
	if err := r.Reserve(context.Background(), appt); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if appt.Status != models.StatusScheduled {
		t.Errorf("status = %q, want scheduled", appt.Status)
	}
	if appt.SlotKey == nil || *appt.SlotKey != "D1|2024-06-01|09:00" {
		t.Errorf("slot key = %v, want D1|2024-06-01|09:00", appt.SlotKey)
	}
}

func TestDayOf(t *testing.T) {
	ts := time.Date(2024, 6, 1, 17, 45, 12, 0, time.UTC)
	got := DayOf(ts)
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DayOf(%v) = %v, want %v", ts, got, want)
	}
}
