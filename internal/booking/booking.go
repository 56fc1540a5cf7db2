// Package booking guards the one real correctness hazard in the system:
// two requests racing for the same doctor/date/time slot. Reservations are
// serialized per doctor in process, and the store's unique slot key settles
// races with writers in other processes, so of two identical concurrent
// bookings exactly one wins and the loser gets ErrSlotTaken.
package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"clinic-app-server/internal/models"
)

// ErrSlotTaken is returned when a non-cancelled appointment already occupies
// the requested slot.
var ErrSlotTaken = errors.New("time slot already booked")

// Store is the persistence surface a Reserver needs.
type Store interface {
	// SlotTaken reports whether a non-cancelled appointment exists for the
	// exact doctor/date/time triple. Date carries day granularity.
	SlotTaken(ctx context.Context, doctorID string, date time.Time, at string) (bool, error)

	// CreateAppointment inserts the appointment. Implementations backed by
	// the unique slot-key column return ErrSlotTaken on a duplicate insert.
	CreateAppointment(ctx context.Context, appt *models.Appointment) error
}

// Reserver books appointment slots. Time comparison is exact-string
// equality: 09:00 and 09:15 on the same day never conflict, whatever the
// stored duration says.
type Reserver struct {
	store Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewReserver creates a Reserver on top of the given store.
func NewReserver(store Store) *Reserver {
	return &Reserver{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

// Reserve checks the slot and persists the appointment under a per-doctor
// lock. The appointment's date is normalized to day granularity and its slot
// key is set before insert.
func (r *Reserver) Reserve(ctx context.Context, appt *models.Appointment) error {
	lock := r.doctorLock(appt.DoctorID)
	lock.Lock()
	defer lock.Unlock()

	appt.Date = DayOf(appt.Date)

	taken, err := r.store.SlotTaken(ctx, appt.DoctorID, appt.Date, appt.Time)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotTaken
	}

	if appt.Status == "" {
		appt.Status = models.StatusScheduled
	}
	appt.SyncSlotKey()
	return r.store.CreateAppointment(ctx, appt)
}

func (r *Reserver) doctorLock(doctorID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[doctorID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[doctorID] = lock
	}
	return lock
}

// DayOf truncates a timestamp to day granularity in UTC.
func DayOf(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
