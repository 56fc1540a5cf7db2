package models

import (
	"testing"
	"time"
)

func TestSlotOf(t *testing.T) {
	date := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)
	got := SlotOf("D1", date, "09:00")
	want := "D1|2024-06-01|09:00"
	if got != want {
		t.Errorf("SlotOf = %q, want %q", got, want)
	}
}

func TestSyncSlotKey(t *testing.T) {
	appt := &Appointment{
		DoctorID: "D1",
		Date:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Time:     "09:00",
		Status:   StatusScheduled,
	}

	appt.SyncSlotKey()
	if appt.SlotKey == nil || *appt.SlotKey != "D1|2024-06-01|09:00" {
		t.Fatalf("slot key = %v, want D1|2024-06-01|09:00", appt.SlotKey)
	}

	// Cancelling releases the slot
	appt.Status = StatusCancelled
	appt.SyncSlotKey()
	if appt.SlotKey != nil {
		t.Errorf("cancelled appointment kept slot key %q", *appt.SlotKey)
	}

	// Reinstating takes it again
	appt.Status = StatusConfirmed
	appt.SyncSlotKey()
	if appt.SlotKey == nil {
		t.Error("reinstated appointment has no slot key")
	}
}
