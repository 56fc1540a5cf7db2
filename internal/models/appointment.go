package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booked visit with a doctor. A slot is the exact
// (doctor, date, time) triple; Time is compared as a string, so two bookings
// fifteen minutes apart never conflict regardless of Duration.
type Appointment struct {
	BaseModel
	PatientID   string            `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID    string            `gorm:"size:36;index;not null" json:"doctorId"`
	Date        time.Time         `gorm:"not null" json:"date"`
	Time        string            `gorm:"size:5;not null" json:"time"`
	Status      AppointmentStatus `gorm:"size:20;default:'scheduled'" json:"status"`
	Reason      string            `gorm:"size:255;not null" json:"reason"`
	Notes       string            `gorm:"type:text" json:"notes,omitempty"`
	Duration    int               `gorm:"default:30" json:"duration"` // in minutes
	IsEmergency bool              `gorm:"default:false" json:"isEmergency"`

	// SlotKey backs the uniqueness guarantee for bookings. It holds the
	// doctor|date|time triple while the appointment is live and is NULLed on
	// cancellation, since MySQL unique indexes admit any number of NULLs.
	SlotKey *string `gorm:"size:64;uniqueIndex" json:"-"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}

// SlotOf builds the canonical booking key for a doctor/date/time triple.
// The date contributes day granularity only.
func SlotOf(doctorID string, date time.Time, at string) string {
	return doctorID + "|" + date.Format("2006-01-02") + "|" + at
}

// SyncSlotKey recomputes the unique slot key from the current fields.
// Cancelled appointments release their slot.
func (a *Appointment) SyncSlotKey() {
	if a.Status == StatusCancelled {
		a.SlotKey = nil
		return
	}
	key := SlotOf(a.DoctorID, a.Date, a.Time)
	a.SlotKey = &key
}

// PatientRef reports the owning patient for access-control checks.
func (a *Appointment) PatientRef() string { return a.PatientID }

// DoctorRef reports the assigned doctor for access-control checks.
func (a *Appointment) DoctorRef() string { return a.DoctorID }
