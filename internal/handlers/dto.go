package handlers

import (
	"time"

	"clinic-app-server/internal/models"
)

// The DTOs in this file replace runtime field expansion with explicit
// fetch-and-assemble: each handler preloads the relations it needs and builds
// a typed composite at the call site.

// UserSummary is the slice of an account embedded in composed responses.
type UserSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Specialty  string `json:"specialty,omitempty"`
	Experience string `json:"experience,omitempty"`
}

func newUserSummary(u models.User) UserSummary {
	return UserSummary{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Specialty:  u.Specialty,
		Experience: u.Experience,
	}
}

// AppointmentDetail is an appointment with its patient and doctor expanded.
type AppointmentDetail struct {
	models.Appointment
	Patient UserSummary `json:"patient"`
	Doctor  UserSummary `json:"doctor"`
}

func newAppointmentDetail(a models.Appointment) AppointmentDetail {
	return AppointmentDetail{
		Appointment: a,
		Patient:     newUserSummary(a.Patient),
		Doctor:      newUserSummary(a.Doctor),
	}
}

func newAppointmentDetails(appointments []models.Appointment) []AppointmentDetail {
	details := make([]AppointmentDetail, len(appointments))
	for i, a := range appointments {
		details[i] = newAppointmentDetail(a)
	}
	return details
}

// AppointmentSummary is the slice of an appointment embedded in prescription
// responses.
type AppointmentSummary struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Time   string    `json:"time"`
	Reason string    `json:"reason"`
}

// PrescriptionDetail is a prescription with its parties and appointment
// expanded.
type PrescriptionDetail struct {
	models.Prescription
	Patient     UserSummary        `json:"patient"`
	Doctor      UserSummary        `json:"doctor"`
	Appointment AppointmentSummary `json:"appointment"`
}

func newPrescriptionDetail(p models.Prescription) PrescriptionDetail {
	return PrescriptionDetail{
		Prescription: p,
		Patient:      newUserSummary(p.Patient),
		Doctor:       newUserSummary(p.Doctor),
		Appointment: AppointmentSummary{
			ID:     p.Appointment.ID,
			Date:   p.Appointment.Date,
			Time:   p.Appointment.Time,
			Reason: p.Appointment.Reason,
		},
	}
}

func newPrescriptionDetails(prescriptions []models.Prescription) []PrescriptionDetail {
	details := make([]PrescriptionDetail, len(prescriptions))
	for i, p := range prescriptions {
		details[i] = newPrescriptionDetail(p)
	}
	return details
}
