// Package policy decides whether an authenticated actor may act on a
// patient/doctor-owned record. It is a pure decision function: no storage,
// no caching, re-evaluated on every request. Whether the record exists at
// all is the caller's concern; a missing record is 404, never a deny.
package policy

import (
	"clinic-app-server/internal/models"
)

// Action is the operation being attempted on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actor is the authenticated identity making the request.
type Actor struct {
	ID   string
	Role models.Role
}

// Resource is any record jointly referenced by a patient and a doctor.
type Resource interface {
	PatientRef() string
	DoctorRef() string
}

// DeniedError explains why access was refused. The three reasons (record not
// assigned, wrong identity, invalid role) are kept distinct for logging even
// though they all map to 403.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string { return e.Reason }

// Authorize applies the role rules uniformly to every action: admins pass
// unconditionally, doctors and patients must be the assigned party on the
// record. A nil return means allow.
func Authorize(actor Actor, action Action, res Resource) *DeniedError {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleDoctor:
		if res.DoctorRef() == "" {
			return &DeniedError{Reason: "this record is not assigned to a doctor"}
		}
		if res.DoctorRef() != actor.ID {
			return &DeniedError{Reason: "you are not the assigned doctor for this record"}
		}
		return nil
	case models.RolePatient:
		if res.PatientRef() == "" {
			return &DeniedError{Reason: "this record is not assigned to a patient"}
		}
		if res.PatientRef() != actor.ID {
			return &DeniedError{Reason: "you are not the assigned patient for this record"}
		}
		return nil
	default:
		return &DeniedError{Reason: "invalid user role"}
	}
}
