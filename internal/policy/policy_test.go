package policy

import (
	"testing"

	"clinic-app-server/internal/models"
)

func appointmentOf(patientID, doctorID string) *models.Appointment {
	return &models.Appointment{PatientID: patientID, DoctorID: doctorID}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name       string
		actor      Actor
		action     Action
		res        Resource
		wantAllow  bool
		wantReason string
	}{
		{
			name:      "admin reads any appointment",
			actor:     Actor{ID: "A1", Role: models.RoleAdmin},
			action:    ActionRead,
			res:       appointmentOf("P1", "D1"),
			wantAllow: true,
		},
		{
			name:      "admin deletes any appointment",
			actor:     Actor{ID: "A1", Role: models.RoleAdmin},
			action:    ActionDelete,
			res:       appointmentOf("P1", "D1"),
			wantAllow: true,
		},
		{
			name:      "assigned doctor updates own appointment",
			actor:     Actor{ID: "D1", Role: models.RoleDoctor},
			action:    ActionUpdate,
			res:       appointmentOf("P1", "D1"),
			wantAllow: true,
		},
		{
			name:       "doctor denied on another doctor's appointment",
			actor:      Actor{ID: "D2", Role: models.RoleDoctor},
			action:     ActionRead,
			res:        appointmentOf("P1", "D1"),
			wantAllow:  false,
			wantReason: "you are not the assigned doctor for this record",
		},
		{
			name:       "doctor denied when no doctor assigned",
			actor:      Actor{ID: "D1", Role: models.RoleDoctor},
			action:     ActionRead,
			res:        appointmentOf("P1", ""),
			wantAllow:  false,
			wantReason: "this record is not assigned to a doctor",
		},
		{
			name:      "patient reads own appointment",
			actor:     Actor{ID: "P1", Role: models.RolePatient},
			action:    ActionRead,
			res:       appointmentOf("P1", "D1"),
			wantAllow: true,
		},
		{
			name:       "patient denied on another patient's appointment",
			actor:      Actor{ID: "P1", Role: models.RolePatient},
			action:     ActionRead,
			res:        appointmentOf("P2", "D1"),
			wantAllow:  false,
			wantReason: "you are not the assigned patient for this record",
		},
		{
			name:       "patient denied when no patient assigned",
			actor:      Actor{ID: "P1", Role: models.RolePatient},
			action:     ActionRead,
			res:        appointmentOf("", "D1"),
			wantAllow:  false,
			wantReason: "this record is not assigned to a patient",
		},
		{
			name:       "unknown role denied",
			actor:      Actor{ID: "X1", Role: models.Role("nurse")},
			action:     ActionRead,
			res:        appointmentOf("P1", "D1"),
			wantAllow:  false,
			wantReason: "invalid user role",
		},
		{
			name:      "doctor reads own prescription",
			actor:     Actor{ID: "D1", Role: models.RoleDoctor},
			action:    ActionRead,
			res:       &models.Prescription{PatientID: "P1", DoctorID: "D1"},
			wantAllow: true,
		},
		{
			name:       "patient denied delete on another patient's prescription",
			actor:      Actor{ID: "P2", Role: models.RolePatient},
			action:     ActionDelete,
			res:        &models.Prescription{PatientID: "P1", DoctorID: "D1"},
			wantAllow:  false,
			wantReason: "you are not the assigned patient for this record",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			denied := Authorize(tt.actor, tt.action, tt.res)
			if tt.wantAllow {
				if denied != nil {
					t.Fatalf("expected allow, got deny: %v", denied)
				}
				return
			}
			if denied == nil {
				t.Fatal("expected deny, got allow")
			}
			if denied.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", denied.Reason, tt.wantReason)
			}
		})
	}
}

// The deny reasons stay distinct so operators can tell a misrouted record
// from a permissions problem.
func TestAuthorize_DistinctDenyReasons(t *testing.T) {
	reasons := map[string]bool{}
	for _, denied := range []*DeniedError{
		Authorize(Actor{ID: "D2", Role: models.RoleDoctor}, ActionRead, appointmentOf("P1", "D1")),
		Authorize(Actor{ID: "D1", Role: models.RoleDoctor}, ActionRead, appointmentOf("P1", "")),
		Authorize(Actor{ID: "X1", Role: models.Role("guest")}, ActionRead, appointmentOf("P1", "D1")),
	} {
		if denied == nil {
			t.Fatal("expected deny")
		}
		reasons[denied.Reason] = true
	}
	if len(reasons) != 3 {
		t.Errorf("expected 3 distinct deny reasons, got %d", len(reasons))
	}
}
