package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/policy"
	"clinic-app-server/internal/utils"
)

// PrescriptionHandler handles prescription related requests.
type PrescriptionHandler struct {
	DB *gorm.DB
}

// NewPrescriptionHandler creates a new PrescriptionHandler.
func NewPrescriptionHandler(db *gorm.DB) *PrescriptionHandler {
	return &PrescriptionHandler{DB: db}
}

// GetPrescriptions handles listing prescriptions scoped by role: patients see
// their own, doctors see the ones they wrote, admins see everything.
func (h *PrescriptionHandler) GetPrescriptions(c *gin.Context) {
	actorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	actorRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Preload("Medications").Preload("Patient").Preload("Doctor").Preload("Appointment").
		Order("created_at desc")

	switch actorRole {
	case models.RolePatient:
		query = query.Where("patient_id = ?", actorID)
	case models.RoleDoctor:
		query = query.Where("doctor_id = ?", actorID)
	case models.RoleAdmin:
		// no scoping
	default:
		utils.Forbidden(c, "invalid user role")
		return
	}

	var prescriptions []models.Prescription
	if err := query.Find(&prescriptions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", newPrescriptionDetails(prescriptions))
}

// GetPrescriptionByID handles fetching a single prescription.
func (h *PrescriptionHandler) GetPrescriptionByID(c *gin.Context) {
	prescription, ok := h.loadAuthorized(c, policy.ActionRead)
	if !ok {
		return
	}
	utils.Success(c, "Prescription fetched successfully", newPrescriptionDetail(*prescription))
}

// MedicationInput is one prescribed line item in a create or update request.
type MedicationInput struct {
	Name      string `json:"name" binding:"required"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
}

// CreatePrescriptionRequest represents the request body for creating a prescription.
type CreatePrescriptionRequest struct {
	AppointmentID string            `json:"appointmentId" binding:"required,uuid"`
	Diagnosis     string            `json:"diagnosis" binding:"required"`
	Medications   []MedicationInput `json:"medications" binding:"required,min=1,dive"`
}

// CreatePrescription handles writing a prescription for an appointment.
// Only the appointment's own doctor may create one; doctorId and patientId
// are copied from the appointment so they can never disagree with it.
func (h *PrescriptionHandler) CreatePrescription(c *gin.Context) {
	var req CreatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	actorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", req.AppointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if appointment.DoctorID != actorID {
		utils.Forbidden(c, "Access denied: you are not the assigned doctor for this record")
		return
	}

	medications := make([]models.PrescriptionMedication, len(req.Medications))
	for i, m := range req.Medications {
		medications[i] = models.PrescriptionMedication{
			Name:      m.Name,
			Dosage:    m.Dosage,
			Frequency: m.Frequency,
		}
	}

	prescription := models.Prescription{
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
		Diagnosis:     req.Diagnosis,
		Medications:   medications,
	}

	if err := h.DB.Create(&prescription).Error; err != nil {
		utils.InternalServerError(c, "Failed to create prescription: "+err.Error())
		return
	}

	// Re-fetch with relations for the composed response
	if err := h.DB.Preload("Medications").Preload("Patient").Preload("Doctor").Preload("Appointment").
		First(&prescription, "id = ?", prescription.ID).Error; err != nil {
		utils.InternalServerError(c, "Failed to load prescription: "+err.Error())
		return
	}

	utils.Created(c, "Prescription created successfully", newPrescriptionDetail(prescription))
}

// UpdatePrescriptionRequest represents the request body for updating a prescription.
type UpdatePrescriptionRequest struct {
	Diagnosis   string            `json:"diagnosis"`
	Medications []MedicationInput `json:"medications" binding:"omitempty,min=1,dive"`
}

// UpdatePrescription handles updating a prescription's diagnosis or
// medication list. Sending medications replaces the whole list.
func (h *PrescriptionHandler) UpdatePrescription(c *gin.Context) {
	prescription, ok := h.loadAuthorized(c, policy.ActionUpdate)
	if !ok {
		return
	}

	var req UpdatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Diagnosis != "" {
		prescription.Diagnosis = req.Diagnosis
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if len(req.Medications) > 0 {
			if err := tx.Delete(&models.PrescriptionMedication{}, "prescription_id = ?", prescription.ID).Error; err != nil {
				return err
			}
			medications := make([]models.PrescriptionMedication, len(req.Medications))
			for i, m := range req.Medications {
				medications[i] = models.PrescriptionMedication{
					PrescriptionID: prescription.ID,
					Name:           m.Name,
					Dosage:         m.Dosage,
					Frequency:      m.Frequency,
				}
			}
			if err := tx.Create(&medications).Error; err != nil {
				return err
			}
		}
		return tx.Model(prescription).Update("diagnosis", prescription.Diagnosis).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to update prescription: "+err.Error())
		return
	}

	if err := h.DB.Preload("Medications").Preload("Patient").Preload("Doctor").Preload("Appointment").
		First(prescription, "id = ?", prescription.ID).Error; err != nil {
		utils.InternalServerError(c, "Failed to load prescription: "+err.Error())
		return
	}

	utils.Success(c, "Prescription updated successfully", newPrescriptionDetail(*prescription))
}

// DeletePrescription handles removing a prescription and its line items.
func (h *PrescriptionHandler) DeletePrescription(c *gin.Context) {
	prescription, ok := h.loadAuthorized(c, policy.ActionDelete)
	if !ok {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PrescriptionMedication{}, "prescription_id = ?", prescription.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Prescription{}, "id = ?", prescription.ID).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to delete prescription: "+err.Error())
		return
	}

	utils.Success(c, "Prescription deleted successfully", nil)
}

// loadAuthorized fetches the prescription in the path and runs the access
// policy for the caller: 404 for a missing record, 403 with the policy's
// reason for a denial.
func (h *PrescriptionHandler) loadAuthorized(c *gin.Context, action policy.Action) (*models.Prescription, bool) {
	prescriptionID := c.Param("id")

	var prescription models.Prescription
	if err := h.DB.Preload("Medications").Preload("Patient").Preload("Doctor").Preload("Appointment").
		First(&prescription, "id = ?", prescriptionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Prescription not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	actorRole, _ := middleware.GetUserRoleFromContext(c)
	if denied := policy.Authorize(policy.Actor{ID: actorID, Role: actorRole}, action, &prescription); denied != nil {
		utils.Forbidden(c, "Access denied: "+denied.Reason)
		return nil, false
	}

	return &prescription, true
}
