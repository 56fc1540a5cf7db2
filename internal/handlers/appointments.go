package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/booking"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/policy"
	"clinic-app-server/internal/utils"
)

// AppointmentHandler handles appointment related requests. List queries run
// on gorm directly; record-level reads and writes go through the stores.
type AppointmentHandler struct {
	DB           *gorm.DB
	Users        UserStore
	Appointments AppointmentStore
	Reserver     *booking.Reserver
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, users UserStore, appointments AppointmentStore, reserver *booking.Reserver) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Users: users, Appointments: appointments, Reserver: reserver}
}

// CreateAppointmentRequest represents the request body for creating an appointment.
type CreateAppointmentRequest struct {
	DoctorID    string `json:"doctorId" binding:"required,uuid"`
	PatientID   string `json:"patientId" binding:"omitempty,uuid"` // Ignored for patients; required for admins
	Date        string `json:"date" binding:"required"`            // YYYY-MM-DD
	Time        string `json:"time" binding:"required"`            // HH:MM
	Reason      string `json:"reason" binding:"required"`
	Notes       string `json:"notes"`
	Duration    int    `json:"duration" binding:"omitempty,min=1"`
	IsEmergency bool   `json:"isEmergency"`
}

// CreateAppointment handles booking a new appointment. Patients book for
// themselves; admins book on behalf of a patient.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	actorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	actorRole, _ := middleware.GetUserRoleFromContext(c)

	patientID := req.PatientID
	if actorRole == models.RolePatient {
		if patientID != "" && patientID != actorID {
			utils.Forbidden(c, "Patients can only book appointments for themselves.")
			return
		}
		patientID = actorID
	}
	if patientID == "" {
		utils.BadRequest(c, "patientId is required")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		utils.BadRequest(c, "Invalid time format, expected HH:MM")
		return
	}

	// Verify doctor exists and is a doctor
	doctor, err := h.Users.FindByID(req.DoctorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		return
	}
	if err != nil || doctor.Role != models.RoleDoctor || !doctor.IsActive {
		utils.NotFound(c, "Doctor not found")
		return
	}
	// Verify patient exists
	patient, err := h.Users.FindByID(patientID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		return
	}
	if err != nil || !patient.IsActive {
		utils.NotFound(c, "Patient not found")
		return
	}

	duration := req.Duration
	if duration == 0 {
		duration = 30
	}

	appointment := models.Appointment{
		PatientID:   patientID,
		DoctorID:    req.DoctorID,
		Date:        date,
		Time:        req.Time,
		Status:      models.StatusScheduled,
		Reason:      req.Reason,
		Notes:       req.Notes,
		Duration:    duration,
		IsEmergency: req.IsEmergency,
	}

	if err := h.Reserver.Reserve(c.Request.Context(), &appointment); err != nil {
		if errors.Is(err, booking.ErrSlotTaken) {
			utils.Conflict(c, "Time slot already booked")
			return
		}
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	appointment.Patient = *patient
	appointment.Doctor = *doctor
	utils.Created(c, "Appointment created successfully", newAppointmentDetail(appointment))
}

// GetAppointments handles listing appointments. Admins see everything and may
// filter by status, doctor, patient, or date; doctors and patients see their
// own schedule.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	actorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	actorRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Preload("Patient").Preload("Doctor").Order("date asc, time asc")

	switch actorRole {
	case models.RoleAdmin:
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if doctorID := c.Query("doctor"); doctorID != "" {
			query = query.Where("doctor_id = ?", doctorID)
		}
		if patientID := c.Query("patient"); patientID != "" {
			query = query.Where("patient_id = ?", patientID)
		}
		if dateStr := c.Query("date"); dateStr != "" {
			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
				return
			}
			query = query.Where("date = ?", booking.DayOf(date))
		}
	case models.RoleDoctor:
		query = query.Where("doctor_id = ?", actorID)
	case models.RolePatient:
		query = query.Where("patient_id = ?", actorID)
	default:
		utils.Forbidden(c, "invalid user role")
		return
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", newAppointmentDetails(appointments))
}

// GetMyAppointments handles fetching appointments where the caller is either
// the patient or the doctor.
func (h *AppointmentHandler) GetMyAppointments(c *gin.Context) {
	actorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var appointments []models.Appointment
	err := h.DB.Preload("Patient").Preload("Doctor").
		Where("patient_id = ? OR doctor_id = ?", actorID, actorID).
		Order("date asc, time asc").
		Find(&appointments).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", newAppointmentDetails(appointments))
}

// GetAppointmentByID handles fetching a single appointment by its ID.
// Accessible by the involved patient, the assigned doctor, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, ok := h.loadAuthorized(c, policy.ActionRead)
	if !ok {
		return
	}
	utils.Success(c, "Appointment fetched successfully", newAppointmentDetail(*appointment))
}

// UpdateAppointmentRequest represents the request body for updating an appointment.
type UpdateAppointmentRequest struct {
	Date        string                   `json:"date"` // YYYY-MM-DD
	Time        string                   `json:"time"` // HH:MM
	Status      models.AppointmentStatus `json:"status" binding:"omitempty,oneof=scheduled confirmed completed cancelled"`
	Reason      string                   `json:"reason"`
	Notes       *string                  `json:"notes"`
	Duration    int                      `json:"duration" binding:"omitempty,min=1"`
	IsEmergency *bool                    `json:"isEmergency"`
}

// UpdateAppointment handles updating an appointment. Moving a live
// appointment to an occupied slot is rejected; cancelling releases the slot
// for rebooking.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	appointment, ok := h.loadAuthorized(c, policy.ActionUpdate)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	actorRole, _ := middleware.GetUserRoleFromContext(c)
	if actorRole == models.RolePatient && req.Status != "" && req.Status != models.StatusCancelled {
		utils.Forbidden(c, "Patients can only cancel appointments.")
		return
	}

	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		appointment.Date = booking.DayOf(date)
	}
	if req.Time != "" {
		if _, err := time.Parse("15:04", req.Time); err != nil {
			utils.BadRequest(c, "Invalid time format, expected HH:MM")
			return
		}
		appointment.Time = req.Time
	}
	if req.Status != "" {
		appointment.Status = req.Status
	}
	if req.Reason != "" {
		appointment.Reason = req.Reason
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}
	if req.Duration != 0 {
		appointment.Duration = req.Duration
	}
	if req.IsEmergency != nil {
		appointment.IsEmergency = *req.IsEmergency
	}

	// The slot key follows the new doctor/date/time/status; the unique index
	// rejects a move onto an occupied slot.
	appointment.SyncSlotKey()

	if err := h.Appointments.Save(appointment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Time slot already booked")
			return
		}
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment updated successfully", newAppointmentDetail(*appointment))
}

// DeleteAppointment handles removing an appointment. The delete is hard;
// repeating it for the same id yields 404.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	appointment, ok := h.loadAuthorized(c, policy.ActionDelete)
	if !ok {
		return
	}

	if err := h.Appointments.Delete(appointment.ID); err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment removed", nil)
}

// loadAuthorized fetches the appointment in the path and runs the access
// policy for the caller. Missing records answer 404 before any policy check,
// denials answer 403 with the policy's reason.
func (h *AppointmentHandler) loadAuthorized(c *gin.Context, action policy.Action) (*models.Appointment, bool) {
	appointmentID := c.Param("id")
	if appointmentID == "" || appointmentID == "undefined" {
		utils.BadRequest(c, "Appointment ID is required")
		return nil, false
	}

	appointment, err := h.Appointments.Find(appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	actorRole, _ := middleware.GetUserRoleFromContext(c)
	if denied := policy.Authorize(policy.Actor{ID: actorID, Role: actorRole}, action, appointment); denied != nil {
		utils.Forbidden(c, "Access denied: "+denied.Reason)
		return nil, false
	}

	return appointment, true
}
