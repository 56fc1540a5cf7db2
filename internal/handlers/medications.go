package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// MedicationHandler handles the medication catalog. The catalog is lookup
// data for prescription forms, independent of any prescription.
type MedicationHandler struct {
	DB *gorm.DB
}

// NewMedicationHandler creates a new MedicationHandler.
func NewMedicationHandler(db *gorm.DB) *MedicationHandler {
	return &MedicationHandler{DB: db}
}

// GetMedications handles listing the catalog, sorted by name.
func (h *MedicationHandler) GetMedications(c *gin.Context) {
	var medications []models.Medication
	if err := h.DB.Order("name asc").Find(&medications).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medications: "+err.Error())
		return
	}
	utils.Success(c, "Medications fetched successfully", medications)
}

// GetMedicationByID handles fetching a single catalog entry.
func (h *MedicationHandler) GetMedicationByID(c *gin.Context) {
	var medication models.Medication
	if err := h.DB.First(&medication, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medication not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Medication fetched successfully", medication)
}

// MedicationRequest represents the request body for creating or updating a
// catalog entry.
type MedicationRequest struct {
	Name      string `json:"name" binding:"required"`
	Dosage    string `json:"dosage" binding:"required"`
	Frequency string `json:"frequency" binding:"required"`
}

// CreateMedication handles adding a catalog entry (admin). The (name, dosage)
// pair is unique.
func (h *MedicationHandler) CreateMedication(c *gin.Context) {
	var req MedicationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	medication := models.Medication{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
	}

	if err := h.DB.Create(&medication).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Medication with this name and dosage already exists")
			return
		}
		utils.InternalServerError(c, "Failed to create medication: "+err.Error())
		return
	}

	utils.Created(c, "Medication created successfully", medication)
}

// UpdateMedication handles updating a catalog entry (admin).
func (h *MedicationHandler) UpdateMedication(c *gin.Context) {
	var req MedicationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var medication models.Medication
	if err := h.DB.First(&medication, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medication not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	medication.Name = req.Name
	medication.Dosage = req.Dosage
	medication.Frequency = req.Frequency

	if err := h.DB.Save(&medication).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Medication with this name and dosage already exists")
			return
		}
		utils.InternalServerError(c, "Failed to update medication: "+err.Error())
		return
	}

	utils.Success(c, "Medication updated successfully", medication)
}

// DeleteMedication handles removing a catalog entry (admin).
func (h *MedicationHandler) DeleteMedication(c *gin.Context) {
	var medication models.Medication
	if err := h.DB.First(&medication, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medication not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&models.Medication{}, "id = ?", medication.ID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete medication: "+err.Error())
		return
	}

	utils.Success(c, "Medication deleted successfully", nil)
}
