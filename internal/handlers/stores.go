package handlers

import (
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// The stores give record-level handler paths a seam over gorm: production
// wires the thin gorm wrappers below, tests drive the handlers with
// in-memory fakes. The error contract keeps gorm's sentinels —
// ErrRecordNotFound for a missing row, ErrDuplicatedKey for a unique-index
// collision. List queries stay on gorm directly in the handlers.

// UserStore is the account persistence surface the handlers need.
type UserStore interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
}

// AppointmentStore is the record-level appointment surface.
type AppointmentStore interface {
	// Find returns the appointment with its patient and doctor loaded.
	Find(id string) (*models.Appointment, error)
	Save(appt *models.Appointment) error
	Delete(id string) error
}

// GormUserStore implements UserStore on gorm.
type GormUserStore struct {
	DB *gorm.DB
}

// NewGormUserStore creates a GormUserStore.
func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{DB: db}
}

func (s *GormUserStore) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) Create(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *GormUserStore) Save(user *models.User) error {
	return s.DB.Save(user).Error
}

// GormAppointmentStore implements AppointmentStore on gorm.
type GormAppointmentStore struct {
	DB *gorm.DB
}

// NewGormAppointmentStore creates a GormAppointmentStore.
func NewGormAppointmentStore(db *gorm.DB) *GormAppointmentStore {
	return &GormAppointmentStore{DB: db}
}

func (s *GormAppointmentStore) Find(id string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.DB.Preload("Patient").Preload("Doctor").First(&appointment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (s *GormAppointmentStore) Save(appt *models.Appointment) error {
	return s.DB.Save(appt).Error
}

func (s *GormAppointmentStore) Delete(id string) error {
	return s.DB.Delete(&models.Appointment{}, "id = ?", id).Error
}
