package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// GormStore persists appointments through gorm. The unique index on the slot
// key column is the last line of defense against writers the in-process lock
// cannot see.
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore creates a GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// SlotTaken reports whether a non-cancelled appointment holds the slot.
func (s *GormStore) SlotTaken(ctx context.Context, doctorID string, date time.Time, at string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND time = ? AND status <> ?",
			doctorID, date, at, models.StatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAppointment inserts the appointment, mapping a duplicate slot key to
// ErrSlotTaken. Requires the connection to be opened with TranslateError.
func (s *GormStore) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	if err := s.DB.WithContext(ctx).Create(appt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlotTaken
		}
		return err
	}
	return nil
}
