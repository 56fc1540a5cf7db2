package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// bcryptCost matches the work factor used for stored credentials.
const bcryptCost = 12

// User represents an account in the system: patients, doctors, and admins
// share one table and are told apart by Role.
type User struct {
	BaseModel
	Name       string `gorm:"size:100;not null" json:"name"`
	Email      string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password   string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Role       Role   `gorm:"size:20;default:'patient'" json:"role"`
	Specialty  string `gorm:"size:100" json:"specialty,omitempty"`
	Experience string `gorm:"size:100" json:"experience,omitempty"`
	IsActive   bool   `gorm:"default:true" json:"isActive"`

	// Relations (not always preloaded)
	DoctorAppointments   []Appointment  `gorm:"foreignKey:DoctorID" json:"-"`
	PatientAppointments  []Appointment  `gorm:"foreignKey:PatientID" json:"-"`
	DoctorPrescriptions  []Prescription `gorm:"foreignKey:DoctorID" json:"-"`
	PatientPrescriptions []Prescription `gorm:"foreignKey:PatientID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Specialty  string    `json:"specialty,omitempty"`
	Experience string    `json:"experience,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user. The minimum-length
// rule lives in request validation, not here.
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password.
// A wrong password and a malformed digest both report false.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Specialty:  u.Specialty,
		Experience: u.Experience,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
