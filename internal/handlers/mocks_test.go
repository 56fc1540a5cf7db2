package handlers

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// In-memory store fakes. They honor the same error contract as the gorm
// implementations: gorm.ErrRecordNotFound for a missing row and
// gorm.ErrDuplicatedKey for a unique-index collision.

type fakeUserStore struct {
	byID map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: make(map[string]*models.User)}
}

func (s *fakeUserStore) add(u *models.User) *models.User {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	s.byID[u.ID] = u
	return u
}

func (s *fakeUserStore) FindByID(id string) (*models.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *fakeUserStore) FindByEmail(email string) (*models.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) Create(user *models.User) error {
	for _, u := range s.byID {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	s.add(user)
	return nil
}

func (s *fakeUserStore) Save(user *models.User) error {
	s.byID[user.ID] = user
	return nil
}

type fakeAppointmentStore struct {
	byID    map[string]*models.Appointment
	saveErr error
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{byID: make(map[string]*models.Appointment)}
}

func (s *fakeAppointmentStore) add(a *models.Appointment) *models.Appointment {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	s.byID[a.ID] = a
	return a
}

func (s *fakeAppointmentStore) Find(id string) (*models.Appointment, error) {
	a, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (s *fakeAppointmentStore) Save(appt *models.Appointment) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.byID[appt.ID] = appt
	return nil
}

func (s *fakeAppointmentStore) Delete(id string) error {
	delete(s.byID, id)
	return nil
}
