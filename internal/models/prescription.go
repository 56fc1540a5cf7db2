package models

// Prescription is written by the doctor of an appointment. DoctorID and
// PatientID are copied from the appointment at creation time and must stay
// consistent with it.
type Prescription struct {
	BaseModel
	AppointmentID string `gorm:"size:36;index;not null" json:"appointmentId"`
	DoctorID      string `gorm:"size:36;index;not null" json:"doctorId"`
	PatientID     string `gorm:"size:36;index;not null" json:"patientId"`
	Diagnosis     string `gorm:"size:255;not null" json:"diagnosis"`

	Medications []PrescriptionMedication `gorm:"foreignKey:PrescriptionID" json:"medications"`

	// Relations
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	Doctor      User        `gorm:"foreignKey:DoctorID" json:"-"`
	Patient     User        `gorm:"foreignKey:PatientID" json:"-"`
}

// PrescriptionMedication is one prescribed line item. It is free text, not a
// reference into the medication catalog.
type PrescriptionMedication struct {
	BaseModel
	PrescriptionID string `gorm:"size:36;index;not null" json:"-"`
	Name           string `gorm:"size:100;not null" json:"name"`
	Dosage         string `gorm:"size:50" json:"dosage"`
	Frequency      string `gorm:"size:100" json:"frequency"`
}

// PatientRef reports the owning patient for access-control checks.
func (p *Prescription) PatientRef() string { return p.PatientID }

// DoctorRef reports the prescribing doctor for access-control checks.
func (p *Prescription) DoctorRef() string { return p.DoctorID }
