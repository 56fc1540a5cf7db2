package models

// Medication is a catalog entry used to populate prescription forms.
// It is lookup data, independent of any prescription.
type Medication struct {
	BaseModel
	Name      string `gorm:"size:100;not null;uniqueIndex:idx_medication_name_dosage" json:"name"`
	Dosage    string `gorm:"size:50;not null;uniqueIndex:idx_medication_name_dosage" json:"dosage"`
	Frequency string `gorm:"size:100;not null" json:"frequency"`
}
