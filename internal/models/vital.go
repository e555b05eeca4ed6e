package models

import (
	"time"
)

// BloodPressure is a systolic/diastolic pair. Validated entry points only
// persist the pair complete or absent; the store does not enforce that.
type BloodPressure struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

// Vital represents a timestamped set of physiological measurements. All
// measurements are independently optional.
type Vital struct {
	BaseModel
	UserID        string         `gorm:"size:36;index;not null" json:"userId"`
	VitalDate     time.Time      `json:"date"`
	BloodPressure *BloodPressure `gorm:"serializer:json" json:"bloodPressure,omitempty"`
	BloodSugar    *float64       `json:"bloodSugar,omitempty"`
	Weight        *float64       `json:"weight,omitempty"`
	Temperature   *float64       `json:"temperature,omitempty"`
	HeartRate     *float64       `json:"heartRate,omitempty"`
	Notes         string         `gorm:"type:text" json:"notes,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
