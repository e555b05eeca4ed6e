package models

import (
	"time"
)

// ReportType represents the kind of medical report that was uploaded.
type ReportType string

const (
	ReportTypeBloodTest    ReportType = "Blood Test"
	ReportTypeXRay         ReportType = "X-Ray"
	ReportTypeUltrasound   ReportType = "Ultrasound"
	ReportTypeMRI          ReportType = "MRI"
	ReportTypeCTScan       ReportType = "CT Scan"
	ReportTypePrescription ReportType = "Prescription"
	ReportTypeOther        ReportType = "Other"
)

// reportTypes is the closed set of accepted values.
var reportTypes = map[ReportType]bool{
	ReportTypeBloodTest:    true,
	ReportTypeXRay:         true,
	ReportTypeUltrasound:   true,
	ReportTypeMRI:          true,
	ReportTypeCTScan:       true,
	ReportTypePrescription: true,
	ReportTypeOther:        true,
}

// NormalizeReportType coerces arbitrary input to the closed enumeration.
// Unrecognized or empty values become ReportTypeOther instead of failing;
// lenient on purpose so a client sending a new label does not lose an upload.
func NormalizeReportType(s string) ReportType {
	rt := ReportType(s)
	if reportTypes[rt] {
		return rt
	}
	return ReportTypeOther
}

// AISummary is the structured analysis attached to a report. It is embedded
// in the report row as a JSON column and never addressed on its own.
type AISummary struct {
	English            string   `json:"english"`
	Urdu               string   `json:"urdu"`
	AbnormalValues     []string `json:"abnormalValues"`
	QuestionsForDoctor []string `json:"questionsForDoctor"`
	FoodsToAvoid       []string `json:"foodsToAvoid"`
	FoodsToEat         []string `json:"foodsToEat"`
	HomeRemedies       []string `json:"homeRemedies"`
	Disclaimer         string   `json:"disclaimer"`
}

// Report represents an uploaded medical document together with its stored
// file reference and AI analysis. Reports are immutable after creation
// except for deletion.
type Report struct {
	BaseModel
	UserID     string     `gorm:"size:36;index;not null" json:"userId"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	ReportType ReportType `gorm:"size:50;default:'Other'" json:"reportType"`
	ReportDate time.Time  `json:"date"`
	FileURL    string     `gorm:"size:512;not null" json:"fileUrl"`
	StorageID  string     `gorm:"size:255;not null" json:"storageId"` // provider-side id, used only for deletion
	AISummary  *AISummary `gorm:"serializer:json" json:"aiSummary,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
