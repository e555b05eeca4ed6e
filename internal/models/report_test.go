package models

import "testing"

func TestNormalizeReportType(t *testing.T) {
	tests := []struct {
		input string
		want  ReportType
	}{
		{"Blood Test", ReportTypeBloodTest},
		{"X-Ray", ReportTypeXRay},
		{"Ultrasound", ReportTypeUltrasound},
		{"MRI", ReportTypeMRI},
		{"CT Scan", ReportTypeCTScan},
		{"Prescription", ReportTypePrescription},
		{"Other", ReportTypeOther},
		// Unrecognized values coerce to Other instead of failing
		{"", ReportTypeOther},
		{"blood test", ReportTypeOther}, // enum is case-sensitive
		{"Homeopathy", ReportTypeOther},
		{"X-RAY", ReportTypeOther},
	}

	for _, tt := range tests {
		if got := NormalizeReportType(tt.input); got != tt.want {
			t.Errorf("NormalizeReportType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
