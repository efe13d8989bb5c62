package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceInputValidate(t *testing.T) {
	valid := MaintenanceInput{
		Vehicle:         "ABC-123",
		LastServiceKm:   0,
		CurrentKm:       5000,
		ServiceInterval: DefaultServiceInterval,
		LastServiceDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.Empty(t, valid.Validate())

	// Odometer going backwards is a data entry error the form accepts.
	backwards := valid
	backwards.CurrentKm = 100
	backwards.LastServiceKm = 900
	assert.Empty(t, backwards.Validate())

	invalid := MaintenanceInput{LastServiceKm: -1, CurrentKm: -1, ServiceInterval: 999}
	errs := invalid.Validate()
	require.Len(t, errs, 4)
	assert.Equal(t, "lastServiceKm", errs[0].Field)
	assert.Equal(t, "lastServiceDate", errs[3].Field)
}

func TestRiskAnswersValidate(t *testing.T) {
	assert.Empty(t, RiskAnswers{CabinSmell: 0}.Validate())
	assert.Empty(t, RiskAnswers{CabinSmell: 5}.Validate())
	assert.Len(t, RiskAnswers{CabinSmell: 6}.Validate(), 1)
	assert.Len(t, RiskAnswers{CabinSmell: -1}.Validate(), 1)
}

func TestNewLogRowColumnOrder(t *testing.T) {
	m := MaintenanceCheck{
		Input: MaintenanceInput{Vehicle: "ABC-123", LastServiceKm: 0, CurrentKm: 5000, ServiceInterval: 5000},
		Result: MaintenanceResult{
			Status:                 MaintenanceDue,
			Message:                "Service is DUE! Please service your CNG kit.",
			DaysSinceService:       30,
			PredictedNextServiceKm: 10000,
		},
	}
	r := RiskCheck{
		Answers: RiskAnswers{Hissing: true, CabinSmell: 4, MileageDrop: true},
		Result:  RiskResult{Score: 5, Tier: RiskHigh, Message: "High Risk – Inspect your CNG system immediately!"},
	}
	at := time.Date(2026, 10, 19, 14, 5, 9, 0, time.UTC)

	content := NewReportContent(m, r, at)
	row := NewLogRow(at, content, m, r)

	assert.Equal(t, LogRow{
		"2026-10-19 14:05:09",
		"ABC-123",
		0,
		5000,
		5000,
		30,
		"Service is DUE! Please service your CNG kit.",
		10000,
		"Yes",
		4,
		"No",
		"Yes",
		"No",
		"High Risk – Inspect your CNG system immediately!",
	}, row)
	assert.Len(t, row, LogRowColumns)
}

func TestNewLogRowWithoutPrediction(t *testing.T) {
	content := ReportContent{Vehicle: "ABC-123"}
	row := NewLogRow(time.Now(), content, MaintenanceCheck{}, RiskCheck{})
	assert.Equal(t, "", row[7])
}

func TestSafeSegment(t *testing.T) {
	assert.Equal(t, "ABC-123", SafeSegment("ABC-123"))
	assert.Equal(t, "MH_12_AB_1234", SafeSegment(" MH 12/AB#1234 "))
	assert.Equal(t, "_", SafeSegment("  "))
	assert.Equal(t, "caf_", SafeSegment("café"))
}

func TestReportObjectKey(t *testing.T) {
	at := time.Date(2026, 10, 19, 14, 5, 9, 0, time.FixedZone("IST", 19800))
	assert.Equal(t, "reports/ABC-123/20261019T083509Z.pdf", ReportObjectKey("ABC-123", at))
}
