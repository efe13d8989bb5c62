package model

import (
	"time"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

const (
	// DefaultServiceInterval is the kit service interval offered by the form.
	DefaultServiceInterval = 5000

	// MinServiceInterval is the smallest interval the form accepts.
	MinServiceInterval = 1000
)

// MaintenanceStatus says whether the kit is due for service.
type MaintenanceStatus string

const (
	MaintenanceDue    MaintenanceStatus = "DUE"
	MaintenanceNotDue MaintenanceStatus = "NOT_DUE"
)

// MaintenanceInput is what the owner enters in the maintenance section.
// Distances are kilometers.
type MaintenanceInput struct {
	Vehicle         string    `json:"vehicle"`
	LastServiceKm   int       `json:"lastServiceKm"`
	CurrentKm       int       `json:"currentKm"`
	ServiceInterval int       `json:"serviceInterval"`
	LastServiceDate time.Time `json:"lastServiceDate"`
}

// Validate applies the form widget constraints. CurrentKm < LastServiceKm
// and future service dates are accepted.
func (in MaintenanceInput) Validate() field.ErrorList {
	var errs field.ErrorList

	if in.LastServiceKm < 0 {
		errs = append(errs, field.Invalid(field.NewPath("lastServiceKm"), in.LastServiceKm, "must be greater than or equal to 0"))
	}
	if in.CurrentKm < 0 {
		errs = append(errs, field.Invalid(field.NewPath("currentKm"), in.CurrentKm, "must be greater than or equal to 0"))
	}
	if in.ServiceInterval < MinServiceInterval {
		errs = append(errs, field.Invalid(field.NewPath("serviceInterval"), in.ServiceInterval, "must be greater than or equal to 1000"))
	}
	if in.LastServiceDate.IsZero() {
		errs = append(errs, field.Required(field.NewPath("lastServiceDate"), "a calendar date is required"))
	}

	return errs
}

// MaintenanceResult is the outcome of one maintenance check.
type MaintenanceResult struct {
	Status                 MaintenanceStatus `json:"status"`
	Message                string            `json:"message"`
	KmRemaining            int               `json:"kmRemaining"`
	DaysSinceService       int               `json:"daysSinceService"`
	PredictedNextServiceKm int               `json:"predictedNextServiceKm"`
}

// MaintenanceCheck pairs a result with the input it was computed from.
type MaintenanceCheck struct {
	Input     MaintenanceInput  `json:"input"`
	Result    MaintenanceResult `json:"result"`
	CheckedAt time.Time         `json:"checkedAt"`
}
