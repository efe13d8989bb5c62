package evaluator

import (
	"fmt"
	"time"

	"github.com/Afox1/cngcare/internal/cngcare/core/model"
)

// MessageServiceDue is shown when the service interval has been reached.
const MessageServiceDue = "Service is DUE! Please service your CNG kit."

// EvaluateMaintenance computes the maintenance status for in as of today.
// It is total: negative distances and future dates pass through unclamped.
func EvaluateMaintenance(in model.MaintenanceInput, today time.Time) model.MaintenanceResult {
	kmDue := in.CurrentKm - in.LastServiceKm
	kmRemaining := in.ServiceInterval - kmDue

	res := model.MaintenanceResult{
		KmRemaining:            kmRemaining,
		DaysSinceService:       DaysBetween(in.LastServiceDate, today),
		PredictedNextServiceKm: PredictNextServiceKm(in.CurrentKm),
	}

	if kmDue >= in.ServiceInterval {
		res.Status = model.MaintenanceDue
		res.Message = MessageServiceDue
	} else {
		res.Status = model.MaintenanceNotDue
		res.Message = fmt.Sprintf("Not yet due. You have %d km remaining.", kmRemaining)
	}

	return res
}

// DaysBetween counts whole calendar days from from to to. Only the calendar
// date of each time, in its own location, is used.
func DaysBetween(from, to time.Time) int {
	f := civilDate(from)
	t := civilDate(to)
	return int(t.Sub(f).Hours() / 24)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
