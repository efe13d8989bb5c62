package app

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/Afox1/cngcare/internal/cngcare/core/model"
)

type maintenanceFlags struct {
	vehicle         string
	lastServiceKm   int
	currentKm       int
	serviceInterval int
	lastServiceDate string
}

func (f *maintenanceFlags) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.vehicle, "vehicle", f.vehicle, "Vehicle number or name.")
	fs.IntVar(&f.lastServiceKm, "last-service-km", f.lastServiceKm, "Odometer reading at the last service, in km.")
	fs.IntVar(&f.currentKm, "current-km", f.currentKm, "Current odometer reading, in km.")
	fs.IntVar(&f.serviceInterval, "service-interval", model.DefaultServiceInterval, "Service interval of the kit, in km.")
	fs.StringVar(&f.lastServiceDate, "last-service-date", f.lastServiceDate, "Date of the last service (YYYY-MM-DD).")
}

func (f *maintenanceFlags) input() (model.MaintenanceInput, error) {
	in := model.MaintenanceInput{
		Vehicle:         f.vehicle,
		LastServiceKm:   f.lastServiceKm,
		CurrentKm:       f.currentKm,
		ServiceInterval: f.serviceInterval,
	}
	if f.lastServiceDate != "" {
		d, err := time.Parse(model.ReportDateLayout, f.lastServiceDate)
		if err != nil {
			return in, fmt.Errorf("--last-service-date must be a date in YYYY-MM-DD format, got %q", f.lastServiceDate)
		}
		in.LastServiceDate = d
	}
	return in, nil
}

type riskFlags struct {
	model.RiskAnswers
}

func (f *riskFlags) addFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&f.Hissing, "hissing", false, "A hissing sound is heard near the cylinder or pipes.")
	fs.IntVar(&f.CabinSmell, "cabin-smell", 0, "Gas smell inside the cabin, rated 0 to 5.")
	fs.BoolVar(&f.CheckEngine, "check-engine", false, "The check engine light is on.")
	fs.BoolVar(&f.MileageDrop, "mileage-drop", false, "Mileage has dropped noticeably.")
	fs.BoolVar(&f.Backfire, "backfire", false, "The engine backfires.")
}

func errorsOf(errs []error) error {
	return utilerrors.NewAggregate(errs)
}
