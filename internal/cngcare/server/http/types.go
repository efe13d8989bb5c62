package http

import (
	"encoding/base64"
	"time"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/Afox1/cngcare/internal/cngcare/core"
	"github.com/Afox1/cngcare/internal/cngcare/core/model"
)

// MaintenanceRequest is the maintenance section of the form.
// LastServiceDate is a YYYY-MM-DD calendar date. An omitted ServiceInterval
// uses the form default.
type MaintenanceRequest struct {
	Vehicle         string `json:"vehicle"`
	LastServiceKm   int    `json:"lastServiceKm"`
	CurrentKm       int    `json:"currentKm"`
	ServiceInterval *int   `json:"serviceInterval,omitempty"`
	LastServiceDate string `json:"lastServiceDate"`
}

func (r *MaintenanceRequest) toInput() (model.MaintenanceInput, error) {
	in := model.MaintenanceInput{
		Vehicle:         r.Vehicle,
		LastServiceKm:   r.LastServiceKm,
		CurrentKm:       r.CurrentKm,
		ServiceInterval: model.DefaultServiceInterval,
	}
	if r.ServiceInterval != nil {
		in.ServiceInterval = *r.ServiceInterval
	}

	if r.LastServiceDate != "" {
		d, err := time.Parse(model.ReportDateLayout, r.LastServiceDate)
		if err != nil {
			return in, core.Invalid(field.ErrorList{
				field.Invalid(field.NewPath("lastServiceDate"), r.LastServiceDate, "must be a date in YYYY-MM-DD format"),
			})
		}
		in.LastServiceDate = d
	}
	return in, nil
}

// RiskRequest is the questionnaire section of the form.
type RiskRequest struct {
	Hissing     bool `json:"hissing"`
	CabinSmell  int  `json:"cabinSmell"`
	CheckEngine bool `json:"checkEngine"`
	MileageDrop bool `json:"mileageDrop"`
	Backfire    bool `json:"backfire"`
}

func (r *RiskRequest) toAnswers() model.RiskAnswers {
	return model.RiskAnswers{
		Hissing:     r.Hissing,
		CabinSmell:  r.CabinSmell,
		CheckEngine: r.CheckEngine,
		MileageDrop: r.MileageDrop,
		Backfire:    r.Backfire,
	}
}

// ReportResponse carries the rendered report inline together with the
// outcome of each side effect.
type ReportResponse struct {
	Filename      string            `json:"filename"`
	Vehicle       string            `json:"vehicle"`
	GeneratedAt   time.Time         `json:"generatedAt"`
	ContentBase64 string            `json:"contentBase64"`
	DataURI       string            `json:"dataURI"`
	Log           model.SideEffect  `json:"log"`
	Archive       *model.SideEffect `json:"archive,omitempty"`
	Notify        *model.SideEffect `json:"notify,omitempty"`
	History       *model.SideEffect `json:"history,omitempty"`
}

func newReportResponse(out *model.ReportOutcome) ReportResponse {
	encoded := base64.StdEncoding.EncodeToString(out.Report.Content)
	return ReportResponse{
		Filename:      out.Report.Filename,
		Vehicle:       out.Report.Vehicle,
		GeneratedAt:   out.Report.GeneratedAt,
		ContentBase64: encoded,
		DataURI:       "data:application/octet-stream;base64," + encoded,
		Log:           out.Log,
		Archive:       out.Archive,
		Notify:        out.Notify,
		History:       out.History,
	}
}

type sessionCreatedResponse struct {
	ID string `json:"id"`
}

type reportListResponse struct {
	Vehicle string               `json:"vehicle"`
	Reports []model.ReportRecord `json:"reports"`
}
