package model

import (
	"time"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// MaxCabinSmell is the top of the 0..5 cabin smell scale.
const MaxCabinSmell = 5

// RiskTier is the qualitative leak/safety risk level.
type RiskTier string

const (
	RiskLow      RiskTier = "LOW"
	RiskModerate RiskTier = "MODERATE"
	RiskHigh     RiskTier = "HIGH"
)

// RiskAnswers are the five questionnaire answers.
type RiskAnswers struct {
	Hissing     bool `json:"hissing"`
	CabinSmell  int  `json:"cabinSmell"`
	CheckEngine bool `json:"checkEngine"`
	MileageDrop bool `json:"mileageDrop"`
	Backfire    bool `json:"backfire"`
}

func (a RiskAnswers) Validate() field.ErrorList {
	var errs field.ErrorList
	if a.CabinSmell < 0 || a.CabinSmell > MaxCabinSmell {
		errs = append(errs, field.Invalid(field.NewPath("cabinSmell"), a.CabinSmell, "must be between 0 and 5"))
	}
	return errs
}

type RiskResult struct {
	Score   int      `json:"score"`
	Tier    RiskTier `json:"tier"`
	Message string   `json:"message"`
}

// RiskCheck pairs a result with the answers it was computed from.
type RiskCheck struct {
	Answers    RiskAnswers `json:"answers"`
	Result     RiskResult  `json:"result"`
	AssessedAt time.Time   `json:"assessedAt"`
}
