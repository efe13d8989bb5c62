package evaluator

import "github.com/Afox1/cngcare/internal/cngcare/core/model"

const (
	MessageRiskHigh     = "High Risk – Inspect your CNG system immediately!"
	MessageRiskModerate = "Moderate Risk – Monitor and consider inspection."
	MessageRiskLow      = "Low Risk – No immediate issue detected."
)

// Score weights and tier thresholds.
const (
	pointsHissing     = 2
	pointsCabinSmell  = 2
	pointsCheckEngine = 1
	pointsMileageDrop = 1
	pointsBackfire    = 1

	cabinSmellThreshold = 3

	highRiskScore     = 5
	moderateRiskScore = 3

	// MaxRiskScore is the score with every answer positive.
	MaxRiskScore = pointsHissing + pointsCabinSmell + pointsCheckEngine + pointsMileageDrop + pointsBackfire
)

// RiskScore is the additive questionnaire score, 0..MaxRiskScore.
func RiskScore(a model.RiskAnswers) int {
	score := 0
	if a.Hissing {
		score += pointsHissing
	}
	if a.CabinSmell >= cabinSmellThreshold {
		score += pointsCabinSmell
	}
	if a.CheckEngine {
		score += pointsCheckEngine
	}
	if a.MileageDrop {
		score += pointsMileageDrop
	}
	if a.Backfire {
		score += pointsBackfire
	}
	return score
}

// TierFor maps a score to its tier and message.
func TierFor(score int) (model.RiskTier, string) {
	switch {
	case score >= highRiskScore:
		return model.RiskHigh, MessageRiskHigh
	case score >= moderateRiskScore:
		return model.RiskModerate, MessageRiskModerate
	default:
		return model.RiskLow, MessageRiskLow
	}
}

// AssessRisk scores the answers and assigns a tier.
func AssessRisk(a model.RiskAnswers) model.RiskResult {
	score := RiskScore(a)
	tier, msg := TierFor(score)
	return model.RiskResult{Score: score, Tier: tier, Message: msg}
}
