package evaluator

import "math"

// point is one (odometer at service, odometer at next service) observation.
type point struct {
	x, y float64
}

// serviceHistory is the fixed training set for the next-service prediction.
var serviceHistory = [...]point{
	{0, 5000},
	{5000, 10000},
	{10000, 15000},
	{15000, 20000},
}

// fitLine returns the ordinary least-squares slope and intercept of pts.
// pts must hold at least two distinct x values.
func fitLine(pts []point) (slope, intercept float64) {
	n := float64(len(pts))

	var sumX, sumY float64
	for _, p := range pts {
		sumX += p.x
		sumY += p.y
	}
	meanX, meanY := sumX/n, sumY/n

	var sxy, sxx float64
	for _, p := range pts {
		dx := p.x - meanX
		sxy += dx * (p.y - meanY)
		sxx += dx * dx
	}

	slope = sxy / sxx
	intercept = meanY - slope*meanX
	return slope, intercept
}

// PredictNextServiceKm fits the service history and predicts the odometer
// reading of the next service. The fit is recomputed on every call.
func PredictNextServiceKm(currentKm int) int {
	slope, intercept := fitLine(serviceHistory[:])
	return int(math.Round(slope*float64(currentKm) + intercept))
}
