package paths

import "strings"

// Topic segments for cngcare report events.

const (
	// Vehicles scopes topics to one vehicle.
	// Pattern: {root}/vehicles/{vehicle}/...
	Vehicles = "vehicles"

	// Reports is the topic segment for "report generated" events.
	// Payload: { "vehicle": "...", "generatedAt": "...", "riskTier": "HIGH", ... }
	// Pattern: {root}/vehicles/{vehicle}/reports
	Reports = "reports"
)

// VehicleTopic joins root, the vehicle segment and the given suffix segment.
// vehicle must already be a single safe segment.
func VehicleTopic(root, vehicle, segment string) string {
	return strings.Join([]string{strings.TrimSuffix(root, "/"), Vehicles, vehicle, segment}, "/")
}
