package session

import (
	"context"

	"github.com/looplab/fsm"

	fsmutil "github.com/Afox1/cngcare/internal/pkg/util/fsm"
	"github.com/Afox1/cngcare/pkg/log"
)

// Phase is how far a form session has progressed towards a report.
type Phase string

const (
	PhaseEmpty              Phase = "empty"
	PhaseMaintenanceChecked Phase = "maintenance_checked"
	PhaseRiskAssessed       Phase = "risk_assessed"
	PhaseReady              Phase = "ready"
)

const (
	// EventCheckMaintenance records a maintenance check.
	EventCheckMaintenance = "check_maintenance"
	// EventAssessRisk records a risk assessment.
	EventAssessRisk = "assess_risk"
)

// newPhaseMachine builds the session lifecycle. Both checks can be repeated
// in any order; a session is ready once each has run at least once.
func newPhaseMachine(id string) *fsm.FSM {
	events := fsm.Events{
		{Name: EventCheckMaintenance, Src: []string{string(PhaseEmpty), string(PhaseMaintenanceChecked)}, Dst: string(PhaseMaintenanceChecked)},
		{Name: EventCheckMaintenance, Src: []string{string(PhaseRiskAssessed), string(PhaseReady)}, Dst: string(PhaseReady)},

		{Name: EventAssessRisk, Src: []string{string(PhaseEmpty), string(PhaseRiskAssessed)}, Dst: string(PhaseRiskAssessed)},
		{Name: EventAssessRisk, Src: []string{string(PhaseMaintenanceChecked), string(PhaseReady)}, Dst: string(PhaseReady)},
	}

	callbacks := fsm.Callbacks{
		"enter_state": fsmutil.WrapEvent(func(ctx context.Context, e *fsm.Event) error {
			log.FromContext(ctx).V(1).Info("Session phase changed", "session", id, "event", e.Event, "from", e.Src, "to", e.Dst)
			return nil
		}),
	}

	return fsm.NewFSM(string(PhaseEmpty), events, callbacks)
}
