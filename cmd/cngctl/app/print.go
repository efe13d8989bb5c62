package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gosuri/uitable"

	"github.com/Afox1/cngcare/internal/cngcare/core/model"
)

const maxColWidth = 72

func newTable() *uitable.Table {
	t := uitable.New()
	t.MaxColWidth = maxColWidth
	t.Wrap = true
	return t
}

func printMaintenance(w io.Writer, m *model.MaintenanceCheck) {
	t := newTable()
	t.AddRow("VEHICLE:", m.Input.Vehicle)
	t.AddRow("STATUS:", m.Result.Status)
	t.AddRow("MESSAGE:", m.Result.Message)
	t.AddRow("KM REMAINING:", m.Result.KmRemaining)
	t.AddRow("DAYS SINCE SERVICE:", m.Result.DaysSinceService)
	t.AddRow("PREDICTED NEXT SERVICE:", fmt.Sprintf("%d KM", m.Result.PredictedNextServiceKm))
	fmt.Fprintln(w, t)
}

func printRisk(w io.Writer, r *model.RiskCheck) {
	t := newTable()
	t.AddRow("RISK SCORE:", r.Result.Score)
	t.AddRow("RISK TIER:", r.Result.Tier)
	t.AddRow("ASSESSMENT:", r.Result.Message)
	fmt.Fprintln(w, t)
}

func printOutcome(w io.Writer, path string, out *model.ReportOutcome) {
	t := newTable()
	t.AddRow("REPORT:", path)
	t.AddRow("LOG:", effectStatus(&out.Log))
	if out.History != nil {
		t.AddRow("HISTORY:", effectStatus(out.History))
	}
	fmt.Fprintln(w, t)
}

func effectStatus(e *model.SideEffect) string {
	if e.OK {
		return "ok"
	}
	return "failed: " + e.Error
}

func printHistory(w io.Writer, recs []model.ReportRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No reports recorded.")
		return
	}
	t := newTable()
	t.AddRow("ID", "GENERATED", "MAINTENANCE", "PREDICTED KM", "RISK", "SCORE", "LOGGED")
	for _, r := range recs {
		t.AddRow(
			r.ID,
			r.GeneratedAt.Format(model.LogTimestampLayout),
			r.MaintenanceStatus,
			r.PredictedKm,
			r.RiskTier,
			r.RiskScore,
			strconv.FormatBool(r.Logged),
		)
	}
	fmt.Fprintln(w, t)
}
