package model

import (
	"strings"
	"time"
)

const (
	// ReportFilename is the fixed name of the downloadable report.
	ReportFilename = "CNG_Report.pdf"

	// LogTimestampLayout formats the first column of a log row.
	LogTimestampLayout = "2006-01-02 15:04:05"

	// ReportDateLayout formats the date line of the report.
	ReportDateLayout = "2006-01-02"
)

// ReportContent is everything the renderer prints.
type ReportContent struct {
	Vehicle            string
	Date               time.Time
	MaintenanceMessage string
	// PredictedKm is nil when no prediction is available; the line is then omitted.
	PredictedKm *int
	RiskMessage string
}

// NewReportContent assembles the report from the latest checks.
func NewReportContent(m MaintenanceCheck, r RiskCheck, date time.Time) ReportContent {
	predicted := m.Result.PredictedNextServiceKm
	return ReportContent{
		Vehicle:            m.Input.Vehicle,
		Date:               date,
		MaintenanceMessage: m.Result.Message,
		PredictedKm:        &predicted,
		RiskMessage:        r.Result.Message,
	}
}

// Report is a rendered, downloadable document.
type Report struct {
	Filename    string    `json:"filename"`
	Content     []byte    `json:"-"`
	Vehicle     string    `json:"vehicle"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// LogRow is one spreadsheet row. Column order:
// timestamp, vehicle, lastServiceKm, currentKm, serviceInterval,
// daysSinceService, maintenanceMessage, predictedKm, hissing, smellRating,
// checkEngine, mileageDrop, backfiring, riskMessage.
type LogRow []any

// LogRowColumns is the number of cells in a LogRow.
const LogRowColumns = 14

// NewLogRow builds the row appended to the remote log.
func NewLogRow(at time.Time, content ReportContent, m MaintenanceCheck, r RiskCheck) LogRow {
	var predicted any = ""
	if content.PredictedKm != nil {
		predicted = *content.PredictedKm
	}

	return LogRow{
		at.Format(LogTimestampLayout),
		content.Vehicle,
		m.Input.LastServiceKm,
		m.Input.CurrentKm,
		m.Input.ServiceInterval,
		m.Result.DaysSinceService,
		content.MaintenanceMessage,
		predicted,
		YesNo(r.Answers.Hissing),
		r.Answers.CabinSmell,
		YesNo(r.Answers.CheckEngine),
		YesNo(r.Answers.MileageDrop),
		YesNo(r.Answers.Backfire),
		content.RiskMessage,
	}
}

// YesNo renders a questionnaire answer the way the form shows it.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// ReportEvent is published when a report has been generated.
type ReportEvent struct {
	Vehicle           string            `json:"vehicle"`
	GeneratedAt       time.Time         `json:"generatedAt"`
	MaintenanceStatus MaintenanceStatus `json:"maintenanceStatus"`
	PredictedKm       int               `json:"predictedKm"`
	RiskTier          RiskTier          `json:"riskTier"`
	RiskScore         int               `json:"riskScore"`
	ArchiveURL        string            `json:"archiveURL,omitempty"`
}

// ReportRecord is a report as kept in the local history.
type ReportRecord struct {
	ID                 int64             `json:"id"`
	Vehicle            string            `json:"vehicle"`
	GeneratedAt        time.Time         `json:"generatedAt"`
	MaintenanceStatus  MaintenanceStatus `json:"maintenanceStatus"`
	MaintenanceMessage string            `json:"maintenanceMessage"`
	PredictedKm        int               `json:"predictedKm"`
	RiskTier           RiskTier          `json:"riskTier"`
	RiskScore          int               `json:"riskScore"`
	RiskMessage        string            `json:"riskMessage"`
	Logged             bool              `json:"logged"`
	ArchiveURL         string            `json:"archiveURL,omitempty"`
}

// SideEffect reports the outcome of one independent report side effect.
type SideEffect struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Failed builds a failed SideEffect from err.
func Failed(err error) SideEffect {
	return SideEffect{Error: err.Error()}
}

// ReportOutcome is the result of the report action. The report is always
// present; each side effect succeeds or fails on its own. Disabled side
// effects are nil.
type ReportOutcome struct {
	Report  Report      `json:"report"`
	Log     SideEffect  `json:"log"`
	Archive *SideEffect `json:"archive,omitempty"`
	Notify  *SideEffect `json:"notify,omitempty"`
	History *SideEffect `json:"history,omitempty"`
}

// ReportObjectKey is the object storage key of a report generated at at.
func ReportObjectKey(vehicle string, at time.Time) string {
	return "reports/" + SafeSegment(vehicle) + "/" + at.UTC().Format("20060102T150405Z") + ".pdf"
}

// SafeSegment maps a vehicle name to a single path or topic segment.
// Runes other than ASCII letters, digits, '-', '_' and '.' become '_'.
func SafeSegment(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}
