package core

import (
	"context"

	"github.com/Afox1/cngcare/internal/cngcare/core/model"
)

// ReportRenderer turns report content into a standalone printable document.
type ReportRenderer interface {
	Render(content model.ReportContent) ([]byte, error)
}

// LogSink appends report rows to the remote maintenance log.
// In cngcare, this is implemented by the Google Sheets adapter.
type LogSink interface {
	// Append writes one row. It is not retried and not deduplicated.
	Append(ctx context.Context, row model.LogRow) error
}

// ReportArchive keeps a copy of generated reports in object storage.
type ReportArchive interface {
	// CheckBucket ensures the target bucket exists.
	CheckBucket(ctx context.Context) error

	// Store uploads the document under key and returns a temporary download URL.
	Store(ctx context.Context, key string, content []byte) (string, error)
}

// ReportNotifier announces generated reports to interested subscribers.
// In cngcare, this is implemented by the MQTT adapter.
type ReportNotifier interface {
	Notify(ctx context.Context, event *model.ReportEvent) error
}

// ReportHistory is the local record of generated reports.
type ReportHistory interface {
	Record(ctx context.Context, rec *model.ReportRecord) (int64, error)
	ListByVehicle(ctx context.Context, vehicle string, limit int) ([]model.ReportRecord, error)
}
