package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Afox1/cngcare/internal/cngcare/core"
	"github.com/Afox1/cngcare/internal/cngcare/core/model"
	"github.com/Afox1/cngcare/pkg/log"
	"github.com/Afox1/cngcare/pkg/options"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

var (
	// ErrCredentials is returned when the service-account key cannot be used.
	ErrCredentials = errors.New("spreadsheet credentials unavailable")

	ErrSpreadsheetNotFound = errors.New("spreadsheet not found")
)

var _ core.LogSink = (*Sink)(nil)

// Sink appends log rows to a worksheet of a Google spreadsheet.
type Sink struct {
	sheets *sheets.Service
	drive  *drive.Service

	name      string
	worksheet string

	mu            sync.Mutex
	spreadsheetID string
}

// New reads the service-account key named by opts once and builds the
// Sheets and Drive clients.
func New(ctx context.Context, opts *options.SheetsOptions) (*Sink, error) {
	if opts.CredentialsFile == "" {
		return nil, fmt.Errorf("%w: no credentials file configured", ErrCredentials)
	}

	data, err := os.ReadFile(opts.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentials, err)
	}

	cfg, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentials, err)
	}

	return NewWithClientOptions(ctx, opts, option.WithTokenSource(cfg.TokenSource(ctx)))
}

// NewWithClientOptions builds a Sink on explicit API client options.
func NewWithClientOptions(ctx context.Context, opts *options.SheetsOptions, clientOpts ...option.ClientOption) (*Sink, error) {
	sheetsSvc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	driveSvc, err := drive.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}

	return &Sink{
		sheets:        sheetsSvc,
		drive:         driveSvc,
		name:          opts.SpreadsheetName,
		worksheet:     opts.Worksheet,
		spreadsheetID: opts.SpreadsheetID,
	}, nil
}

// Append adds row after the last row of the worksheet. Values are stored
// as given, without formula parsing.
func (s *Sink) Append(ctx context.Context, row model.LogRow) error {
	id, err := s.resolve(ctx)
	if err != nil {
		return err
	}

	vr := &sheets.ValueRange{Values: [][]any{row}}
	_, err = s.sheets.Spreadsheets.Values.Append(id, quoteSheet(s.worksheet), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row to %q: %w", s.worksheet, err)
	}

	log.FromContext(ctx).V(1).Info("Appended log row", "spreadsheet", id, "worksheet", s.worksheet)
	return nil
}

// resolve returns the spreadsheet ID, looking the spreadsheet up by name
// on first use.
func (s *Sink) resolve(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.spreadsheetID != "" {
		return s.spreadsheetID, nil
	}

	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeQuery(s.name), spreadsheetMimeType)
	list, err := s.drive.Files.List().
		Q(q).
		Fields("files(id, name)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up spreadsheet %q: %w", s.name, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("%w: %q", ErrSpreadsheetNotFound, s.name)
	}

	s.spreadsheetID = list.Files[0].Id
	return s.spreadsheetID, nil
}

// quoteSheet turns a worksheet title into an A1 range naming the whole sheet.
func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// escapeQuery escapes a string literal for a Drive search query.
func escapeQuery(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

// Unavailable returns a LogSink whose every append fails with err. It stands
// in for the real sink when credentials could not be loaded.
func Unavailable(err error) core.LogSink {
	return unavailable{err: err}
}

type unavailable struct {
	err error
}

func (u unavailable) Append(context.Context, model.LogRow) error {
	return u.err
}
