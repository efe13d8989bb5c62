package options

import (
	"errors"

	"github.com/spf13/pflag"
)

var _ IOptions = (*SheetsOptions)(nil)

// SheetsOptions configures the spreadsheet log sink.
type SheetsOptions struct {
	// CredentialsFile is the service-account JSON key. It is read once at startup.
	CredentialsFile string `json:"credentials-file" mapstructure:"credentials-file"`

	// SpreadsheetName is looked up through Drive unless SpreadsheetID is set.
	SpreadsheetName string `json:"spreadsheet-name" mapstructure:"spreadsheet-name"`
	SpreadsheetID   string `json:"spreadsheet-id" mapstructure:"spreadsheet-id"`

	// Worksheet is the tab rows are appended to.
	Worksheet string `json:"worksheet" mapstructure:"worksheet"`
}

func NewSheetsOptions() *SheetsOptions {
	return &SheetsOptions{
		SpreadsheetName: "CNG Maintenance Logs",
		Worksheet:       "Logs",
	}
}

func (o *SheetsOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}
	if o.SpreadsheetName == "" && o.SpreadsheetID == "" {
		errs = append(errs, errors.New("one of --sheets.spreadsheet-name or --sheets.spreadsheet-id is required"))
	}
	if o.Worksheet == "" {
		errs = append(errs, errors.New("--sheets.worksheet must not be empty"))
	}
	return errs
}

func (o *SheetsOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.CredentialsFile, "sheets.credentials-file", o.CredentialsFile, "Path to the Google service-account JSON key used for report logging.")
	fs.StringVar(&o.SpreadsheetName, "sheets.spreadsheet-name", o.SpreadsheetName, "Title of the spreadsheet that receives log rows.")
	fs.StringVar(&o.SpreadsheetID, "sheets.spreadsheet-id", o.SpreadsheetID, "Spreadsheet ID; skips the lookup by name when set.")
	fs.StringVar(&o.Worksheet, "sheets.worksheet", o.Worksheet, "Worksheet (tab) that receives log rows.")
}
