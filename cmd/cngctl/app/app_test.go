package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log.level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestEvaluate(t *testing.T) {
	out, err := execute(t, "evaluate",
		"--vehicle", "ABC-123",
		"--last-service-km", "0",
		"--current-km", "5000",
		"--last-service-date", "2026-01-01",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Service is DUE! Please service your CNG kit.")
	assert.Contains(t, out, "10000 KM")
}

func TestEvaluateNotDue(t *testing.T) {
	out, err := execute(t, "eval",
		"--vehicle", "ABC-123",
		"--last-service-km", "10000",
		"--current-km", "12000",
		"--service-interval", "5000",
		"--last-service-date", "2026-01-01",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Not yet due. You have 3000 km remaining.")
}

func TestEvaluateRejectsInvalidInput(t *testing.T) {
	_, err := execute(t, "evaluate", "--current-km", "100", "--last-service-date", "01/02/2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")

	_, err = execute(t, "evaluate", "--current-km", "100", "--service-interval", "999", "--last-service-date", "2026-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serviceInterval")
}

func TestAssess(t *testing.T) {
	out, err := execute(t, "assess", "--hissing", "--cabin-smell", "4", "--mileage-drop")
	require.NoError(t, err)
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "High Risk – Inspect your CNG system immediately!")

	out, err = execute(t, "assess")
	require.NoError(t, err)
	assert.Contains(t, out, "Low Risk – No immediate issue detected.")

	_, err = execute(t, "assess", "--cabin-smell", "6")
	assert.Error(t, err)
}

func TestReportWithoutCredentialsStillWritesPDF(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "CNG_Report.pdf")
	db := filepath.Join(dir, "history.db")

	out, err := execute(t, "report",
		"--vehicle", "ABC-123",
		"--current-km", "5000",
		"--last-service-date", "2026-01-01",
		"--hissing", "--cabin-smell", "4", "--mileage-drop",
		"--output", pdf,
		"--history.db-path", db,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "failed: ")
	assert.Contains(t, out, "HISTORY:")

	content, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))

	out, err = execute(t, "history", "--vehicle", "ABC-123", "--history.db-path", db)
	require.NoError(t, err)
	assert.Contains(t, out, "DUE")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "false")
}

func TestReportRequiresVehicle(t *testing.T) {
	_, err := execute(t, "report", "--current-km", "5000", "--last-service-date", "2026-01-01", "--output", filepath.Join(t.TempDir(), "r.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "please complete both the maintenance and safety check first")
}

func TestHistoryRequiresVehicle(t *testing.T) {
	_, err := execute(t, "history", "--history.db-path", filepath.Join(t.TempDir(), "h.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--vehicle")
}

func TestHistoryEmpty(t *testing.T) {
	out, err := execute(t, "history", "--vehicle", "XYZ", "--history.db-path", filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "No reports recorded.")
}
