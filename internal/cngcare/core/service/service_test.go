package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/Afox1/cngcare/internal/cngcare/core"
	"github.com/Afox1/cngcare/internal/cngcare/core/model"
	"github.com/Afox1/cngcare/internal/cngcare/core/session"
	"github.com/Afox1/cngcare/pkg/options"
)

var now = time.Date(2026, 10, 19, 14, 5, 9, 0, time.UTC)

type mockSink struct{ mock.Mock }

func (m *mockSink) Append(ctx context.Context, row model.LogRow) error {
	return m.Called(ctx, row).Error(0)
}

type mockArchive struct{ mock.Mock }

func (m *mockArchive) CheckBucket(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockArchive) Store(ctx context.Context, key string, content []byte) (string, error) {
	args := m.Called(ctx, key, content)
	return args.String(0), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, event *model.ReportEvent) error {
	return m.Called(ctx, event).Error(0)
}

type mockHistory struct{ mock.Mock }

func (m *mockHistory) Record(ctx context.Context, rec *model.ReportRecord) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockHistory) ListByVehicle(ctx context.Context, vehicle string, limit int) ([]model.ReportRecord, error) {
	args := m.Called(ctx, vehicle, limit)
	return args.Get(0).([]model.ReportRecord), args.Error(1)
}

type fakeRenderer struct {
	calls int
	got   model.ReportContent
	err   error
}

func (f *fakeRenderer) Render(content model.ReportContent) ([]byte, error) {
	f.calls++
	f.got = content
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3 fake"), nil
}

type fixture struct {
	svc      *Service
	sink     *mockSink
	renderer *fakeRenderer
	clock    *testingclock.FakeClock
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	clk := testingclock.NewFakeClock(now)
	sessOpts := options.NewSessionOptions()
	sessOpts.ReportRate = 0
	f := &fixture{
		sink:     &mockSink{},
		renderer: &fakeRenderer{},
		clock:    clk,
	}
	f.svc = New(session.NewStore(sessOpts, clk), f.renderer, f.sink, clk, opts...)
	return f
}

func exampleInput() model.MaintenanceInput {
	return model.MaintenanceInput{
		Vehicle:         "ABC-123",
		LastServiceKm:   0,
		CurrentKm:       5000,
		ServiceInterval: 5000,
		LastServiceDate: time.Date(2026, 9, 19, 0, 0, 0, 0, time.UTC),
	}
}

func exampleAnswers() model.RiskAnswers {
	return model.RiskAnswers{Hissing: true, CabinSmell: 4, MileageDrop: true}
}

func readySession(t *testing.T, f *fixture) string {
	t.Helper()
	ctx := context.Background()
	snap, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = f.svc.CheckSessionMaintenance(ctx, snap.ID, exampleInput())
	require.NoError(t, err)
	_, err = f.svc.AssessSessionRisk(ctx, snap.ID, exampleAnswers())
	require.NoError(t, err)
	return snap.ID
}

func TestCheckMaintenance(t *testing.T) {
	f := newFixture(t)

	check, err := f.svc.CheckMaintenance(context.Background(), exampleInput())
	require.NoError(t, err)
	assert.Equal(t, model.MaintenanceDue, check.Result.Status)
	assert.Contains(t, check.Result.Message, "Service is DUE!")
	assert.Equal(t, 10000, check.Result.PredictedNextServiceKm)
	assert.Equal(t, 30, check.Result.DaysSinceService)
	assert.Equal(t, now, check.CheckedAt)
}

func TestCheckMaintenanceRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)

	in := exampleInput()
	in.ServiceInterval = 500
	_, err := f.svc.CheckMaintenance(context.Background(), in)

	var invalid *core.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "serviceInterval", invalid.Errs[0].Field)
}

func TestAssessRisk(t *testing.T) {
	f := newFixture(t)

	check, err := f.svc.AssessRisk(context.Background(), exampleAnswers())
	require.NoError(t, err)
	assert.Equal(t, 5, check.Result.Score)
	assert.Equal(t, model.RiskHigh, check.Result.Tier)

	_, err = f.svc.AssessRisk(context.Background(), model.RiskAnswers{CabinSmell: 9})
	var invalid *core.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestSessionKeepsLatestResults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	snap, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseEmpty, snap.Phase)

	_, err = f.svc.CheckSessionMaintenance(ctx, snap.ID, exampleInput())
	require.NoError(t, err)

	in := exampleInput()
	in.CurrentKm = 2000
	_, err = f.svc.CheckSessionMaintenance(ctx, snap.ID, in)
	require.NoError(t, err)

	got, err := f.svc.GetSession(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseMaintenanceChecked, got.Phase)
	assert.Equal(t, model.MaintenanceNotDue, got.Maintenance.Result.Status)
	assert.Equal(t, "Not yet due. You have 3000 km remaining.", got.Maintenance.Result.Message)
}

func TestInvalidCheckDoesNotReplaceResult(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := readySession(t, f)

	_, err := f.svc.AssessSessionRisk(ctx, id, model.RiskAnswers{CabinSmell: -1})
	require.Error(t, err)

	got, err := f.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.RiskHigh, got.Risk.Result.Tier)
}

func TestUnknownSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetSession(ctx, "nope")
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
	_, err = f.svc.CheckSessionMaintenance(ctx, "nope", exampleInput())
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
	_, err = f.svc.GenerateReport(ctx, "nope")
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
}

func TestSweepSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	idle, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	f.clock.Step(20 * time.Minute)
	active, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	f.clock.Step(15 * time.Minute)

	assert.Equal(t, 1, f.svc.SweepSessions(ctx))
	_, err = f.svc.GetSession(ctx, idle.ID)
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
	_, err = f.svc.GetSession(ctx, active.ID)
	assert.NoError(t, err)
}

func TestGenerateReportPreconditions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(t *testing.T, f *fixture, id string)
	}{
		{"no checks", func(t *testing.T, f *fixture, id string) {}},
		{"maintenance only", func(t *testing.T, f *fixture, id string) {
			_, err := f.svc.CheckSessionMaintenance(ctx, id, exampleInput())
			require.NoError(t, err)
		}},
		{"risk only", func(t *testing.T, f *fixture, id string) {
			_, err := f.svc.AssessSessionRisk(ctx, id, exampleAnswers())
			require.NoError(t, err)
		}},
		{"blank vehicle", func(t *testing.T, f *fixture, id string) {
			in := exampleInput()
			in.Vehicle = "   "
			_, err := f.svc.CheckSessionMaintenance(ctx, id, in)
			require.NoError(t, err)
			_, err = f.svc.AssessSessionRisk(ctx, id, exampleAnswers())
			require.NoError(t, err)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			snap, err := f.svc.CreateSession(ctx)
			require.NoError(t, err)
			tt.setup(t, f, snap.ID)

			out, err := f.svc.GenerateReport(ctx, snap.ID)
			assert.ErrorIs(t, err, core.ErrPreconditionFailed)
			assert.Nil(t, out)
			assert.Zero(t, f.renderer.calls, "no artifact")
			f.sink.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		})
	}
}

func TestGenerateReportAppendsExactRow(t *testing.T) {
	f := newFixture(t)
	id := readySession(t, f)

	want := model.LogRow{
		"2026-10-19 14:05:09",
		"ABC-123",
		0,
		5000,
		5000,
		30,
		"Service is DUE! Please service your CNG kit.",
		10000,
		"Yes",
		4,
		"No",
		"Yes",
		"No",
		"High Risk – Inspect your CNG system immediately!",
	}
	f.sink.On("Append", mock.Anything, want).Return(nil).Once()

	out, err := f.svc.GenerateReport(context.Background(), id)
	require.NoError(t, err)
	f.sink.AssertExpectations(t)

	assert.Equal(t, model.ReportFilename, out.Report.Filename)
	assert.Equal(t, []byte("%PDF-1.3 fake"), out.Report.Content)
	assert.True(t, out.Log.OK)
	assert.Nil(t, out.Archive)
	assert.Nil(t, out.Notify)
	assert.Nil(t, out.History)

	require.NotNil(t, f.renderer.got.PredictedKm)
	assert.Equal(t, 10000, *f.renderer.got.PredictedKm)
	assert.Equal(t, "ABC-123", f.renderer.got.Vehicle)
	assert.Equal(t, now, f.renderer.got.Date)
}

func TestGenerateReportSurvivesLogFailure(t *testing.T) {
	f := newFixture(t)
	id := readySession(t, f)
	f.sink.On("Append", mock.Anything, mock.Anything).Return(errors.New("permission denied"))

	out, err := f.svc.GenerateReport(context.Background(), id)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Report.Content)
	assert.False(t, out.Log.OK)
	assert.Equal(t, "permission denied", out.Log.Error)
}

func TestGenerateReportRenderFailure(t *testing.T) {
	f := newFixture(t)
	id := readySession(t, f)
	f.renderer.err = errors.New("font missing")

	_, err := f.svc.GenerateReport(context.Background(), id)
	require.Error(t, err)
	f.sink.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestGenerateReportDuplicatesAreNotSuppressed(t *testing.T) {
	f := newFixture(t)
	id := readySession(t, f)
	f.sink.On("Append", mock.Anything, mock.Anything).Return(nil)

	for i := 0; i < 3; i++ {
		_, err := f.svc.GenerateReport(context.Background(), id)
		require.NoError(t, err)
	}
	f.sink.AssertNumberOfCalls(t, "Append", 3)
}

func TestGenerateReportRateLimited(t *testing.T) {
	clk := testingclock.NewFakeClock(now)
	sessOpts := options.NewSessionOptions()
	sessOpts.ReportRate = 1
	sessOpts.ReportBurst = 1
	sink := &mockSink{}
	sink.On("Append", mock.Anything, mock.Anything).Return(nil)
	f := &fixture{sink: sink, renderer: &fakeRenderer{}, clock: clk}
	f.svc = New(session.NewStore(sessOpts, clk), f.renderer, sink, clk)
	id := readySession(t, f)

	_, err := f.svc.GenerateReport(context.Background(), id)
	require.NoError(t, err)
	_, err = f.svc.GenerateReport(context.Background(), id)
	assert.ErrorIs(t, err, core.ErrRateLimited)

	clk.Step(time.Second)
	_, err = f.svc.GenerateReport(context.Background(), id)
	assert.NoError(t, err)
	sink.AssertNumberOfCalls(t, "Append", 2)
}

func TestGenerateReportOptionalSideEffects(t *testing.T) {
	archive := &mockArchive{}
	notifier := &mockNotifier{}
	history := &mockHistory{}
	f := newFixture(t, WithArchive(archive), WithNotifier(notifier), WithHistory(history))
	id := readySession(t, f)

	f.sink.On("Append", mock.Anything, mock.Anything).Return(nil)
	archive.On("Store", mock.Anything, "reports/ABC-123/20261019T140509Z.pdf", []byte("%PDF-1.3 fake")).
		Return("https://minio.local/reports/ABC-123.pdf?sig", nil)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e *model.ReportEvent) bool {
		return e.Vehicle == "ABC-123" && e.RiskTier == model.RiskHigh && e.ArchiveURL != ""
	})).Return(errors.New("broker down"))
	history.On("Record", mock.Anything, mock.MatchedBy(func(r *model.ReportRecord) bool {
		return r.Logged && r.MaintenanceStatus == model.MaintenanceDue && r.PredictedKm == 10000
	})).Return(int64(1), nil)

	out, err := f.svc.GenerateReport(context.Background(), id)
	require.NoError(t, err)

	require.NotNil(t, out.Archive)
	assert.True(t, out.Archive.OK)
	assert.Equal(t, "https://minio.local/reports/ABC-123.pdf?sig", out.Archive.URL)
	require.NotNil(t, out.Notify)
	assert.False(t, out.Notify.OK)
	assert.Equal(t, "broker down", out.Notify.Error)
	require.NotNil(t, out.History)
	assert.True(t, out.History.OK)

	archive.AssertExpectations(t)
	notifier.AssertExpectations(t)
	history.AssertExpectations(t)
}

func TestBuildReportWithoutSession(t *testing.T) {
	f := newFixture(t)
	f.sink.On("Append", mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	m, err := f.svc.CheckMaintenance(ctx, exampleInput())
	require.NoError(t, err)
	r, err := f.svc.AssessRisk(ctx, exampleAnswers())
	require.NoError(t, err)

	out, err := f.svc.BuildReport(ctx, m, r)
	require.NoError(t, err)
	assert.True(t, out.Log.OK)

	_, err = f.svc.BuildReport(ctx, m, nil)
	assert.ErrorIs(t, err, core.ErrPreconditionFailed)
}

func TestListReports(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ListReports(context.Background(), "ABC-123", 0)
	assert.ErrorIs(t, err, core.ErrHistoryDisabled)

	history := &mockHistory{}
	f = newFixture(t, WithHistory(history))
	records := []model.ReportRecord{{ID: 2, Vehicle: "ABC-123"}, {ID: 1, Vehicle: "ABC-123"}}
	history.On("ListByVehicle", mock.Anything, "ABC-123", defaultHistoryLimit).Return(records, nil).Once()
	history.On("ListByVehicle", mock.Anything, "ABC-123", maxHistoryLimit).Return(records[:1], nil).Once()

	got, err := f.svc.ListReports(context.Background(), "ABC-123", 0)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	got, err = f.svc.ListReports(context.Background(), "ABC-123", 10_000)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	history.AssertExpectations(t)
}
