package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cliflag "k8s.io/component-base/cli/flag"
)

type sinkOptions struct {
	Worksheet string `mapstructure:"worksheet"`
	Interval  int    `mapstructure:"interval"`
}

type testOptions struct {
	Sink *sinkOptions `mapstructure:"sink"`

	completed bool
	invalid   bool
}

func newTestOptions() *testOptions {
	return &testOptions{Sink: &sinkOptions{Worksheet: "Logs", Interval: 5000}}
}

func (o *testOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	fs := fss.FlagSet("sink")
	fs.StringVar(&o.Sink.Worksheet, "sink.worksheet", o.Sink.Worksheet, "worksheet")
	fs.IntVar(&o.Sink.Interval, "sink.interval", o.Sink.Interval, "interval")
	return fss
}

func (o *testOptions) Complete() error {
	o.completed = true
	return nil
}

func (o *testOptions) Validate() error {
	if o.invalid {
		return errors.New("boom")
	}
	return nil
}

func TestAppFlagOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "cngcare-test.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("sink:\n  worksheet: FromFile\n  interval: 7000\n"), 0o600))

	opts := newTestOptions()
	ran := false
	a := NewApp("cngcare-test", "test",
		WithOptions(opts),
		WithDefaultValidArgs(),
		WithRunFunc(func() error { ran = true; return nil }),
	)

	cmd := a.Command()
	cmd.SetArgs([]string{"--config", cfgFile, "--sink.interval=9000"})
	require.NoError(t, cmd.Execute())

	assert.True(t, ran)
	assert.True(t, opts.completed)
	assert.Equal(t, "FromFile", opts.Sink.Worksheet)
	assert.Equal(t, 9000, opts.Sink.Interval)
}

func TestAppEnvironmentOverride(t *testing.T) {
	t.Setenv("CNGCARE_SINK_WORKSHEET", "FromEnv")

	opts := newTestOptions()
	a := NewApp("cngcare-test", "test",
		WithOptions(opts),
		WithNoConfig(),
		WithRunFunc(func() error { return nil }),
	)
	cmd := a.Command()
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "FromEnv", opts.Sink.Worksheet)
	assert.Equal(t, 5000, opts.Sink.Interval)
}

func TestAppValidationFailureSkipsRun(t *testing.T) {
	opts := newTestOptions()
	opts.invalid = true
	ran := false
	a := NewApp("cngcare-test", "test",
		WithOptions(opts),
		WithNoConfig(),
		WithRunFunc(func() error { ran = true; return nil }),
	)
	cmd := a.Command()
	cmd.SetArgs([]string{})
	cmd.SetErr(new(discard))

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid options")
	assert.False(t, ran)
}

func TestAppMissingExplicitConfigFails(t *testing.T) {
	a := NewApp("cngcare-test", "test",
		WithOptions(newTestOptions()),
		WithRunFunc(func() error { return nil }),
	)
	cmd := a.Command()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	cmd.SetErr(new(discard))

	assert.Error(t, cmd.Execute())
}

func TestAppRejectsPositionalArgs(t *testing.T) {
	a := NewApp("cngcare-test", "test",
		WithOptions(newTestOptions()),
		WithNoConfig(),
		WithDefaultValidArgs(),
		WithRunFunc(func() error { return nil }),
	)
	cmd := a.Command()
	cmd.SetArgs([]string{"extra"})
	cmd.SetErr(new(discard))

	assert.Error(t, cmd.Execute())
}

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }
