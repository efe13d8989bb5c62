package app

import (
	"fmt"

	genericapiserver "k8s.io/apiserver/pkg/server"

	"github.com/Afox1/cngcare/cmd/cngcare-server/app/options"
	"github.com/Afox1/cngcare/pkg/app"
	"github.com/Afox1/cngcare/pkg/log"
)

const (
	commandName = "cngcare-server"
	commandDesc = `The cngcare server hosts the CNG maintenance and safety form.

It evaluates service intervals, scores the safety questionnaire, renders
the PDF report and appends every report to the configured spreadsheet.
Reports can optionally be archived to S3, announced over MQTT and kept
in a local SQLite history.`
)

func NewApp() *app.App {
	opts := options.NewServerOptions()
	application := app.NewApp(
		commandName,
		"Launch the CNG maintenance and safety form server",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithDefaultValidArgs(),
		app.WithWatchConfig(),
		app.WithRunFunc(run(opts)),
	)
	return application
}

func run(opts *options.ServerOptions) app.RunFunc {
	return func() error {
		log.Init(opts.Log)
		defer log.Sync()

		ctx := genericapiserver.SetupSignalContext()

		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		server, err := cfg.NewServer(ctx)
		if err != nil {
			return fmt.Errorf("failed to create cngcare server: %w", err)
		}

		return server.Run(ctx)
	}
}
