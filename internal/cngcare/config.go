package cngcare

import (
	"context"
	"errors"
	"fmt"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/Afox1/cngcare/internal/cngcare/core"
	"github.com/Afox1/cngcare/internal/cngcare/core/service"
	"github.com/Afox1/cngcare/internal/cngcare/core/session"
	"github.com/Afox1/cngcare/internal/cngcare/history"
	"github.com/Afox1/cngcare/internal/cngcare/notifier"
	"github.com/Afox1/cngcare/internal/cngcare/report"
	"github.com/Afox1/cngcare/internal/cngcare/server"
	"github.com/Afox1/cngcare/internal/cngcare/server/http"
	"github.com/Afox1/cngcare/internal/cngcare/sheets"
	"github.com/Afox1/cngcare/internal/cngcare/storage"
	"github.com/Afox1/cngcare/pkg/log"
	"github.com/Afox1/cngcare/pkg/options"
)

type Config struct {
	HttpOptions    *options.HttpOptions
	SheetsOptions  *options.SheetsOptions
	SessionOptions *options.SessionOptions
	HistoryOptions *options.HistoryOptions
	S3Options      *options.S3Options
	MqttOptions    *options.MqttOptions
}

// NewServer assembles the adapters, the core service and the HTTP server.
func (cfg *Config) NewServer(ctx context.Context) (*Server, error) {
	// 1. Remote log sink. Missing credentials only break report logging.
	var sink core.LogSink
	sheetsSink, err := sheets.New(ctx, cfg.SheetsOptions)
	if err != nil {
		log.Warn("Spreadsheet logging unavailable; reports will still be generated", "error", err)
		sink = sheets.Unavailable(err)
	} else {
		sink = sheetsSink
	}

	var opts []service.Option
	s := &Server{}

	// 2. Optional adapters.
	if cfg.S3Options.Enabled {
		archive, err := storage.NewMinIOArchive(cfg.S3Options)
		if err != nil {
			return nil, fmt.Errorf("failed to init report archive: %w", err)
		}
		if err := archive.CheckBucket(ctx); err != nil {
			return nil, err
		}
		opts = append(opts, service.WithArchive(archive))
	}

	if cfg.MqttOptions.Enabled {
		n, client, err := notifier.NewMQTTNotifier(ctx, cfg.MqttOptions)
		if err != nil {
			return nil, fmt.Errorf("failed to init notifier: %w", err)
		}
		s.closers = append(s.closers, func(ctx context.Context) error {
			client.Disconnect(ctx)
			return nil
		})
		opts = append(opts, service.WithNotifier(n))
	}

	if cfg.HistoryOptions.DBPath != "" {
		db, err := history.Open(cfg.HistoryOptions.DBPath)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("failed to open report history: %w", err), s.close(ctx))
		}
		s.closers = append(s.closers, func(context.Context) error { return db.Close() })
		opts = append(opts, service.WithHistory(db))
	}

	// 3. Core service.
	svc := service.New(session.NewStore(cfg.SessionOptions, nil), report.New(), sink, nil, opts...)

	// 4. Ingress.
	s.manager = server.NewManager(http.NewServer(cfg.HttpOptions, svc))
	if interval := cfg.SessionOptions.SweepInterval; interval > 0 {
		s.manager.Add(server.ServerFunc(func(ctx context.Context) error {
			wait.UntilWithContext(ctx, func(ctx context.Context) { svc.SweepSessions(ctx) }, interval)
			return nil
		}))
	}
	return s, nil
}
