package cngcare

import (
	"context"
	"errors"
	"time"

	"github.com/Afox1/cngcare/internal/cngcare/server"
	"github.com/Afox1/cngcare/pkg/log"
)

const closeTimeout = 5 * time.Second

// Server is the running cngcare form server.
type Server struct {
	manager *server.Manager
	closers []func(ctx context.Context) error
}

// Run serves until ctx is canceled, then releases every adapter.
func (s *Server) Run(ctx context.Context) error {
	log.Info("cngcare server starting")
	err := s.manager.Start(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if cerr := s.close(closeCtx); cerr != nil {
		log.Error(cerr, "Failed to release resources")
		err = errors.Join(err, cerr)
	}

	log.Info("cngcare server stopped")
	return err
}

func (s *Server) close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
