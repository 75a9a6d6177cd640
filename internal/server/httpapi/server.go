package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"postboard/internal/logging"
)

type HTTPServer struct {
	address  string
	certFile string
	keyFile  string
	handler  http.Handler
	logger   logging.Logger
}

func NewHTTPServer(address, certFile, keyFile string, handler http.Handler, logger logging.Logger) *HTTPServer {
	return &HTTPServer{
		address:  address,
		certFile: certFile,
		keyFile:  keyFile,
		handler:  handler,
		logger:   logger.With("module", "http_server"),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully. TLS is
// used when both a certificate and a key are configured.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	var err error
	if s.certFile != "" && s.keyFile != "" {
		s.logger.Info(ctx, "Starting HTTPS server", "address", s.address)
		err = srv.ListenAndServeTLS(s.certFile, s.keyFile)
	} else {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		err = srv.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
