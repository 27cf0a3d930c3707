package server

import (
	"github.com/golang/glog"

	"context"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

// Serve blocks until ctx is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s,
	}

	glog.Infof("Listening on %v ...", addr)
	srvError := make(chan error, 1)
	go func() {
		srvError <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		glog.Infof("Shutting down...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	case err := <-srvError:
		return err
	}
}
