package api

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/israelmw/QuickAudit/config"
	"github.com/israelmw/QuickAudit/manage"
	"github.com/israelmw/QuickAudit/metrics"
	"github.com/israelmw/QuickAudit/notify"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	server *http.Server
	log    *zap.Logger
	// cancel ends the request contexts, closing open live feed streams
	cancel context.CancelFunc
}

func NewServer(
	cfg *config.Configuration,
	logger *zap.Logger,
	pinger Pinger,
	tableService *manage.TableService,
	logService *manage.LogService,
	overviewService *manage.DashboardService,
	m *metrics.Metrics,
	feed *notify.LiveFeed) *Server {
	api := compose(logger.Named("api"),
		cfg,
		pinger,
		tableService,
		logService,
		overviewService,
		m,
		feed)
	bind := net.JoinHostPort(cfg.Server.Address, strconv.Itoa(cfg.Server.Port))
	base, cancel := context.WithCancel(context.Background())
	srv := http.Server{
		Addr:              bind,
		Handler:           api,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	return &Server{
		server: &srv,
		log:    logger,
		cancel: cancel,
	}
}

// Start runs ListenAndServe on the http.Server with graceful shutdown.
// It returns once the server stopped, either on SIGINT/SIGTERM or ctx being done.
func (srv *Server) Start(ctx context.Context) error {
	srv.log.Info("starting server")
	failed := make(chan error, 1)
	go func() {
		if err := srv.server.ListenAndServe(); err != http.ErrServerClosed {
			failed <- err
		}
	}()
	srv.log.Info("listening", zap.String("addr", srv.server.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case sig := <-quit:
		srv.log.Info("shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
		srv.log.Info("shutting down", zap.Error(ctx.Err()))
	case err := <-failed:
		srv.cancel()
		srv.log.Error("server failed", zap.Error(err))
		return err
	}

	srv.cancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.server.Shutdown(shutdownCtx); err != nil {
		srv.log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	srv.log.Info("graceful shutdown completed")
	return nil
}
