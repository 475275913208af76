// @title        Chamber Dashboard API
// @version      1.0
// @description  Operator dashboard for drying chambers: live telemetry, profile commands and layout state.
// @BasePath     /
package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "chamber_dashboard/docs"
	"chamber_dashboard/internal/backend"
	"chamber_dashboard/internal/config"
	"chamber_dashboard/internal/handlers"
	"chamber_dashboard/internal/logger"
	"chamber_dashboard/internal/metrics"
	"chamber_dashboard/internal/models"
	"chamber_dashboard/internal/repository"
	"chamber_dashboard/internal/repository/db"
	"chamber_dashboard/internal/server"
	"chamber_dashboard/internal/service"
	"chamber_dashboard/internal/view"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load config.yml (+ DASHBOARD_* env)
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.LogLevel)

	// open DB
	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// page markup for the configured devices
	page := view.NewPage()
	for _, id := range cfg.Devices {
		page.Mount(models.ID(id))
	}

	// metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// wire dependencies
	repos := repository.NewRepository(conn)
	client := backend.NewClient(cfg.APIURL, cfg.RequestTimeout)
	services := service.NewService(repos, client, page, m, log)
	apiHandler := handlers.NewHandler(services, page, reg, log.Named("http"))

	log.Infow("dashboard_starting",
		"api_url", client.BaseURL(),
		"devices", cfg.Devices,
		"poll_interval", cfg.PollInterval,
		"port", cfg.Port)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start the status poller
	go services.Run(ctx, cfg.PollInterval)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening sqlite", "path", cfg.DBPath)
	return db.InitDB(cfg.DBPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
