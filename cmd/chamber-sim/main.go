// Command chamber-sim serves a simulated chamber fleet on the controller
// API (POST / and POST /status/{id}) for local dashboard development.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chamber_dashboard/internal/config"
	"chamber_dashboard/internal/logger"
	"chamber_dashboard/internal/models"
	"chamber_dashboard/internal/server"
	"chamber_dashboard/internal/simulator"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel).Named("simulator")

	ids := make([]models.ID, 0, len(cfg.Simulator.Chambers))
	for _, id := range cfg.Simulator.Chambers {
		ids = append(ids, models.ID(id))
	}
	fleet := simulator.NewFleet(ids, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go fleet.Run(ctx, cfg.Simulator.Tick)

	gin.SetMode(gin.ReleaseMode)
	srv := &server.Server{}
	go func() {
		if err := srv.Run(cfg.Simulator.Port, simulator.NewRouter(fleet, log)); err != nil {
			log.Fatalw("error starting simulator", "err", err)
		}
	}()
	log.Infow("simulator_started", "port", cfg.Simulator.Port, "chambers", ids, "tick", cfg.Simulator.Tick)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("simulator forced to shutdown", "err", err)
	}
}
