// Command syncer runs the producer-side reconciliation daemon: it watches
// the local offline queue and replays pending bookings against the server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/offline"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/clock"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/config"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	envFile := pflag.String("env-file", "", "optional .env file to load before reading the environment")
	once := pflag.Bool("once", false, "run a single drain pass and exit")
	pflag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			slog.Error("failed to load env file", "path", *envFile, "error", err.Error())
			os.Exit(1)
		}
	}

	cfg, err := config.LoadSyncConfig()
	if err != nil {
		slog.Error("failed to load sync config", "error", err.Error())
		os.Exit(1)
	}

	queue, err := offline.NewSQLiteQueue(cfg.QueuePath)
	if err != nil {
		slog.Error("failed to open offline queue", "path", cfg.QueuePath, "error", err.Error())
		os.Exit(1)
	}

	gateway := offline.NewHTTPGateway(cfg.ServerURL, cfg.Token)
	syncer := offline.NewSyncer(queue, gateway, clock.NewRealClock())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		report, err := syncer.Drain(ctx)
		if err != nil {
			slog.Error("drain failed", "error", err.Error())
			os.Exit(1)
		}
		slog.Info("drain finished",
			"submitted", report.Submitted,
			"rejected", report.Rejected,
			"stopped", report.Stopped,
		)
		return
	}

	if err := syncer.Start(ctx, cfg.Schedule); err != nil {
		slog.Error("failed to schedule drains", "schedule", cfg.Schedule, "error", err.Error())
		os.Exit(1)
	}
	slog.Info("syncer running", "queue", cfg.QueuePath, "server", cfg.ServerURL, "schedule", cfg.Schedule)

	<-ctx.Done()
	syncer.Stop()
	slog.Info("syncer stopped")
}
