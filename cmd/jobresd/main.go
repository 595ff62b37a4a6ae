package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobres/internal/adminapi"
	"jobres/internal/auth"
	"jobres/internal/clock"
	"jobres/internal/config"
	"jobres/internal/db"
	"jobres/internal/jobs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gdb, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	runtimeCfg := config.NewRuntimeConfig(cfg)

	if err := db.AutoMigrateAndIndexes(gdb, runtimeCfg.TableName()); err != nil {
		log.Fatal(err)
	}

	clk, err := newClock(cfg)
	if err != nil {
		log.Fatal(err)
	}

	store := jobs.NewStore(gdb, clk, runtimeCfg)
	jwtSvc := auth.NewJWT(cfg.AdminJWTSecret)
	router := adminapi.NewRouter(cfg, gdb, store, jwtSvc)

	ctx, cancel := context.WithCancel(context.Background())
	go runWorkerLoop(ctx, store, runtimeCfg)

	srv := &http.Server{
		Addr:              cfg.AdminHTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("admin HTTP listening on %s\n", cfg.AdminHTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

func newClock(cfg config.Config) (*clock.Clock, error) {
	switch cfg.ClockMode {
	case string(clock.ModeLocal):
		return clock.NewLocal(), nil
	case string(clock.ModeNamed):
		return clock.NewNamed(cfg.ClockZone)
	default:
		return clock.New(), nil
	}
}

// runWorkerLoop is the illustrative executor from spec.md §1's "execution is
// the caller's concern" boundary: it reserves, logs, and releases, standing
// in for wherever a real handler dispatch table would live.
func runWorkerLoop(ctx context.Context, store *jobs.Store, cfg *config.RuntimeConfig) {
	logger := jobs.NewStdLogger()
	worker := jobs.WorkerFromDefaults(cfg)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = store.ClearLocks(worker.Name)
			return
		case <-ticker.C:
			job, err := store.Reserve(worker, jobs.MaxRunTime(cfg, 0))
			if err != nil {
				log.Printf("reserve failed: %v", err)
				continue
			}
			if job == nil {
				continue
			}

			err = job.InvokeJob(logger, func() error {
				return nil // dispatching into a handler is the caller's concern
			})
			if err != nil {
				msg := err.Error()
				job.LastError = &msg
				job.Attempts++
				_ = store.Save(job)
				continue
			}

			if derr := store.Destroy(job, nil); derr != nil {
				log.Printf("destroy failed: %v", derr)
			}
		}
	}
}
