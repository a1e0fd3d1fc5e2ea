package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/symptexlab/symptex-api/internal/config"
	"github.com/symptexlab/symptex-api/internal/handler"
	patientModel "github.com/symptexlab/symptex-api/internal/model/patient"
	"github.com/symptexlab/symptex-api/internal/service/ai"
	chatservice "github.com/symptexlab/symptex-api/internal/service/chat"
	"github.com/symptexlab/symptex-api/internal/service/sim"
	"github.com/symptexlab/symptex-api/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	logging.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if !cfg.AI.Enabled() {
		log.Fatal("CHATAI_API_URL and CHATAI_API_KEY must be set")
	}

	// Select the session store backend. With DATABASE_URL both sessions and
	// patient files live in Postgres, otherwise everything stays in memory.
	var (
		store    chatservice.Store
		patients patientModel.Store
	)
	if cfg.Store.DatabaseURL != "" {
		pgStore, err := chatservice.NewPostgresStore(cfg.Store.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := pgStore.SeedPatients(patientModel.Seed()); err != nil {
			log.Fatalf("failed to seed patient files: %v", err)
		}
		store = pgStore
		patients = pgStore.Patients()
		log.Println("session store: postgres")
	} else {
		store = chatservice.NewMemoryStore()
		patients = patientModel.NewMemoryStore(patientModel.Seed())
		log.Println("session store: in-memory")
	}

	aiSvc, err := ai.NewService(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize AI service: %v", err)
	}

	simSvc := sim.NewService(store, patients, aiSvc, logging.AppLogger)
	router := handler.NewRouter(patients, simSvc, logging.AppLogger)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Symptex backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
