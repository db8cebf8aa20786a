package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lbjllc/travelbook/internal/adapters/auth"
	httpadapter "github.com/lbjllc/travelbook/internal/adapters/http"
	"github.com/lbjllc/travelbook/internal/adapters/llm"
	firestorestore "github.com/lbjllc/travelbook/internal/adapters/storage/firestore"
	memstore "github.com/lbjllc/travelbook/internal/adapters/storage/memory"
	"github.com/lbjllc/travelbook/internal/app/session"
	"github.com/lbjllc/travelbook/internal/app/trips"
	"github.com/lbjllc/travelbook/internal/config"
	"github.com/lbjllc/travelbook/internal/domain"
	"github.com/lbjllc/travelbook/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		observability.Logger().Error("travelbook api failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	observability.SetLevel(cfg.LogLevel)
	log := observability.WithFields("mode", cfg.Mode)

	// Completion backend
	var completer domain.Completer
	switch cfg.LLMBackend {
	case "gemini":
		log.Info("using Gemini completion API", "endpoint", cfg.GeminiEndpoint)
		completer = llm.NewGeminiClient(cfg.GeminiEndpoint, cfg.GeminiAPIKey)
	case "vertex":
		log.Info("using Vertex AI completion", "project", cfg.GCPProjectID, "location", cfg.GCPLocation, "model", cfg.ModelName)
		completer, err = llm.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			return fmt.Errorf("initializing Vertex client: %w", err)
		}
	default:
		log.Info("using mock completion")
		completer = llm.NewMockLLM()
	}

	// Storage: Firestore or Memory
	var store domain.RemoteStore
	switch cfg.StorageBackend {
	case "firestore":
		log.Info("using Firestore storage", "project", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			return fmt.Errorf("initializing Firestore store: %w", err)
		}
		defer fsStore.Close()
		store = fsStore
	default:
		log.Info("using in-memory storage")
		store = memstore.NewStore()
	}

	// Identity
	var identity domain.Identity
	if cfg.UserID != "" {
		identity = auth.Static(cfg.UserID)
	} else {
		anon := auth.NewAnonymous()
		user, err := anon.SignIn(ctx)
		if err != nil {
			return fmt.Errorf("anonymous sign-in: %w", err)
		}
		log.Info("signed in anonymously", "user_id", user)
		identity = anon
	}

	sess := session.New(store, completer, identity, session.Options{
		Keying:       trips.Keying(cfg.ItineraryKeying),
		WatchRetries: cfg.WatchRetries,
	})
	if err := sess.Start(ctx); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer sess.Stop()

	go logEvents(ctx, sess)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpadapter.NewServer(sess, cfg.CORSOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("travelbook api listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// logEvents reports failed writes and subscriptions until ctx is done.
func logEvents(ctx context.Context, sess *session.Session) {
	ch := sess.Events().Subscribe(32)
	defer sess.Events().Unsubscribe(ch)

	log := observability.Component("events")
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-ch:
			if ev.Err != nil {
				log.Warn("background operation failed", "kind", ev.Kind, "op", ev.Op, "trip_id", ev.TripID, "error", ev.Err)
			}
		}
	}
}
