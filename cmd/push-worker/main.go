// Command push-worker shows push messages that arrive while no dashboard
// is in the foreground. It loads worker.env and nothing from the main app.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dashnotify/internal/bgworker"
	"dashnotify/internal/config"
	"dashnotify/internal/ingress"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.LoadWorkerConfig()
	if err := cfg.ValidateWorker(); err != nil {
		log.Fatalf("[Worker] invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := ingress.NewSource(cfg.Auth.IngressSecret)
	handler := bgworker.NewHandler(cfg, bgworker.LogDisplayer{})
	// source is never nil here so neither is the handle
	unsubscribe := handler.Listen(ctx, source)
	defer unsubscribe()

	router := mux.NewRouter()
	source.Routes(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.WorkerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[Worker] listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[Worker] failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[Worker] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Worker] shutdown error: %v", err)
	}
}
