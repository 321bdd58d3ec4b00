/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the HR engine server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment config (.env honored), apply flag overrides
  2. Pick the store: SQLite when a db path is set, in-memory otherwise
  3. Build the derivation engine with the configured holiday calendar
  4. Wire handler + router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port   HTTP server port (overrides PORT)
  -db     SQLite database path (overrides DB; empty = in-memory store,
          ":memory:" = in-memory SQLite)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM, stop accepting connections, wait up to 30s for
  active requests, close the store, exit.

SEE ALSO:
  - config/config.go: Environment configuration
  - api/server.go: Router configuration
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/hr-engine/api"
	"github.com/warp/hr-engine/auth"
	"github.com/warp/hr-engine/config"
	"github.com/warp/hr-engine/derive"
	"github.com/warp/hr-engine/employee"
	"github.com/warp/hr-engine/store/memory"
	"github.com/warp/hr-engine/store/sqlite"
)

func main() {
	cfg := config.Load()

	port := flag.String("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path (empty = in-memory store)")
	flag.Parse()

	// Store
	var (
		store  employee.Store
		closer func() error
	)
	if *dbPath != "" {
		s, err := sqlite.New(*dbPath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		store, closer = s, s.Close
	} else {
		store, closer = memory.New(), func() error { return nil }
	}
	defer closer()

	// Holiday calendar
	calendar := derive.DefaultCalendar()
	if len(cfg.Holidays) > 0 {
		c, err := derive.NewFixedCalendar(cfg.Holidays...)
		if err != nil {
			log.Fatalf("Bad HOLIDAYS config: %v", err)
		}
		calendar = c
	}

	engine := derive.NewEngine(calendar, cfg.DefaultRate)
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)
	handler := api.NewHandler(store, engine, tokens)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%s", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
