package main

//
//  @title           stockfn API
//  @version         1.0
//  @description     Regional stock record lookup, update and creation endpoints.
//  @termsOfService  https://github.com/guttosm/stockfn
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/stockfn
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        stock
//  @tag.description Endpoints for showing, updating and adding stock records
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/stockfn/config"
	_ "github.com/guttosm/stockfn/docs" // swagger docs
	"github.com/guttosm/stockfn/internal/app"
	"github.com/guttosm/stockfn/internal/logger"
	"github.com/guttosm/stockfn/internal/seed"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the stockfn application.
//
// Modes (selected via --mode flag):
//   - api:  Starts the HTTP server exposing /showStock, /updateStock and /addStock.
//   - seed: Loads .json/.csv stock files from --dir into the configured record store.
//
// Flags:
//   - --mode:     Execution mode ("api" or "seed"). Default: "api".
//   - --dir:      Directory containing seed files. Default: "./data/seed".
//   - --parallel: Files seeded concurrently (0=auto up to CPU, max 8).
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or seed")
	dir := flag.String("dir", "./data/seed", "Directory with .json/.csv seed files")
	parallel := flag.Int("parallel", 0, "How many files to seed concurrently (0=auto up to CPU, max 8)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "seed":
		logger.L().Info().Str("driver", config.AppConfig.Store.Driver).Msg("running seed")

		repo, cleanup, err := app.OpenStore(ctx, config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("store connect error")
		}
		defer cleanup()

		sum, err := seed.ProcessDirectory(ctx, *dir, repo, *parallel)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("seed failed")
		}
		logger.L().Info().
			Int("files", sum.Files).
			Int("parsed", sum.Parsed).
			Int("inserted", sum.Inserted).
			Int("skipped", sum.Skipped).
			Msg("seed completed successfully")

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Str("region", config.AppConfig.Server.Region).Msg("starting API server")

		router, cleanup, err := app.InitializeApp(ctx, config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
