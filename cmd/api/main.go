package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"

	"co2dash.ds4003.org/internal/app"
	"co2dash.ds4003.org/internal/appconf"
	"co2dash.ds4003.org/internal/logging"
	"co2dash.ds4003.org/internal/restapi"
	"co2dash.ds4003.org/internal/webui"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	logger := logging.NewStructuredLogger(os.Stdout, logging.LevelForFlags(cfg.Debug, cfg.Env.String()))
	slog.SetDefault(logger)

	presets, err := appconf.LoadPresets(cfg.PresetsPath)
	if err != nil {
		logging.LogError(logger, "failed to load presets", err, slog.String("path", cfg.PresetsPath))
		os.Exit(1)
	}

	application, err := app.New(cfg, presets, logger)
	if err != nil {
		logging.LogError(logger, "failed to initialize application", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, application); err != nil {
		logging.LogError(logger, "server stopped with error", err)
		os.Exit(1)
	}
}

// parseConfig reads the command-line flags into a Config.
func parseConfig(args []string, output io.Writer) (appconf.Config, error) {
	var cfg appconf.Config
	var env string

	fs := flag.NewFlagSet("co2dash", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.Port, "port", 4000, "API server port")
	fs.StringVar(&env, "env", "development", "Environment (development|staging|production|test)")
	fs.StringVar(&cfg.DataPath, "data", "data.csv", "Emissions dataset (.csv, .csv.gz or .xlsx)")
	fs.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging and the /debug/ page")
	fs.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per client, 0 disables limiting")
	fs.StringVar(&cfg.PresetsPath, "presets", "", "YAML file overriding page copy and default selection")
	fs.BoolVar(&cfg.StrictDefaults, "strict-defaults", false, "Fail at startup when the default selection is not in the dataset")

	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, err
	}
	cfg.Env = appconf.EnvFlagToEnvironment(env)
	return cfg, nil
}

// buildHandler wires the API and web UI routes behind request logging and
// compression.
func buildHandler(application *app.Application) (http.Handler, *restapi.RestAPI, error) {
	router := httprouter.New()

	api := restapi.NewRestAPI(application)
	api.SetRoutes(router)

	webUI, err := webui.NewWebUI(application)
	if err != nil {
		api.Shutdown()
		return nil, nil, err
	}
	webUI.SetRoutes(router)

	handler := restapi.CompressionMiddleware(router)
	handler = restapi.NewRequestLoggingMiddleware(application.Logger)(handler)
	return handler, api, nil
}

// run serves until ctx is cancelled, then shuts the server down gracefully.
func run(ctx context.Context, application *app.Application) error {
	handler, api, err := buildHandler(application)
	if err != nil {
		return err
	}
	defer api.Shutdown()

	logger := application.Logger
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", application.Config.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", application.Config.Env.String())
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
