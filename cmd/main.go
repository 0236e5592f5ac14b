package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/airfinder/internal/cli"
	"github.com/UnknownOlympus/airfinder/internal/config"
	"github.com/UnknownOlympus/airfinder/internal/datasource"
	"github.com/UnknownOlympus/airfinder/internal/geo"
	"github.com/UnknownOlympus/airfinder/internal/metrics"
	"github.com/UnknownOlympus/airfinder/internal/models"
	"github.com/UnknownOlympus/airfinder/internal/repository"
	"github.com/UnknownOlympus/airfinder/internal/server"
	"github.com/UnknownOlympus/airfinder/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	os.Exit(run())
}

// run wires the application and returns the process exit status.
func run() int {
	args, err := cli.ParseArgs(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment. Results go to stdout, logs to stderr.
	logger := setupLogger(cfg.Env)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	providerConfig := datasource.ProviderConfig{
		Type:             datasource.ProviderType(cfg.ProviderType),
		APIKey:           cfg.APIKey,
		RateLimit:        cfg.RateLimit,
		Timeout:          cfg.Timeout,
		CloudantURL:      cfg.Cloudant.URL,
		CloudantUsername: cfg.Cloudant.Username,
		CloudantPassword: cfg.Cloudant.Password,
		Logger:           logger,
	}

	if args.Import {
		return importAirports(ctx, logger, cfg, args)
	}

	// The health endpoint only has something to ping when the airports live in postgres.
	var pinger server.Pinger
	if providerConfig.Type == datasource.ProviderTypePostgres {
		repo, closeDB, dbErr := openRepository(ctx, logger, cfg)
		if dbErr != nil {
			log.Print(dbErr)
			return 1
		}
		defer closeDB()

		providerConfig.Store = repo
		pinger = repo
	}

	provider, err := datasource.NewProvider(providerConfig)
	if err != nil {
		log.Printf("Failed to create data source provider: %v", err)
		return 1
	}
	logger.InfoContext(ctx, "Data source provider initialized", "type", cfg.ProviderType)

	searchConfig := service.Config{
		Log:          logger,
		Provider:     provider,
		ProviderName: cfg.ProviderType,
		Metrics:      appMetrics,
		Distances:    geo.NewDistanceCache(cfg.CacheSize, appMetrics),
		Timeout:      cfg.Timeout,
	}

	if args.Serve {
		logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")
		if err = server.New(logger, searchConfig, reg, pinger).Run(ctx, cfg.Port); err != nil {
			logger.ErrorContext(ctx, "HTTP server failed", "error", err)
			return 1
		}
		logger.InfoContext(ctx, "Application stopped gracefully.")
		return 0
	}

	input, err := readInput(args)
	if err != nil {
		var invalid *models.InvalidInputError
		if errors.As(err, &invalid) {
			fmt.Fprintln(os.Stderr, invalid.Error())
		} else {
			logger.ErrorContext(ctx, "Failed to read input", "error", err)
		}
		return 1
	}

	if !input.Center.IsValid() {
		logger.WarnContext(ctx, "Coordinate is outside the valid range", "center", input.Center.String())
	}

	return search(ctx, logger, searchConfig, input)
}

// openRepository connects to PostgreSQL and prepares the airport table.
func openRepository(ctx context.Context, logger *slog.Logger, cfg *config.Config) (*repository.Repository, func(), error) {
	dtb, err := repository.NewDatabase(
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	repo := repository.NewRepository(dtb, logger)
	if err = repo.EnsureSchema(ctx); err != nil {
		dtb.Close()
		return nil, nil, fmt.Errorf("failed to prepare DB schema: %w", err)
	}

	return repo, dtb.Close, nil
}

// importAirports fills the PostgreSQL store from the Cloudant index, for the whole world
// or for the search area given on the command line.
func importAirports(ctx context.Context, logger *slog.Logger, cfg *config.Config, args *cli.Args) int {
	box := service.WorldBox
	if args.Complete() {
		input, err := args.Input()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		box = service.NewProximitySearch(service.Config{}, input.Center).BoundingBox(input.Radius)
	}

	repo, closeDB, err := openRepository(ctx, logger, cfg)
	if err != nil {
		log.Print(err)
		return 1
	}
	defer closeDB()

	source, err := datasource.NewProvider(datasource.ProviderConfig{
		Type:             datasource.ProviderTypeCloudant,
		RateLimit:        cfg.RateLimit,
		Timeout:          cfg.Timeout,
		CloudantURL:      cfg.Cloudant.URL,
		CloudantUsername: cfg.Cloudant.Username,
		CloudantPassword: cfg.Cloudant.Password,
		Logger:           logger,
	})
	if err != nil {
		log.Printf("Failed to create data source provider: %v", err)
		return 1
	}

	count, err := service.NewImporter(logger, source, string(datasource.ProviderTypeCloudant), repo).Import(ctx, box)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to import airports: %v\n", err)
		return 1
	}

	fmt.Fprintf(os.Stdout, "Imported %d airports\n", count)

	return 0
}

// readInput takes the search input from the flags when all of them were given, otherwise
// it prompts for it.
func readInput(args *cli.Args) (cli.Input, error) {
	if args.Complete() {
		return args.Input()
	}

	return cli.NewPrompter(os.Stdin, os.Stdout).Input()
}

// search runs one search and prints the result. Nothing is printed to stdout when the
// search fails.
func search(ctx context.Context, logger *slog.Logger, cfg service.Config, input cli.Input) int {
	proximity := service.NewProximitySearch(cfg, input.Center)
	airports, err := proximity.FindNearestWithinRadius(ctx, input.Radius)
	if err != nil {
		var dsErr *models.DataSourceError
		if errors.As(err, &dsErr) {
			fmt.Fprintf(os.Stderr, "Failed to fetch airports from %s: %v\n", dsErr.Provider, dsErr.Err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		logger.ErrorContext(ctx, "Search failed", "error", err)
		return 1
	}

	printer := cli.NewPrinter(os.Stdout)
	printer.Header(input)
	for _, airport := range airports {
		printer.Airport(airport, proximity.DistanceTo(airport))
	}

	return 0
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
