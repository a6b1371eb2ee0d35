package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/chainstat/walletstat/internal/api"
	"github.com/chainstat/walletstat/internal/config"
	"github.com/chainstat/walletstat/internal/database"
	"github.com/chainstat/walletstat/internal/derive"
	"github.com/chainstat/walletstat/internal/domain"
	"github.com/chainstat/walletstat/internal/event"
	"github.com/chainstat/walletstat/internal/export"
	"github.com/chainstat/walletstat/internal/oracle"
	"github.com/chainstat/walletstat/internal/registry"
	"github.com/chainstat/walletstat/internal/scan"
	"github.com/chainstat/walletstat/internal/snapshot"
	"github.com/chainstat/walletstat/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var version = "dev"

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:    "walletstat",
		Usage:   "per-wallet portfolio analytics over synthetic on-chain holdings",
		Version: version,
		Commands: []*cli.Command{
			serveCommand(),
			scanCommand(),
			exportCommand(),
			catalogCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the scan and report workers plus the HTTP API",
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg := config.Load()
			catalog := loadCatalog(cfg)
			counters := registry.New()

			var repo snapshot.Repository
			var inner event.Sink
			if cfg.DatabaseURL == "" {
				slog.Warn("DATABASE_URL not set, snapshots and events stay in memory")
				repo = snapshot.NewMemRepository()
				inner = event.SlogSink{}
			} else {
				pool, err := connectAndMigrate(ctx, cfg.DatabaseURL)
				if err != nil {
					return err
				}
				defer pool.Close()
				repo = snapshot.NewPgRepository(pool)
				inner = event.NewPgSink(pool)
			}
			sink := event.CountingSink{Next: inner, Counter: counters}

			quotes := oracle.NewCachedSource(oracle.NewCatalogSource(catalog))
			scans := scan.NewService(derive.NewDeriver(catalog), quotes, counters, sink, repo, scan.Options{
				Concurrency: cfg.ScanConcurrency,
				RateLimit:   rate.Limit(cfg.ScanRateLimit),
			})

			addrs, err := parseAddresses(cfg.ScanAddresses)
			if err != nil {
				return fmt.Errorf("SCAN_ADDRESSES: %w", err)
			}
			scanWorker := worker.NewScanWorker(scans, addrs, cfg.ScanInterval)
			go scanWorker.Run(ctx)

			writers := buildWriters(ctx, cfg)
			if len(writers) > 0 {
				reportWorker := worker.NewReportWorker(export.NewService(repo, writers...), cfg.ReportInterval)
				go reportWorker.Run(ctx)
			}

			if cfg.AuthToken == "" {
				slog.Warn("AUTH_TOKEN not set, scan and clear endpoints are unprotected")
			}

			srv := api.NewServer(cfg.ListenAddr, api.NewHandler(scans, repo, counters, version), cfg.AuthToken)

			go func() {
				log.Printf("HTTP server listening on %s", cfg.ListenAddr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Printf("HTTP server error: %v", err)
					stop()
				}
			}()

			<-ctx.Done()
			log.Println("Shutting down...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("HTTP server shutdown error: %v", err)
			}

			log.Println("Shutdown complete")
			return nil
		},
	}
}

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "scan wallets once and print the report",
		ArgsUsage: "[address...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the full report as JSON"},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			catalog := loadCatalog(cfg)

			raw := c.Args().Slice()
			if len(raw) == 0 {
				raw = cfg.ScanAddresses
			}
			addrs, err := parseAddresses(raw)
			if err != nil {
				return err
			}
			if len(addrs) == 0 {
				return fmt.Errorf("no addresses given: pass them as arguments or set SCAN_ADDRESSES")
			}

			quotes := oracle.NewCachedSource(oracle.NewCatalogSource(catalog))
			scans := scan.NewService(derive.NewDeriver(catalog), quotes, registry.New(), nil, nil, scan.Options{
				Concurrency: cfg.ScanConcurrency,
				RateLimit:   rate.Limit(cfg.ScanRateLimit),
			})

			report, err := scans.AnalyzeFleet(c.Context, addrs)
			if err != nil {
				return err
			}

			if c.Bool("json") {
				out, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding report: %w", err)
				}
				fmt.Println(string(out))
				return nil
			}

			printFleetReport(report)
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "build the fleet report from stored snapshots and write it once",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "xlsx", Usage: "write the report to this xlsx `PATH`"},
			&cli.BoolFlag{Name: "sheets", Usage: "push the report to Google Sheets"},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required: exports read stored snapshots")
			}

			if path := c.String("xlsx"); path != "" {
				cfg.ReportXLSXPath = path
			}
			if c.Bool("sheets") && (cfg.SheetsCredentialsJSON == "" || cfg.SheetsSpreadsheetID == "") {
				return fmt.Errorf("--sheets needs SHEETS_CREDENTIALS_JSON and SHEETS_SPREADSHEET_ID")
			}
			if !c.Bool("sheets") {
				cfg.SheetsCredentialsJSON = ""
				cfg.SheetsSpreadsheetID = ""
			}

			pool, err := connectAndMigrate(c.Context, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			writers := buildWriters(c.Context, cfg)
			if len(writers) == 0 {
				return fmt.Errorf("no export destination: pass --xlsx or --sheets")
			}

			if err := export.NewService(snapshot.NewPgRepository(pool), writers...).Export(c.Context); err != nil {
				return err
			}
			log.Println("Report exported")
			return nil
		},
	}
}

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "print the active synthetic token catalog",
		Action: func(c *cli.Context) error {
			catalog := loadCatalog(config.Load())

			fmt.Printf("%-8s %-24s %4s %4s %4s %12s %4s %10s\n",
				"SYMBOL", "COIN TYPE", "SEED", "MOD", "BAL", "SCALE", "DEC", "PRICE")
			for _, rule := range catalog {
				fmt.Printf("%-8s %-24s %4d %4d %4d %12d %4d %10s\n",
					rule.Symbol, rule.CoinType, rule.SeedIndex, rule.Modulus,
					rule.BalanceIndex, rule.Scale, rule.Decimals,
					oracle.FormatUSDCents(rule.USDPriceCents))
			}
			return nil
		},
	}
}

func printFleetReport(report scan.FleetReport) {
	fmt.Printf("%-14s %7s %5s %5s %6s %-13s %12s\n",
		"WALLET", "TOKENS", "NFTS", "DIV", "RISK", "BEST/WORST", "USD")
	for _, a := range report.Analyses {
		s := a.Summary
		performers := s.BestPerformingToken
		if s.WorstPerformingToken != "" {
			performers += "/" + s.WorstPerformingToken
		}
		addr, _ := domain.ParseAddress(a.Address)
		fmt.Printf("%-14s %7d %5d %5d %6d %-13s %12s\n",
			addr.Short(), s.TotalTokens, s.TotalNFTs,
			s.PortfolioDiversityScore, s.RiskScore, performers,
			oracle.FormatUSDCents(s.TotalUSDValue))
	}
	fmt.Printf("\nwallets=%d combined=%s mean=%s median=%s took=%s\n",
		len(report.Analyses),
		oracle.FormatUSDCents(report.TotalUSDValue),
		report.MeanUSDValue.Shift(-2).StringFixed(2),
		report.MedianUSDValue.Shift(-2).StringFixed(2),
		report.Duration.Round(time.Millisecond))
}

func connectAndMigrate(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := database.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return pool, nil
}

func loadCatalog(cfg config.Config) derive.Catalog {
	if cfg.TokenCatalog == "" {
		return derive.DefaultCatalog()
	}
	catalog, err := derive.ParseCatalog(cfg.TokenCatalog)
	if err != nil {
		slog.Warn("invalid TOKEN_CATALOG, using the default catalog", "error", err)
		return derive.DefaultCatalog()
	}
	slog.Info("loaded catalog override", "tokens", len(catalog))
	return catalog
}

func parseAddresses(raw []string) ([]domain.Address, error) {
	addrs := make([]domain.Address, 0, len(raw))
	for _, s := range raw {
		addr, err := domain.ParseAddress(s)
		if err != nil {
			return nil, fmt.Errorf("address %q: %w", s, err)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

func buildWriters(ctx context.Context, cfg config.Config) []export.Writer {
	var writers []export.Writer
	if cfg.ReportXLSXPath != "" {
		writers = append(writers, export.NewXLSXWriter(cfg.ReportXLSXPath))
	}
	if cfg.SheetsCredentialsJSON != "" && cfg.SheetsSpreadsheetID != "" {
		w, err := export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsCredentialsJSON)
		if err != nil {
			slog.Warn("Google Sheets writer unavailable", "error", err)
		} else {
			writers = append(writers, w)
		}
	}
	return writers
}
