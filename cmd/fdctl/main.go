// fdctl is the operator CLI for FD onboarding: templates, dry runs, imports and payouts.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/fdonboard/backend/internal/config"
	"github.com/fdonboard/backend/internal/importer"
	"github.com/fdonboard/backend/internal/logger"
	"github.com/fdonboard/backend/internal/repository"
	"github.com/fdonboard/backend/internal/service"
	"github.com/fdonboard/backend/pkg/currency"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fdctl",
	Short: "Manage fixed-deposit plans from the command line",
	Long: `fdctl talks to the FD onboarding database directly.
It downloads import templates, dry-runs and imports plan spreadsheets,
and calculates payouts for a stored plan.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if envFile != "" {
			config.LoadDotEnv(envFile)
		} else {
			config.LoadDotEnv()
		}
		cfg = config.Load()
		logger.Configure(cfg.Env, cfg.LogLevel)
		if dsn, _ := cmd.Flags().GetString("database-url"); dsn != "" {
			cfg.DatabaseURL = dsn
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("env-file", "", "dotenv file to load (default: ./.env)")
	rootCmd.PersistentFlags().String("database-url", "", "database URL override")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(migrateCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "fdctl %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

// app holds the services a command needs, built over one database connection.
type app struct {
	db       *sqlx.DB
	pipeline *importer.Pipeline
	imports  *service.ImportService
	uploads  *service.UploadService
	plans    *service.PlanService
}

func openApp(ctx context.Context) (*app, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	bankRepo := repository.NewBankRepository(db)
	planRepo := repository.NewPlanRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	pipeline := importer.NewPipeline(uploadRepo, planRepo, bankRepo)
	return &app{
		db:       db,
		pipeline: pipeline,
		imports:  service.NewImportService(uploadRepo, bankRepo, inlineQueue{proc: pipeline}, pipeline, cfg.Import),
		uploads:  service.NewUploadService(uploadRepo),
		plans:    service.NewPlanService(planRepo, bankRepo, currency.Parse(cfg.Currency)),
	}, nil
}

func (a *app) Close() {
	_ = a.db.Close()
}

// inlineQueue processes an import as soon as it is submitted, so the command
// returns only once the upload has finished. Like the background runner it only
// logs a failed import; the outcome is read back from the upload ledger.
type inlineQueue struct {
	proc importer.Processor
}

func (q inlineQueue) Submit(ctx context.Context, job importer.Job) error {
	if _, err := q.proc.Process(ctx, job.Upload, job.Data); err != nil {
		logger.FromContext(ctx).Error("import failed", "error", err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
