package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fdonboard/backend/internal/importer"
	"github.com/fdonboard/backend/internal/model"
	"github.com/fdonboard/backend/internal/service"
	"github.com/fdonboard/backend/migrations"
	"github.com/fdonboard/backend/pkg/datetime"
)

// --- Template Command ---

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write an empty import template",
	Example: `  fdctl template --format csv -o plans.csv
  fdctl template > plans.xlsx`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("output")

		data, err := importer.Template(strings.ToLower(strings.TrimSpace(format)))
		if err != nil {
			return fmt.Errorf("generate %s template: %w", format, err)
		}
		if out == "" || out == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write template: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d bytes)\n", out, len(data))
		return nil
	},
}

// --- Validate Command ---

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Dry-run an import file against a bank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := importRequest(cmd, args[0])
		if err != nil {
			return err
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.imports.ValidateFile(cmd.Context(), req)
		if err != nil {
			return err
		}
		if err := printJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
		if !report.Valid {
			return fmt.Errorf("%d of %d rows are invalid", report.InvalidRows, report.TotalRows)
		}
		return nil
	},
}

// --- Import Command ---

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a plan spreadsheet and wait for it to finish",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := importRequest(cmd, args[0])
		if err != nil {
			return err
		}
		req.UploadedBy, _ = cmd.Flags().GetString("uploaded-by")

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		id, err := a.imports.ImportFile(cmd.Context(), req)
		if err != nil {
			return err
		}
		upload, err := a.uploads.GetUpload(cmd.Context(), id)
		if err != nil {
			return err
		}
		if err := printJSON(cmd.OutOrStdout(), upload); err != nil {
			return err
		}

		switch {
		case upload.UploadStatus == model.UploadStatusFailed:
			return fmt.Errorf("upload %s failed: %s", upload.ID, deref(upload.ErrorDetails))
		case upload.FailedRows > 0:
			return fmt.Errorf("upload %s finished with %d failed rows", upload.ID, upload.FailedRows)
		}
		return nil
	},
}

// --- Calc Command ---

var calcCmd = &cobra.Command{
	Use:   "calc <plan-id>",
	Short: "Calculate the payout of a deposit in a stored plan",
	Example: `  fdctl calc 7d3c... --principal 1,00,000 --months 6
  fdctl calc 7d3c... --principal 50000 --from 2024-01-15 --to 2024-09-10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid plan id %q", args[0])
		}
		rawPrincipal, _ := cmd.Flags().GetString("principal")
		principal, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rawPrincipal), ",", ""))
		if err != nil {
			return fmt.Errorf("invalid principal %q", rawPrincipal)
		}
		months, _ := cmd.Flags().GetInt("months")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		if months < 0 && from == "" {
			return errors.New("either --months or --from is required")
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		var result *model.PayoutResult
		if months >= 0 {
			result, err = a.plans.CalculateInterest(cmd.Context(), planID, principal, months)
		} else {
			var depositDate, withdrawalDate datetime.Date
			if depositDate, err = datetime.ParseDate(from); err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			withdrawalDate = datetime.Today()
			if to != "" {
				if withdrawalDate, err = datetime.ParseDate(to); err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
			}
			result, err = a.plans.CalculateBetween(cmd.Context(), planID, principal, depositDate, withdrawalDate)
		}
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}

// --- Migrate Command ---

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := migrations.New(cfg.DatabaseURL, cfg.MigrationsPath)
		if err != nil {
			return fmt.Errorf("initialize migrations: %w", err)
		}
		defer func() { _, _ = m.Close() }()

		err = m.Up()
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			fmt.Fprintln(cmd.OutOrStdout(), "Database is already up to date")
		case err != nil:
			return fmt.Errorf("apply migrations: %w", err)
		default:
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
		}
		return nil
	},
}

func init() {
	templateCmd.Flags().String("format", "xlsx", "template format (xlsx, csv)")
	templateCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	for _, c := range []*cobra.Command{validateCmd, importCmd} {
		c.Flags().String("bank", "", "bank ID the plans belong to")
		_ = c.MarkFlagRequired("bank")
	}
	importCmd.Flags().String("uploaded-by", os.Getenv("USER"), "uploader recorded in the upload ledger")

	calcCmd.Flags().String("principal", "", "amount deposited")
	calcCmd.Flags().Int("months", -1, "completed months before withdrawal")
	calcCmd.Flags().String("from", "", "deposit date (YYYY-MM-DD), used when --months is not set")
	calcCmd.Flags().String("to", "", "withdrawal date (YYYY-MM-DD, default: today)")
	_ = calcCmd.MarkFlagRequired("principal")
}

func importRequest(cmd *cobra.Command, path string) (service.ImportRequest, error) {
	var req service.ImportRequest

	rawBank, _ := cmd.Flags().GetString("bank")
	bankID, err := uuid.Parse(strings.TrimSpace(rawBank))
	if err != nil {
		return req, fmt.Errorf("invalid bank id %q", rawBank)
	}

	info, err := os.Stat(path)
	if err != nil {
		return req, fmt.Errorf("read %s: %w", path, err)
	}
	if info.Size() > cfg.Import.MaxUploadSize {
		return req, fmt.Errorf("%s is %d bytes, the limit is %d", path, info.Size(), cfg.Import.MaxUploadSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("read %s: %w", path, err)
	}

	req.BankID = bankID
	req.Filename = filepath.Base(path)
	req.Data = data
	return req, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
