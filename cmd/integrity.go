package cmd

import (
	"fmt"

	"lunar-assistant/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool
var probeWallet string

// integrityCmd runs every check.
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check storage, database schema and holdings sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd, true, true, true)
	},
}

var storageCheckCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check the rule configuration bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd, true, false, false)
	},
}

var databaseCheckCmd = &cobra.Command{
	Use:   "database",
	Short: "Check the wallet and rule tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd, false, true, false)
	},
}

var sourcesCheckCmd = &cobra.Command{
	Use:   "sources",
	Short: "Probe each holdings source",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd, false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(storageCheckCmd, databaseCheckCmd, sourcesCheckCmd)

	storageCheckCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket if missing")
	sourcesCheckCmd.Flags().StringVar(&probeWallet, "wallet", "", "Probe wallet address")
}

func runIntegrityChecks(cmd *cobra.Command, runStorage, runDatabase, runSources bool) error {
	ctx := cmd.Context()

	d, err := bootstrap()
	if err != nil {
		return err
	}
	logg := d.logger
	defer logg.Sync()

	svc := integrity.NewService(d.storage, d.cfg.Storage.Bucket, d.cfg.Rules.Prefix, d.db, d.sources, d.sourceTimeout(), logg)

	if runStorage {
		logg.Info("Checking storage...")
		report, err := svc.CheckStorage(ctx)
		if err != nil {
			return fmt.Errorf("storage check failed: %w", err)
		}

		switch {
		case report.BucketExists && report.Status == "ok":
			logg.Info("Storage is intact.", zap.String("bucket", report.Bucket), zap.Int("configs", report.Configs))
		case report.BucketExists:
			logg.Warn("Rule prefix could not be listed", zap.String("error", report.Error))
		case fixFlag:
			logg.Info("Creating missing bucket...")
			if err := svc.FixStorage(ctx); err != nil {
				return fmt.Errorf("failed to create bucket: %w", err)
			}
			logg.Info("Bucket created.")
		default:
			logg.Warn("Bucket missing", zap.String("bucket", report.Bucket))
			logg.Info("Run 'integrity storage --fix' to create it.")
		}
	}

	if runDatabase {
		logg.Info("Checking database schema...")
		report, err := svc.CheckDatabase()
		if err != nil {
			logg.Warn("Database schema check skipped", zap.Error(err))
		} else if report.Matched {
			logg.Info("Database schema matches.", zap.String("driver", report.Driver))
		} else {
			for table, tbl := range report.Tables {
				if tbl.Status != "ok" {
					logg.Warn("Table mismatch",
						zap.String("table", table),
						zap.Strings("missing_columns", tbl.MissingColumns),
						zap.Strings("type_mismatches", tbl.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Schema inspection failed", zap.String("error", e))
			}
		}
	}

	if runSources {
		logg.Info("Probing holdings sources...")
		report := svc.CheckSources(ctx, probeWallet)
		for _, s := range report.Sources {
			if s.Status == "ok" {
				logg.Info("Source answered", zap.String("source", s.Name), zap.Int("contracts", s.Contracts), zap.Int64("elapsed_ms", s.ElapsedMs))
			} else {
				logg.Warn("Source failed", zap.String("source", s.Name), zap.String("error", s.Error), zap.Int64("elapsed_ms", s.ElapsedMs))
			}
		}
		logg.Info("Holdings sources", zap.Int("available", report.Available), zap.Int("configured", len(report.Sources)))
	}

	return nil
}
