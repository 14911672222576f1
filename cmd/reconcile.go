package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"lunar-assistant/core/reconcile"
	"lunar-assistant/feature/roles"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunReconcile bool
	yesConfirm      bool
	jsonReconcile   bool
)

// reconcileCmd reconciles one user's roles across their communities.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile [user]",
	Short: "Reconcile a user's roles with their wallet holdings",
	Long: `Plans the role grants and revokes for every community the user shares
with the bot, then applies them after confirmation.

Examples:
  # Plan only
  lunar reconcile 123456789 --dry-run

  # Apply without the interactive prompt
  lunar reconcile 123456789 --yes

  # Print the full report as JSON
  lunar reconcile 123456789 --dry-run --json`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&dryRunReconcile, "dry-run", false, "Plan without granting or revoking roles")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Apply without confirmation (non-interactive)")
	reconcileCmd.Flags().BoolVar(&jsonReconcile, "json", false, "Print the report as JSON")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID := args[0]

	d, err := bootstrap()
	if err != nil {
		return err
	}
	l := d.logger
	defer l.Sync()

	engine, err := d.requireEngine()
	if err != nil {
		return err
	}

	l.Info("Planning reconciliation...", zap.String("user", userID))
	plan, err := engine.Reconcile(ctx, userID, reconcile.Options{DryRun: true})
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}
	printReconcileReport(l, plan)

	if dryRunReconcile {
		l.Info("Dry-run mode: No changes were made.")
		return printReport(plan)
	}

	if countActions(plan) == 0 {
		l.Info("No role changes required.")
		return printReport(plan)
	}

	if !confirmRoleChanges(countActions(plan)) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Applying role changes...")
	report, err := engine.Reconcile(ctx, userID, reconcile.Options{})
	if err != nil {
		return fmt.Errorf("failed to apply reconciliation: %w", err)
	}
	printReconcileReport(l, report)
	return printReport(report)
}

func countActions(r *reconcile.Report) int {
	n := 0
	for _, g := range r.Guilds {
		if g.Plan != nil {
			n += len(g.Plan.Actions)
		}
	}
	return n
}

// printReconcileReport logs one line per community and each planned action.
func printReconcileReport(l *zap.Logger, r *reconcile.Report) {
	l.Info("Reconciliation report",
		zap.String("user", r.UserID),
		zap.String("wallet", r.Wallet),
		zap.Bool("dry_run", r.DryRun),
		zap.Int("communities", len(r.Guilds)),
		zap.Strings("source_errors", r.SourceErrors),
	)

	for _, g := range r.Guilds {
		if g.Plan == nil {
			l.Warn("Community skipped", zap.String("guild", g.GuildName), zap.String("error", g.Error))
			continue
		}
		s := g.Plan.Summary
		l.Info("Community plan",
			zap.String("guild", g.GuildName),
			zap.Int("grants", s.Grants),
			zap.Int("revokes", s.Revokes),
			zap.Int("rejected", s.Rejected),
			zap.Int("frozen", s.Frozen),
			zap.Int("unchanged", s.Unchanged),
			zap.Int("applied", g.Applied),
		)
		for _, a := range g.Plan.Actions {
			l.Info("Action",
				zap.String("guild", g.GuildName),
				zap.String("type", string(a.Type)),
				zap.String("role", a.Role.Name),
				zap.String("reason", a.Reason),
			)
		}
		for _, rej := range g.Plan.Rejected {
			l.Warn("Rejected", zap.String("guild", g.GuildName), zap.String("role", rej.RoleName), zap.String("reason", rej.Reason))
		}
		for _, f := range g.Failures {
			l.Error("Action failed", zap.String("guild", g.GuildName), zap.String("role", f.Action.Role.Name), zap.String("error", f.Error))
		}
	}
}

func printReport(r *reconcile.Report) error {
	if !jsonReconcile {
		fmt.Println()
		fmt.Println(roles.GrantedMessage(r.ActiveRoles))
		return nil
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// confirmRoleChanges prompts the user for confirmation or uses --yes flag.
func confirmRoleChanges(n int) bool {
	if yesConfirm {
		fmt.Println("\nAuto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\nType 'yes' to apply %d role change(s): ", n)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
