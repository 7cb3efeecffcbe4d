// cmd/onboardctl/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/dangerclosesec/onboarding/internal/audit"
	"github.com/dangerclosesec/onboarding/internal/auth"
	"github.com/dangerclosesec/onboarding/internal/config"
	"github.com/dangerclosesec/onboarding/internal/crm"
	"github.com/dangerclosesec/onboarding/internal/database"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/repository"
	"github.com/dangerclosesec/onboarding/internal/service"
	"github.com/dangerclosesec/onboarding/internal/slug"
	"github.com/dangerclosesec/onboarding/internal/storage"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	cfg     *config.Config
	logger  *slog.Logger
	verbose bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	reconcileCmd.Flags().Bool("dry-run", false, "Print what would be done without making changes")
	reconcileCmd.Flags().Int("batch-size", 50, "Number of submissions to process in a batch")
	reconcileCmd.Flags().Duration("timeout", 30*time.Minute, "Maximum time to run reconciliation")
	reconcileCmd.Flags().String("type", "all", "Submission type to reconcile: all, campaign, organization")

	slugCmd.Flags().String("custom", "", "Custom slug candidate")
	slugCmd.Flags().String("type", "campaign", "Submission type used as the fallback token")

	exportCmd.Flags().StringP("out", "o", "submissions.xlsx", "Output file")
	exportCmd.Flags().String("type", "", "Only export this submission type")
	exportCmd.Flags().String("template", "", "Only export submissions using this template")
	exportCmd.Flags().String("q", "", "Free text filter on name, email and slug")

	tokenCmd.Flags().String("subject", "", "Operator the token is issued to")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime; defaults to JWT_EXPIRY")
	tokenCmd.MarkFlagRequired("subject")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedPillarsCmd)
	rootCmd.AddCommand(slugCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(tokenCmd)
}

var rootCmd = &cobra.Command{
	Use:           "onboardctl",
	Short:         "onboardctl manages the onboarding backend",
	Long:          `onboardctl runs migrations, seeds pillar descriptions, reconciles the CRM mirror and exports submissions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()

		level := slog.LevelInfo
		if verbose || cfg.App.Debug {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		fmt.Println("Database schema is up to date")
		return nil
	},
}

var seedPillarsCmd = &cobra.Command{
	Use:   "seed-pillars",
	Short: "Insert the built-in pillar descriptions that are missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		n, err := repository.NewPillarRepository(db).SeedDefaults(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d pillar descriptions\n", n)
		return nil
	},
}

var slugCmd = &cobra.Command{
	Use:   "slug [name]",
	Short: "Preview the slug a new submission would receive",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		custom, _ := cmd.Flags().GetString("custom")
		kindFlag, _ := cmd.Flags().GetString("type")
		kind, ok := model.ParseKind(kindFlag)
		if !ok {
			return fmt.Errorf("unknown submission type %q", kindFlag)
		}

		req := slug.Request{Custom: custom, Default: string(kind)}
		if len(args) > 0 {
			req.Name = args[0]
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		repo := repository.NewSubmissionRepository(db, cfg.Site.BasePath)
		candidate, err := slug.Resolve(cmd.Context(), repo, req)
		if err != nil {
			return err
		}

		fmt.Println(candidate)
		if verbose {
			for _, t := range model.TemplateNames() {
				fmt.Printf("  %-12s %s\n", t, slug.TemplateURL(cfg.Site.BasePath, candidate, t))
			}
		}
		return nil
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Mirror submissions that have no CRM contact yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		batchSize, _ := cmd.Flags().GetInt("batch-size")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		kindFlag, _ := cmd.Flags().GetString("type")

		if !cfg.CRM.Enabled && !dryRun {
			return fmt.Errorf("crm integration is disabled; set CRM_ENABLED=true or use --dry-run")
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		images, err := storage.NewLocalStorage(cfg.Media.Root, cfg.Media.URL, cfg.Media.MaxUploadMB<<20)
		if err != nil {
			return err
		}

		repo := repository.NewSubmissionRepository(db, cfg.Site.BasePath)
		client := crm.NewClient(crmConfig(cfg))
		reconciler := service.NewMirrorReconciler(repo, service.NewMirrorSync(client, repo, images, logger), 0, logger)
		reconciler.SetBatchSize(batchSize)
		reconciler.SetDryRun(dryRun)

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		var result service.ReconcileResult
		switch kindFlag {
		case "all":
			result, err = reconciler.ReconcileAll(ctx)
		default:
			kind, ok := model.ParseKind(kindFlag)
			if !ok {
				return fmt.Errorf("unknown submission type %q", kindFlag)
			}
			result, err = reconciler.ReconcileKind(ctx, kind)
		}

		auditLog := service.NewAuditLogService(repository.NewAuditLogRepository(db), logger)
		entry := audit.Entry{
			Action:  model.ActionReconcile,
			Subject: "onboardctl",
			Context: map[string]any{
				"type":    kindFlag,
				"dry_run": dryRun,
				"checked": result.Checked,
				"synced":  result.Synced,
				"failed":  result.Failed,
			},
		}
		if auditErr := auditLog.LogAdminAction(context.WithoutCancel(ctx), entry, nil); auditErr != nil {
			logger.Warn("audit log write failed", "error", auditErr)
		}

		if err != nil {
			return fmt.Errorf("reconciliation failed: %w", err)
		}
		fmt.Printf("Checked %d, synced %d, failed %d\n", result.Checked, result.Synced, result.Failed)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write submissions to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		in := service.SearchInput{}
		in.Type, _ = cmd.Flags().GetString("type")
		in.Template, _ = cmd.Flags().GetString("template")
		in.Query, _ = cmd.Flags().GetString("q")

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()

		admin := service.NewAdminService(repository.NewSubmissionRepository(db, cfg.Site.BasePath), nil)
		if err := admin.Export(cmd.Context(), in, f); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", out)
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an admin API bearer token",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		tm := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryPeriod)
		token, err := tm.Generate(subject, auth.RoleAdmin, ttl)
		if err != nil {
			return fmt.Errorf("signing token: %w", err)
		}
		fmt.Println(token)
		return nil
	},
}

func openDatabase() (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

func crmConfig(cfg *config.Config) crm.Config {
	return crm.Config{
		BaseURL:           cfg.CRM.BaseURL,
		APIVersion:        cfg.CRM.APIVersion,
		AgencyToken:       cfg.CRM.AgencyToken,
		LocationToken:     cfg.CRM.LocationToken,
		ContactLocationID: cfg.CRM.ContactLocation,
		CompanyID:         cfg.CRM.CompanyID,
		Timeout:           cfg.CRM.Timeout,
		SchemaTTL:         cfg.CRM.SchemaTTL,
		UpsertRetryCount:  cfg.CRM.UpsertRetryCount,
		UpsertRetryWait:   cfg.CRM.UpsertRetryWait,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
