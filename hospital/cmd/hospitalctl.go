// hospital/cmd/hospitalctl.go

// Admin CLI for schema migrations and one-off maintenance jobs.
package main

import (
	"context"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"hospital/hospital/config"
	"hospital/hospital/scheduler"
	"hospital/hospital/sources/psql"
	"hospital/hospital/sources/psql/dao"
	"hospital/hospital/utils/color"
	"hospital/hospital/utils/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "hospitalctl",
		Short:         "Maintenance commands for the consultation service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable coloured output")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if off, _ := cmd.Flags().GetBool("no-color"); off {
			color.Disable()
		}
	}
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(sweepCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.Error("error: "+err.Error()))
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the embedded SQL migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logging.Sync()
			if err := psql.MigrateUp(cfg.MigrationURL()); err != nil {
				return err
			}
			fmt.Println(color.Success("migrations applied"))
			return nil
		},
	})

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logging.Sync()
			if err := psql.MigrateDown(cfg.MigrationURL(), steps); err != nil {
				return err
			}
			fmt.Println(color.Warning(fmt.Sprintf("rolled back %d migration(s)", steps)))
			return nil
		},
	}
	downCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(downCmd)

	return cmd
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-slots",
		Short: "Delete doctor slots that are already in the past",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logging.Sync()

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			db, err := psql.NewDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			loc, err := cfg.SlotLocation()
			if err != nil {
				return err
			}
			n, err := scheduler.NewSlotSweeper(dao.NewSlotDAO(db.DB), loc).SweepPastSlots(ctx, time.Now())
			if err != nil {
				return err
			}
			logging.AppLogger.Info("manual slot sweep", zap.Int64("removed", n))
			fmt.Println(color.Info(fmt.Sprintf("removed %d past slot(s)", n)))
			return nil
		},
	}
}
