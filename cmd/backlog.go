package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldops/planboard/app"
	"github.com/fieldops/planboard/config"
	"github.com/fieldops/planboard/core/backlog"
	"github.com/fieldops/planboard/pkg/export"
)

var backlogFormat string

var backlogCmd = &cobra.Command{
	Use:   "backlog",
	Short: "Print the machines currently due for scheduling",
	RunE:  runBacklog,
}

func init() {
	backlogCmd.Flags().StringVarP(&backlogFormat, "format", "f", "csv", "output format: csv or json")
	rootCmd.AddCommand(backlogCmd)
}

func runBacklog(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	engine := backlog.Engine{
		Assets:      svc.State.Assets.All(),
		Assignments: svc.State.Assignments.All(),
		OverdueDays: cfg.Backlog.OverdueDays,
		HorizonDays: cfg.Backlog.HorizonDays,
	}
	now := time.Now().UTC()
	due := engine.Due(now, backlog.Window{To: now.AddDate(0, 0, cfg.Backlog.HorizonDays)})
	switch backlogFormat {
	case "json":
		return export.WriteJSON(os.Stdout, due)
	case "csv":
		return export.WriteBacklogCSV(os.Stdout, due)
	default:
		return fmt.Errorf("unknown format %s", backlogFormat)
	}
}
