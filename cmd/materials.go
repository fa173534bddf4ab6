package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldops/planboard/app"
	"github.com/fieldops/planboard/config"
	"github.com/fieldops/planboard/core/calendar"
	"github.com/fieldops/planboard/core/hierarchy"
	"github.com/fieldops/planboard/core/materials"
	"github.com/fieldops/planboard/pkg/export"
)

var (
	materialsTechnician string
	materialsDate       string
	materialsFormat     string
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "Print the part requirements for a technician's day",
	RunE:  runMaterials,
}

func init() {
	materialsCmd.Flags().StringVarP(&materialsTechnician, "technician", "t", "", "technician id")
	materialsCmd.Flags().StringVarP(&materialsDate, "date", "d", "", "day in 2006-01-02 form, defaults to today")
	materialsCmd.Flags().StringVarP(&materialsFormat, "format", "f", "csv", "output format: csv or json")
	_ = materialsCmd.MarkFlagRequired("technician")
	rootCmd.AddCommand(materialsCmd)
}

func runMaterials(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	date := time.Now().UTC()
	if materialsDate != "" {
		date, err = time.Parse(calendar.DateFormat, materialsDate)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
	}
	idx := hierarchy.NewIndex(svc.State.Assets.All())
	reqs := materials.RequiredParts(idx, svc.Board.RouteFor(materialsTechnician, date))
	switch materialsFormat {
	case "json":
		return export.WriteJSON(os.Stdout, reqs)
	case "csv":
		return export.WriteMaterialsCSV(os.Stdout, reqs)
	default:
		return fmt.Errorf("unknown format %s", materialsFormat)
	}
}
