package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldops/planboard/app"
	"github.com/fieldops/planboard/config"
	"github.com/fieldops/planboard/core/calendar"
	"github.com/fieldops/planboard/core/model"
	"github.com/fieldops/planboard/pkg/export"
)

var (
	routeTechnician string
	routeDate       string
	routeFormat     string
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Print a technician's route sheet for a day",
	RunE:  runRoute,
}

func init() {
	routeCmd.Flags().StringVarP(&routeTechnician, "technician", "t", "", "technician id")
	routeCmd.Flags().StringVarP(&routeDate, "date", "d", "", "day in 2006-01-02 form, defaults to today")
	routeCmd.Flags().StringVarP(&routeFormat, "format", "f", "csv", "output format: csv or json")
	_ = routeCmd.MarkFlagRequired("technician")
	rootCmd.AddCommand(routeCmd)
}

func runRoute(cmd *cobra.Command, args []string) error {
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
	if routeDate != "" {
		date, err = time.Parse(calendar.DateFormat, routeDate)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
	}
	route := svc.Board.RouteFor(routeTechnician, date)
	return writeRoute(os.Stdout, route, routeFormat)
}

func writeRoute(w io.Writer, route []model.Assignment, format string) error {
	switch format {
	case "json":
		return export.WriteJSON(w, route)
	case "csv":
		return export.WriteRouteCSV(w, route)
	default:
		return fmt.Errorf("unknown format %s", format)
	}
}
