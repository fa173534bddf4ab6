// Package export renders backlog, route and material data for handover
// to spreadsheets and external planning tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/fieldops/planboard/core/calendar"
	"github.com/fieldops/planboard/core/materials"
	"github.com/fieldops/planboard/core/model"
)

// WriteJSON writes v to w in JSON format.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}

// WriteBacklogCSV writes the due machines to w, one row per machine.
func WriteBacklogCSV(w io.Writer, assets []model.Asset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "manufacturer", "model", "next_service", "health", "service_size"}); err != nil {
		return err
	}
	for _, a := range assets {
		rec := []string{a.ID, a.Name, "", "", "", "", string(a.Size())}
		if m := a.Machine; m != nil {
			rec[2] = m.Manufacturer
			rec[3] = m.Model
			if m.NextServiceDate != nil {
				rec[4] = m.NextServiceDate.Format(calendar.DateFormat)
			}
			rec[5] = string(m.Health)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRouteCSV writes one technician day to w, one row per assignment in
// start-hour order.
func WriteRouteCSV(w io.Writer, route []model.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "target_id", "is_package", "date", "start_hour", "duration_hours", "status"}); err != nil {
		return err
	}
	for _, a := range route {
		rec := []string{
			a.ID,
			a.TargetID,
			strconv.FormatBool(a.IsPackage),
			a.Date.Format(calendar.DateFormat),
			strconv.FormatFloat(a.StartHour, 'f', -1, 64),
			strconv.FormatFloat(a.Duration, 'f', -1, 64),
			string(a.Status),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMaterialsCSV writes the aggregated part requirements to w.
func WriteMaterialsCSV(w io.Writer, reqs []materials.Requirement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"article_number", "name", "quantity"}); err != nil {
		return err
	}
	for _, r := range reqs {
		rec := []string{r.ArticleNumber, r.Name, strconv.FormatFloat(r.Quantity, 'f', -1, 64)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
