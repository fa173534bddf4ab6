// Package planning exposes the scheduling engines over HTTP. All
// responses are JSON; dates travel as "2006-01-02" strings, matching the
// day granularity of the board.
package planning

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fieldops/planboard/core/backlog"
	"github.com/fieldops/planboard/core/board"
	"github.com/fieldops/planboard/core/calendar"
	"github.com/fieldops/planboard/core/hierarchy"
	"github.com/fieldops/planboard/core/materials"
	"github.com/fieldops/planboard/core/report"
	"github.com/fieldops/planboard/core/store"
)

// Handler routes planning requests to the board and backlog engines. The
// engines read the stores on every request, so mutations through the
// board are visible immediately.
type Handler struct {
	state   store.State
	board   *board.Engine
	overdue int
	horizon int
	mux     *http.ServeMux
}

// New wires the planning endpoints onto a fresh mux.
func New(state store.State, b *board.Engine, overdueDays, horizonDays int) *Handler {
	h := &Handler{state: state, board: b, overdue: overdueDays, horizon: horizonDays}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/planning/backlog", h.handleBacklog)
	mux.HandleFunc("/api/planning/reminders", h.handleReminders)
	mux.HandleFunc("/api/planning/route", h.handleRoute)
	mux.HandleFunc("/api/planning/materials", h.handleMaterials)
	mux.HandleFunc("/api/planning/calendar", h.handleCalendar)
	mux.HandleFunc("/api/planning/utilization", h.handleUtilization)
	mux.HandleFunc("/api/planning/place", h.handlePlace)
	mux.HandleFunc("/api/planning/move", h.handleMove)
	mux.HandleFunc("/api/planning/remove", h.handleRemove)
	h.mux = mux
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) backlogEngine() backlog.Engine {
	return backlog.Engine{
		Assets:      h.state.Assets.All(),
		Assignments: h.state.Assignments.All(),
		OverdueDays: h.overdue,
		HorizonDays: h.horizon,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(calendar.DateFormat, s)
}

// handleBacklog returns the machines due for scheduling. Optional from/to
// query parameters bound the window; without them every machine with an
// overdue or near-term due date is returned.
func (h *Handler) handleBacklog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	now := time.Now().UTC()
	var win backlog.Window
	if s := r.URL.Query().Get("from"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}
		win.From = d
	}
	if s := r.URL.Query().Get("to"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}
		win.To = d
	} else {
		// Without an explicit upper bound, look as far ahead as the
		// reminder horizon.
		win.To = now.AddDate(0, 0, h.horizon)
	}
	writeJSON(w, h.backlogEngine().Due(now, win))
}

func (h *Handler) handleReminders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.backlogEngine().Reminders(time.Now().UTC(), h.state.Technicians.All()))
}

// handleRoute returns one technician's assignments for a day, ordered by
// start hour.
func (h *Handler) handleRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	tech := r.URL.Query().Get("technician_id")
	date, err := parseDate(r.URL.Query().Get("date"))
	if tech == "" || err != nil {
		http.Error(w, "technician_id and date are required", http.StatusBadRequest)
		return
	}
	writeJSON(w, h.board.RouteFor(tech, date))
}

// handleMaterials aggregates the spare parts needed for one technician's
// day, summed per article number across the asset subtrees.
func (h *Handler) handleMaterials(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	tech := r.URL.Query().Get("technician_id")
	date, err := parseDate(r.URL.Query().Get("date"))
	if tech == "" || err != nil {
		http.Error(w, "technician_id and date are required", http.StatusBadRequest)
		return
	}
	idx := hierarchy.NewIndex(h.state.Assets.All())
	reqs := materials.RequiredParts(idx, h.board.RouteFor(tech, date))
	writeJSON(w, reqs)
}

// handleCalendar returns the public holidays of a year keyed by ISO date.
func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1583 {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}
	writeJSON(w, calendar.HolidaysForYear(year))
}

func (h *Handler) handleUtilization(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "invalid from date", http.StatusBadRequest)
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "invalid to date", http.StatusBadRequest)
		return
	}
	writeJSON(w, report.Utilize(h.state.Technicians.All(), h.state.Assignments.All(), from, to))
}

type placeRequest struct {
	TargetID     string   `json:"target_id"`
	IsPackage    bool     `json:"is_package"`
	TechnicianID string   `json:"technician_id"`
	Date         string   `json:"date"`
	StartHour    *float64 `json:"start_hour"`
}

type moveRequest struct {
	AssignmentID string   `json:"assignment_id"`
	TechnicianID string   `json:"technician_id"`
	Date         string   `json:"date"`
	StartHour    *float64 `json:"start_hour"`
}

type removeRequest struct {
	AssignmentID string `json:"assignment_id"`
}

func (h *Handler) handlePlace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	cmd := board.PlaceCommand{
		TargetID:     req.TargetID,
		IsPackage:    req.IsPackage,
		TechnicianID: req.TechnicianID,
		Date:         date,
	}
	if req.StartHour != nil {
		cmd.StartHour = *req.StartHour
		cmd.StartHourSet = true
	}
	asn, err := h.board.Place(cmd)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, asn)
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	cmd := board.MoveCommand{
		AssignmentID: req.AssignmentID,
		TechnicianID: req.TechnicianID,
		Date:         date,
	}
	if req.StartHour != nil {
		cmd.StartHour = *req.StartHour
		cmd.StartHourSet = true
	}
	asn, err := h.board.Move(cmd)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, asn)
}

// handleRemove deletes an assignment. Removing an unknown ID is a no-op,
// mirroring dragging a bar back to the tray.
func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req removeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.board.Remove(req.AssignmentID)
	w.WriteHeader(http.StatusNoContent)
}

func writeBoardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, board.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, board.ErrUnknownTarget):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, board.ErrSlotConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
