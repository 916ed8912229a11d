package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"shiftboard/internal/adapters/http/middleware"
	"shiftboard/internal/application/orchestrators"
	"shiftboard/internal/application/projections"
	"shiftboard/internal/application/tracker"
	"shiftboard/internal/domain/attendance"
	"shiftboard/internal/domain/shift"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

//go:embed templates
var templatesFS embed.FS

var boardTmpl = template.Must(template.ParseFS(templatesFS, "templates/board.html"))

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err.Error())
	}
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", handleBoard)
	mux.HandleFunc("POST /api/clock-in", handleClockIn)
	mux.HandleFunc("POST /api/clock-out", handleClockOut)
	mux.HandleFunc("GET /api/status", handleStatus)
	mux.HandleFunc("GET /api/roster", handleRoster)
	mux.HandleFunc("GET /api/schedule/today", handleScheduleToday)
	mux.HandleFunc("GET /api/shifts/upcoming", handleUpcomingShifts)
	mux.HandleFunc("POST /api/admin/login", handleAdminLogin)
	mux.HandleFunc("POST /api/admin/logout", handleAdminLogout)
	mux.Handle("GET /api/admin/report", middleware.RequireAdmin(http.HandlerFunc(handleAdminReport)))
	mux.Handle("POST /api/admin/report-email", middleware.RequireAdmin(http.HandlerFunc(handleAdminReportEmail)))
}

// noteSection is one rendered block of venue notes for the board page.
type noteSection struct {
	Title string
	Items []template.HTML
}

// handleBoard renders the kiosk page. Everything dynamic on it comes from the
// polled JSON API; the page itself only carries the static roster, schedule,
// and notes.
func handleBoard(w http.ResponseWriter, r *http.Request) {
	notes := make([]noteSection, len(cfg.Notes))
	for i, section := range cfg.Notes {
		items := make([]template.HTML, len(section.Items))
		for j, md := range section.Items {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				items[j] = template.HTML(template.HTMLEscapeString(md))
				continue
			}
			items[j] = template.HTML(buf.String())
		}
		notes[i] = noteSection{Title: section.Title, Items: items}
	}

	roster := cfg.Roster()
	data := map[string]any{
		"EventName": cfg.EventName,
		"Members":   roster,
		"Initials":  roster.Initials(),
		"Notes":     notes,
		"CSRFToken": csrf.Token(r),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := boardTmpl.Execute(w, data); err != nil {
		slog.Error("template_render_failed", "error", err.Error())
	}
}

// clockResponse is the JSON reply for clock-in/out. Noop reports whether the
// press changed nothing (member was already in the target state).
type clockResponse struct {
	Name   string            `json:"name"`
	Status attendance.Status `json:"status"`
	Noop   bool              `json:"noop"`
}

func handleClockIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := strictDecode(r, &req); err != nil || req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	err := board.ClockIn(r.Context(), req.Name)
	switch {
	case errors.Is(err, tracker.ErrUnknownMember):
		http.Error(w, "unknown member", http.StatusNotFound)
		return
	case errors.Is(err, attendance.ErrAlreadyPresent):
		writeJSON(w, http.StatusOK, clockResponse{Name: req.Name, Status: attendance.StatusPresent, Noop: true})
		return
	case err != nil:
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clockResponse{Name: req.Name, Status: attendance.StatusPresent})
}

func handleClockOut(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := strictDecode(r, &req); err != nil || req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	err := board.ClockOut(r.Context(), req.Name)
	switch {
	case errors.Is(err, tracker.ErrUnknownMember):
		http.Error(w, "unknown member", http.StatusNotFound)
		return
	case errors.Is(err, attendance.ErrNotPresent):
		writeJSON(w, http.StatusOK, clockResponse{Name: req.Name, Status: attendance.StatusAbsent, Noop: true})
		return
	case err != nil:
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clockResponse{Name: req.Name, Status: attendance.StatusAbsent})
}

// memberStatus is one member's line in the polled status payload.
type memberStatus struct {
	Name      string            `json:"name"`
	Status    attendance.Status `json:"status"`
	ElapsedMs int64             `json:"elapsedMs"`
	Formatted string            `json:"formatted"`
}

// handleStatus is the endpoint the board polls every second. Durations for
// open sessions are computed against the snapshot's reference time so one
// payload is internally consistent.
func handleStatus(w http.ResponseWriter, r *http.Request) {
	state, ref := board.Snapshot(r.Context())

	names := cfg.Roster().Names()
	members := make([]memberStatus, 0, len(names))
	for _, name := range names {
		entry := state[name]
		elapsed := attendance.Elapsed(entry.Sessions, ref)
		members = append(members, memberStatus{
			Name:      name,
			Status:    entry.Status,
			ElapsedMs: elapsed.Milliseconds(),
			Formatted: attendance.FormatDuration(elapsed),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"serverTime":   ref.UnixMilli(),
		"presentCount": state.PresentCount(),
		"members":      members,
	})
}

// handleRoster returns the roster, optionally filtered by a kana initial.
func handleRoster(w http.ResponseWriter, r *http.Request) {
	roster := cfg.Roster()
	initial := r.URL.Query().Get("initial")
	writeJSON(w, http.StatusOK, map[string]any{
		"initials": roster.Initials(),
		"names":    roster.FilterByInitial(initial),
	})
}

// shiftView is one shift slot in schedule payloads.
type shiftView struct {
	Time    string   `json:"time"`
	Start   int      `json:"start"`
	End     int      `json:"end"`
	Members []string `json:"members"`
	Active  bool     `json:"active"`
}

// handleScheduleToday returns today's shift plan with the currently active
// slot flagged. Outside event days it returns eventDay=false.
func handleScheduleToday(w http.ResponseWriter, r *http.Request) {
	now := timeNow()
	day, index, ok := shift.TodaysSchedule(schedule, now)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"eventDay": false})
		return
	}

	active, hasActive := shift.ActiveShift(day, now)
	shifts := make([]shiftView, len(day.Shifts))
	for i, s := range day.Shifts {
		shifts[i] = shiftView{
			Time:    s.Time,
			Start:   s.StartHour,
			End:     s.EndHour,
			Members: s.Members,
			Active:  hasActive && s.Time == active.Time && s.StartHour == active.StartHour,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"eventDay": true,
		"date":     day.Date,
		"dayIndex": index + 1,
		"shifts":   shifts,
	})
}

// handleUpcomingShifts lists today's not-yet-ended shifts for a member. The
// board calls this before clock-out to warn members leaving mid-assignment.
func handleUpcomingShifts(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if !cfg.Roster().Contains(name) {
		http.Error(w, "unknown member", http.StatusNotFound)
		return
	}

	now := timeNow()
	var labels []string
	if day, _, ok := shift.TodaysSchedule(schedule, now); ok {
		for _, s := range shift.UpcomingShiftsFor(day, name, now) {
			labels = append(labels, s.Time)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":   name,
		"shifts": labels,
	})
}

func handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Secret string `json:"secret"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteAdminLogin(r.Context(),
		orchestrators.AdminLoginInput{Secret: req.Secret},
		orchestrators.AdminLoginDeps{AdminSecret: cfg.AdminSecret})
	if errors.Is(err, orchestrators.ErrBadSecret) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	token := sessions.Create()
	middleware.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// reportRowView is one member's line in the admin report payload.
type reportRowView struct {
	Name      string            `json:"name"`
	Status    attendance.Status `json:"status"`
	TotalMs   int64             `json:"totalMs"`
	Formatted string            `json:"formatted"`
}

func buildReportRows(r *http.Request) ([]projections.WorkReportRow, time.Time) {
	state, ref := board.Snapshot(r.Context())
	return projections.BuildWorkReport(state, cfg.Roster().Names(), ref), ref
}

func handleAdminReport(w http.ResponseWriter, r *http.Request) {
	rows, ref := buildReportRows(r)
	views := make([]reportRowView, len(rows))
	for i, row := range rows {
		views[i] = reportRowView{
			Name:      row.Name,
			Status:    row.Status,
			TotalMs:   row.Total.Milliseconds(),
			Formatted: row.Formatted,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date": ref.Format(shift.DateLayout),
		"rows": views,
	})
}

func handleAdminReportEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To string `json:"to"`
	}
	if err := strictDecode(r, &req); err != nil || req.To == "" {
		http.Error(w, "recipient is required", http.StatusBadRequest)
		return
	}

	rows, ref := buildReportRows(r)
	err := orchestrators.ExecuteSendDailyReport(r.Context(),
		orchestrators.DailyReportInput{
			Date: ref.Format(shift.DateLayout),
			To:   req.To,
			Rows: rows,
		},
		orchestrators.DailyReportDeps{
			Sender:  emailSender,
			From:    emailFromAddress,
			ReplyTo: emailReplyTo,
		})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
