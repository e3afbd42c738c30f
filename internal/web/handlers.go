package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/julianstephens/timesheet/internal/auth"
	"github.com/julianstephens/timesheet/internal/calendar"
	"github.com/julianstephens/timesheet/internal/constants"
	"github.com/julianstephens/timesheet/internal/logger"
	"github.com/julianstephens/timesheet/internal/tracker"
	"github.com/julianstephens/timesheet/internal/workdate"
	"github.com/julianstephens/timesheet/internal/worklog"
)

type monthResponse struct {
	Month             string           `json:"month"`
	Title             string           `json:"title"`
	Period            workdate.Period  `json:"period"`
	Weeks             [][]calendar.Day `json:"weeks"`
	MonthTotalMinutes int              `json:"monthTotalMinutes"`
	MonthTotal        string           `json:"monthTotal"`
	PrimaryQueue      string           `json:"primaryQueue,omitempty"`
}

type dayResponse struct {
	DateKey      string               `json:"dateKey"`
	Title        string               `json:"title"`
	TotalMinutes int                  `json:"totalMinutes"`
	Total        string               `json:"total"`
	Groups       []worklog.IssueGroup `json:"groups"`
}

type userResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type loginRequest struct {
	Token string `json:"token"`
}

// healthCheck returns server health status
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"timestamp":  time.Now().UTC(),
		"service":    constants.AppName,
		"authorized": s.deps.Session.Authorized(),
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := s.deps.Session.Login(r.Context(), body.Token)
	switch {
	case errors.Is(err, auth.ErrEmptyToken):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, tracker.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "token rejected by tracker")
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, "tracker unavailable")
		return
	}
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Name: user.Name})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Session.Logout(); err != nil {
		logger.Warn("Logout incomplete", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Name: user.Name})
}

// getTimesheet returns the grid of ?month=YYYY-MM, the current month when
// omitted.
func (s *Server) getTimesheet(w http.ResponseWriter, r *http.Request) {
	ctrl := s.controller(r.Context())

	req := ctrl.Start()
	if month := r.URL.Query().Get("month"); month != "" {
		t, err := workdate.ParseMonth(month, s.config.Rules.Location())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		req = ctrl.SetMonth(t)
	}
	ctrl.Load(r.Context(), req)

	writeJSON(w, http.StatusOK, monthResponse{
		Month:             ctrl.ActiveMonth().Format(constants.MonthFormat),
		Title:             ctrl.MonthTitle(),
		Period:            req.Query.Period,
		Weeks:             ctrl.Weeks(),
		MonthTotalMinutes: ctrl.MonthTotal(),
		MonthTotal:        workdate.FormatMinutes(ctrl.MonthTotal()),
		PrimaryQueue:      ctrl.PrimaryQueue(),
	})
}

func (s *Server) getDay(w http.ResponseWriter, r *http.Request) {
	dateKey := chi.URLParam(r, "dateKey")
	day, err := workdate.ParseDateKey(dateKey, s.config.Rules.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctrl := s.controller(r.Context())
	ctrl.Load(r.Context(), ctrl.SetMonth(day))
	ctrl.OpenDay(dateKey)
	detail, _ := ctrl.Detail()

	writeJSON(w, http.StatusOK, dayResponse{
		DateKey:      detail.DateKey,
		Title:        detail.Title,
		TotalMinutes: detail.Summary.TotalMinutes,
		Total:        workdate.FormatMinutes(detail.Summary.TotalMinutes),
		Groups:       detail.Groups,
	})
}

func (s *Server) deleteWorklog(w http.ResponseWriter, r *http.Request) {
	issueID := chi.URLParam(r, "issueID")
	worklogID, err := strconv.ParseInt(chi.URLParam(r, "worklogID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "worklog id must be an integer")
		return
	}

	ctrl := s.controller(r.Context())
	if _, ok := ctrl.ApplyDelete(ctrl.Delete(r.Context(), issueID, worklogID)); !ok {
		writeError(w, http.StatusBadGateway, "failed to delete worklog")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listToasts(w http.ResponseWriter, r *http.Request) {
	s.deps.Toasts.Expire()
	writeJSON(w, http.StatusOK, s.deps.Toasts.List())
}

func (s *Server) dismissToast(w http.ResponseWriter, r *http.Request) {
	if !s.deps.Toasts.Remove(chi.URLParam(r, "toastID")) {
		writeError(w, http.StatusNotFound, "toast not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
