package adapthttp

import (
	"fmt"
	"net/http"

	"stride/internal/app"
	"stride/internal/domain"
)

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AccountID       int64   `json:"account_id"`
		Type            string  `json:"type"`
		DistanceMiles   float64 `json:"distance_miles"`
		DurationHours   int     `json:"duration_hours"`
		DurationMinutes int     `json:"duration_minutes"`
		DurationSeconds int     `json:"duration_seconds"`
		ActivityDate    string  `json:"activity_date"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.AccountID <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: account_id is required", domain.ErrInvalidInput))
		return
	}
	date, err := parseActivityDate(body.ActivityDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	a, err := s.activities.Create(r.Context(), app.CreateActivityInput{
		AccountID:     body.AccountID,
		Kind:          domain.ActivityKind(body.Type),
		DistanceMiles: body.DistanceMiles,
		Duration: domain.Duration{
			Hours:   body.DurationHours,
			Minutes: body.DurationMinutes,
			Seconds: body.DurationSeconds,
		},
		ActivityDate: date,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, app.NewActivityView(*a))
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	viewer, err := optionalIDQuery(r, "viewer_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	items, err := s.timeline.ListAll(r.Context(), viewer)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var body struct {
		AccountID       int64    `json:"account_id"`
		Type            *string  `json:"type"`
		DistanceMiles   *float64 `json:"distance_miles"`
		DurationHours   *int     `json:"duration_hours"`
		DurationMinutes *int     `json:"duration_minutes"`
		DurationSeconds *int     `json:"duration_seconds"`
		ActivityDate    *string  `json:"activity_date"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.AccountID <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: account_id is required", domain.ErrInvalidInput))
		return
	}

	patch := domain.ActivityPatch{
		DistanceMiles: body.DistanceMiles,
		Hours:         body.DurationHours,
		Minutes:       body.DurationMinutes,
		Seconds:       body.DurationSeconds,
	}
	if body.Type != nil {
		k := domain.ActivityKind(*body.Type)
		patch.Kind = &k
	}
	if body.ActivityDate != nil {
		date, err := parseActivityDate(*body.ActivityDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		patch.ActivityDate = &date
	}

	a, err := s.activities.Update(r.Context(), app.UpdateActivityInput{ID: id, AccountID: body.AccountID, Patch: patch})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.NewActivityView(*a))
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	accountID, err := requiredIDQuery(r, "account_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.activities.Delete(r.Context(), id, accountID); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
