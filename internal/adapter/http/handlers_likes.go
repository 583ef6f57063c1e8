package adapthttp

import (
	"fmt"
	"net/http"

	"stride/internal/domain"
)

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var body struct {
		AccountID int64 `json:"account_id"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.AccountID <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: account_id is required", domain.ErrInvalidInput))
		return
	}
	like, err := s.likes.Like(r.Context(), id, body.AccountID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, like)
}

func (s *Server) handleUnlike(w http.ResponseWriter, r *http.Request) {
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
	removed, err := s.likes.Unlike(r.Context(), id, accountID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": removed})
}

func (s *Server) handleListLikes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	likes, err := s.likes.LikesForActivity(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": likes})
}
