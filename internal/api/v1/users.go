package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vmunix/medley/internal/metrics"
	"github.com/vmunix/medley/internal/repo"
	"github.com/vmunix/medley/internal/userdata"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON: "+err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "MISSING_CREDENTIALS", "username and password are required")
		return
	}

	user, err := s.deps.Users.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, userdata.ErrInvalidCredentials) {
			metrics.AuthAttemptsTotal.WithLabelValues("failure").Inc()
			writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	sess, err := s.deps.Users.CreateSession(user.ID, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()

	writeJSON(w, http.StatusCreated, sessionResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		User:      userResponse{ID: user.ID, Username: user.Username},
	})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required")
		return
	}
	if err := s.deps.Users.DeleteSession(token); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	ids, err := s.deps.Users.Favorites(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, favoritesResponse{Items: ids, Total: len(ids)})
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	id := pathVar(r, "id")

	// Only items visible in the current catalog can be favorited. The ids
	// are stable across rescans, so stored favorites outlive the snapshot
	// they were created against.
	if _, _, err := s.deps.Catalog.Item(id); err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "CATALOG_ERROR", err.Error())
		return
	}

	if err := s.deps.Users.AddFavorite(user.ID, id); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if err := s.deps.Users.RemoveFavorite(user.ID, pathVar(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getResume(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	id := pathVar(r, "id")

	pos, ok, err := s.deps.Users.Resume(user.ID, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "RESUME_NOT_FOUND", "No stored position for this item")
		return
	}
	writeJSON(w, http.StatusOK, resumeResponse{ItemID: id, Position: pos})
}

func (s *Server) setResume(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	id := pathVar(r, "id")

	var req setResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON: "+err.Error())
		return
	}
	if req.Position < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_POSITION", "position must be non-negative")
		return
	}

	if _, _, err := s.deps.Catalog.Item(id); err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "CATALOG_ERROR", err.Error())
		return
	}

	if err := s.deps.Users.SetResume(user.ID, id, req.Position); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clearResume(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if err := s.deps.Users.ClearResume(user.ID, pathVar(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
