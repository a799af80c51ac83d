package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pokebinder/binder-services/internal/collectionsvc/models"
	"github.com/pokebinder/binder-services/internal/collectionsvc/service"
)

const tokenLifetime = 7 * 24 * time.Hour

type credentialsRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type authData struct {
	Token       string `json:"token"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

func (h *Handler) issueToken(user *models.User) (string, error) {
	_, tokenString, err := h.tokenAuth.Encode(map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(tokenLifetime).Unix(),
	})
	return tokenString, err
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.DisplayName, req.Password)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		log.Errorf("token issue for %s failed: %v", user.Username, err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal error"})
		return
	}

	h.CreateResponse(w, Response{
		Message: "registered",
		Code:    http.StatusCreated,
		Data:    authData{Token: token, Username: user.Username, DisplayName: user.DisplayName},
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		log.Errorf("token issue for %s failed: %v", user.Username, err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal error"})
		return
	}

	h.CreateResponse(w, Response{
		Message: "logged in",
		Code:    http.StatusOK,
		Data:    authData{Token: token, Username: user.Username, DisplayName: user.DisplayName},
	})
}

// Logout exists for client symmetry; tokens are stateless and simply
// get discarded on the client.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{Message: "logged out", Code: http.StatusOK})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "not authenticated"})
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		// a token for a deleted account is an auth problem, not a 404
		if errors.Is(err, service.ErrNotFound) {
			h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "not authenticated"})
			return
		}
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Code: http.StatusOK,
		Data: authData{Username: user.Username, DisplayName: user.DisplayName},
	})
}
