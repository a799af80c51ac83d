package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/pokebinder/binder-services/internal/collectionsvc/catalog"
	"github.com/pokebinder/binder-services/internal/collectionsvc/service"
	"github.com/pokebinder/binder-services/internal/collectionsvc/vision"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	users     *service.UserService
	cards     *service.CardService
	catalog   *catalog.Client
	vision    *vision.Service
}

func NewHandler(users *service.UserService, cards *service.CardService,
	cat *catalog.Client, vis *vision.Service) *Handler {
	return &Handler{
		users:   users,
		cards:   cards,
		catalog: cat,
		vision:  vis,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

// CreateError maps service sentinels onto HTTP statuses. Validation and
// conflict messages are safe to show; everything else stays generic and
// the cause goes to the log only.
func (h *Handler) CreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: err.Error()})
	case errors.Is(err, service.ErrConflict):
		h.CreateResponse(w, Response{Code: http.StatusConflict, Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		h.CreateResponse(w, Response{Code: http.StatusNotFound, Error: "not found"})
	case errors.Is(err, service.ErrUnauthorized):
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "invalid username or password"})
	case errors.Is(err, service.ErrUpstream):
		log.Errorf("upstream failure: %v", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "service temporarily unavailable"})
	default:
		log.Errorf("unhandled error: %v", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal error"})
	}
}

// currentUserID reads the owner identity off the verified token. The
// claim value arrives as float64 after the JSON round trip.
func (h *Handler) currentUserID(r *http.Request) (int64, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, err
	}
	switch v := claims["user_id"].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		return v.Int64()
	}
	return 0, errors.New("token carries no user_id claim")
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{
		Message: "collection service is running",
		Code:    http.StatusOK,
	})
}
