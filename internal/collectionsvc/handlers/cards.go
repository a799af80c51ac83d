package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/pokebinder/binder-services/internal/collectionsvc/service"
)

func collectionFilterFromQuery(r *http.Request) service.CollectionFilter {
	q := r.URL.Query()
	return service.CollectionFilter{
		Set:      q.Get("set"),
		Rarity:   q.Get("rarity"),
		Category: q.Get("category"),
		Type:     q.Get("type"),
		Query:    q.Get("q"),
		Sort:     q.Get("sort"),
		Order:    q.Get("order"),
	}
}

func (h *Handler) AddCard(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "not authenticated"})
		return
	}

	var req service.AddCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	card, err := h.cards.AddCard(r.Context(), userID, req)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "card added to collection",
		Code:    http.StatusCreated,
		Data:    map[string]interface{}{"id": card.ID},
	})
}

func (h *Handler) GetCollection(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "not authenticated"})
		return
	}

	cards, err := h.cards.Collection(r.Context(), userID, collectionFilterFromQuery(r))
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Code: http.StatusOK,
		Data: map[string]interface{}{"cards": cards, "total": len(cards)},
	})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "not authenticated"})
		return
	}

	stats, err := h.cards.Stats(r.Context(), userID)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: stats})
}

func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "not authenticated"})
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid card id"})
		return
	}

	var req service.UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	card, err := h.cards.UpdateCard(r.Context(), userID, id, req)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "card updated",
		Code:    http.StatusOK,
		Data:    card,
	})
}

func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "not authenticated"})
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid card id"})
		return
	}

	if err := h.cards.DeleteCard(r.Context(), userID, id); err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "card removed", Code: http.StatusOK})
}

func (h *Handler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUserID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "not authenticated"})
		return
	}

	updated, err := h.cards.RefreshPrices(r.Context(), userID)
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "prices refreshed",
		Code:    http.StatusOK,
		Data:    map[string]interface{}{"updated": updated},
	})
}
