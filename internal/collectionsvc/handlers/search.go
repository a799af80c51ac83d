package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/pokebinder/binder-services/internal/collectionsvc/catalog"
	"github.com/pokebinder/binder-services/internal/collectionsvc/service"
)

func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func (h *Handler) SearchCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := catalog.SearchParams{
		Query:    q.Get("q"),
		Set:      q.Get("set"),
		Rarity:   q.Get("rarity"),
		Type:     q.Get("type"),
		Category: q.Get("category"),
		Page:     intQueryParam(r, "page", 1),
		PageSize: intQueryParam(r, "pageSize", 20),
	}

	result, err := h.catalog.SearchCards(r.Context(), params)
	if err != nil {
		log.Errorf("catalog search failed: %v", err)
		h.CreateError(w, fmt.Errorf("%w: catalog search", service.ErrUpstream))
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: result})
}

func (h *Handler) GetCatalogCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.catalog.GetCard(r.Context(), chi.URLParam(r, "cardId"))
	if err != nil {
		log.Errorf("catalog card fetch failed: %v", err)
		h.CreateError(w, fmt.Errorf("%w: catalog card fetch", service.ErrUpstream))
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: card})
}

func (h *Handler) GetSets(w http.ResponseWriter, r *http.Request) {
	raw, err := h.catalog.Sets(r.Context())
	if err != nil {
		log.Errorf("catalog sets fetch failed: %v", err)
		h.CreateError(w, fmt.Errorf("%w: catalog sets fetch", service.ErrUpstream))
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: raw})
}

func (h *Handler) GetSet(w http.ResponseWriter, r *http.Request) {
	raw, err := h.catalog.Set(r.Context(), chi.URLParam(r, "setId"))
	if err != nil {
		log.Errorf("catalog set fetch failed: %v", err)
		h.CreateError(w, fmt.Errorf("%w: catalog set fetch", service.ErrUpstream))
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: raw})
}

func (h *Handler) GetRarities(w http.ResponseWriter, r *http.Request) {
	raw, err := h.catalog.Rarities(r.Context())
	if err != nil {
		log.Errorf("catalog rarities fetch failed: %v", err)
		h.CreateError(w, fmt.Errorf("%w: catalog rarities fetch", service.ErrUpstream))
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: raw})
}

func (h *Handler) GetTypes(w http.ResponseWriter, r *http.Request) {
	raw, err := h.catalog.Types(r.Context())
	if err != nil {
		log.Errorf("catalog types fetch failed: %v", err)
		h.CreateError(w, fmt.Errorf("%w: catalog types fetch", service.ErrUpstream))
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: raw})
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	raw, err := h.catalog.Categories(r.Context())
	if err != nil {
		log.Errorf("catalog categories fetch failed: %v", err)
		h.CreateError(w, fmt.Errorf("%w: catalog categories fetch", service.ErrUpstream))
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: raw})
}
