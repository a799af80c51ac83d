package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
)

// Public profile routes: read-only, resolved by username instead of the
// authenticated caller. No mutation is reachable from here.

func (h *Handler) PublicCollection(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.CreateError(w, err)
		return
	}

	cards, err := h.cards.Collection(r.Context(), user.ID, collectionFilterFromQuery(r))
	if err != nil {
		h.CreateError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Code: http.StatusOK,
		Data: map[string]interface{}{
			"cards":       cards,
			"total":       len(cards),
			"displayName": user.DisplayName,
		},
	})
}

func (h *Handler) PublicStats(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.CreateError(w, err)
		return
	}

	stats, err := h.cards.Stats(r.Context(), user.ID)
	if err != nil {
		h.CreateError(w, err)
		return
	}
	stats.DisplayName = user.DisplayName

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: stats})
}
