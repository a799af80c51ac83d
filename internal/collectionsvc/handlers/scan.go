package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pokebinder/binder-services/internal/collectionsvc/service"
)

type scanRequest struct {
	Image     string `json:"image"`
	MediaType string `json:"mediaType"`
}

// splitDataURL strips an optional "data:image/...;base64," prefix and
// pulls the media type out of it when present.
func splitDataURL(image, mediaType string) (string, string) {
	if !strings.Contains(image, ",") {
		return image, mediaType
	}
	parts := strings.SplitN(image, ",", 2)
	if strings.Contains(parts[0], "image/") {
		meta := strings.TrimPrefix(parts[0], "data:")
		mediaType = strings.SplitN(meta, ";", 2)[0]
	}
	return parts[1], mediaType
}

func (h *Handler) ScanCard(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}
	if req.Image == "" {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "image is required"})
		return
	}
	if req.MediaType == "" {
		req.MediaType = "image/png"
	}

	image, mediaType := splitDataURL(req.Image, req.MediaType)

	ident, err := h.vision.IdentifyCard(r.Context(), image, mediaType)
	if err != nil {
		log.Errorf("card scan failed: %v", err)
		h.CreateError(w, fmt.Errorf("%w: card scan", service.ErrUpstream))
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: ident})
}
