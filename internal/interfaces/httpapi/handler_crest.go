package httpapi

import (
	"net/http"
	"strconv"
)

func (h *Handler) Crest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Crest")
	defer span.End()

	image, err := h.crestService.Fetch(ctx, queryString(r.URL.Query(), "url"))
	if err != nil {
		h.fail(ctx, w, "proxy crest failed", err)
		return
	}

	w.Header().Set("Content-Type", image.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(image.Body)))
	w.Header().Set("Cache-Control", cacheCrest)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(image.Body)
}
