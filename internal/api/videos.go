package api

import (
	"net/http"

	"github.com/starford/maqam/internal/catalog"
	"github.com/starford/maqam/internal/models"
)

// ListVideos handles GET /api/videos.
//
//	@Summary		List visible videos
//	@Tags			videos
//	@Produce		json
//	@Param			category	query		string	false	"Category"
//	@Param			featured	query		bool	false	"Featured only"
//	@Param			limit		query		int		false	"Page size (default 20, max 100)"
//	@Param			offset		query		int		false	"Page offset"
//	@Success		200			{array}		models.Video
//	@Failure		400			{object}	errResponse
//	@Router			/videos [get]
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	q := queryParams{r: r}
	query := catalog.VideoQuery{
		Category: r.URL.Query().Get("category"),
		Featured: q.Bool("featured"),
		Page:     catalog.Page{Limit: q.Int("limit"), Offset: q.Int("offset")},
	}
	if !q.OK(w) {
		return
	}
	items, err := h.svc.ListVideos(r.Context(), query)
	if err != nil {
		writeError(w, r, "list videos", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// FeaturedVideos handles GET /api/videos/featured.
//
//	@Summary		List featured videos
//	@Tags			videos
//	@Produce		json
//	@Param			limit	query	int	false	"Count (default 3, max 20)"
//	@Success		200		{array}	models.Video
//	@Router			/videos/featured [get]
func (h *Handler) FeaturedVideos(w http.ResponseWriter, r *http.Request) {
	q := queryParams{r: r}
	limit := q.Int("limit")
	if !q.OK(w) {
		return
	}
	items, err := h.svc.FeaturedVideos(r.Context(), limit)
	if err != nil {
		writeError(w, r, "featured videos", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// VideosByEvent handles GET /api/videos/by-event/{eventID}.
func (h *Handler) VideosByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := idParam(w, r, "eventID")
	if !ok {
		return
	}
	items, err := h.svc.VideosByEvent(r.Context(), eventID)
	if err != nil {
		writeError(w, r, "videos by event", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetVideo handles GET /api/videos/{id}. Hidden videos are reported as not found.
func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	v, err := h.svc.GetVideo(r.Context(), id)
	if err != nil {
		writeError(w, r, "get video", err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var in models.VideoInput
	if !decodeBody(w, r, &in) {
		return
	}
	v, err := h.svc.CreateVideo(r.Context(), in)
	if err != nil {
		writeError(w, r, "create video", err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var p models.VideoPatch
	if !decodeBody(w, r, &p) {
		return
	}
	v, err := h.svc.UpdateVideo(r.Context(), id, p)
	if err != nil {
		writeError(w, r, "update video", err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteVideo(r.Context(), id); err != nil {
		writeError(w, r, "delete video", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
