package api

import (
	"net/http"

	"github.com/starford/maqam/internal/catalog"
	"github.com/starford/maqam/internal/models"
)

// ListPlaylists handles GET /api/playlists.
//
//	@Summary		List visible playlists
//	@Tags			playlists
//	@Produce		json
//	@Param			featured	query		bool	false	"Featured only"
//	@Param			limit		query		int		false	"Page size (default 20, max 100)"
//	@Param			offset		query		int		false	"Page offset"
//	@Success		200			{array}		models.Playlist
//	@Failure		400			{object}	errResponse
//	@Router			/playlists [get]
func (h *Handler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	q := queryParams{r: r}
	query := catalog.PlaylistQuery{
		Featured: q.Bool("featured"),
		Page:     catalog.Page{Limit: q.Int("limit"), Offset: q.Int("offset")},
	}
	if !q.OK(w) {
		return
	}
	items, err := h.svc.ListPlaylists(r.Context(), query)
	if err != nil {
		writeError(w, r, "list playlists", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// FeaturedPlaylists handles GET /api/playlists/featured.
func (h *Handler) FeaturedPlaylists(w http.ResponseWriter, r *http.Request) {
	q := queryParams{r: r}
	limit := q.Int("limit")
	if !q.OK(w) {
		return
	}
	items, err := h.svc.FeaturedPlaylists(r.Context(), limit)
	if err != nil {
		writeError(w, r, "featured playlists", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetPlaylist(r.Context(), id)
	if err != nil {
		writeError(w, r, "get playlist", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreatePlaylist handles POST /api/admin/playlists.
//
//	@Summary		Create a playlist
//	@Tags			playlists
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.PlaylistInput	true	"Playlist"
//	@Success		201		{object}	models.Playlist
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Router			/admin/playlists [post]
func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var in models.PlaylistInput
	if !decodeBody(w, r, &in) {
		return
	}
	p, err := h.svc.CreatePlaylist(r.Context(), in)
	if err != nil {
		writeError(w, r, "create playlist", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var patch models.PlaylistPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	p, err := h.svc.UpdatePlaylist(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, "update playlist", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeletePlaylist handles DELETE /api/admin/playlists/{id}.
func (h *Handler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeletePlaylist(r.Context(), id); err != nil {
		writeError(w, r, "delete playlist", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
