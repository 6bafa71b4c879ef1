package api

import (
	"errors"
	"net/http"

	"github.com/starford/maqam/internal/apperr"
	"github.com/starford/maqam/internal/catalog"
	"github.com/starford/maqam/internal/models"
)

// Handler holds API route handlers.
type Handler struct {
	svc *catalog.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{svc: svc}
}

// GetBio handles GET /api/bio.
//
//	@Summary		Get the biography
//	@Tags			bio
//	@Produce		json
//	@Success		200	{object}	models.Bio
//	@Failure		404	{object}	errResponse
//	@Router			/bio [get]
func (h *Handler) GetBio(w http.ResponseWriter, r *http.Request) {
	bio, err := h.svc.GetBio(r.Context())
	if err != nil {
		writeError(w, r, "get bio", err)
		return
	}
	writeJSON(w, http.StatusOK, bio)
}

// CreateBio handles POST /api/bio.
//
//	@Summary		Create the biography
//	@Tags			bio
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.BioInput	true	"Biography"
//	@Success		201		{object}	models.Bio
//	@Failure		400		{object}	errResponse
//	@Router			/bio [post]
func (h *Handler) CreateBio(w http.ResponseWriter, r *http.Request) {
	var in models.BioInput
	if !decodeBody(w, r, &in) {
		return
	}
	bio, err := h.svc.CreateBio(r.Context(), in)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			writeJSON(w, http.StatusBadRequest, errorBody("biography already exists, use PUT to update"))
			return
		}
		writeError(w, r, "create bio", err)
		return
	}
	writeJSON(w, http.StatusCreated, bio)
}

// UpdateBio handles PUT /api/bio. Only fields present in the body change.
//
//	@Summary		Update the biography
//	@Tags			bio
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.BioPatch	true	"Fields to change"
//	@Success		200		{object}	models.Bio
//	@Failure		404		{object}	errResponse
//	@Router			/bio [put]
func (h *Handler) UpdateBio(w http.ResponseWriter, r *http.Request) {
	var p models.BioPatch
	if !decodeBody(w, r, &p) {
		return
	}
	bio, err := h.svc.UpdateBio(r.Context(), p)
	if err != nil {
		writeError(w, r, "update bio", err)
		return
	}
	writeJSON(w, http.StatusOK, bio)
}

// DeleteBio handles DELETE /api/bio/{id}.
func (h *Handler) DeleteBio(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteBio(r.Context(), id); err != nil {
		writeError(w, r, "delete bio", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListEnsembles handles GET /api/ensembles.
//
//	@Summary		List ensembles
//	@Tags			ensembles
//	@Produce		json
//	@Success		200	{array}	models.Ensemble
//	@Router			/ensembles [get]
func (h *Handler) ListEnsembles(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListEnsembles(r.Context())
	if err != nil {
		writeError(w, r, "list ensembles", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetMainEnsemble handles GET /api/ensemble.
func (h *Handler) GetMainEnsemble(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.GetMainEnsemble(r.Context())
	if err != nil {
		writeError(w, r, "get main ensemble", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// UpdateMainEnsemble handles PUT /api/ensemble.
func (h *Handler) UpdateMainEnsemble(w http.ResponseWriter, r *http.Request) {
	var p models.EnsemblePatch
	if !decodeBody(w, r, &p) {
		return
	}
	e, err := h.svc.UpdateMainEnsemble(r.Context(), p)
	if err != nil {
		writeError(w, r, "update main ensemble", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) GetEnsemble(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	e, err := h.svc.GetEnsemble(r.Context(), id)
	if err != nil {
		writeError(w, r, "get ensemble", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// CreateEnsemble handles POST /api/ensembles.
//
//	@Summary		Create an ensemble
//	@Tags			ensembles
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.EnsembleInput	true	"Ensemble"
//	@Success		201		{object}	models.Ensemble
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Router			/ensembles [post]
func (h *Handler) CreateEnsemble(w http.ResponseWriter, r *http.Request) {
	var in models.EnsembleInput
	if !decodeBody(w, r, &in) {
		return
	}
	e, err := h.svc.CreateEnsemble(r.Context(), in)
	if err != nil {
		writeError(w, r, "create ensemble", err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) UpdateEnsemble(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var p models.EnsemblePatch
	if !decodeBody(w, r, &p) {
		return
	}
	e, err := h.svc.UpdateEnsemble(r.Context(), id, p)
	if err != nil {
		writeError(w, r, "update ensemble", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEnsemble(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteEnsemble(r.Context(), id); err != nil {
		writeError(w, r, "delete ensemble", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
