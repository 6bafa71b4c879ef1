package api

import (
	"net/http"

	"github.com/starford/maqam/internal/catalog"
	"github.com/starford/maqam/internal/classifier"
	"github.com/starford/maqam/internal/models"
	"github.com/starford/maqam/internal/store"
)

// ReclassifyResponse is returned by the past-status update.
type ReclassifyResponse struct {
	Message string `json:"message" example:"Event statuses updated"`
	store.ReclassifyResult
}

// ListEvents handles GET /api/events.
//
//	@Summary		List events by status
//	@Tags			events
//	@Produce		json
//	@Param			filter_type	query		string	false	"Status filter"	Enums(upcoming, past, all)
//	@Success		200			{array}		models.Event
//	@Failure		400			{object}	errResponse
//	@Router			/events [get]
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	status, err := catalog.ParseEventStatus(r.URL.Query().Get("filter_type"))
	if err != nil {
		writeError(w, r, "list events", err)
		return
	}
	items, err := h.svc.ListEvents(r.Context(), status)
	if err != nil {
		writeError(w, r, "list events", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	e, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		writeError(w, r, "get event", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// CreateEvent handles POST /api/events. is_past is derived from the date when omitted.
//
//	@Summary		Create an event
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.EventInput	true	"Event"
//	@Success		201		{object}	models.Event
//	@Failure		400		{object}	errResponse
//	@Router			/events [post]
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var in models.EventInput
	if !decodeBody(w, r, &in) {
		return
	}
	e, err := h.svc.CreateEvent(r.Context(), in)
	if err != nil {
		writeError(w, r, "create event", err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var p models.EventPatch
	if !decodeBody(w, r, &p) {
		return
	}
	e, err := h.svc.UpdateEvent(r.Context(), id, p)
	if err != nil {
		writeError(w, r, "update event", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteEvent(r.Context(), id); err != nil {
		writeError(w, r, "delete event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdatePastStatus handles POST /api/events/update-past-status.
//
//	@Summary		Reclassify events as past or upcoming
//	@Tags			events
//	@Produce		json
//	@Param			date	query		string	false	"Reference date (YYYY-MM-DD), defaults to today"
//	@Success		200		{object}	ReclassifyResponse
//	@Failure		400		{object}	errResponse
//	@Router			/events/update-past-status [post]
func (h *Handler) UpdatePastStatus(w http.ResponseWriter, r *http.Request) {
	q := queryParams{r: r}
	date := q.Date("date")
	if !q.OK(w) {
		return
	}
	res, err := h.svc.ReclassifyEvents(r.Context(), date, classifier.TriggerAdmin)
	if err != nil {
		writeError(w, r, "update past status", err)
		return
	}
	writeJSON(w, http.StatusOK, ReclassifyResponse{
		Message:          "Event statuses updated",
		ReclassifyResult: res,
	})
}
