package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/starford/maqam/internal/catalog"
)

// NewRouter creates a chi router with all API routes, to be mounted at /api.
// photos handles uploads; it is served separately at /photos/{filename}.
func NewRouter(svc *catalog.Service, photos *PhotoHandler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()

	r.Route("/bio", func(r chi.Router) {
		r.Get("/", h.GetBio)
		r.Post("/", h.CreateBio)
		r.Put("/", h.UpdateBio)
		r.Delete("/{id}", h.DeleteBio)
	})

	r.Get("/ensemble", h.GetMainEnsemble)
	r.Put("/ensemble", h.UpdateMainEnsemble)
	r.Route("/ensembles", func(r chi.Router) {
		r.Get("/", h.ListEnsembles)
		r.Post("/", h.CreateEnsemble)
		r.Get("/{id}", h.GetEnsemble)
		r.Put("/{id}", h.UpdateEnsemble)
		r.Delete("/{id}", h.DeleteEnsemble)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.ListEvents)
		r.Post("/", h.CreateEvent)
		r.Post("/update-past-status", h.UpdatePastStatus)
		r.Get("/{id}", h.GetEvent)
		r.Put("/{id}", h.UpdateEvent)
		r.Delete("/{id}", h.DeleteEvent)
	})

	r.Route("/videos", func(r chi.Router) {
		r.Get("/", h.ListVideos)
		r.Post("/", h.CreateVideo)
		r.Get("/featured", h.FeaturedVideos)
		r.Get("/by-event/{eventID}", h.VideosByEvent)
		r.Get("/{id}", h.GetVideo)
		r.Put("/{id}", h.UpdateVideo)
		r.Delete("/{id}", h.DeleteVideo)
	})

	r.Route("/playlists", func(r chi.Router) {
		r.Get("/", h.ListPlaylists)
		r.Get("/featured", h.FeaturedPlaylists)
		r.Get("/{id}", h.GetPlaylist)
	})
	r.Route("/admin/playlists", func(r chi.Router) {
		r.Post("/", h.CreatePlaylist)
		r.Put("/{id}", h.UpdatePlaylist)
		r.Delete("/{id}", h.DeletePlaylist)
	})

	if photos != nil {
		r.Post("/photos", photos.Upload)
		r.Delete("/photos/{filename}", photos.Delete)
	}

	return r
}
