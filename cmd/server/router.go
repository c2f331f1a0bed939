package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/handler"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/middleware"
)

func setupRouter(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/scheduler/start", h.StartScheduler)
		r.Post("/scheduler/stop", h.StopScheduler)

		// Everything below is tenant-scoped.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Tenant)

			r.Post("/contacts", h.CreateContact)
			r.Get("/contacts", h.ListContacts)

			r.Post("/templates", h.CreateTemplate)
			r.Get("/templates", h.ListTemplates)

			r.Post("/campaigns", h.CreateCampaign)
			r.Get("/campaigns", h.ListCampaigns)
			r.Get("/campaigns/{campaignID}", h.GetCampaign)
			r.Post("/campaigns/{campaignID}/snapshot", h.BuildSnapshot)
			r.Post("/campaigns/{campaignID}/confirm", h.ConfirmCampaign)
			r.Post("/campaigns/{campaignID}/schedule", h.ScheduleCampaign)
			r.Post("/campaigns/{campaignID}/send", h.SendCampaign)
			r.Get("/campaigns/{campaignID}/recipients", h.ListRecipients)

			r.Get("/messages", h.ListMessages)
		})
	})

	return r
}
