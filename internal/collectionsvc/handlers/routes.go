package handlers

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		// public routes
		r.Get("/health", h.HealthHandler)

		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		r.Get("/search", h.SearchCards)
		r.Get("/search/{cardId}", h.GetCatalogCard)
		r.Get("/sets", h.GetSets)
		r.Get("/sets/{setId}", h.GetSet)
		r.Get("/rarities", h.GetRarities)
		r.Get("/types", h.GetTypes)
		r.Get("/categories", h.GetCategories)

		r.Get("/u/{username}/collection", h.PublicCollection)
		r.Get("/u/{username}/stats", h.PublicStats)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/auth/me", h.Me)

			r.Post("/collection", h.AddCard)
			r.Get("/collection", h.GetCollection)
			r.Get("/collection/stats", h.GetStats)
			r.Patch("/collection/{id}", h.UpdateCard)
			r.Delete("/collection/{id}", h.DeleteCard)
			r.Post("/collection/refresh-prices", h.RefreshPrices)

			r.Post("/scan", h.ScanCard)
		})
	})
}

func (h *Handler) InitAuth(secret string) {
	h.tokenAuth = jwtauth.New("HS256", []byte(secret), nil)
}
