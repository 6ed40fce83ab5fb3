package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/petdesk/petdesk/internal/api/middleware"
)

// NewRouter assembles the API router from the given handlers.
func NewRouter(
	pets *PetHandler,
	shop *ShopHandler,
	achievements *AchievementHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	r.Route("/pets", func(r chi.Router) {
		r.Get("/", pets.ListPets)
		r.Post("/", pets.AdoptPet)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", pets.GetPet)
			r.Delete("/", pets.ReleasePet)
			r.Post("/rename", pets.RenamePet)
			r.Post("/activate", pets.ActivatePet)
			r.Post("/feed", pets.FeedPet)
			r.Post("/play", pets.PlayWithPet)
			r.Post("/use-item", pets.UseItem)
			r.Post("/experience", pets.GrantExperience)
		})
	})

	r.Route("/shop", func(r chi.Router) {
		r.Get("/catalog", shop.GetCatalog)
		r.Post("/purchase", shop.Purchase)
		r.Post("/pets", shop.PurchasePet)
		r.Post("/charm", shop.ActivateCharm)
	})

	r.Get("/balance", shop.GetBalance)
	r.Post("/credits", shop.EarnCredits)
	r.Get("/inventory", shop.GetInventory)

	r.Route("/achievements", func(r chi.Router) {
		r.Get("/", achievements.ListAchievements)
		r.Get("/progress", achievements.GetProgress)
	})

	return r
}
