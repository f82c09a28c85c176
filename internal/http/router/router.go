package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/inventory-manager/internal/http/handlers"
	mw "github.com/rogerio-castellano/inventory-manager/internal/http/middleware"
	rl "github.com/rogerio-castellano/inventory-manager/internal/http/rate_limiter"
)

type StoreOptions struct {
	// AuthSecret enables bearer token checks on every product route when set.
	AuthSecret []byte
	// Limiter throttles clients per IP when set.
	Limiter *rl.Limiter
}

// NewStoreRouter serves the product store API.
func NewStoreRouter(opts StoreOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	if opts.Limiter != nil {
		r.Use(opts.Limiter.Middleware)
	}

	r.Route("/api/products", func(r chi.Router) {
		if len(opts.AuthSecret) > 0 {
			r.Use(mw.Auth(opts.AuthSecret))
		}
		r.Get("/", handlers.GetProductsHandler)
		r.Post("/", handlers.CreateProductHandler)
		r.Get("/{id}", handlers.GetProductByIDHandler)
		r.Put("/{id}", handlers.UpdateProductHandler)
		r.Delete("/{id}", handlers.DeleteProductHandler)
	})
	return r
}

// NewConsoleRouter serves the inventory form and table.
func NewConsoleRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", handlers.GetInventoryHandler)
		r.Post("/edit/{id}", handlers.BeginEditHandler)
		r.Post("/cancel", handlers.CancelEditHandler)
		r.Post("/submit", handlers.SubmitHandler)
		r.Post("/reload", handlers.ReloadHandler)
		r.Delete("/products/{id}", handlers.RemoveProductHandler)
		r.Get("/journal", handlers.GetJournalHandler)
	})
	return r
}
