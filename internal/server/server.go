// Package server exposes the store over a small local HTTP API, the
// application-facing surface of the data layer.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/config"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/store"
)

type Server struct {
	router *chi.Mux
	config config.Config
}

func New(recipeStore *store.Store, cfg config.Config) *Server {
	handler := newHandler(recipeStore)

	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/recipes", handler.ListRecipes)
		r.Get("/recipes/random", handler.RandomRecipes)
		r.Get("/ingredients", handler.ListIngredients)
		r.Get("/tags", handler.ListTags)
		r.Get("/shopping", handler.ListShopping)
		r.Post("/shopping/recipe/{id}", handler.AddRecipeToShopping)
		r.Post("/shopping/{id}/purchase", handler.PurchaseShoppingItem)
		r.Delete("/shopping", handler.ResetShoppingList)
	})

	return &Server{router: router, config: cfg}
}

func (server *Server) Start() error {
	address := ":" + server.config.Port
	slog.Info("starting server", "address", address)
	return http.ListenAndServe(address, server.router)
}

func (server *Server) Router() http.Handler {
	return server.router
}
