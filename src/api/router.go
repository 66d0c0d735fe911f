package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paisa-server/src/handlers"
	"paisa-server/src/middleware"
	"paisa-server/src/util"
)

func NewRouter(pool *pgxpool.Pool) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		util.WriteSuccess(w, http.StatusOK, "Server is healthy", nil)
	})

	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Post("/auth/register", handlers.Register(pool))
		r.Post("/auth/login", handlers.Login(pool))
		r.Post("/auth/refresh", handlers.Refresh(pool))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware).Group(func(r chi.Router) {
			r.Post("/auth/logout", handlers.Logout(pool))
			r.Get("/auth/me", handlers.Me(pool))

			// Categories
			r.Post("/categories", handlers.CreateCategory(pool))
			r.Get("/categories", handlers.GetAllCategories(pool))
			r.Get("/categories/{category_id}", handlers.GetCategoryByID(pool))
			r.Put("/categories/{category_id}", handlers.UpdateCategory(pool))
			r.Delete("/categories/{category_id}", handlers.DeleteCategory(pool))

			// Sources
			r.Post("/sources", handlers.CreateSource(pool))
			r.Get("/sources", handlers.GetAllSources(pool))
			r.Get("/sources/{source_id}", handlers.GetSourceByID(pool))
			r.Put("/sources/{source_id}", handlers.UpdateSource(pool))
			r.Delete("/sources/{source_id}", handlers.DeleteSource(pool))

			// Transactions
			r.Post("/transactions", handlers.CreateTransaction(pool))
			r.Get("/transactions", handlers.GetAllTransactions(pool))
			r.Get("/transactions/stats/summary", handlers.GetTransactionStats(pool))
			r.Get("/transactions/{transaction_id}", handlers.GetTransactionByID(pool))
			r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(pool))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(pool))
		})
	})

	// Unknown routes still answer with the envelope.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		util.WriteError(w, http.StatusNotFound, "Route not found: "+r.Method+" "+r.URL.Path)
	})

	return r
}
