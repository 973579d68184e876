package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spiritsvault/spirits-vault-backend/internal/handlers"
)

// SetupRoutes registers the API routes. requireAuth wraps the routes that
// need an authenticated user.
func SetupRoutes(
	r *chi.Mux,
	auth *handlers.AuthHandler,
	users *handlers.UserHandler,
	spirits *handlers.SpiritHandler,
	posts *handlers.PostHandler,
	requireAuth func(http.Handler) http.Handler,
) {
	// Auth routes
	r.Post("/api/auth/register", auth.Register)
	r.Post("/api/auth/login", auth.Login)

	// User profile and collection routes
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/api/users/profile", users.GetProfile)
		r.Put("/api/users/profile", users.UpdateProfile)
		r.Get("/api/users/collection", users.GetCollection)
		r.Post("/api/users/collection", users.AddToCollection)
		r.Delete("/api/users/collection/{spiritId}", users.RemoveFromCollection)
	})

	// Spirit catalog routes (reads are public)
	r.Get("/api/spirits", spirits.List)
	r.Get("/api/spirits/{spiritId}", spirits.Get)
	r.With(requireAuth).Post("/api/spirits", spirits.Create)

	// Post feed routes
	r.Get("/api/posts", posts.List)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/api/posts", posts.Create)
		r.Post("/api/posts/{postId}/cheers", posts.Cheer)
		r.Delete("/api/posts/{postId}/cheers", posts.Uncheer)
		r.Post("/api/posts/{postId}/comments", posts.Comment)
	})
}
