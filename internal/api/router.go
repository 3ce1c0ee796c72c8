package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/teamboard/teamboard/internal/api/handler"
	"github.com/teamboard/teamboard/internal/api/middleware"
	"github.com/teamboard/teamboard/internal/api/response"
	"github.com/teamboard/teamboard/internal/auth"
	"github.com/teamboard/teamboard/internal/comment"
	"github.com/teamboard/teamboard/internal/config"
	"github.com/teamboard/teamboard/internal/discussion"
	"github.com/teamboard/teamboard/internal/team"
	"github.com/teamboard/teamboard/internal/user"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Config      *config.Config
	AuthService *auth.Service
	DBPinger    handler.Pinger
	Users       user.Repository
	Teams       team.Repository
	Discussions discussion.Repository
	Comments    comment.Repository
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.Config.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(deps.Config.RateLimit, deps.Config.RateLimitWindow))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Err(w, http.StatusNotFound, "Route not found")
	})

	healthHandler := handler.NewHealthHandler(deps.DBPinger)
	r.Get("/healthcheck", healthHandler.Check)

	authHandler := handler.NewAuthHandler(deps.Config, deps.AuthService, deps.Users, deps.Teams)
	teamHandler := handler.NewTeamHandler(deps.Teams)
	userHandler := handler.NewUserHandler(deps.Users, deps.AuthService)
	discussionHandler := handler.NewDiscussionHandler(deps.Discussions, deps.Users)
	commentHandler := handler.NewCommentHandler(deps.Comments, deps.Discussions, deps.Users)

	requireAuth := middleware.Auth(deps.AuthService)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.With(requireAuth).Get("/me", authHandler.Me)
	})

	r.Get("/teams", teamHandler.List)

	r.Route("/users", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", userHandler.List)
		r.Patch("/profile", userHandler.UpdateProfile)
		r.Get("/{id}", userHandler.Get)
		r.With(middleware.RequireAdmin).Post("/", userHandler.Create)
		r.With(middleware.RequireAdmin).Put("/{id}", userHandler.Update)
		r.With(middleware.RequireAdmin).Put("/{id}/role", userHandler.UpdateRole)
		r.With(middleware.RequireAdmin).Delete("/{id}", userHandler.Delete)
	})

	r.Route("/discussions", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", discussionHandler.List)
		r.Get("/{id}", discussionHandler.Get)
		r.With(middleware.RequireAdmin).Post("/", discussionHandler.Create)
		r.With(middleware.RequireAdmin).Patch("/{id}", discussionHandler.Update)
		r.With(middleware.RequireAdmin).Delete("/{id}", discussionHandler.Delete)
	})

	r.Route("/comments", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", commentHandler.List)
		r.Post("/", commentHandler.Create)
		r.Delete("/{id}", commentHandler.Delete)
	})

	return r
}
