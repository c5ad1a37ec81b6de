package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/iudanet/gophsocial/internal/server/handlers"
	"github.com/iudanet/gophsocial/internal/server/middleware"
	"github.com/iudanet/gophsocial/internal/server/service"
)

// APIPrefix базовый путь HTTP API
const APIPrefix = "/api/v1"

// Policy описывает, нужна ли маршруту аутентифицированная личность
type Policy int

const (
	// Public доступен анонимно
	Public Policy = iota
	// RequiresIdentity отвечает 401 без валидного токена
	RequiresIdentity
)

func (p Policy) String() string {
	switch p {
	case Public:
		return "public"
	case RequiresIdentity:
		return "requires_identity"
	default:
		return "unknown"
	}
}

// Route одна запись таблицы маршрутов
type Route struct {
	Handler     http.HandlerFunc
	Method      string
	Pattern     string
	Policy      Policy
	RateLimited bool
}

// RouterDeps зависимости, из которых собирается роутер
type RouterDeps struct {
	Logger      *slog.Logger
	Services    *service.Services
	Tokens      middleware.TokenValidator
	Users       middleware.UserLookup
	DB          handlers.Pinger
	AuthLimiter *middleware.RateLimiter
	Metrics     *middleware.Metrics
	Version     string
}

// Routes возвращает таблицу всех маршрутов API (пути относительно APIPrefix)
func Routes(d RouterDeps) []Route {
	auth := handlers.NewAuthHandler(d.Logger, d.Services.Auth)
	users := handlers.NewUserHandler(d.Logger, d.Services.Users)
	follows := handlers.NewFollowHandler(d.Logger, d.Services.Follows)
	posts := handlers.NewPostHandler(d.Logger, d.Services.Posts)
	likes := handlers.NewLikeHandler(d.Logger, d.Services.Likes)
	comments := handlers.NewCommentHandler(d.Logger, d.Services.Comments)

	return []Route{
		// auth
		{Method: http.MethodPost, Pattern: "/auth/register", Handler: auth.Register, Policy: Public, RateLimited: true},
		{Method: http.MethodPost, Pattern: "/auth/login", Handler: auth.Login, Policy: Public, RateLimited: true},
		{Method: http.MethodPost, Pattern: "/auth/validate", Handler: auth.Validate, Policy: Public},

		// users
		{Method: http.MethodGet, Pattern: "/users/exists/username/{username}", Handler: users.UsernameExists, Policy: Public},
		{Method: http.MethodGet, Pattern: "/users/exists/email/{email}", Handler: users.EmailExists, Policy: Public},
		{Method: http.MethodGet, Pattern: "/users/me", Handler: users.Me, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/users", Handler: users.List, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/users/search", Handler: users.Search, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/users/username/{username}", Handler: users.GetByUsername, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/users/email/{email}", Handler: users.GetByEmail, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/users/{id}", Handler: users.Get, Policy: RequiresIdentity},
		{Method: http.MethodPut, Pattern: "/users/{id}", Handler: users.Update, Policy: RequiresIdentity},
		{Method: http.MethodDelete, Pattern: "/users/{id}", Handler: users.Delete, Policy: RequiresIdentity},

		// follows
		{Method: http.MethodPost, Pattern: "/follows/{id}", Handler: follows.Follow, Policy: RequiresIdentity},
		{Method: http.MethodDelete, Pattern: "/follows/{id}", Handler: follows.Unfollow, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/follows/{id}/following", Handler: follows.Following, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/follows/{id}/following/count", Handler: follows.FollowingCount, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/follows/{id}/following/{other}", Handler: follows.IsFollowing, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/follows/{id}/followers", Handler: follows.Followers, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/follows/{id}/followers/count", Handler: follows.FollowersCount, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/follows/{id}/mutual/{other}", Handler: follows.Mutual, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/follows/{id}/suggestions", Handler: follows.Suggestions, Policy: RequiresIdentity},

		// posts
		{Method: http.MethodGet, Pattern: "/posts/feed", Handler: posts.Feed, Policy: RequiresIdentity},
		{Method: http.MethodPost, Pattern: "/posts", Handler: posts.Create, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/posts", Handler: posts.List, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/posts/search", Handler: posts.Search, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/posts/range", Handler: posts.Range, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/posts/user/{id}", Handler: posts.ListByUser, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/posts/user/{id}/count", Handler: posts.CountByUser, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/posts/{id}", Handler: posts.Get, Policy: RequiresIdentity},
		{Method: http.MethodPut, Pattern: "/posts/{id}", Handler: posts.Update, Policy: RequiresIdentity},
		{Method: http.MethodDelete, Pattern: "/posts/{id}", Handler: posts.Delete, Policy: RequiresIdentity},

		// likes
		{Method: http.MethodGet, Pattern: "/likes/most-liked", Handler: likes.MostLiked, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/likes/post/{id}", Handler: likes.ForPost, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/likes/post/{id}/count", Handler: likes.CountForPost, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/likes/user/{id}", Handler: likes.ByUser, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/likes/user/{id}/count", Handler: likes.CountByUser, Policy: RequiresIdentity},
		{Method: http.MethodPost, Pattern: "/likes/{id}", Handler: likes.Like, Policy: RequiresIdentity},
		{Method: http.MethodDelete, Pattern: "/likes/{id}", Handler: likes.Unlike, Policy: RequiresIdentity},
		{Method: http.MethodPost, Pattern: "/likes/{id}/toggle", Handler: likes.Toggle, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/likes/{id}/status", Handler: likes.Status, Policy: RequiresIdentity},

		// comments
		{Method: http.MethodPost, Pattern: "/comments/post/{id}", Handler: comments.Create, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/comments/post/{id}", Handler: comments.ForPost, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/comments/post/{id}/count", Handler: comments.CountForPost, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/comments/user/{id}", Handler: comments.ByUser, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/comments/search", Handler: comments.Search, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/comments/recent", Handler: comments.Recent, Policy: RequiresIdentity},
		{Method: http.MethodGet, Pattern: "/comments/{id}", Handler: comments.Get, Policy: RequiresIdentity},
		{Method: http.MethodPut, Pattern: "/comments/{id}", Handler: comments.Update, Policy: RequiresIdentity},
		{Method: http.MethodDelete, Pattern: "/comments/{id}", Handler: comments.Delete, Policy: RequiresIdentity},
	}
}

// NewRouter собирает chi роутер: глобальные middleware, таблица маршрутов,
// /health и /metrics. Политика маршрута применяется здесь, а не в handlers.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RecoveryMiddleware(d.Logger))
	r.Use(middleware.Authenticate(d.Logger, d.Tokens, d.Users))
	r.Use(middleware.LoggingWithSkip(d.Logger, []string{"/health", "/metrics"}))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}

	r.NotFound(handlers.NotFound(d.Logger))
	r.MethodNotAllowed(handlers.MethodNotAllowed(d.Logger))

	health := handlers.NewHealthHandler(d.Logger, d.DB, d.Version)
	r.Get("/health", health.Health)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Route(APIPrefix, func(api chi.Router) {
		api.Get("/health", health.Health)
		for _, rt := range Routes(d) {
			api.Method(rt.Method, rt.Pattern, guard(rt, d.AuthLimiter))
		}
	})

	return r
}

// guard оборачивает handler согласно политике маршрута
func guard(rt Route, limiter *middleware.RateLimiter) http.Handler {
	var h http.Handler = rt.Handler
	if rt.Policy == RequiresIdentity {
		h = middleware.RequireIdentity(h)
	}
	if rt.RateLimited && limiter != nil {
		h = limiter.Handler(h)
	}
	return h
}
