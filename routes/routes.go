package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/chessmate-central/docs" // регистрирует swagger-спеку
	"github.com/Dosada05/chessmate-central/handlers"
	"github.com/Dosada05/chessmate-central/metrics"
	"github.com/Dosada05/chessmate-central/middleware"
	"github.com/Dosada05/chessmate-central/services"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Tournament   *handlers.TournamentHandler
	Registration *handlers.RegistrationHandler
	Blog         *handlers.BlogHandler
	Result       *handlers.ResultHandler
	Upload       *handlers.UploadHandler
	WebSocket    *handlers.WebSocketHandler
}

type Options struct {
	// AuthEnabled=false оставляет маршруты организатора открытыми.
	AuthEnabled        bool
	JWTSecret          []byte
	CORSAllowedOrigins []string
	// PublicLimiter ограничивает публичные записи: регистрации и загрузки.
	PublicLimiter *middleware.IPRateLimiter
	Metrics       *metrics.Metrics
	// UploadDir раздаётся под /uploads/, если файлы хранятся локально.
	UploadDir string
}

func SetupRoutes(router *chi.Mux, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
		router.Handle("/metrics", opts.Metrics.Handler())
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if opts.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir)))
		router.Get("/uploads/*", fs.ServeHTTP)
	}

	organizerOnly := func(r chi.Router) {
		if !opts.AuthEnabled {
			return
		}
		r.Use(middleware.Authenticate(opts.JWTSecret))
		r.Use(middleware.Authorize(services.RoleOrganizer))
	}
	rateLimited := func(r chi.Router) {
		if opts.PublicLimiter != nil {
			r.Use(middleware.RateLimit(opts.PublicLimiter))
		}
	}

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		r.Route("/tournaments", func(r chi.Router) {
			// Публичные маршруты для просмотра турниров
			r.Get("/", h.Tournament.ListHandler)
			r.Get("/{tournamentId}", h.Tournament.GetByIDHandler)

			// Защищенные маршруты только для организаторов
			r.Group(func(r chi.Router) {
				organizerOnly(r)
				r.Post("/", h.Tournament.CreateHandler)
				r.Post("/describe", h.Tournament.DescribeHandler)
				r.Put("/{tournamentId}", h.Tournament.UpdateHandler)
				r.Delete("/{tournamentId}", h.Tournament.DeleteHandler)
			})
		})

		r.Route("/registrations", func(r chi.Router) {
			r.Get("/by-tournament/{tournamentId}", h.Registration.ListByTournament)
			r.Group(func(r chi.Router) {
				rateLimited(r)
				r.Post("/", h.Registration.Register)
			})
			r.Group(func(r chi.Router) {
				organizerOnly(r)
				r.Put("/{registrationId}", h.Registration.Update)
				r.Delete("/{registrationId}", h.Registration.Delete)
			})
		})

		r.Route("/blog/posts", func(r chi.Router) {
			r.Get("/", h.Blog.List)
			r.Get("/{slug}", h.Blog.GetBySlug)
			r.Group(func(r chi.Router) {
				organizerOnly(r)
				r.Post("/", h.Blog.Create)
			})
		})

		r.Route("/results/{tournamentId}", func(r chi.Router) {
			r.Get("/", h.Result.Get)
			r.Get("/standings", h.Result.Standings)
			r.Get("/standings.xlsx", h.Result.ExportStandings)
			r.Group(func(r chi.Router) {
				organizerOnly(r)
				r.Post("/", h.Result.Save)
				r.Post("/reconcile", h.Result.Reconcile)
				r.Put("/players/{playerId}/rounds/{round}", h.Result.SetRoundScore)
			})
		})

		r.Group(func(r chi.Router) {
			rateLimited(r)
			r.Post("/upload", h.Upload.Upload)
		})
	})

	router.Get("/ws/tournaments/{tournamentId}", h.WebSocket.ServeWs)
}
