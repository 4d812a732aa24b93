package routes

import (
	"net/http"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/handlers"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	Team          *handlers.TeamHandler
	Participant   *handlers.ParticipantHandler
	Championship  *handlers.ChampionshipHandler
	Subscription  *handlers.SubscriptionHandler
	Match         *handlers.MatchHandler
	Bracket       *handlers.BracketHandler
	Statistics    *handlers.StatisticsHandler
	WebSocket     *handlers.WebSocketHandler
	Authenticator *middleware.Authenticator
}

func SetupRoutes(h Handlers) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "docs/swagger.json")
	})
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)
	router.With(h.Authenticator.Authenticate).Post("/auth/logout", h.Auth.Logout)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.List)
		r.Get("/{id}", h.Team.GetByID)
		r.Get("/{teamID}/participants", h.Participant.ListByTeam)

		r.Group(func(r chi.Router) {
			r.Use(h.Authenticator.Authenticate)

			r.Post("/", h.Team.Create)
			r.Put("/{id}", h.Team.Update)
			r.Delete("/{id}", h.Team.Delete)
			r.Put("/{id}/logo", h.Team.UploadLogo)
			r.Post("/{teamID}/participants", h.Participant.Create)
		})
	})

	router.Route("/participants", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.Authenticator.Authenticate)

			r.Put("/{id}", h.Participant.Update)
			r.Delete("/{id}", h.Participant.Delete)
		})
	})

	router.Route("/championships", func(r chi.Router) {
		r.Get("/", h.Championship.List)
		r.Get("/{id}", h.Championship.GetByID)
		r.Get("/{championshipID}/subscriptions", h.Subscription.ListByChampionship)
		r.Get("/{championshipID}/matches", h.Match.ListByChampionship)
		r.Get("/{championshipID}/statistics", h.Statistics.Standings)

		r.Group(func(r chi.Router) {
			r.Use(h.Authenticator.Authenticate)

			r.Post("/", h.Championship.Create)
			r.Put("/{id}", h.Championship.Update)
			r.Delete("/{id}", h.Championship.Delete)
			r.Put("/{id}/logo", h.Championship.UploadLogo)

			r.Post("/{championshipID}/subscriptions", h.Subscription.Subscribe)
			r.Delete("/{championshipID}/subscriptions/{teamID}", h.Subscription.Unsubscribe)

			r.Post("/{championshipID}/generate-bracket", h.Bracket.GenerateBracket)
			r.Post("/{championshipID}/generate-next-phase", h.Bracket.GenerateNextPhase)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{id}", h.Match.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(h.Authenticator.Authenticate)

			r.Put("/{id}/result", h.Match.ReportResult)
		})
	})

	router.Get("/ws/championships/{championshipID}", h.WebSocket.ServeWs)

	return router
}
