package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	authhandler "github.com/mindloom/companion-ai/backend/internal/handler/auth"
	chathandler "github.com/mindloom/companion-ai/backend/internal/handler/chat"
	moodhandler "github.com/mindloom/companion-ai/backend/internal/handler/mood"
	userhandler "github.com/mindloom/companion-ai/backend/internal/handler/user"
	middlewarePkg "github.com/mindloom/companion-ai/backend/internal/middleware"
	authservice "github.com/mindloom/companion-ai/backend/internal/service/auth"
	"github.com/mindloom/companion-ai/backend/internal/service/conversation"
	"github.com/mindloom/companion-ai/backend/internal/storage"
	"github.com/mindloom/companion-ai/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(store *storage.Store, authSvc *authservice.Service, conversations *conversation.Service, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewarePkg.CORS(allowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	authHandler := authhandler.New(authSvc)
	userHandler := userhandler.New(store)
	chatHandler := chathandler.New(conversations, store)
	moodHandler := moodhandler.New(store)

	r.Route("/api", func(api chi.Router) {
		authHandler.RegisterRoutes(api)

		api.Group(func(private chi.Router) {
			private.Use(middlewarePkg.Auth(authSvc))
			userHandler.RegisterRoutes(private)
			chatHandler.RegisterRoutes(private)
			moodHandler.RegisterRoutes(private)
		})
	})

	return r
}
