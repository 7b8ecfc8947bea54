package api

import (
	"net/http"
	"path"

	"github.com/engineeringstudentstrieste/est-services/api/handlers"
	"github.com/engineeringstudentstrieste/est-services/api/middleware"
	"github.com/engineeringstudentstrieste/est-services/api/services"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter registers every API route on a gorilla/mux router. CORS wraps
// the router itself so preflight requests never reach route matching.
func NewRouter(svc *services.Service) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.WithLogger)

	// Plain-text health check
	r.HandleFunc("/", handlers.Health(svc)).Methods(http.MethodGet)

	// Docs
	if docsPath := svc.Config.DocsPath; docsPath != "" {
		doc.setBasePath(svc.Config.BasePath)
		r.PathPrefix(docsPath).Handler(httpSwagger.Handler(
			httpSwagger.URL(path.Join(docsPath, "/doc.json")),
			httpSwagger.DeepLinking(true),
			httpSwagger.DocExpansion("none"),
			httpSwagger.DomID("swagger-ui"),
		)).Methods(http.MethodGet)
	}

	api := r.PathPrefix(svc.Config.BasePath).Subrouter()

	api.HandleFunc("/health", handlers.Status(svc)).Methods(http.MethodGet)
	api.HandleFunc("/content", handlers.Content(svc)).Methods(http.MethodGet)
	api.HandleFunc("/contact", handlers.Contact(svc)).Methods(http.MethodPost)

	// Auth routes
	api.HandleFunc("/auth/login", handlers.Login(svc)).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", handlers.Register(svc)).Methods(http.MethodPost)

	authed := api.PathPrefix("/auth").Subrouter()
	authed.Use(middleware.JWTMiddleware(svc.Tokens, svc.Revoker))
	authed.HandleFunc("/me", handlers.Me(svc)).Methods(http.MethodGet)
	authed.HandleFunc("/logout", handlers.Logout(svc)).Methods(http.MethodPost)

	return middleware.CORS(svc.Config.CORS.Origins())(r)
}
