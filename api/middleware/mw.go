package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/engineeringstudentstrieste/est-services/internal/authn"
	"github.com/engineeringstudentstrieste/est-services/internal/revocation"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string
type tokenKey string

const ClaimsKey contextKey = "claims"
const TokenKey tokenKey = "token"

// TokenParser verifies a bearer token. Implemented by authn.TokenIssuer.
type TokenParser interface {
	Parse(token string) (authn.Claims, error)
}

// JWTMiddleware verifies the bearer token and adds its claims to the request context.
func JWTMiddleware(tokens TokenParser, revoker revocation.Revoker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				logger := zerolog.Ctx(r.Context()).With().
					Str("handler", "JWTMiddleware").Logger()

				// Get the Authorization header
				authHeader := r.Header.Get("Authorization")
				if authHeader == "" {
					logger.Debug().Msg("authorization header missing")
					http.Error(w, "authorization header missing",
						http.StatusUnauthorized)
					return
				}

				// Check the Authorization header format
				token := strings.TrimPrefix(authHeader, "Bearer ")
				if token == authHeader || token == "" {
					logger.Warn().Msg("invalid token format")
					http.Error(w, "invalid token format", http.StatusUnauthorized)
					return
				}

				claims, err := tokens.Parse(token)
				if err != nil {
					logger.Warn().Err(err).Msg("invalid bearer jwt token")
					http.Error(w, "invalid bearer jwt token", http.StatusUnauthorized)
					return
				}

				revoked, err := revoker.IsRevoked(r.Context(), claims.Id)
				if err != nil {
					logger.Error().Err(err).Msg("could not check token revocation")
					http.Error(w, "could not verify token", http.StatusInternalServerError)
					return
				}
				if revoked {
					logger.Info().Str("member_id", claims.Subject).Msg("revoked token used")
					http.Error(w, "token has been revoked", http.StatusUnauthorized)
					return
				}

				// Add the token and claims to the context
				ctx := context.WithValue(r.Context(), TokenKey, token)
				ctx = context.WithValue(ctx, ClaimsKey, claims)

				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

// WithLogger adds a logger to the context and logs request information.
func WithLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			logger := log.With().
				Str("host", r.Host).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Str("remote_addr", r.RemoteAddr).
				Time("timestamp", time.Now()).
				Logger()

			logger.Debug().Msg("request received")

			// Add the logger to the context
			ctx := logger.WithContext(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}

// CORS allows the browser front end to call the API from another origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
