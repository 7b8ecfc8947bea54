package services

import (
	"net/http"

	"github.com/engineeringstudentstrieste/est-services/models"
	"github.com/rs/zerolog"
)

// HealthText is served on the API root.
const HealthText = "API REST Engineering Students Trieste"

// HealthService answers the root route. It never touches the database.
func (svc *Service) HealthService(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(HealthText))
}

// StatusService reports whether the database is reachable.
func (svc *Service) StatusService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	status := models.HealthResponse{Status: "ok", Database: "up"}
	if err := svc.DB.Ping(r.Context()); err != nil {
		logger.Warn().Err(err).Msg("Database ping failed")
		status.Database = "down"
	}

	WriteResponse(w, http.StatusOK, status)
}

// ContentService returns the static site content.
func (svc *Service) ContentService(w http.ResponseWriter, r *http.Request) {
	WriteResponse(w, http.StatusOK, svc.Content)
}
