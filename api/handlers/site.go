package handlers

import (
	"net/http"

	services "github.com/engineeringstudentstrieste/est-services/api/services"
)

func Health(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		svc.HealthService(w, r)
	}
}

func Status(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		svc.StatusService(w, r)
	}
}

func Content(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		svc.ContentService(w, r)
	}
}

// Contact handles POST /contact.
func Contact(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		svc.ContactService(w, r)
	}
}
