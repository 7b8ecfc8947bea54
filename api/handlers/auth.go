package handlers

import (
	"net/http"

	services "github.com/engineeringstudentstrieste/est-services/api/services"
)

// Login handles POST /auth/login.
func Login(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		svc.LoginService(w, r)
	}
}

// Register handles POST /auth/register.
func Register(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		svc.RegisterService(w, r)
	}
}

// Me handles GET /auth/me.
func Me(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		svc.MeService(w, r)
	}
}

// Logout handles POST /auth/logout.
func Logout(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		svc.LogoutService(w, r)
	}
}
