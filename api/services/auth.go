package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/engineeringstudentstrieste/est-services/api/middleware"
	"github.com/engineeringstudentstrieste/est-services/db"
	"github.com/engineeringstudentstrieste/est-services/internal/authn"
	"github.com/engineeringstudentstrieste/est-services/models"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var errMissingCredentials = errors.New("email and password are required")
var errInvalidCredentials = errors.New("invalid email or password")

// LoginService exchanges an email and password for a member token.
func (svc *Service) LoginService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.Warn().Err(err).Msg("Invalid login payload")
		HandleErrResponse(w, http.StatusBadRequest, fmt.Errorf("invalid request payload"))
		return
	}

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		HandleErrResponse(w, http.StatusBadRequest, errMissingCredentials)
		return
	}

	member, hash, err := svc.DB.GetMemberByEmail(r.Context(), email)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to look up member")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	if member == nil {
		logger.Info().Msg("Login for unknown email")
		HandleErrResponse(w, http.StatusUnauthorized, errInvalidCredentials)
		return
	}

	if err := authn.CheckPassword(hash, req.Password); err != nil {
		logger.Info().Str("member_id", member.ID.String()).Msg("Login with wrong password")
		HandleErrResponse(w, http.StatusUnauthorized, errInvalidCredentials)
		return
	}

	svc.writeToken(w, r, *member, http.StatusOK)
}

// RegisterService creates a member and logs them in.
func (svc *Service) RegisterService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.Warn().Err(err).Msg("Invalid register payload")
		HandleErrResponse(w, http.StatusBadRequest, fmt.Errorf("invalid request payload"))
		return
	}

	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		HandleErrResponse(w, http.StatusBadRequest, validationError(err))
		return
	}

	hash, err := authn.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			HandleErrResponse(w, http.StatusBadRequest, errors.New("invalid request: password is too long"))
			return
		}
		logger.Error().Err(err).Msg("Failed to hash password")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	member, err := svc.DB.CreateMember(r.Context(), req.Email, req.Name, hash)
	if err != nil {
		if errors.Is(err, db.ErrMemberExists) {
			HandleErrResponse(w, http.StatusConflict, err)
			return
		}
		logger.Error().Err(err).Msg("Failed to create member in database")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info().Str("member_id", member.ID.String()).Msg("Member registered")
	svc.writeToken(w, r, *member, http.StatusCreated)
}

// MeService returns the member owning the bearer token.
func (svc *Service) MeService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	memberID, err := claims.MemberID()
	if err != nil {
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	member, err := svc.DB.GetMember(r.Context(), memberID)
	if err != nil {
		logger.Error().Err(err).Str("member_id", memberID.String()).Msg("Database error retrieving member")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	if member == nil {
		logger.Warn().Str("member_id", memberID.String()).Msg("Member not found")
		WriteResponse(w, http.StatusNotFound, nil)
		return
	}

	WriteResponse(w, http.StatusOK, models.MemberResponse{Member: *member})
}

// LogoutService revokes the bearer token until it expires.
func (svc *Service) LogoutService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	if err := svc.Revoker.Revoke(r.Context(), claims.Id, claims.ExpiresAtTime()); err != nil {
		logger.Error().Err(err).Msg("Failed to revoke token")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info().Str("member_id", claims.Subject).Msg("Member logged out")
	WriteResponse(w, http.StatusNoContent, nil)
}

func (svc *Service) writeToken(w http.ResponseWriter, r *http.Request, member models.Member, status int) {
	logger := zerolog.Ctx(r.Context())

	token, claims, err := svc.Tokens.Issue(member)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to issue token")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	WriteResponse(w, status, models.AuthResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAtTime(),
		Member:    member,
	})
}
