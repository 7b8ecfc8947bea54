package site

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/engineeringstudentstrieste/est-services/api/middleware"
	"github.com/engineeringstudentstrieste/est-services/internal/apiclient"
	"github.com/engineeringstudentstrieste/est-services/internal/content"
	"github.com/engineeringstudentstrieste/est-services/internal/session"
	"github.com/engineeringstudentstrieste/est-services/models"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

// User-facing messages.
const (
	MissingCredentialsMessage = "Inserisci email e password per accedere."
	ContactSentMessage        = "Grazie! Ti risponderemo entro 48 ore."
	ContactFailedMessage      = "Invio non riuscito, riprova più tardi o scrivici via email."
	ContactInvalidMessage     = "Compila nome, email e messaggio."
)

const (
	loginErrorFlash = "login_error"
	noticeFlash     = "notice"
)

// API is what the site needs from the association API.
type API interface {
	session.AuthAPI
	SendContact(ctx context.Context, req models.ContactRequest) (*models.ContactResponse, error)
}

// Server renders the site and drives the session stub for each visitor.
type Server struct {
	Renderer   *Renderer
	Content    *content.Site
	API        API
	Store      sessions.Store
	CookieName string
	now        func() time.Time
}

// NewServer builds a site server whose sessions are signed with secret.
func NewServer(site *content.Site, api API, secret []byte, cookieName string) (*Server, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Server{
		Renderer:   renderer,
		Content:    site,
		API:        api,
		Store:      store,
		CookieName: cookieName,
		now:        time.Now,
	}, nil
}

// Handler returns the site routes.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.WithLogger)

	static, _ := fs.Sub(staticFS, "static")
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static)))).Methods(http.MethodGet)

	r.HandleFunc("/", s.index).Methods(http.MethodGet)
	r.HandleFunc("/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.logout).Methods(http.MethodPost)
	r.HandleFunc("/contact", s.contact).Methods(http.MethodPost)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	return r
}

// session returns the visitor's cookie session. A cookie that fails to
// decode yields a fresh session.
func (s *Server) session(r *http.Request) *sessions.Session {
	sess, err := s.Store.Get(r, s.CookieName)
	if err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("discarding unreadable session cookie")
	}
	return sess
}

func (s *Server) manager(sess *sessions.Session) *session.Manager {
	return session.NewManager(s.API, CookieStorage{Session: sess})
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	sess := s.session(r)
	member, err := s.manager(sess).Init(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("failed to restore session")
	}

	page := Page{
		Content:    s.Content,
		Year:       s.now().Year(),
		Member:     member,
		LoginError: flash(sess, loginErrorFlash),
		Notice:     flash(sess, noticeFlash),
	}

	if err := sess.Save(r, w); err != nil {
		logger.Error().Err(err).Msg("failed to save session")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.Renderer.Render(w, page); err != nil {
		logger.Error().Err(err).Msg("failed to render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sess := s.session(r)
	_, err := s.manager(sess).Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if errors.Is(err, session.ErrMissingCredentials) {
		sess.AddFlash(MissingCredentialsMessage, loginErrorFlash)
	} else if err != nil {
		logger.Error().Err(err).Msg("login failed")
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	s.saveAndRedirect(w, r, sess, "/")
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	sess := s.session(r)
	if err := s.manager(sess).Logout(r.Context()); err != nil {
		logger.Error().Err(err).Msg("logout failed")
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	s.saveAndRedirect(w, r, sess, "/")
}

func (s *Server) contact(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	req := models.ContactRequest{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}

	sess := s.session(r)
	switch {
	case req.Name == "" || req.Email == "" || req.Message == "":
		sess.AddFlash(ContactInvalidMessage, noticeFlash)
	default:
		if _, err := s.API.SendContact(r.Context(), req); err != nil {
			logger.Warn().Err(err).Msg("failed to send contact message")
			var httpErr *apiclient.HTTPError
			if errors.As(err, &httpErr) && httpErr.Status == http.StatusBadRequest {
				sess.AddFlash(ContactInvalidMessage, noticeFlash)
			} else {
				sess.AddFlash(ContactFailedMessage, noticeFlash)
			}
		} else {
			sess.AddFlash(ContactSentMessage, noticeFlash)
		}
	}

	s.saveAndRedirect(w, r, sess, "/#contatti")
}

func (s *Server) saveAndRedirect(w http.ResponseWriter, r *http.Request, sess *sessions.Session, to string) {
	if err := sess.Save(r, w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to save session")
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// flash pops the first flash message stored under key.
func flash(sess *sessions.Session, key string) string {
	for _, f := range sess.Flashes(key) {
		if msg, ok := f.(string); ok {
			return msg
		}
	}
	return ""
}
