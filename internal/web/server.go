package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"checkdev-site/internal/auth"
	"checkdev-site/internal/home"
	"checkdev-site/internal/logger"
	"checkdev-site/internal/metrics"
	"checkdev-site/internal/user"
	"checkdev-site/internal/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type HomeBuilder interface {
	BuildHomeView(ctx context.Context, req home.RequestContext) (*home.ViewModel, error)
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, user.UserInfo, error)
}

// Server serves the site pages and their JSON counterparts.
type Server struct {
	router    *mux.Router
	home      HomeBuilder
	users     Authenticator
	templates *template.Template
	stats     *metrics.PageStats
}

func NewServer(homeBuilder HomeBuilder, users Authenticator) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		router:    mux.NewRouter(),
		home:      homeBuilder,
		users:     users,
		templates: tmpl,
		stats:     &metrics.PageStats{},
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.HandleFunc("/", s.index).Methods(http.MethodGet)
	s.router.HandleFunc("/index", s.index).Methods(http.MethodGet)
	s.router.HandleFunc("/api/index", s.indexJSON).Methods(http.MethodGet)
	s.router.HandleFunc("/login", s.login).Methods(http.MethodPost)
	s.router.HandleFunc("/logout", s.logout).Methods(http.MethodPost)
	s.router.HandleFunc("/health", s.health).Methods(http.MethodGet)
}

// ServeHTTP implements the http.Handler interface
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func requestContext(r *http.Request) home.RequestContext {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return home.ForUser(userID)
	}
	return home.Anonymous()
}

func (s *Server) buildHomeView(r *http.Request) (*home.ViewModel, error) {
	timer := metrics.StartTimer()
	vm, err := s.home.BuildHomeView(r.Context(), requestContext(r))
	if err != nil {
		s.stats.Failed.Inc()
		return nil, err
	}
	s.stats.ObserveBuild(timer.Duration())
	return vm, nil
}

// index handles GET / and GET /index
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	vm, err := s.buildHomeView(r)
	if err != nil {
		log.Error("home page unavailable", zap.Error(err))
		s.renderError(w, r)
		return
	}

	if err := s.render(w, http.StatusOK, home.ViewName, vm.Attributes()); err != nil {
		s.stats.Failed.Inc()
		log.Error("failed to render home page", zap.Error(err))
		s.renderError(w, r)
		return
	}
	s.stats.Rendered.Inc()
}

// indexJSON handles GET /api/index
func (s *Server) indexJSON(w http.ResponseWriter, r *http.Request) {
	vm, err := s.buildHomeView(r)
	if err != nil {
		logger.FromCtx(r.Context()).Error("home view unavailable", zap.Error(err))
		utils.WriteJSONError(w, "home page is temporarily unavailable", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, vm)
	s.stats.Rendered.Inc()
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"requestID": logger.RequestIDFrom(r.Context())}
	if err := s.render(w, http.StatusInternalServerError, "error", data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func readCredentials(r *http.Request) (credentials, error) {
	var c credentials
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := json.NewDecoder(r.Body).Decode(&c)
		return c, err
	}
	if err := r.ParseForm(); err != nil {
		return c, err
	}
	c.Email = r.PostFormValue("email")
	c.Password = r.PostFormValue("password")
	return c, nil
}

// login handles POST /login with a form or a JSON body. Forms are redirected
// back to the home page; JSON callers receive the token.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	c, err := readCredentials(r)
	if err != nil || c.Email == "" || c.Password == "" {
		utils.WriteJSONError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	token, info, err := s.users.Login(r.Context(), c.Email, c.Password)
	if errors.Is(err, user.ErrInvalidCredentials) {
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
		return
	}
	if err != nil {
		logger.FromCtx(r.Context()).Error("login failed", zap.Error(err))
		utils.WriteJSONError(w, "login is temporarily unavailable", http.StatusInternalServerError)
		return
	}

	auth.SetAccessToken(w, token, user.TokenTTL)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		utils.WriteJSON(w, http.StatusOK, map[string]any{"token": token, "user": info})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// logout handles POST /logout
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearAccessToken(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// health handles GET /health
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "OK",
		"home":   s.stats.Snapshot(),
	})
}
