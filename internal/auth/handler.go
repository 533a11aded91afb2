package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// AuthTokenHeader carries the session token on authenticated requests.
const AuthTokenHeader = "X-LIFTLOG-TOKEN"

type Handler struct {
	service *Service
	metrics *metrics.Manager
}

func NewHandler(service *Service, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metricsManager,
	}
}

// SetupRoutes registers login/logout. The login route is wrapped with the
// given rate limiting middleware.
func (handler *Handler) SetupRoutes(
	router *mux.Router,
	loginRateLimit func(next http.Handler) http.Handler,
) {
	router.Handle(
		"/login",
		loginRateLimit(http.HandlerFunc(handler.HandleLogin)),
	).Methods("POST", "OPTIONS").Name("login")
	router.HandleFunc("/logout", handler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
}

type LoginRequest struct {
	// IDToken is the raw OIDC ID token obtained by the client from the
	// external identity provider.
	IDToken string `json:"idToken"`
	// Email + AppSecret are the alternative mobile app login credentials.
	Email     string `json:"email"`
	AppSecret string `json:"appSecret"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID int    `json:"userId"`
	Email  string `json:"email"`
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}

	var (
		token string
		user  *LoginResponse
	)
	switch {
	case loginReq.IDToken != "":
		t, u, err := handler.service.Login(ctx, loginReq.IDToken, time.Now())
		if err != nil {
			handler.writeLoginErr(w, err)
			return
		}
		token, user = t, &LoginResponse{UserID: u.ID, Email: u.Email}
	case loginReq.Email != "" && loginReq.AppSecret != "":
		t, u, err := handler.service.LoginWithAppSecret(ctx, loginReq.Email, loginReq.AppSecret, time.Now())
		if err != nil {
			handler.writeLoginErr(w, err)
			return
		}
		token, user = t, &LoginResponse{UserID: u.ID, Email: u.Email}
	default:
		http.Error(w, "error, missing credentials", http.StatusBadRequest)
		return
	}

	user.Token = token
	respJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("login, marshal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterLogins.Inc()
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) writeLoginErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidIDToken), errors.Is(err, ErrWrongAppSecret):
		log.Tracef("failed login attempt: %s", err)
		http.Error(w, "login failed", http.StatusUnauthorized)
	default:
		log.Errorf("login error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(AuthTokenHeader)
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := handler.service.Logout(r.Context(), token); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "no can do", http.StatusUnauthorized)
			return
		}
		log.Errorf("logout: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}
