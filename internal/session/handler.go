package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/psicogestion/practice-api/pkg/logging"
)

// Login modes accepted by the simulated sign-in.
const (
	ModeGoogle = "google"
	ModeDemo   = "demo"
)

// Handler serves the auth endpoints. Sign-in is simulated: no identity
// provider is contacted, the profile is fabricated from the chosen mode.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates a session handler.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes mounts the auth endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.login)
	r.Post("/auth/logout", h.logout)
	r.Get("/auth/me", h.me)
}

type loginRequest struct {
	Mode string `json:"mode"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var profile UserProfile
	switch req.Mode {
	case ModeGoogle:
		profile = UserProfile{
			Name:    "Usuario Google Simulado",
			Email:   "usuario@psicogestion.ai",
			Picture: "https://ui-avatars.com/api/?name=Usuario+Google",
			Sub:     "user-123",
		}
	case ModeDemo:
		profile = UserProfile{
			Name:  "Usuario Demo",
			Email: "usuario@psicogestion.ai",
			Sub:   "user-123",
		}
	default:
		http.Error(w, "unknown login mode", http.StatusBadRequest)
		return
	}

	if err := h.store.Save(r.Context(), profile); err != nil {
		h.logger.Error("failed to save session", "error", err)
		http.Error(w, "failed to save session", http.StatusInternalServerError)
		return
	}

	h.logger.Info("session started", "mode", req.Mode)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(profile)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		h.logger.Error("failed to clear session", "error", err)
		http.Error(w, "failed to clear session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.store.Load(r.Context())
	if errors.Is(err, ErrNoSession) {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.logger.Error("failed to load session", "error", err)
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(profile)
}

// RequireSession rejects requests while nobody is signed in and attaches the
// profile to the request context otherwise.
func RequireSession(store Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, err := store.Load(r.Context())
			if err != nil {
				http.Error(w, "not signed in", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), profile)))
		})
	}
}
