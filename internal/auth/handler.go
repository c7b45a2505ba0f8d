package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"meetnote/internal/auth/repository"
	"meetnote/internal/auth/store"
	usermodel "meetnote/internal/user/model"
	"meetnote/pkg/api"
	"meetnote/pkg/logger"
)

// relayedCookies are the session cookies the backend issues; everything else
// in a Set-Cookie response is ignored.
var relayedCookies = map[string]bool{
	"accessToken":  true,
	"refreshToken": true,
	"sessionId":    true,
}

// AuthHandler is the auth relay: it proxies credential exchanges to the
// notes backend and re-issues the backend's session cookies as locally
// scoped ones, so the route guard and later requests can see them.
type AuthHandler struct {
	Repo    *repository.AuthRepository
	Session *store.SessionStore
}

func NewAuthHandler(repo *repository.AuthRepository, session *store.SessionStore) *AuthHandler {
	return &AuthHandler{Repo: repo, Session: session}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.credentialExchange(w, r, h.Repo.Login)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.credentialExchange(w, r, h.Repo.Register)
}

func (h *AuthHandler) credentialExchange(
	w http.ResponseWriter,
	r *http.Request,
	exchange func(ctx context.Context, creds repository.Credentials) (*repository.Session, error),
) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var creds repository.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if creds.Email == "" || creds.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email and password are required"})
		return
	}

	session, err := exchange(r.Context(), creds)
	if err != nil {
		logger.Sugar.Errorf("Handler: Auth exchange failed: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Authentication service unavailable"})
		return
	}

	// mirror the backend verbatim: its status, its cookies, its outcome
	relayCookies(w, session.Cookies)

	if session.User == nil {
		writeJSON(w, session.Status, map[string]string{"error": "Invalid credentials"})
		return
	}

	h.Session.SetUser(session.User)
	writeJSON(w, session.Status, session.User)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := api.WithCookies(r.Context(), r.Header.Get("Cookie"))
	session, err := h.Repo.Logout(ctx)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to log out: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Logout failed"})
		return
	}

	relayCookies(w, session.Cookies)
	h.Session.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// SessionCheck reports whether the forwarded cookies still name a live
// backend session.
func (h *AuthHandler) SessionCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := api.WithCookies(r.Context(), r.Header.Get("Cookie"))
	ok := h.Session.CheckSession(ctx)
	writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := api.WithCookies(r.Context(), r.Header.Get("Cookie"))

	switch r.Method {
	case http.MethodGet:
		me := h.Session.FetchMe(ctx)
		if me == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": h.Session.State().Error})
			return
		}
		writeJSON(w, http.StatusOK, me)

	case http.MethodPatch:
		var form usermodel.UserForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := form.Validate(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		me := h.Session.UpdateMe(ctx, usermodel.UpdateUserInput{Name: &form.Name, Email: &form.Email})
		if me == nil {
			msg := h.Session.State().Error
			logger.Sugar.Errorf("Handler: Failed to update profile: %s", msg)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": msg})
			return
		}
		writeJSON(w, http.StatusOK, me)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// relayCookies re-issues the backend's session cookies scoped to this app,
// keeping expiry so logouts propagate.
func relayCookies(w http.ResponseWriter, cookies []*http.Cookie) {
	for _, c := range cookies {
		if !relayedCookies[c.Name] {
			continue
		}
		http.SetCookie(w, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Expires:  c.Expires,
			MaxAge:   c.MaxAge,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
