package repository

import (
	"context"
	"net/http"

	usermodel "meetnote/internal/user/model"
	"meetnote/pkg/api"
	"meetnote/pkg/logger"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the result of an auth exchange: the backend's status and
// cookies are kept raw so the relay handler can mirror them to the browser.
type Session struct {
	Status  int
	User    *usermodel.User
	Cookies []*http.Cookie
}

type AuthRepository struct {
	API *api.Client
}

func NewAuthRepository(client *api.Client) *AuthRepository {
	return &AuthRepository{API: client}
}

func (r *AuthRepository) Login(ctx context.Context, creds Credentials) (*Session, error) {
	return r.exchange(ctx, "/auth/login", creds)
}

func (r *AuthRepository) Register(ctx context.Context, creds Credentials) (*Session, error) {
	return r.exchange(ctx, "/auth/register", creds)
}

// Logout asks the backend to expire the session. The returned cookies carry
// the expirations the relay must pass on.
func (r *AuthRepository) Logout(ctx context.Context) (*Session, error) {
	ex, err := r.API.Exchange(ctx, http.MethodPost, "/auth/logout", api.Options{})
	if err != nil {
		logger.Sugar.Errorf("Failed to log out: %v", err)
		return nil, err
	}
	return &Session{Status: ex.Status, Cookies: ex.Cookies}, nil
}

func (r *AuthRepository) CheckSession(ctx context.Context) (bool, error) {
	var out struct {
		Success bool `json:"success"`
	}
	if err := r.API.Do(ctx, http.MethodGet, "/auth/session", api.Options{}, &out); err != nil {
		return false, err
	}
	return out.Success, nil
}

func (r *AuthRepository) Me(ctx context.Context) (*usermodel.User, error) {
	var me usermodel.User
	if err := r.API.Do(ctx, http.MethodGet, "/users/me", api.Options{}, &me); err != nil {
		logger.Sugar.Errorf("Failed to fetch current user: %v", err)
		return nil, err
	}
	return &me, nil
}

func (r *AuthRepository) UpdateMe(ctx context.Context, input usermodel.UpdateUserInput) (*usermodel.User, error) {
	var me usermodel.User
	if err := r.API.Do(ctx, http.MethodPatch, "/users/me", api.Options{Body: input}, &me); err != nil {
		logger.Sugar.Errorf("Failed to update current user: %v", err)
		return nil, err
	}
	return &me, nil
}

func (r *AuthRepository) exchange(ctx context.Context, path string, creds Credentials) (*Session, error) {
	ex, err := r.API.Exchange(ctx, http.MethodPost, path, api.Options{Body: creds})
	if err != nil {
		logger.Sugar.Errorf("Auth exchange %s failed: %v", path, err)
		return nil, err
	}

	session := &Session{Status: ex.Status, Cookies: ex.Cookies}
	if ex.Status >= 200 && ex.Status <= 299 {
		var user usermodel.User
		if err := api.Decode(ex.Body, &user); err == nil && user.Email != "" {
			session.User = &user
		}
	}
	return session, nil
}
