package repository

import (
	"context"
	"net/http"
	"net/url"

	"meetnote/internal/user/model"
	"meetnote/pkg/api"
	"meetnote/pkg/logger"
)

type UserRepository struct {
	API *api.Client
}

func NewUserRepository(client *api.Client) *UserRepository {
	return &UserRepository{API: client}
}

func (r *UserRepository) List(ctx context.Context, filter model.FetchFilter) ([]model.User, error) {
	path := "/users"
	if filter.Role != "" {
		q := url.Values{}
		q.Set("role", string(filter.Role))
		path += "?" + q.Encode()
	}

	var users []model.User
	if err := r.API.Do(ctx, http.MethodGet, path, api.Options{}, &users); err != nil {
		logger.Sugar.Errorf("Failed to fetch users: %v", err)
		return nil, err
	}
	return users, nil
}

// Businesses hits the dedicated listing endpoint for the booking form's
// business dropdown.
func (r *UserRepository) Businesses(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.API.Do(ctx, http.MethodGet, "/businesses", api.Options{}, &users); err != nil {
		logger.Sugar.Errorf("Failed to fetch businesses: %v", err)
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, input model.CreateUserInput) (*model.User, error) {
	var created model.User
	if err := r.API.Do(ctx, http.MethodPost, "/users", api.Options{Body: input}, &created); err != nil {
		logger.Sugar.Errorf("Failed to create user: %v", err)
		return nil, err
	}
	return &created, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, input model.UpdateUserInput) (*model.User, error) {
	var updated model.User
	if err := r.API.Do(ctx, http.MethodPatch, "/users/"+id, api.Options{Body: input}, &updated); err != nil {
		logger.Sugar.Errorf("Failed to update user %s: %v", id, err)
		return nil, err
	}
	return &updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if err := r.API.Do(ctx, http.MethodDelete, "/users/"+id, api.Options{}, nil); err != nil {
		logger.Sugar.Errorf("Failed to delete user %s: %v", id, err)
		return err
	}
	return nil
}
