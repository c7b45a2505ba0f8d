package repository

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"meetnote/internal/note/model"
	"meetnote/pkg/api"
	"meetnote/pkg/logger"
)

// PerPage matches the backend's page size for note listings.
const PerPage = 12

type NoteRepository struct {
	API *api.Client
}

func NewNoteRepository(client *api.Client) *NoteRepository {
	return &NoteRepository{API: client}
}

func (r *NoteRepository) List(ctx context.Context, search string, page int, tag model.Tag) (*model.ListResponse, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if tag != "" {
		q.Set("tag", string(tag))
	}
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(PerPage))

	var out model.ListResponse
	if err := r.API.Do(ctx, http.MethodGet, "/notes?"+q.Encode(), api.Options{}, &out); err != nil {
		logger.Sugar.Errorf("Failed to fetch notes: %v", err)
		return nil, err
	}
	return &out, nil
}

func (r *NoteRepository) Get(ctx context.Context, id string) (*model.Note, error) {
	var note model.Note
	if err := r.API.Do(ctx, http.MethodGet, "/notes/"+id, api.Options{}, &note); err != nil {
		logger.Sugar.Errorf("Failed to fetch note %s: %v", id, err)
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) Create(ctx context.Context, data model.NewNoteData) (*model.Note, error) {
	var created model.Note
	if err := r.API.Do(ctx, http.MethodPost, "/notes", api.Options{Body: data}, &created); err != nil {
		logger.Sugar.Errorf("Failed to create note: %v", err)
		return nil, err
	}
	return &created, nil
}

// Delete returns the deleted note, as the backend echoes it back.
func (r *NoteRepository) Delete(ctx context.Context, id string) (*model.Note, error) {
	var deleted model.Note
	if err := r.API.Do(ctx, http.MethodDelete, "/notes/"+id, api.Options{}, &deleted); err != nil {
		logger.Sugar.Errorf("Failed to delete note %s: %v", id, err)
		return nil, err
	}
	return &deleted, nil
}
