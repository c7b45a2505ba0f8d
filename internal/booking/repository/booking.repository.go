package repository

import (
	"context"
	"net/http"
	"net/url"

	"meetnote/internal/booking/model"
	"meetnote/pkg/api"
	"meetnote/pkg/logger"
)

type BookingRepository struct {
	API *api.Client
}

func NewBookingRepository(client *api.Client) *BookingRepository {
	return &BookingRepository{API: client}
}

func (r *BookingRepository) List(ctx context.Context, filter model.FetchFilter) ([]model.Booking, error) {
	q := url.Values{}
	if filter.ClientID != "" {
		q.Set("clientId", filter.ClientID)
	}
	if filter.BusinessID != "" {
		q.Set("businessId", filter.BusinessID)
	}

	path := "/bookings"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var bookings []model.Booking
	if err := r.API.Do(ctx, http.MethodGet, path, api.Options{}, &bookings); err != nil {
		logger.Sugar.Errorf("Failed to fetch bookings: %v", err)
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) Create(ctx context.Context, input model.CreateBookingInput) (*model.Booking, error) {
	var created model.Booking
	if err := r.API.Do(ctx, http.MethodPost, "/bookings", api.Options{Body: input}, &created); err != nil {
		logger.Sugar.Errorf("Failed to create booking: %v", err)
		return nil, err
	}
	return &created, nil
}

func (r *BookingRepository) Update(ctx context.Context, id string, input model.UpdateBookingInput) (*model.Booking, error) {
	var updated model.Booking
	if err := r.API.Do(ctx, http.MethodPatch, "/bookings/"+id, api.Options{Body: input}, &updated); err != nil {
		logger.Sugar.Errorf("Failed to update booking %s: %v", id, err)
		return nil, err
	}
	return &updated, nil
}

// Cancel hits the dedicated transition endpoint. Cancellation is not a field
// patch: it is irreversible and frees the slot server-side.
func (r *BookingRepository) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	var canceled model.Booking
	if err := r.API.Do(ctx, http.MethodPost, "/bookings/"+id+"/cancel", api.Options{}, &canceled); err != nil {
		logger.Sugar.Errorf("Failed to cancel booking %s: %v", id, err)
		return nil, err
	}
	return &canceled, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	if err := r.API.Do(ctx, http.MethodDelete, "/bookings/"+id, api.Options{}, nil); err != nil {
		logger.Sugar.Errorf("Failed to delete booking %s: %v", id, err)
		return err
	}
	return nil
}
