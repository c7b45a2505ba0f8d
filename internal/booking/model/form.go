package model

import (
	"strings"
	"time"
)

// BookingForm carries the raw booking-form fields: date and time arrive as
// separate dropdown values and are combined into instants here.
type BookingForm struct {
	BusinessID string `json:"businessId"`
	StartDate  string `json:"startDate"`
	StartTime  string `json:"startTime"`
	EndDate    string `json:"endDate"`
	EndTime    string `json:"endTime"`
	Notes      string `json:"notes"`
}

// Validate resolves every field error locally. A non-empty result means the
// form never reaches the store or the network.
func (f BookingForm) Validate() map[string]string {
	errs := make(map[string]string)

	if f.BusinessID == "" {
		errs["businessId"] = "Business is required"
	}
	if f.StartDate == "" {
		errs["startDate"] = "Start date is required"
	}
	if f.StartTime == "" {
		errs["startTime"] = "Start time is required"
	}
	if f.EndDate == "" {
		errs["endDate"] = "End date is required"
	}
	if f.EndTime == "" {
		errs["endTime"] = "End time is required"
	}

	if f.StartDate != "" && f.StartTime != "" && f.EndDate != "" && f.EndTime != "" {
		start, startErr := combine(f.StartDate, f.StartTime)
		end, endErr := combine(f.EndDate, f.EndTime)

		if startErr != nil || endErr != nil {
			errs["endTime"] = "Invalid date/time"
		} else if !end.After(start) {
			errs["endTime"] = "End must be after start"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Times converts the validated form into instants. Call Validate first.
func (f BookingForm) Times() (start, end time.Time, err error) {
	start, err = combine(f.StartDate, f.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = combine(f.EndDate, f.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// Input builds the create payload for a given acting client.
func (f BookingForm) Input(clientID string) (CreateBookingInput, error) {
	start, end, err := f.Times()
	if err != nil {
		return CreateBookingInput{}, err
	}
	return CreateBookingInput{
		ClientID:   clientID,
		BusinessID: f.BusinessID,
		StartAt:    start,
		EndAt:      end,
		Notes:      strings.TrimSpace(f.Notes),
	}, nil
}

// Patch builds the edit payload; the business party cannot change in edit
// mode, so only times and notes are included.
func (f BookingForm) Patch() (UpdateBookingInput, error) {
	start, end, err := f.Times()
	if err != nil {
		return UpdateBookingInput{}, err
	}
	notes := strings.TrimSpace(f.Notes)
	return UpdateBookingInput{
		StartAt: &start,
		EndAt:   &end,
		Notes:   &notes,
	}, nil
}

func combine(date, clock string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04", date+" "+clock)
}
