package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() BookingForm {
	return BookingForm{
		BusinessID: "biz-1",
		StartDate:  "2025-03-10",
		StartTime:  "09:00",
		EndDate:    "2025-03-10",
		EndTime:    "10:00",
		Notes:      "  haircut  ",
	}
}

func TestBookingFormValidateOK(t *testing.T) {
	assert.Nil(t, validForm().Validate())
}

func TestBookingFormValidateMissingFields(t *testing.T) {
	errs := BookingForm{}.Validate()

	require.NotNil(t, errs)
	assert.Equal(t, "Business is required", errs["businessId"])
	assert.Equal(t, "Start date is required", errs["startDate"])
	assert.Equal(t, "Start time is required", errs["startTime"])
	assert.Equal(t, "End date is required", errs["endDate"])
	assert.Equal(t, "End time is required", errs["endTime"])
}

func TestBookingFormValidateEqualTimes(t *testing.T) {
	f := validForm()
	f.EndTime = f.StartTime

	errs := f.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, "End must be after start", errs["endTime"])
}

func TestBookingFormValidateEndBeforeStart(t *testing.T) {
	f := validForm()
	f.EndTime = "08:00"

	errs := f.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, "End must be after start", errs["endTime"])
}

func TestBookingFormValidateUnparseableDate(t *testing.T) {
	f := validForm()
	f.EndDate = "10-03-2025"

	errs := f.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, "Invalid date/time", errs["endTime"])
}

func TestBookingFormInput(t *testing.T) {
	in, err := validForm().Input("client-1")
	require.NoError(t, err)

	assert.Equal(t, "client-1", in.ClientID)
	assert.Equal(t, "biz-1", in.BusinessID)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), in.StartAt)
	assert.Equal(t, time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), in.EndAt)
	assert.Equal(t, "haircut", in.Notes, "notes are trimmed")
}

func TestBookingFormPatchOmitsBusiness(t *testing.T) {
	patch, err := validForm().Patch()
	require.NoError(t, err)

	require.NotNil(t, patch.StartAt)
	require.NotNil(t, patch.EndAt)
	require.NotNil(t, patch.Notes)
	assert.Equal(t, "haircut", *patch.Notes)
}

func TestUserRefJSONRoundTrip(t *testing.T) {
	b := Booking{
		ID:       "b1",
		Client:   UserRef{ID: "u1"},
		Business: UserRef{ID: "biz-1"},
		StartAt:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		EndAt:    time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
		Status:   StatusActive,
	}

	raw, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"clientId":"u1"`, "bare references marshal as id strings")

	var decoded Booking
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "u1", decoded.Client.ID)
	assert.Nil(t, decoded.Client.User)

	// a populated reference keeps both the id and the object
	populated := `{"_id":"b2","clientId":{"_id":"u1","name":"Ann","email":"ann@x.io","role":"client"},"businessId":"biz-1","startAt":"2025-03-10T09:00:00Z","endAt":"2025-03-10T10:00:00Z","status":"active"}`
	var fromWire Booking
	require.NoError(t, json.Unmarshal([]byte(populated), &fromWire))
	assert.Equal(t, "u1", fromWire.Client.ID)
	require.NotNil(t, fromWire.Client.User)
	assert.Equal(t, "Ann", fromWire.Client.User.Name)
	assert.Equal(t, "biz-1", fromWire.Business.ID)
	assert.Nil(t, fromWire.Business.User)
}
