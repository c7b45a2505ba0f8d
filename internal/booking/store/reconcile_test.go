package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetnote/internal/booking/model"
)

func TestApplyCreateInsertsInOrder(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	collection := []model.Booking{
		booking("b1", base, model.StatusActive),
		booking("b3", base.Add(4*time.Hour), model.StatusActive),
	}

	next := applyCreate(collection, booking("b2", base.Add(2*time.Hour), model.StatusActive))

	require.Len(t, next, 3)
	assert.Equal(t, []string{"b1", "b2", "b3"}, ids(next))
	assert.Len(t, collection, 2, "input slice must not be mutated")
}

func TestApplyCancelNeverRemoves(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	collection := []model.Booking{
		booking("b1", base, model.StatusActive),
		booking("b2", base.Add(time.Hour), model.StatusActive),
	}

	next := applyCancel(collection, booking("b2", base.Add(time.Hour), model.StatusCanceled))

	require.Len(t, next, 2)
	assert.Equal(t, model.StatusCanceled, next[1].Status)
	assert.Equal(t, model.StatusActive, collection[1].Status, "input slice must not be mutated")
}

func TestApplyDeleteFilters(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	collection := []model.Booking{
		booking("b1", base, model.StatusActive),
		booking("b2", base.Add(time.Hour), model.StatusActive),
	}

	next := applyDelete(collection, "b1")

	assert.Equal(t, []string{"b2"}, ids(next))
	assert.Equal(t, next, applyDelete(next, "missing"))
}

func ids(items []model.Booking) []string {
	out := make([]string, len(items))
	for i, b := range items {
		out[i] = b.ID
	}
	return out
}
