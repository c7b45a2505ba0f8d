package store

import (
	"sort"

	"meetnote/internal/booking/model"
)

// Pure reducers for optimistic reconciliation: each takes the current
// collection and a mutation result and returns the next collection, so the
// splicing rules are testable without network or UI.

// sortByStartAt returns a copy sorted ascending by StartAt, the order list
// views render in.
func sortByStartAt(items []model.Booking) []model.Booking {
	out := append([]model.Booking(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartAt.Before(out[j].StartAt)
	})
	return out
}

func applyCreate(collection []model.Booking, created model.Booking) []model.Booking {
	return sortByStartAt(append(append([]model.Booking(nil), collection...), created))
}

func applyUpdate(collection []model.Booking, updated model.Booking) []model.Booking {
	out := append([]model.Booking(nil), collection...)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
		}
	}
	return sortByStartAt(out)
}

// applyCancel replaces the entity in place. A canceled booking stays in the
// collection; only its status changes.
func applyCancel(collection []model.Booking, canceled model.Booking) []model.Booking {
	out := append([]model.Booking(nil), collection...)
	for i := range out {
		if out[i].ID == canceled.ID {
			out[i] = canceled
		}
	}
	return out
}

func applyDelete(collection []model.Booking, id string) []model.Booking {
	out := collection[:0:0]
	for _, b := range collection {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
