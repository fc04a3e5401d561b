package booking

import (
	"github.com/jwalitptl/salon-api/internal/model"
)

// allowedTransitions encodes the booking status machine. completed and
// cancelled are terminal. missed keeps a vendor correction path.
var allowedTransitions = map[model.BookingStatus][]model.BookingStatus{
	model.BookingStatusPending: {
		model.BookingStatusUpcoming,
		model.BookingStatusConfirmed,
		model.BookingStatusCancelled,
		model.BookingStatusMissed,
	},
	model.BookingStatusUpcoming: {
		model.BookingStatusConfirmed,
		model.BookingStatusCancelled,
		model.BookingStatusMissed,
	},
	model.BookingStatusConfirmed: {
		model.BookingStatusCompleted,
		model.BookingStatusCancelled,
		model.BookingStatusMissed,
	},
	model.BookingStatusMissed: {
		model.BookingStatusCompleted,
		model.BookingStatusCancelled,
	},
	model.BookingStatusCompleted: {},
	model.BookingStatusCancelled: {},
}

func canTransition(from, to model.BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// customerCancellable are the states a customer may cancel out of.
func customerCancellable(status model.BookingStatus) bool {
	return status == model.BookingStatusPending || status == model.BookingStatusUpcoming
}
