package availability

import (
	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/model"
)

// Selector picks one staff member from the candidates that survived the
// occupancy check. Keeping the policy behind an interface isolates the
// naive default so a smarter strategy can replace it without touching the
// resolver.
type Selector interface {
	Select(candidates []*model.Staff, bookingsByStaff map[uuid.UUID][]*model.Booking) *model.Staff
}

// firstAvailable returns the first candidate in retrieval order. No load
// balancing: a staff member early in the list absorbs more bookings.
type firstAvailable struct{}

func NewFirstAvailableSelector() Selector {
	return firstAvailable{}
}

func (firstAvailable) Select(candidates []*model.Staff, _ map[uuid.UUID][]*model.Booking) *model.Staff {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0]
}
