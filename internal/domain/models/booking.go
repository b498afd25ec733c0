package models

import "time"

type BookingStatus string

const (
	BookingReserved  BookingStatus = "RESERVED"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingExpired   BookingStatus = "EXPIRED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// HoldTTL is how long a reserved seat stays held before payment.
const HoldTTL = 5 * time.Minute

// allowedTransitions is the booking state machine. Terminal states carry
// an empty slice so an unknown status and a terminal one read the same.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingReserved:  {BookingConfirmed, BookingCancelled, BookingExpired},
	BookingConfirmed: {BookingCancelled, BookingCompleted},
	BookingExpired:   {},
	BookingCancelled: {},
	BookingCompleted: {},
}

// CanTransition reports whether from -> to is a legal booking move.
func CanTransition(from, to BookingStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether the status has no outgoing transitions.
func IsTerminalStatus(s BookingStatus) bool {
	return len(allowedTransitions[s]) == 0
}

// Booking is a seat sale on a trip, from hold through payment to travel.
type Booking struct {
	ID             string            `json:"id"`
	TripID         string            `json:"tripId"`
	PassengerName  string            `json:"passengerName"`
	PassengerPhone string            `json:"passengerPhone"`
	NokName        string            `json:"nokName"`
	NokPhone       string            `json:"nokPhone"`
	NokAddress     string            `json:"nokAddress"`
	AmountPaid     int64             `json:"amountPaid"`
	PaymentStatus  string            `json:"paymentStatus"` // pending / paid / refunded
	BookingStatus  string            `json:"bookingStatus"` // display mirror of Status
	Status         BookingStatus     `json:"status"`
	SeatNumber     int               `json:"seatNumber,omitempty"`
	HoldToken      string            `json:"holdToken,omitempty"`
	HoldExpiresAt  time.Time         `json:"holdExpiresAt,omitempty"`
	CheckedIn      bool              `json:"checkedIn"`
	Meta           map[string]string `json:"meta,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// EffectiveStatus materializes lazy hold expiry: a RESERVED booking past
// its deadline reads as EXPIRED even before the stored status catches up.
func (b Booking) EffectiveStatus(now time.Time) BookingStatus {
	if b.Status == BookingReserved && !b.HoldExpiresAt.IsZero() && !now.Before(b.HoldExpiresAt) {
		return BookingExpired
	}
	return b.Status
}

// OccupiesSeat reports whether the booking still counts against trip
// capacity at the given instant.
func (b Booking) OccupiesSeat(now time.Time) bool {
	s := b.EffectiveStatus(now)
	return s == BookingReserved || s == BookingConfirmed
}
