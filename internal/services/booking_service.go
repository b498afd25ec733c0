package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"parkops/internal/domain"
	"parkops/internal/domain/models"
	"parkops/internal/store"
	"parkops/internal/utils"
)

// BookingService reserves seats under short-lived holds, confirms them on
// payment and expires what was never paid for. Every operation is one
// read-check-write section under the store lock, so two racing requests
// for the last seat resolve deterministically: first in wins.
type BookingService struct {
	Store     *store.Store
	RequestID string
}

// BookingInput carries passenger details for a new hold.
type BookingInput struct {
	TripID         string `json:"tripId"`
	PassengerName  string `json:"passengerName"`
	PassengerPhone string `json:"passengerPhone"`
	NokName        string `json:"nokName"`
	NokPhone       string `json:"nokPhone"`
	NokAddress     string `json:"nokAddress"`
	AmountPaid     int64  `json:"amountPaid"`
	SeatNumber     int    `json:"seatNumber"` // 0 = lowest free seat
}

// CreateWithHold places a RESERVED booking with a five-minute hold. A full
// trip or a taken seat fails with a SLOT_TAKEN conflict.
func (s BookingService) CreateWithHold(parkID string, in BookingInput) (models.Booking, error) {
	in.PassengerName = utils.NormalizeSpace(in.PassengerName)
	if in.PassengerName == "" {
		return models.Booking{}, domain.ValidationError{Field: "passengerName", Msg: "passenger name is required"}
	}
	if utils.NormalizePhone(in.PassengerPhone) == "" {
		return models.Booking{}, domain.ValidationError{Field: "passengerPhone", Msg: "passenger phone is required"}
	}
	if in.AmountPaid < 0 {
		return models.Booking{}, domain.ValidationError{Field: "amountPaid", Msg: "amount cannot be negative"}
	}

	var out models.Booking
	err := s.Store.Update(func(d *store.Data) error {
		trip, ok := d.Trips[in.TripID]
		if !ok || trip.ParkID != parkID {
			return domain.NotFoundError{Resource: "trip"}
		}
		if !trip.IsBookable() {
			return domain.StateError{Resource: "trip", Msg: fmt.Sprintf("trip is %s and not open for booking", trip.Status)}
		}
		if in.SeatNumber < 0 || in.SeatNumber > trip.SeatCount {
			return domain.ValidationError{Field: "seatNumber", Msg: fmt.Sprintf("seat must be between 1 and %d", trip.SeatCount)}
		}

		now := s.Store.Now()
		sweepTripLocked(d, trip.ID, now)
		occupied := occupiedSeatsLocked(d, trip.ID, now)
		if len(occupied) >= trip.SeatCount {
			return domain.ConflictError{Resource: "seat", Tag: domain.ConflictSlotTaken, Msg: "trip is fully booked"}
		}

		seat := in.SeatNumber
		if seat == 0 {
			for n := 1; n <= trip.SeatCount; n++ {
				if _, taken := occupied[n]; !taken {
					seat = n
					break
				}
			}
		} else if _, taken := occupied[seat]; taken {
			return domain.ConflictError{Resource: "seat", Tag: domain.ConflictSlotTaken, Msg: fmt.Sprintf("seat %d is already held", seat)}
		}

		b := &models.Booking{
			ID:             utils.NewID(),
			TripID:         trip.ID,
			PassengerName:  in.PassengerName,
			PassengerPhone: utils.TrimOrEmpty(in.PassengerPhone),
			NokName:        utils.NormalizeSpace(in.NokName),
			NokPhone:       utils.TrimOrEmpty(in.NokPhone),
			NokAddress:     utils.TrimOrEmpty(in.NokAddress),
			AmountPaid:     in.AmountPaid,
			PaymentStatus:  "pending",
			BookingStatus:  strings.ToLower(string(models.BookingReserved)),
			Status:         models.BookingReserved,
			SeatNumber:     seat,
			HoldToken:      utils.NewHoldToken(),
			HoldExpiresAt:  now.Add(models.HoldTTL),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		d.Bookings[b.ID] = b
		out = *b
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "hold", fmt.Sprintf("booking_id=%s trip_id=%s seat=%d", out.ID, out.TripID, out.SeatNumber))
	return out, nil
}

// ConfirmPayment moves RESERVED to CONFIRMED while the hold is still live.
// An expired hold fails and is materialized as EXPIRED; the caller should
// treat that as "re-book".
func (s BookingService) ConfirmPayment(parkID, bookingID string) (models.Booking, error) {
	var out models.Booking
	err := s.Store.Update(func(d *store.Data) error {
		b, ok := d.Bookings[bookingID]
		if !ok {
			return domain.NotFoundError{Resource: "booking"}
		}
		trip, ok := d.Trips[b.TripID]
		if !ok || trip.ParkID != parkID {
			return domain.NotFoundError{Resource: "booking"}
		}

		now := s.Store.Now()
		if b.Status == models.BookingReserved && !now.Before(b.HoldExpiresAt) {
			markStatusLocked(b, models.BookingExpired, now)
			return domain.StateError{Resource: "booking", Msg: "hold has expired, book again"}
		}
		if b.Status != models.BookingReserved {
			return domain.StateError{Resource: "booking", From: string(b.Status), To: string(models.BookingConfirmed)}
		}

		markStatusLocked(b, models.BookingConfirmed, now)
		b.PaymentStatus = "paid"
		b.HoldToken = ""
		recomputeConfirmedLocked(d, trip, now)
		out = *b
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "confirm", "booking_id="+bookingID)
	return out, nil
}

// UpdateStatus applies an explicit transition, rejecting anything outside
// the state machine. Extra fields are merged verbatim into Meta.
func (s BookingService) UpdateStatus(parkID, bookingID string, next models.BookingStatus, extra map[string]string) (models.Booking, error) {
	var out models.Booking
	err := s.Store.Update(func(d *store.Data) error {
		b, ok := d.Bookings[bookingID]
		if !ok {
			return domain.NotFoundError{Resource: "booking"}
		}
		trip, ok := d.Trips[b.TripID]
		if !ok || trip.ParkID != parkID {
			return domain.NotFoundError{Resource: "booking"}
		}

		now := s.Store.Now()
		sweepBookingLocked(b, now)
		if !models.CanTransition(b.Status, next) {
			return domain.StateError{Resource: "booking", From: string(b.Status), To: string(next)}
		}

		markStatusLocked(b, next, now)
		if next == models.BookingConfirmed {
			b.PaymentStatus = "paid"
			b.HoldToken = ""
		}
		if len(extra) > 0 {
			if b.Meta == nil {
				b.Meta = map[string]string{}
			}
			for k, v := range extra {
				b.Meta[k] = v
			}
		}
		recomputeConfirmedLocked(d, trip, now)
		out = *b
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "update_status", fmt.Sprintf("booking_id=%s status=%s", bookingID, next))
	return out, nil
}

// CheckIn flags a confirmed passenger as boarded on the given trip.
func (s BookingService) CheckIn(parkID, tripID, bookingID string) (models.Booking, error) {
	var out models.Booking
	err := s.Store.Update(func(d *store.Data) error {
		trip, ok := d.Trips[tripID]
		if !ok || trip.ParkID != parkID {
			return domain.NotFoundError{Resource: "trip"}
		}
		b, ok := d.Bookings[bookingID]
		if !ok {
			return domain.NotFoundError{Resource: "booking"}
		}
		if b.TripID != tripID {
			return domain.ValidationError{Field: "bookingId", Msg: "booking does not belong to this trip"}
		}
		now := s.Store.Now()
		sweepBookingLocked(b, now)
		if b.Status != models.BookingConfirmed {
			return domain.StateError{Resource: "booking", Msg: fmt.Sprintf("only confirmed bookings can check in, booking is %s", b.Status)}
		}
		b.CheckedIn = true
		b.UpdatedAt = now
		out = *b
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "check_in", "booking_id="+bookingID)
	return out, nil
}

// Get returns one booking scoped to the park.
func (s BookingService) Get(parkID, bookingID string) (models.Booking, error) {
	var out models.Booking
	found := false
	s.Store.View(func(d *store.Data) {
		b, ok := d.Bookings[bookingID]
		if !ok {
			return
		}
		if trip, ok := d.Trips[b.TripID]; ok && trip.ParkID == parkID {
			cp := *b
			cp.Status = cp.EffectiveStatus(s.Store.Now())
			out = cp
			found = true
		}
	})
	if !found {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return out, nil
}

// ListByTrip returns a trip's bookings, seat order.
func (s BookingService) ListByTrip(parkID, tripID string) ([]models.Booking, error) {
	var out []models.Booking
	var nf error
	s.Store.View(func(d *store.Data) {
		trip, ok := d.Trips[tripID]
		if !ok || trip.ParkID != parkID {
			nf = domain.NotFoundError{Resource: "trip"}
			return
		}
		now := s.Store.Now()
		for _, b := range d.Bookings {
			if b.TripID != tripID {
				continue
			}
			cp := *b
			cp.Status = cp.EffectiveStatus(now)
			out = append(out, cp)
		}
	})
	if nf != nil {
		return nil, nf
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatNumber < out[j].SeatNumber })
	return out, nil
}

// Search finds a park+date's bookings by exact ticket id, normalized phone
// or passenger name. A single-word query matches any whole word of the
// name; a multi-word query must equal the full name. Never fuzzy — staff
// looking for one passenger must not get lookalikes.
func (s BookingService) Search(parkID, date, query string) []models.Booking {
	query = utils.NormalizeSpace(query)
	date = utils.NormalizeDate(date)
	out := []models.Booking{}
	if query == "" {
		return out
	}
	queryPhone := utils.NormalizePhone(query)
	queryLower := strings.ToLower(query)
	queryWords := strings.Fields(queryLower)

	s.Store.View(func(d *store.Data) {
		now := s.Store.Now()
		for _, b := range d.Bookings {
			trip, ok := d.Trips[b.TripID]
			if !ok || trip.ParkID != parkID {
				continue
			}
			if date != "" && trip.Date != date {
				continue
			}
			if !matchesBooking(b, query, queryPhone, queryLower, queryWords) {
				continue
			}
			cp := *b
			cp.Status = cp.EffectiveStatus(now)
			out = append(out, cp)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func matchesBooking(b *models.Booking, query, queryPhone, queryLower string, queryWords []string) bool {
	if b.ID == query {
		return true
	}
	if queryPhone != "" && queryPhone == utils.NormalizePhone(b.PassengerPhone) {
		return true
	}
	nameLower := strings.ToLower(utils.NormalizeSpace(b.PassengerName))
	if len(queryWords) == 1 {
		for _, w := range strings.Fields(nameLower) {
			if w == queryWords[0] {
				return true
			}
		}
		return false
	}
	return nameLower == queryLower
}

// SweepExpired materializes EXPIRED for every overdue hold and fixes up
// confirmed counters. Returns how many bookings were expired.
func (s BookingService) SweepExpired() int {
	swept := 0
	_ = s.Store.Update(func(d *store.Data) error {
		now := s.Store.Now()
		touched := map[string]bool{}
		for _, b := range d.Bookings {
			if sweepBookingLocked(b, now) {
				swept++
				touched[b.TripID] = true
			}
		}
		for tripID := range touched {
			if trip, ok := d.Trips[tripID]; ok {
				recomputeConfirmedLocked(d, trip, now)
			}
		}
		return nil
	})
	if swept > 0 {
		utils.LogEvent(s.RequestID, "booking", "sweep", fmt.Sprintf("expired=%d", swept))
	}
	return swept
}

// RunExpirySweeper expires overdue holds opportunistically until ctx ends.
// Correctness never depends on it; expiry is also checked lazily on every
// capacity-affecting operation.
func (s BookingService) RunExpirySweeper(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	log.Printf("[BOOKING] expiry sweeper running every %s", every)
	for {
		select {
		case <-ctx.Done():
			log.Println("[BOOKING] expiry sweeper stopped")
			return
		case <-ticker.C:
			s.SweepExpired()
		}
	}
}

// sweepBookingLocked persists lazy expiry on one booking. Reports whether
// it flipped to EXPIRED.
func sweepBookingLocked(b *models.Booking, now time.Time) bool {
	if b.Status == models.BookingReserved && b.EffectiveStatus(now) == models.BookingExpired {
		markStatusLocked(b, models.BookingExpired, now)
		return true
	}
	return false
}

// sweepTripLocked persists lazy expiry for every booking on a trip.
func sweepTripLocked(d *store.Data, tripID string, now time.Time) {
	for _, b := range d.Bookings {
		if b.TripID == tripID {
			sweepBookingLocked(b, now)
		}
	}
}

func markStatusLocked(b *models.Booking, next models.BookingStatus, now time.Time) {
	b.Status = next
	b.BookingStatus = strings.ToLower(string(next))
	b.UpdatedAt = now
}

// recomputeConfirmedLocked rebuilds the trip's confirmed counter from the
// bookings themselves. Recomputing on every transition keeps the derived
// aggregate from drifting.
func recomputeConfirmedLocked(d *store.Data, trip *models.Trip, now time.Time) {
	count := 0
	for _, b := range d.Bookings {
		if b.TripID == trip.ID && b.EffectiveStatus(now) == models.BookingConfirmed {
			count++
		}
	}
	trip.ConfirmedBookingsCount = count
	trip.UpdatedAt = now
}
