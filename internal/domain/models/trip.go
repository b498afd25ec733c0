package models

import (
	"time"

	"parkops/internal/utils"
)

type TripStatus string

const (
	TripDraft     TripStatus = "draft"
	TripPublished TripStatus = "published"
	TripLive      TripStatus = "live"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

// DepartureWindow is how long a vehicle (and its driver) is considered
// committed from the scheduled departure. Used for double-booking checks.
const DepartureWindow = 4 * time.Hour

// DefaultParcelCapacityKg is the soft parcel ceiling applied when a trip
// does not set its own.
const DefaultParcelCapacityKg = 100.0

// Trip is one dated vehicle departure on a route. Recurring trips share a
// RecurrenceGroupID, one Trip per occurrence.
type Trip struct {
	ID                     string     `json:"id"`
	ParkID                 string     `json:"parkId"`
	RouteID                string     `json:"routeId"`
	Date                   string     `json:"date"`     // YYYY-MM-DD
	UnitTime               string     `json:"unitTime"` // HH:MM
	VehicleID              string     `json:"vehicleId"`
	DriverID               string     `json:"driverId,omitempty"`
	SeatCount              int        `json:"seatCount"`
	Price                  int64      `json:"price"`
	ParcelCapacityKg       float64    `json:"parcelCapacityKg"`
	Status                 TripStatus `json:"status"`
	ConfirmedBookingsCount int        `json:"confirmedBookingsCount"`
	RecurrenceGroupID      string     `json:"recurrenceGroupId,omitempty"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

// TripUpdate supports PATCH-style updates via key presence.
type TripUpdate struct {
	Date             *string  `json:"date"`
	UnitTime         *string  `json:"unitTime"`
	VehicleID        *string  `json:"vehicleId"`
	SeatCount        *int     `json:"seatCount"`
	Price            *int64   `json:"price"`
	ParcelCapacityKg *float64 `json:"parcelCapacityKg"`
}

// DepartureAt resolves the trip's scheduled departure as a local timestamp.
func (t Trip) DepartureAt() (time.Time, error) {
	return utils.CombineDateTime(t.Date, t.UnitTime)
}

// WindowOverlaps reports whether two trips occupy overlapping commitment
// windows. Trips on different dates never overlap.
func (t Trip) WindowOverlaps(other Trip) bool {
	if utils.NormalizeDate(t.Date) != utils.NormalizeDate(other.Date) {
		return false
	}
	a, err := t.DepartureAt()
	if err != nil {
		return false
	}
	b, err := other.DepartureAt()
	if err != nil {
		return false
	}
	return a.Before(b.Add(DepartureWindow)) && b.Before(a.Add(DepartureWindow))
}

// IsBookable reports whether seats may be sold on the trip.
func (t Trip) IsBookable() bool {
	return t.Status == TripPublished || t.Status == TripLive
}

// ParcelCeilingKg returns the effective parcel weight ceiling.
func (t Trip) ParcelCeilingKg() float64 {
	if t.ParcelCapacityKg > 0 {
		return t.ParcelCapacityKg
	}
	return DefaultParcelCapacityKg
}
