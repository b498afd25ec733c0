package services

import (
	"fmt"
	"sort"
	"time"

	"parkops/internal/domain"
	"parkops/internal/domain/models"
	"parkops/internal/store"
	"parkops/internal/utils"
)

// contactRevealWindow is how close to departure driver contact details
// become visible to park-metadata listings.
const contactRevealWindow = 5 * time.Hour

// ApplyScope selects how far an update reaches into a recurring series.
const (
	ApplyOccurrence = "occurrence"
	ApplyFuture     = "future"
	ApplySeries     = "series"
)

// TripService creates and maintains trips, including recurring series.
type TripService struct {
	Store     *store.Store
	RequestID string
}

// TripInput carries the fields required to schedule a trip.
type TripInput struct {
	RouteID          string  `json:"routeId"`
	Date             string  `json:"date"`
	UnitTime         string  `json:"unitTime"`
	VehicleID        string  `json:"vehicleId"`
	SeatCount        int     `json:"seatCount"`
	Price            int64   `json:"price"`
	ParcelCapacityKg float64 `json:"parcelCapacityKg"`
	IsRecurrent      bool    `json:"isRecurrent"`
	RecurrenceWeeks  int     `json:"recurrenceWeeks"`
}

// TripWithMeta is the park-metadata projection of a trip. DriverPhone is
// withheld server-side until five hours before departure.
type TripWithMeta struct {
	models.Trip
	ParkName    string `json:"parkName"`
	ParkAddress string `json:"parkAddress"`
	Destination string `json:"destination"`
	DriverName  string `json:"driverName,omitempty"`
	DriverPhone string `json:"driverPhone,omitempty"`
}

// Create validates the input and inserts one trip, or one per weekly
// occurrence for a recurring series. Nothing is inserted on any failure.
func (s TripService) Create(parkID string, in TripInput) ([]models.Trip, error) {
	in.Date = utils.NormalizeDate(in.Date)
	in.UnitTime = utils.TrimOrEmpty(in.UnitTime)
	in.VehicleID = utils.TrimOrEmpty(in.VehicleID)
	if in.VehicleID == "" {
		return nil, domain.ValidationError{Field: "vehicleId", Msg: "vehicle is required"}
	}
	if _, err := utils.ParseDate(in.Date); err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "date must be YYYY-MM-DD"}
	}
	weeks := 1
	if in.IsRecurrent {
		weeks = in.RecurrenceWeeks
		if weeks < 2 {
			return nil, domain.ValidationError{Field: "recurrenceWeeks", Msg: "recurring trips need at least 2 weeks"}
		}
		if weeks > 52 {
			return nil, domain.ValidationError{Field: "recurrenceWeeks", Msg: "recurring trips are capped at 52 weeks"}
		}
	}

	var out []models.Trip
	err := s.Store.Update(func(d *store.Data) error {
		if _, ok := d.Parks[parkID]; !ok {
			return domain.NotFoundError{Resource: "park"}
		}
		route, ok := d.Routes[in.RouteID]
		if !ok || route.ParkID != parkID {
			return domain.NotFoundError{Resource: "route"}
		}
		if !route.IsActive {
			return domain.ValidationError{Field: "routeId", Msg: "route is not active"}
		}

		seatCount := in.SeatCount
		if seatCount == 0 {
			seatCount = route.VehicleCapacity
		}
		price := in.Price
		if price == 0 {
			price = route.BasePrice
		}
		if seatCount <= 0 {
			return domain.ValidationError{Field: "seatCount", Msg: "seat count must be greater than zero"}
		}
		if price <= 0 {
			return domain.ValidationError{Field: "price", Msg: "price must be greater than zero"}
		}

		now := s.Store.Now()
		start, _ := utils.ParseDate(in.Date)
		if start.Before(utils.StartOfDay(now)) {
			return domain.ValidationError{Field: "date", Msg: "date cannot be in the past"}
		}

		groupID := ""
		if in.IsRecurrent {
			groupID = utils.NewID()
		}

		// Build every occurrence before touching the store so a conflict
		// on occurrence N leaves occurrences 1..N-1 uncommitted.
		candidates := make([]*models.Trip, 0, weeks)
		for i := 0; i < weeks; i++ {
			t := &models.Trip{
				ID:                utils.NewID(),
				ParkID:            parkID,
				RouteID:           route.ID,
				Date:              utils.FormatDate(start.AddDate(0, 0, 7*i)),
				UnitTime:          in.UnitTime,
				VehicleID:         in.VehicleID,
				SeatCount:         seatCount,
				Price:             price,
				ParcelCapacityKg:  in.ParcelCapacityKg,
				Status:            models.TripDraft,
				RecurrenceGroupID: groupID,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if conflictID := vehicleConflictLocked(d, *t); conflictID != "" {
				return domain.ConflictError{
					Resource:       "vehicle",
					Tag:            domain.ConflictVehicleBusy,
					Msg:            fmt.Sprintf("vehicle %s already committed on %s", t.VehicleID, t.Date),
					ConflictTripID: conflictID,
				}
			}
			candidates = append(candidates, t)
		}
		for _, t := range candidates {
			d.Trips[t.ID] = t
			out = append(out, *t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "trip", "create", fmt.Sprintf("count=%d route_id=%s", len(out), in.RouteID))
	return out, nil
}

// Update patches a trip, or its series per applyTo. Date edits are scoped
// to the single occurrence; shifting a whole series is not supported.
func (s TripService) Update(parkID, tripID string, upd models.TripUpdate, applyTo string) ([]models.Trip, error) {
	switch applyTo {
	case "", ApplyOccurrence:
		applyTo = ApplyOccurrence
	case ApplyFuture, ApplySeries:
	default:
		return nil, domain.ValidationError{Field: "applyTo", Msg: "applyTo must be occurrence, future or series"}
	}
	if upd.Date != nil && applyTo != ApplyOccurrence {
		return nil, domain.ValidationError{Field: "date", Msg: "date can only be changed on a single occurrence"}
	}

	var out []models.Trip
	err := s.Store.Update(func(d *store.Data) error {
		target, ok := d.Trips[tripID]
		if !ok || target.ParkID != parkID {
			return domain.NotFoundError{Resource: "trip"}
		}

		scope := []*models.Trip{target}
		if applyTo != ApplyOccurrence && target.RecurrenceGroupID != "" {
			scope = scope[:0]
			for _, t := range d.Trips {
				if t.RecurrenceGroupID != target.RecurrenceGroupID {
					continue
				}
				if applyTo == ApplyFuture && t.Date < target.Date {
					continue
				}
				scope = append(scope, t)
			}
		}

		now := s.Store.Now()
		for _, t := range scope {
			if t.Status == models.TripCompleted || t.Status == models.TripCancelled {
				return domain.StateError{Resource: "trip", Msg: fmt.Sprintf("trip %s is %s and can no longer be edited", t.ID, t.Status)}
			}
			if err := applyTripPatchLocked(d, t, upd, now); err != nil {
				return err
			}
		}
		sort.Slice(scope, func(i, j int) bool { return scope[i].Date < scope[j].Date })
		for _, t := range scope {
			out = append(out, *t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "trip", "update", fmt.Sprintf("trip_id=%s apply_to=%s touched=%d", tripID, applyTo, len(out)))
	return out, nil
}

func applyTripPatchLocked(d *store.Data, t *models.Trip, upd models.TripUpdate, now time.Time) error {
	if upd.Date != nil {
		date := utils.NormalizeDate(*upd.Date)
		parsed, err := utils.ParseDate(date)
		if err != nil {
			return domain.ValidationError{Field: "date", Msg: "date must be YYYY-MM-DD"}
		}
		if parsed.Before(utils.StartOfDay(now)) {
			return domain.ValidationError{Field: "date", Msg: "date cannot be in the past"}
		}
		t.Date = date
	}
	if upd.UnitTime != nil {
		t.UnitTime = utils.TrimOrEmpty(*upd.UnitTime)
	}
	if upd.VehicleID != nil {
		v := utils.TrimOrEmpty(*upd.VehicleID)
		if v == "" {
			return domain.ValidationError{Field: "vehicleId", Msg: "vehicle is required"}
		}
		t.VehicleID = v
	}
	if upd.SeatCount != nil {
		if *upd.SeatCount <= 0 {
			return domain.ValidationError{Field: "seatCount", Msg: "seat count must be greater than zero"}
		}
		if occupied := occupiedSeatsLocked(d, t.ID, now); len(occupied) > *upd.SeatCount {
			return domain.ValidationError{Field: "seatCount", Msg: fmt.Sprintf("seat count cannot drop below %d active bookings", len(occupied))}
		}
		t.SeatCount = *upd.SeatCount
	}
	if upd.Price != nil {
		if *upd.Price <= 0 {
			return domain.ValidationError{Field: "price", Msg: "price must be greater than zero"}
		}
		t.Price = *upd.Price
	}
	if upd.ParcelCapacityKg != nil {
		if *upd.ParcelCapacityKg < 0 {
			return domain.ValidationError{Field: "parcelCapacityKg", Msg: "parcel capacity cannot be negative"}
		}
		t.ParcelCapacityKg = *upd.ParcelCapacityKg
	}
	t.UpdatedAt = now
	return nil
}

// Publish moves a draft trip onto the departure board.
func (s TripService) Publish(parkID, tripID string) (models.Trip, error) {
	return s.transition(parkID, tripID, models.TripDraft, models.TripPublished)
}

// Start marks a published trip as boarding/departed.
func (s TripService) Start(parkID, tripID string) (models.Trip, error) {
	return s.transition(parkID, tripID, models.TripPublished, models.TripLive)
}

// Complete closes out a live trip.
func (s TripService) Complete(parkID, tripID string) (models.Trip, error) {
	return s.transition(parkID, tripID, models.TripLive, models.TripCompleted)
}

func (s TripService) transition(parkID, tripID string, from, to models.TripStatus) (models.Trip, error) {
	var out models.Trip
	err := s.Store.Update(func(d *store.Data) error {
		t, ok := d.Trips[tripID]
		if !ok || t.ParkID != parkID {
			return domain.NotFoundError{Resource: "trip"}
		}
		if t.Status != from {
			return domain.StateError{Resource: "trip", From: string(t.Status), To: string(to)}
		}
		t.Status = to
		t.UpdatedAt = s.Store.Now()
		out = *t
		return nil
	})
	if err != nil {
		return models.Trip{}, err
	}
	utils.LogEvent(s.RequestID, "trip", string(to), "trip_id="+tripID)
	return out, nil
}

// Cancel voids a trip that has not yet sold a confirmed seat.
func (s TripService) Cancel(parkID, tripID string) (models.Trip, error) {
	var out models.Trip
	err := s.Store.Update(func(d *store.Data) error {
		t, ok := d.Trips[tripID]
		if !ok || t.ParkID != parkID {
			return domain.NotFoundError{Resource: "trip"}
		}
		if t.Status == models.TripCompleted || t.Status == models.TripCancelled {
			return domain.StateError{Resource: "trip", From: string(t.Status), To: string(models.TripCancelled)}
		}
		if t.ConfirmedBookingsCount > 0 {
			return domain.StateError{Resource: "trip", Msg: "trip has confirmed bookings; cancel or move them first"}
		}
		t.Status = models.TripCancelled
		t.UpdatedAt = s.Store.Now()
		out = *t
		return nil
	})
	if err != nil {
		return models.Trip{}, err
	}
	utils.LogEvent(s.RequestID, "trip", "cancel", "trip_id="+tripID)
	return out, nil
}

// Delete removes a trip, permitted only while it is an unsold draft.
func (s TripService) Delete(parkID, tripID string) error {
	err := s.Store.Update(func(d *store.Data) error {
		t, ok := d.Trips[tripID]
		if !ok || t.ParkID != parkID {
			return domain.NotFoundError{Resource: "trip"}
		}
		if t.Status != models.TripDraft {
			return domain.StateError{Resource: "trip", Msg: fmt.Sprintf("only draft trips can be deleted, trip is %s", t.Status)}
		}
		if t.ConfirmedBookingsCount > 0 {
			return domain.StateError{Resource: "trip", Msg: "trip has confirmed bookings and cannot be deleted"}
		}
		delete(d.Trips, tripID)
		return nil
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "trip", "delete", "trip_id="+tripID)
	return nil
}

// List returns the park's trips, optionally narrowed by date and status,
// earliest departure first.
func (s TripService) List(parkID, date string, status models.TripStatus) []models.Trip {
	date = utils.NormalizeDate(date)
	out := []models.Trip{}
	s.Store.View(func(d *store.Data) {
		for _, t := range d.Trips {
			if t.ParkID != parkID {
				continue
			}
			if date != "" && t.Date != date {
				continue
			}
			if status != "" && t.Status != status {
				continue
			}
			out = append(out, *t)
		}
	})
	sortTrips(out)
	return out
}

// ListWithParkMetadata enriches trips with park and route details. Driver
// phone numbers stay withheld until the contact-reveal window opens; this
// is enforced here, not left to the client.
func (s TripService) ListWithParkMetadata(parkID, date string) []TripWithMeta {
	date = utils.NormalizeDate(date)
	out := []TripWithMeta{}
	s.Store.View(func(d *store.Data) {
		park, ok := d.Parks[parkID]
		if !ok {
			return
		}
		now := s.Store.Now()
		for _, t := range d.Trips {
			if t.ParkID != parkID {
				continue
			}
			if date != "" && t.Date != date {
				continue
			}
			m := TripWithMeta{Trip: *t, ParkName: park.Name, ParkAddress: park.Address}
			if r, ok := d.Routes[t.RouteID]; ok {
				m.Destination = r.Destination
			}
			if dr, ok := d.Drivers[t.DriverID]; ok {
				m.DriverName = dr.Name
				if dep, err := t.DepartureAt(); err == nil && !now.Before(dep.Add(-contactRevealWindow)) {
					m.DriverPhone = dr.Phone
				}
			}
			out = append(out, m)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].UnitTime < out[j].UnitTime
	})
	return out
}

func sortTrips(trips []models.Trip) {
	sort.Slice(trips, func(i, j int) bool {
		if trips[i].Date != trips[j].Date {
			return trips[i].Date < trips[j].Date
		}
		return trips[i].UnitTime < trips[j].UnitTime
	})
}

// vehicleConflictLocked returns the id of a trip already committing the
// vehicle inside the candidate's window, or "".
func vehicleConflictLocked(d *store.Data, candidate models.Trip) string {
	for _, t := range d.Trips {
		if t.ID == candidate.ID || t.VehicleID != candidate.VehicleID {
			continue
		}
		if t.Status == models.TripCancelled || t.Status == models.TripCompleted {
			continue
		}
		if t.WindowOverlaps(candidate) {
			return t.ID
		}
	}
	return ""
}

// occupiedSeatsLocked maps seat number -> booking id for every booking
// still holding capacity on the trip.
func occupiedSeatsLocked(d *store.Data, tripID string, now time.Time) map[int]string {
	out := map[int]string{}
	for _, b := range d.Bookings {
		if b.TripID != tripID {
			continue
		}
		if b.OccupiesSeat(now) {
			out[b.SeatNumber] = b.ID
		}
	}
	return out
}
