package services

import (
	"fmt"

	"parkops/internal/domain"
	"parkops/internal/domain/models"
	"parkops/internal/store"
	"parkops/internal/utils"
)

// AssignmentService puts drivers and parcels onto trips without letting
// the same resource be committed twice inside one departure window.
type AssignmentService struct {
	Store     *store.Store
	RequestID string
}

// AssignDriver sets trip.DriverID after scanning every other trip of the
// same driver for an overlapping window. On conflict the returned error
// carries the offending trip id so the caller can surface it.
func (s AssignmentService) AssignDriver(parkID, tripID, driverID string) (models.Trip, error) {
	var out models.Trip
	err := s.Store.Update(func(d *store.Data) error {
		trip, ok := d.Trips[tripID]
		if !ok || trip.ParkID != parkID {
			return domain.NotFoundError{Resource: "trip"}
		}
		driver, ok := d.Drivers[driverID]
		if !ok || driver.ParkID != parkID {
			return domain.NotFoundError{Resource: "driver"}
		}
		if !driver.IsActive {
			return domain.ValidationError{Field: "driverId", Msg: "driver is not active"}
		}
		if trip.Status == models.TripCancelled || trip.Status == models.TripCompleted {
			return domain.StateError{Resource: "trip", Msg: fmt.Sprintf("trip is %s and cannot take a driver", trip.Status)}
		}

		for _, other := range d.Trips {
			if other.ID == trip.ID || other.DriverID != driverID {
				continue
			}
			if other.Status == models.TripCancelled || other.Status == models.TripCompleted {
				continue
			}
			if other.WindowOverlaps(*trip) {
				return domain.ConflictError{
					Resource:       "driver",
					Tag:            domain.ConflictDriverBusy,
					Msg:            fmt.Sprintf("driver already assigned to an overlapping trip on %s", other.Date),
					ConflictTripID: other.ID,
				}
			}
		}

		trip.DriverID = driverID
		trip.UpdatedAt = s.Store.Now()
		out = *trip
		return nil
	})
	if err != nil {
		return models.Trip{}, err
	}
	utils.LogEvent(s.RequestID, "assignment", "assign_driver", fmt.Sprintf("trip_id=%s driver_id=%s", tripID, driverID))
	return out, nil
}

// UnassignDriver clears the trip's driver.
func (s AssignmentService) UnassignDriver(parkID, tripID string) (models.Trip, error) {
	var out models.Trip
	err := s.Store.Update(func(d *store.Data) error {
		trip, ok := d.Trips[tripID]
		if !ok || trip.ParkID != parkID {
			return domain.NotFoundError{Resource: "trip"}
		}
		trip.DriverID = ""
		trip.UpdatedAt = s.Store.Now()
		out = *trip
		return nil
	})
	return out, err
}

// AssignParcels loads parcels onto a trip subject to its weight ceiling.
// Parcels already on the trip are skipped (idempotent); override lets
// dispatch exceed the soft ceiling explicitly. All-or-nothing.
func (s AssignmentService) AssignParcels(parkID, tripID string, parcelIDs []string, override bool) ([]models.Parcel, error) {
	var out []models.Parcel
	err := s.Store.Update(func(d *store.Data) error {
		trip, ok := d.Trips[tripID]
		if !ok || trip.ParkID != parkID {
			return domain.NotFoundError{Resource: "trip"}
		}
		if trip.Status == models.TripCancelled || trip.Status == models.TripCompleted {
			return domain.StateError{Resource: "trip", Msg: fmt.Sprintf("trip is %s and cannot take parcels", trip.Status)}
		}

		loadedKg := 0.0
		for _, p := range d.Parcels {
			if p.AssignedTripID == tripID {
				loadedKg += p.WeightKg
			}
		}

		toAssign := make([]*models.Parcel, 0, len(parcelIDs))
		addKg := 0.0
		for _, id := range parcelIDs {
			p, ok := d.Parcels[id]
			if !ok || p.ParkID != parkID {
				return domain.NotFoundError{Resource: "parcel", Err: fmt.Errorf("parcel %s", id)}
			}
			if p.AssignedTripID == tripID {
				continue // already loaded, no-op
			}
			if p.AssignedTripID != "" {
				return domain.ConflictError{Resource: "parcel", Msg: fmt.Sprintf("parcel %s already assigned to another trip", id)}
			}
			toAssign = append(toAssign, p)
			addKg += p.WeightKg
		}

		if !override && loadedKg+addKg > trip.ParcelCeilingKg() {
			return domain.ConflictError{
				Resource: "parcel",
				Tag:      domain.ConflictParcelCapacity,
				Msg: fmt.Sprintf("load %.1fkg exceeds trip parcel capacity %.1fkg",
					loadedKg+addKg, trip.ParcelCeilingKg()),
			}
		}

		now := s.Store.Now()
		for _, p := range toAssign {
			p.AssignedTripID = tripID
			p.UpdatedAt = now
		}
		for _, p := range d.Parcels {
			if p.AssignedTripID == tripID {
				out = append(out, *p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "assignment", "assign_parcels", fmt.Sprintf("trip_id=%s loaded=%d", tripID, len(out)))
	return out, nil
}
