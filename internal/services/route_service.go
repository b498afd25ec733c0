package services

import (
	"sort"
	"strings"

	"parkops/internal/domain"
	"parkops/internal/domain/models"
	"parkops/internal/store"
	"parkops/internal/utils"
)

// RouteService manages park-scoped destinations.
type RouteService struct {
	Store     *store.Store
	RequestID string
}

// RouteInput carries the fields required to open a destination.
type RouteInput struct {
	Destination     string `json:"destination"`
	BasePrice       int64  `json:"basePrice"`
	VehicleCapacity int    `json:"vehicleCapacity"`
}

func (s RouteService) Create(parkID string, in RouteInput) (models.Route, error) {
	in.Destination = utils.NormalizeSpace(in.Destination)
	if in.Destination == "" {
		return models.Route{}, domain.ValidationError{Field: "destination", Msg: "destination is required"}
	}
	if in.BasePrice <= 0 {
		return models.Route{}, domain.ValidationError{Field: "basePrice", Msg: "base price must be greater than zero"}
	}
	if in.VehicleCapacity <= 0 {
		return models.Route{}, domain.ValidationError{Field: "vehicleCapacity", Msg: "vehicle capacity must be greater than zero"}
	}

	var out models.Route
	err := s.Store.Update(func(d *store.Data) error {
		if _, ok := d.Parks[parkID]; !ok {
			return domain.NotFoundError{Resource: "park"}
		}
		for _, r := range d.Routes {
			if r.ParkID == parkID && strings.EqualFold(r.Destination, in.Destination) {
				return domain.ConflictError{Resource: "route", Msg: "destination already exists for this park"}
			}
		}
		now := s.Store.Now()
		r := &models.Route{
			ID:              utils.NewID(),
			ParkID:          parkID,
			Destination:     in.Destination,
			BasePrice:       in.BasePrice,
			VehicleCapacity: in.VehicleCapacity,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		d.Routes[r.ID] = r
		out = *r
		return nil
	})
	if err != nil {
		return models.Route{}, err
	}
	utils.LogEvent(s.RequestID, "route", "create", "destination="+out.Destination)
	return out, nil
}

func (s RouteService) Update(parkID, routeID string, upd models.RouteUpdate) (models.Route, error) {
	var out models.Route
	err := s.Store.Update(func(d *store.Data) error {
		r, ok := d.Routes[routeID]
		if !ok || r.ParkID != parkID {
			return domain.NotFoundError{Resource: "route"}
		}
		if upd.Destination != nil {
			dest := utils.NormalizeSpace(*upd.Destination)
			if dest == "" {
				return domain.ValidationError{Field: "destination", Msg: "destination is required"}
			}
			r.Destination = dest
		}
		if upd.BasePrice != nil {
			if *upd.BasePrice <= 0 {
				return domain.ValidationError{Field: "basePrice", Msg: "base price must be greater than zero"}
			}
			r.BasePrice = *upd.BasePrice
		}
		if upd.VehicleCapacity != nil {
			if *upd.VehicleCapacity <= 0 {
				return domain.ValidationError{Field: "vehicleCapacity", Msg: "vehicle capacity must be greater than zero"}
			}
			r.VehicleCapacity = *upd.VehicleCapacity
		}
		if upd.IsActive != nil {
			r.IsActive = *upd.IsActive
		}
		r.UpdatedAt = s.Store.Now()
		out = *r
		return nil
	})
	return out, err
}

func (s RouteService) Get(parkID, routeID string) (models.Route, error) {
	var out models.Route
	found := false
	s.Store.View(func(d *store.Data) {
		if r, ok := d.Routes[routeID]; ok && r.ParkID == parkID {
			out = *r
			found = true
		}
	})
	if !found {
		return models.Route{}, domain.NotFoundError{Resource: "route"}
	}
	return out, nil
}

func (s RouteService) List(parkID string, activeOnly bool) []models.Route {
	out := []models.Route{}
	s.Store.View(func(d *store.Data) {
		for _, r := range d.Routes {
			if r.ParkID != parkID {
				continue
			}
			if activeOnly && !r.IsActive {
				continue
			}
			out = append(out, *r)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Destination < out[j].Destination })
	return out
}
