package services

import (
	"sort"

	"parkops/internal/domain"
	"parkops/internal/domain/models"
	"parkops/internal/store"
	"parkops/internal/utils"
)

// ParcelService registers waybilled parcels awaiting a trip.
type ParcelService struct {
	Store     *store.Store
	RequestID string
}

// ParcelInput carries the fields required to waybill a parcel.
type ParcelInput struct {
	Description        string  `json:"description"`
	WeightKg           float64 `json:"weightKg"`
	DestinationRouteID string  `json:"destinationRouteId"`
}

func (s ParcelService) Create(parkID string, in ParcelInput) (models.Parcel, error) {
	in.Description = utils.NormalizeSpace(in.Description)
	if in.Description == "" {
		return models.Parcel{}, domain.ValidationError{Field: "description", Msg: "description is required"}
	}
	if in.WeightKg <= 0 {
		return models.Parcel{}, domain.ValidationError{Field: "weightKg", Msg: "weight must be greater than zero"}
	}

	var out models.Parcel
	err := s.Store.Update(func(d *store.Data) error {
		r, ok := d.Routes[in.DestinationRouteID]
		if !ok || r.ParkID != parkID {
			return domain.NotFoundError{Resource: "route"}
		}
		now := s.Store.Now()
		p := &models.Parcel{
			ID:                 utils.NewID(),
			ParkID:             parkID,
			Description:        in.Description,
			WeightKg:           in.WeightKg,
			DestinationRouteID: r.ID,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		d.Parcels[p.ID] = p
		out = *p
		return nil
	})
	if err != nil {
		return models.Parcel{}, err
	}
	utils.LogEvent(s.RequestID, "parcel", "create", "parcel_id="+out.ID)
	return out, nil
}

// List returns the park's parcels, optionally only those still unassigned.
func (s ParcelService) List(parkID string, unassignedOnly bool) []models.Parcel {
	out := []models.Parcel{}
	s.Store.View(func(d *store.Data) {
		for _, p := range d.Parcels {
			if p.ParkID != parkID {
				continue
			}
			if unassignedOnly && p.AssignedTripID != "" {
				continue
			}
			out = append(out, *p)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
