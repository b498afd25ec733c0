package services

import (
	"sort"
	"strings"

	"parkops/internal/domain"
	"parkops/internal/domain/models"
	"parkops/internal/store"
	"parkops/internal/utils"
)

// DriverService manages park-scoped driver profiles.
type DriverService struct {
	Store     *store.Store
	RequestID string
}

// DriverInput carries the fields required to register a driver.
type DriverInput struct {
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	LicenseNumber string  `json:"licenseNumber"`
	LicenseExpiry string  `json:"licenseExpiry"`
	Qualification string  `json:"qualification"`
	Rating        float64 `json:"rating"`
}

func (s DriverService) Create(parkID string, in DriverInput) (models.Driver, error) {
	in.Name = utils.NormalizeSpace(in.Name)
	if in.Name == "" {
		return models.Driver{}, domain.ValidationError{Field: "name", Msg: "name is required"}
	}
	if utils.NormalizePhone(in.Phone) == "" {
		return models.Driver{}, domain.ValidationError{Field: "phone", Msg: "phone is required"}
	}
	if strings.TrimSpace(in.LicenseNumber) == "" {
		return models.Driver{}, domain.ValidationError{Field: "licenseNumber", Msg: "license number is required"}
	}
	if in.Rating < 0 || in.Rating > 5 {
		return models.Driver{}, domain.ValidationError{Field: "rating", Msg: "rating must be between 0 and 5"}
	}

	var out models.Driver
	err := s.Store.Update(func(d *store.Data) error {
		if _, ok := d.Parks[parkID]; !ok {
			return domain.NotFoundError{Resource: "park"}
		}
		for _, dr := range d.Drivers {
			if dr.ParkID == parkID && strings.EqualFold(dr.LicenseNumber, in.LicenseNumber) {
				return domain.ConflictError{Resource: "driver", Msg: "license number already registered"}
			}
		}
		now := s.Store.Now()
		dr := &models.Driver{
			ID:            utils.NewID(),
			ParkID:        parkID,
			Name:          in.Name,
			Phone:         utils.TrimOrEmpty(in.Phone),
			LicenseNumber: utils.TrimOrEmpty(in.LicenseNumber),
			LicenseExpiry: utils.NormalizeDate(in.LicenseExpiry),
			Qualification: utils.NormalizeSpace(in.Qualification),
			Rating:        in.Rating,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		d.Drivers[dr.ID] = dr
		out = *dr
		return nil
	})
	if err != nil {
		return models.Driver{}, err
	}
	utils.LogEvent(s.RequestID, "driver", "create", "driver_id="+out.ID)
	return out, nil
}

func (s DriverService) Update(parkID, driverID string, upd models.DriverUpdate) (models.Driver, error) {
	var out models.Driver
	err := s.Store.Update(func(d *store.Data) error {
		dr, ok := d.Drivers[driverID]
		if !ok || dr.ParkID != parkID {
			return domain.NotFoundError{Resource: "driver"}
		}
		if upd.Name != nil {
			name := utils.NormalizeSpace(*upd.Name)
			if name == "" {
				return domain.ValidationError{Field: "name", Msg: "name is required"}
			}
			dr.Name = name
		}
		if upd.Phone != nil {
			if utils.NormalizePhone(*upd.Phone) == "" {
				return domain.ValidationError{Field: "phone", Msg: "phone is required"}
			}
			dr.Phone = utils.TrimOrEmpty(*upd.Phone)
		}
		if upd.LicenseNumber != nil {
			if strings.TrimSpace(*upd.LicenseNumber) == "" {
				return domain.ValidationError{Field: "licenseNumber", Msg: "license number is required"}
			}
			dr.LicenseNumber = utils.TrimOrEmpty(*upd.LicenseNumber)
		}
		if upd.LicenseExpiry != nil {
			dr.LicenseExpiry = utils.NormalizeDate(*upd.LicenseExpiry)
		}
		if upd.Qualification != nil {
			dr.Qualification = utils.NormalizeSpace(*upd.Qualification)
		}
		if upd.Rating != nil {
			if *upd.Rating < 0 || *upd.Rating > 5 {
				return domain.ValidationError{Field: "rating", Msg: "rating must be between 0 and 5"}
			}
			dr.Rating = *upd.Rating
		}
		if upd.IsActive != nil {
			dr.IsActive = *upd.IsActive
		}
		dr.UpdatedAt = s.Store.Now()
		out = *dr
		return nil
	})
	return out, err
}

func (s DriverService) Get(parkID, driverID string) (models.Driver, error) {
	var out models.Driver
	found := false
	s.Store.View(func(d *store.Data) {
		if dr, ok := d.Drivers[driverID]; ok && dr.ParkID == parkID {
			out = *dr
			found = true
		}
	})
	if !found {
		return models.Driver{}, domain.NotFoundError{Resource: "driver"}
	}
	return out, nil
}

// List returns the park's drivers narrowed by the filter, best rated first.
func (s DriverService) List(parkID string, f models.DriverFilter) []models.Driver {
	out := []models.Driver{}
	s.Store.View(func(d *store.Data) {
		for _, dr := range d.Drivers {
			if dr.ParkID != parkID {
				continue
			}
			if f.ActiveOnly && !dr.IsActive {
				continue
			}
			if f.Qualification != "" && !strings.EqualFold(dr.Qualification, f.Qualification) {
				continue
			}
			if dr.Rating < f.MinRating {
				continue
			}
			out = append(out, *dr)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Name < out[j].Name
	})
	return out
}
