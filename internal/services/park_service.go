package services

import (
	"sort"

	"parkops/internal/domain"
	"parkops/internal/domain/models"
	"parkops/internal/store"
	"parkops/internal/utils"
)

// ParkService manages the parks that own everything else.
type ParkService struct {
	Store     *store.Store
	RequestID string
}

// ParkInput carries the fields required to register a park.
type ParkInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (s ParkService) Create(in ParkInput) (models.Park, error) {
	in.Name = utils.NormalizeSpace(in.Name)
	if in.Name == "" {
		return models.Park{}, domain.ValidationError{Field: "name", Msg: "name is required"}
	}

	var out models.Park
	err := s.Store.Update(func(d *store.Data) error {
		now := s.Store.Now()
		p := &models.Park{
			ID:        utils.NewID(),
			Name:      in.Name,
			Address:   utils.TrimOrEmpty(in.Address),
			Phone:     utils.TrimOrEmpty(in.Phone),
			CreatedAt: now,
			UpdatedAt: now,
		}
		d.Parks[p.ID] = p
		out = *p
		return nil
	})
	if err != nil {
		return models.Park{}, err
	}
	utils.LogEvent(s.RequestID, "park", "create", "park_id="+out.ID)
	return out, nil
}

func (s ParkService) Get(parkID string) (models.Park, error) {
	var out models.Park
	found := false
	s.Store.View(func(d *store.Data) {
		if p, ok := d.Parks[parkID]; ok {
			out = *p
			found = true
		}
	})
	if !found {
		return models.Park{}, domain.NotFoundError{Resource: "park"}
	}
	return out, nil
}

func (s ParkService) List() []models.Park {
	out := []models.Park{}
	s.Store.View(func(d *store.Data) {
		for _, p := range d.Parks {
			out = append(out, *p)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
