package models

import "time"

// Parcel is a package waybilled toward a route, optionally loaded onto a
// concrete trip by the assignment engine.
type Parcel struct {
	ID                 string    `json:"id"`
	ParkID             string    `json:"parkId"`
	Description        string    `json:"description"`
	WeightKg           float64   `json:"weightKg"`
	DestinationRouteID string    `json:"destinationRouteId"`
	AssignedTripID     string    `json:"assignedTripId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
