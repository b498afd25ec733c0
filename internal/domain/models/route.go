package models

import "time"

// Route is a park-scoped destination with its base fare and the capacity
// of the vehicle class normally run on it.
type Route struct {
	ID              string    `json:"id"`
	ParkID          string    `json:"parkId"`
	Destination     string    `json:"destination"`
	BasePrice       int64     `json:"basePrice"`
	VehicleCapacity int       `json:"vehicleCapacity"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// RouteUpdate supports PATCH-style updates via key presence.
type RouteUpdate struct {
	Destination     *string `json:"destination"`
	BasePrice       *int64  `json:"basePrice"`
	VehicleCapacity *int    `json:"vehicleCapacity"`
	IsActive        *bool   `json:"isActive"`
}
