package models

import "time"

// Driver is a park-scoped driver profile.
type Driver struct {
	ID            string    `json:"id"`
	ParkID        string    `json:"parkId"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"licenseNumber"`
	LicenseExpiry string    `json:"licenseExpiry"`
	Qualification string    `json:"qualification"`
	Rating        float64   `json:"rating"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DriverUpdate supports PATCH-style updates via key presence.
type DriverUpdate struct {
	Name          *string  `json:"name"`
	Phone         *string  `json:"phone"`
	LicenseNumber *string  `json:"licenseNumber"`
	LicenseExpiry *string  `json:"licenseExpiry"`
	Qualification *string  `json:"qualification"`
	Rating        *float64 `json:"rating"`
	IsActive      *bool    `json:"isActive"`
}

// DriverFilter narrows driver listings.
type DriverFilter struct {
	Qualification string
	MinRating     float64
	ActiveOnly    bool
}
