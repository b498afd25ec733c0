package models

import "time"

// Park is the operating motor park that owns routes, drivers and trips.
type Park struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// User is a park staff account. The engine itself only ever sees the
// parkID resolved from the token; roles are enforced before it is called.
type User struct {
	ID           string    `json:"id"`
	ParkID       string    `json:"parkId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
