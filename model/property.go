// model/property.go
package model

import "time"

type Property struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Title       string    `json:"title"`
	Country     string    `json:"country"`
	State       string    `json:"state"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	Price       float64   `json:"price"`
	Active      bool      `json:"active"`
	Description string    `json:"description,omitempty"`
	Hidden      bool      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePropertyReq represents a property listing payload
// swagger:model CreatePropertyReq
type CreatePropertyReq struct {
	Title       string  `json:"title" validate:"required"`
	Country     string  `json:"country" validate:"required"`
	State       string  `json:"state" validate:"required"`
	City        string  `json:"city" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description"`
}

// UpdatePropertyReq carries optional fields; nil means leave unchanged.
type UpdatePropertyReq struct {
	Title       *string  `json:"title"`
	Country     *string  `json:"country"`
	State       *string  `json:"state"`
	City        *string  `json:"city"`
	Address     *string  `json:"address"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Active      *bool    `json:"active"`
	Description *string  `json:"description"`
}
