// model/rent.go
package model

import "time"

type RentStatus string

const (
	RentRequest  RentStatus = "REQUEST"
	RentApproved RentStatus = "APPROVED"
	RentRejected RentStatus = "REJECTED"
	RentPaying   RentStatus = "PAYING"
	RentPaid     RentStatus = "PAID"
	RentCanceled RentStatus = "CANCELED"
	RentExpired  RentStatus = "EXPIRED"
)

type Rent struct {
	ID        string     `json:"id"`
	Property  string     `json:"property"`
	Occupant  string     `json:"occupant"`
	Duration  int        `json:"duration"` // days
	Status    RentStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateRentReq represents a rent request payload
// swagger:model CreateRentReq
type CreateRentReq struct {
	Property string `json:"property" validate:"required,uuid4"`
	Duration int    `json:"duration" validate:"required,gt=0"`
}
