// model/transaction.go
package model

import "time"

type Transactable string

const (
	TransactableRent         Transactable = "RENT"
	TransactableSubscription Transactable = "SUBSCRIPTION"
)

type Transaction struct {
	ID           string       `json:"id"`
	Amount       float64      `json:"amount"`
	From         string       `json:"from"`
	To           string       `json:"to"`
	Transactable Transactable `json:"transactable"`
	Item         string       `json:"item"`
	Platform     string       `json:"platform"`
	Reference    string       `json:"reference"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// CreateTransactionReq represents a payment record payload
// swagger:model CreateTransactionReq
type CreateTransactionReq struct {
	Amount       float64      `json:"amount" validate:"required,gt=0"`
	From         string       `json:"from" validate:"required"`
	To           string       `json:"to" validate:"required"`
	Transactable Transactable `json:"transactable" validate:"required,oneof=RENT SUBSCRIPTION"`
	Item         string       `json:"item" validate:"required"`
	Platform     string       `json:"platform" validate:"required"`
	Reference    string       `json:"reference" validate:"required"`
}
