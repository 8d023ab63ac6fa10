package model

import (
	"encoding/json"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Customer is a persisted customer record. ID is assigned by the store on
// create and never changes afterwards.
type Customer struct {
	ID               string           `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	Email            string           `json:"email" db:"email"`
	AnnualSpend      *decimal.Decimal `json:"annual_spend" db:"annual_spend"`
	LastPurchaseDate *civil.Date      `json:"last_purchase_date" db:"last_purchase_date"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// CustomerRequest carries the editable fields of a customer for both create
// and update. Updates replace every field.
type CustomerRequest struct {
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	AnnualSpend      *decimal.Decimal `json:"annual_spend"`
	LastPurchaseDate *civil.Date      `json:"last_purchase_date"`
	// EmailAbsent is set when a decoded payload had no email or a null one.
	EmailAbsent      bool             `json:"-"`
}

func (r *CustomerRequest) UnmarshalJSON(data []byte) error {
	type plain CustomerRequest
	var aux struct {
		plain
		Email *string `json:"email"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = CustomerRequest(aux.plain)
	r.Email, r.EmailAbsent = "", aux.Email == nil
	if aux.Email != nil {
		r.Email = *aux.Email
	}
	return nil
}

// CustomerView is a customer plus its derived loyalty tier. It is never stored.
type CustomerView struct {
	Customer
	Tier Tier `json:"tier"`
}
