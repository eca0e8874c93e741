package models

import "time"

// Card is a single credit card owned by a user. billing_day and
// repayment_day are calendar days-of-month (1-31); days that do not
// exist in a given month roll into the next one during calculation.
type Card struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Name              string    `json:"name"`
	BillingDay        int       `json:"billing_day"`
	RepaymentDay      int       `json:"repayment_day"`
	CurrentBillAmount float64   `json:"current_bill_amount"`
	UnbilledAmount    float64   `json:"unbilled_amount"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateCardRequest is the JSON body for POST /api/cards. Day fields are
// pointers so that a missing field can be told apart from a zero.
type CreateCardRequest struct {
	Name              string   `json:"name"`
	BillingDay        *int     `json:"billing_day"`
	RepaymentDay      *int     `json:"repayment_day"`
	CurrentBillAmount *float64 `json:"current_bill_amount"`
	UnbilledAmount    *float64 `json:"unbilled_amount"`
}

// UpdateCardRequest is the JSON body for PUT /api/cards/{id}. Every field
// is optional; only supplied fields are applied.
type UpdateCardRequest struct {
	Name              *string  `json:"name"`
	BillingDay        *int     `json:"billing_day"`
	RepaymentDay      *int     `json:"repayment_day"`
	CurrentBillAmount *float64 `json:"current_bill_amount"`
	UnbilledAmount    *float64 `json:"unbilled_amount"`
}

// ImportEntry is one element of the POST /api/cards/import payload.
// The import format uses camelCase day names, unlike the card records.
type ImportEntry struct {
	Name         string `json:"name"`
	BillingDay   *int   `json:"billingDay"`
	RepaymentDay *int   `json:"repaymentDay"`
}

// ImportResponse reports how many cards a bulk import created.
type ImportResponse struct {
	Imported int `json:"imported"`
}
