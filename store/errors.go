package store

import "fmt"

// Machine-readable rejection reasons.
const (
	ReasonPriceBelowMinimum = "price_below_minimum"
	ReasonUnknownProduct    = "unknown_product"
	ReasonInvalidQuantity   = "invalid_quantity"
)

// ValidationError rejects a single product in a price or order request.
type ValidationError struct {
	Product string
	Reason  string
	Detail  string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Product, e.Reason, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Product, e.Reason)
}

// InsufficientFundsError rejects a pay-now order or emergency action the
// store cannot afford.
type InsufficientFundsError struct {
	Product string
	Need    float64
	Have    float64
}

func (e *InsufficientFundsError) Error() string {
	if e.Product != "" {
		return fmt.Sprintf("not enough cash for %s: need $%.2f, have $%.2f", e.Product, e.Need, e.Have)
	}
	return fmt.Sprintf("not enough cash: need $%.2f, have $%.2f", e.Need, e.Have)
}
