package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator.
//
// No struct-level validation is registered: the relay deliberately does
// not reconcile TotalAmount against SaleValue + TaxCharged, nor
// TotalBill against the line items. It trusts caller-supplied totals.
func New() *validatorv10.Validate {
	return validatorv10.New()
}
