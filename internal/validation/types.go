package validation

// InvoiceLineItem is one priced product/service entry as submitted by the
// form. Monetary fields are caller-supplied; the relay forwards them
// without recomputing, and TotalAmount is trusted to equal
// SaleValue + TaxCharged without being checked.
type InvoiceLineItem struct {
	ItemCode    string  `json:"ItemCode" validate:"required"`      // tariff/HS code, free-form
	ItemName    string  `json:"ItemName"`                          // empty -> placeholder description downstream
	Quantity    float64 `json:"Quantity" validate:"required,gt=0"` // must be positive
	TaxRate     float64 `json:"TaxRate" validate:"gte=0"`          // bare number, 18.0 means 18%
	SaleValue   float64 `json:"SaleValue" validate:"gte=0"`        // value excluding sales tax
	TaxCharged  float64 `json:"TaxCharged" validate:"gte=0"`       // caller-supplied, not recomputed
	TotalAmount float64 `json:"TotalAmount" validate:"gte=0"`      // caller-supplied, not reconciled
}

// InvoiceRequest is the payload for POST /submit-invoice.
type InvoiceRequest struct {
	InvoiceID     string            `json:"invoice_id"`                           // optional; placeholder when blank
	USIN          string            `json:"usin" validate:"required"`             // unique submission identifier
	Items         []InvoiceLineItem `json:"items" validate:"required,min=1,dive"` // at least one line
	TotalBill     float64           `json:"total_bill" validate:"gte=0"`
	BuyerReg      string            `json:"buyer_reg"` // buyer NTN/CNIC
	BuyerName     string            `json:"buyer_name"`
	BuyerType     string            `json:"buyer_type"`     // "Registered" / "Unregistered"
	BuyerProvince string            `json:"buyer_province"` // defaulted when blank
	BuyerAddress  string            `json:"buyer_address"`  // defaulted when blank
	ScenarioID    string            `json:"scenario_id"`    // regulatory scenario code, defaulted when blank
}
