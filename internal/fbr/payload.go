package fbr

// InvoiceItem is one line of the FBR Digital Invoicing payload. JSON
// names follow the DI API schema exactly, including its casing quirks
// ("uoM"). The schema requires every monetary sub-field to be present,
// so the ones the relay does not yet compute are emitted as explicit
// zero/empty placeholders rather than omitted.
type InvoiceItem struct {
	HSCode                          string  `json:"hsCode"`
	PCTCode                         string  `json:"pctCode"` // same code as hsCode; the gateway historically wanted it twice
	ProductDescription              string  `json:"productDescription"`
	Rate                            string  `json:"rate"` // "18%", "1.43%"
	UOM                             string  `json:"uoM"`
	Quantity                        float64 `json:"quantity"`
	TotalValues                     float64 `json:"totalValues"`
	ValueSalesExcludingST           float64 `json:"valueSalesExcludingST"`
	FixedNotifiedValueOrRetailPrice float64 `json:"fixedNotifiedValueOrRetailPrice"`
	SalesTaxApplicable              float64 `json:"salesTaxApplicable"`
	SalesTaxWithheldAtSource        float64 `json:"salesTaxWithheldAtSource"`
	ExtraTax                        float64 `json:"extraTax"`
	FurtherTax                      float64 `json:"furtherTax"`
	SROScheduleNo                   string  `json:"sroScheduleNo"`
	FEDPayable                      float64 `json:"fedPayable"`
	Discount                        float64 `json:"discount"`
	SaleType                        string  `json:"saleType"`
	SROItemSerialNo                 string  `json:"sroItemSerialNo"`
}

// InvoicePayload is the envelope POSTed to the DI gateway.
type InvoicePayload struct {
	InvoiceType           string        `json:"invoiceType"`
	InvoiceDate           string        `json:"invoiceDate"` // YYYY-MM-DD, relay clock
	SellerNTNCNIC         string        `json:"sellerNTNCNIC"`
	SellerBusinessName    string        `json:"sellerBusinessName"`
	SellerProvince        string        `json:"sellerProvince"`
	SellerAddress         string        `json:"sellerAddress"`
	BuyerNTNCNIC          string        `json:"buyerNTNCNIC"`
	BuyerBusinessName     string        `json:"buyerBusinessName"`
	BuyerProvince         string        `json:"buyerProvince"`
	BuyerAddress          string        `json:"buyerAddress"`
	BuyerRegistrationType string        `json:"buyerRegistrationType"`
	InvoiceRefNo          string        `json:"invoiceRefNo"`
	ScenarioID            string        `json:"scenarioId"`
	Items                 []InvoiceItem `json:"items"`
}
