package fbr

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fbrdigital/invoice-relay/internal/clients"
	"github.com/fbrdigital/invoice-relay/internal/rate"
	"github.com/fbrdigital/invoice-relay/internal/validation"
)

const (
	invoiceTypeSale    = "Sale Invoice"
	defaultDescription = "Goods"
	defaultUOM         = "Numbers, pieces, units" // caller's unit is not threaded through yet
	defaultSaleType    = "Goods at standard rate (default)"
	defaultInvoiceRef  = "INV-AUTO-001"
	defaultScenarioID  = "SN001"

	// Sandbox fallbacks for profiles that omit seller fields.
	defaultSellerNTN      = "9999997"
	defaultSellerName     = "My Business"
	defaultSellerProvince = "Sindh"
	defaultSellerAddress  = "Karachi"

	// Historical defaults, used only when the caller leaves them blank.
	defaultBuyerReg      = "1000000000000"
	defaultBuyerName     = "Walk-in Customer"
	defaultBuyerType     = "Unregistered"
	defaultBuyerProvince = "Sindh"
	defaultBuyerAddress  = "Karachi"
)

// Translate maps an inbound submission onto the gateway's nested shape.
// Seller identity comes from the authenticated profile, the invoice date
// is always the relay's own clock, and everything else is taken from the
// caller with per-field fallbacks.
func Translate(req *validation.InvoiceRequest, profile clients.Profile, now time.Time) *InvoicePayload {
	items := make([]InvoiceItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, InvoiceItem{
			HSCode:                it.ItemCode,
			PCTCode:               it.ItemCode,
			ProductDescription:    orDefault(it.ItemName, defaultDescription),
			Rate:                  rate.FormatPercent(decimal.NewFromFloat(it.TaxRate)),
			UOM:                   defaultUOM,
			Quantity:              it.Quantity,
			TotalValues:           it.TotalAmount,
			ValueSalesExcludingST: it.SaleValue,
			SalesTaxApplicable:    it.TaxCharged,
			SaleType:              defaultSaleType,
			// remaining monetary sub-fields stay at their zero values on purpose
		})
	}

	return &InvoicePayload{
		InvoiceType:           invoiceTypeSale,
		InvoiceDate:           now.Format("2006-01-02"),
		SellerNTNCNIC:         orDefault(profile.SellerNTN, defaultSellerNTN),
		SellerBusinessName:    orDefault(profile.Name, defaultSellerName),
		SellerProvince:        orDefault(profile.Province, defaultSellerProvince),
		SellerAddress:         orDefault(profile.Address, defaultSellerAddress),
		BuyerNTNCNIC:          orDefault(req.BuyerReg, defaultBuyerReg),
		BuyerBusinessName:     orDefault(req.BuyerName, defaultBuyerName),
		BuyerProvince:         orDefault(req.BuyerProvince, defaultBuyerProvince),
		BuyerAddress:          orDefault(req.BuyerAddress, defaultBuyerAddress),
		BuyerRegistrationType: orDefault(req.BuyerType, defaultBuyerType),
		InvoiceRefNo:          orDefault(req.InvoiceID, defaultInvoiceRef),
		ScenarioID:            orDefault(req.ScenarioID, defaultScenarioID),
		Items:                 items,
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
