package rate

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParsePercent converts a display-oriented rate string into a numeric
// percentage. Only the pure percentage form ("18%", " 18 % ", "17.5") is
// machine-readable. Fixed-amount rates ("Rs.3") and composite rates
// (anything with a slash, or garbage left after stripping the percent
// sign) parse to zero rather than erroring: the reference sheet mixes
// all of these in one column.
func ParsePercent(s string) decimal.Decimal {
	if strings.Contains(s, "%") {
		d, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(s, "%", "")))
		if err != nil {
			return decimal.Zero
		}
		return d
	}
	if strings.Contains(s, "Rs.") || strings.Contains(s, "/") {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatPercent renders a numeric rate in the gateway's expected string
// form: whole numbers without a decimal point ("18%"), everything else
// with its natural decimal representation ("1.43%").
// ParsePercent(FormatPercent(x)) == x for any non-negative x.
func FormatPercent(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.Truncate(0).String() + "%"
	}
	return d.String() + "%"
}

// EstimateTax computes the display-only tax estimate
// valueExcl * ratePct / 100. A zero sale value yields zero regardless of
// rate. The authoritative figure is whatever the caller supplies as
// TaxCharged; the relay never reconciles the two.
func EstimateTax(valueExcl, ratePct decimal.Decimal) decimal.Decimal {
	if valueExcl.IsZero() {
		return decimal.Zero
	}
	return valueExcl.Mul(ratePct).Div(hundred)
}
