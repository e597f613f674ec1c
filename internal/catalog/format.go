package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NotAvailable is rendered for missing values.
const NotAvailable = "N/A"

// DefaultPricePrecision is the number of fractional digits used for hourly prices.
const DefaultPricePrecision = 4

// FormatPrice renders an optional price in USD. A nil or NaN price is "N/A",
// zero is "$0.00" and anything else is printed with precision fractional digits.
func FormatPrice(price *float64, precision int) string {
	if price == nil {
		return NotAvailable
	}
	return FormatPriceValue(*price, precision)
}

// FormatPriceValue is FormatPrice for a value that is known to be present.
func FormatPriceValue(price float64, precision int) string {
	if math.IsNaN(price) {
		return NotAvailable
	}
	if price == 0 {
		return "$0.00"
	}
	if precision < 0 {
		precision = 0
	}
	return fmt.Sprintf("$%.*f", precision, price)
}

// FormatGiB renders a memory size without trailing zeros, e.g. "16" or "0.5".
func FormatGiB(gib float64) string {
	return strconv.FormatFloat(gib, 'f', -1, 64)
}

// Filter returns the records whose instance type contains query, ignoring
// case. An empty query returns records unchanged. Order is preserved.
func Filter(records []InstanceRecord, query string) []InstanceRecord {
	if query == "" {
		return records
	}
	needle := strings.ToLower(query)

	out := make([]InstanceRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.InstanceType), needle) {
			out = append(out, r)
		}
	}
	return out
}
