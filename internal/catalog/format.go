package catalog

import (
	"math"
	"strconv"
)

// FormatPrice renders a price with space-separated thousands, the way the
// storefront displays sums ("150 000").
func FormatPrice(price float64) string {
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return "0"
	}
	s := strconv.FormatFloat(math.Round(price), 'f', 0, 64)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ' ')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
