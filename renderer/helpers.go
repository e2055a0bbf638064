package renderer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
)

// Money formats a float value in the given currency with its symbol and
// conventional decimal places. Codes outside the ISO table (crypto tickers)
// format with the code as suffix.
func Money(value float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = "USD"
	}
	if c := money.GetCurrency(code); c != nil {
		fraction := math.Pow10(c.Fraction)
		return money.New(int64(math.Round(value*fraction)), code).Display()
	}
	return fmt.Sprintf("%s %s", strconv.FormatFloat(value, 'f', 2, 64), code)
}

// Percent formats a percent figure with an explicit sign.
func Percent(value float64) string {
	return fmt.Sprintf("%+.2f%%", value)
}

// Amount formats an asset quantity, trimming trailing zeros.
func Amount(value float64) string {
	s := strconv.FormatFloat(value, 'f', 8, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
