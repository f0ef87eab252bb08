// Package currency converts between user-facing decimal amounts and the
// integer minor units (cents) that all storage and arithmetic use.
package currency

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrInvalidAmount = errors.New("amount is not a valid decimal number")

var hundred = decimal.NewFromInt(100)

// symbolPattern matches currency symbols that users paste into amount fields.
var symbolPattern = regexp.MustCompile(`[R$€£¥₹]`)

// decimalComma matches amounts using a comma as decimal separator, e.g. "1 234,56".
var decimalComma = regexp.MustCompile(`,\d{2}$`)

// ToMinorUnits converts a decimal amount to minor units.
// Rounding is half away from zero, which is what decimal.Round does.
func ToMinorUnits(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// ToDecimalUnits converts minor units back to a decimal amount at two places.
func ToDecimalUnits(m int64) decimal.Decimal {
	return decimal.NewFromInt(m).DivRound(hundred, 2)
}

// ParseAmount decodes a user-entered amount string into minor units.
// It tolerates currency symbols, spaces and both "1,234.56" and "1.234,56"
// thousand/decimal conventions.
func ParseAmount(s string) (int64, error) {
	cleaned := symbolPattern.ReplaceAllString(s, "")
	cleaned = strings.Join(strings.Fields(cleaned), "")

	if cleaned == "" {
		return 0, ErrInvalidAmount
	}

	if decimalComma.MatchString(cleaned) {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	return ToMinorUnits(d), nil
}

// Format renders minor units as a display string, e.g. "1 234.56" for en-ZA.
func Format(m int64) string {
	p := message.NewPrinter(language.MustParse("en-ZA"))
	d := ToDecimalUnits(m)

	// InexactFloat64 is fine here, the value has at most two decimal places
	// and display strings are never fed back into arithmetic.
	return p.Sprintf("%.2f", d.InexactFloat64())
}
