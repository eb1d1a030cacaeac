package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const RupeeSymbol = "₹"

// FormatINR renders an amount with Indian digit grouping: ₹1,00,000.
// Paise are shown only when present.
func FormatINR(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	amount = amount.Round(2)
	whole := amount.Truncate(0)
	frac := amount.Sub(whole)

	out := sign + RupeeSymbol + groupIndian(whole.String())
	if !frac.IsZero() {
		out += fmt.Sprintf(".%02d", frac.Shift(2).IntPart())
	}
	return out
}

// last three digits, then groups of two
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
