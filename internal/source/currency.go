package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrBlankAmount is returned by ParseCurrency for empty cells.
var ErrBlankAmount = errors.New("blank amount")

var currencyStripper = strings.NewReplacer("$", "", ",", "", " ", "")

// ParseCurrency converts an accounting-formatted amount to a decimal.
//
//	"$1,234.56" -> 1234.56
//	"(50.00)"   -> -50
//	"-$7"       -> -7
//	"$(50.00)"  -> -50
func ParseCurrency(s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return decimal.Zero, ErrBlankAmount
	}

	v = currencyStripper.Replace(v)

	negative := false
	if strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")") {
		negative = true
		v = v[1 : len(v)-1]
	}
	if v == "" {
		return decimal.Zero, fmt.Errorf("parsing currency %q: %w", s, ErrBlankAmount)
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing currency %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
