package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Prices are integer minor currency units.
const (
	FreePrice int64 = 0
	MinPrice  int64 = 10_00
	MaxPrice  int64 = 5000_00
)

// ValidatePrice accepts zero or a value within [MinPrice, MaxPrice].
func ValidatePrice(price int64) error {
	if price == FreePrice {
		return nil
	}
	if price < MinPrice || price > MaxPrice {
		return NewValidationError(fmt.Sprintf("price must be 0 or between %s and %s", FormatAmount(MinPrice), FormatAmount(MaxPrice)))
	}
	return nil
}

// FormatAmount renders minor units as "12.34".
func FormatAmount(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}

// PlatformFee is ceil(base * rate).
func PlatformFee(base int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(base).Mul(rate).Ceil().IntPart()
}

// Split is the ledger breakdown of a received payment.
type Split struct {
	Base  int64
	Tip   int64
	Fee   int64
	Total int64
}

// SplitPayment computes base = received - tip, fee on base only, total = base - fee + tip.
func SplitPayment(received, tip int64, rate decimal.Decimal) (Split, error) {
	if received < 0 || tip < 0 || tip > received {
		return Split{}, ErrInvalidAmount
	}
	base := received - tip
	fee := PlatformFee(base, rate)
	return Split{
		Base:  base,
		Tip:   tip,
		Fee:   fee,
		Total: base - fee + tip,
	}, nil
}
