package pooltop

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAddress is returned for wallet addresses that are too short
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidAmount is returned for payout thresholds below the pool minimum
	ErrInvalidAmount = errors.New("invalid amount")
)

// ValidateAddress accepts any address longer than MIN_ADDRESS_LENGTH. There
// is no checksum verification.
func ValidateAddress(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if len(addr) <= MIN_ADDRESS_LENGTH {
		return "", ErrInvalidAddress
	}
	return addr, nil
}

// ValidateThreshold parses a payout threshold in whole coins and checks it
// against the pool minimum
func ValidateThreshold(value string, minPayout float64) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	if d.LessThan(decimal.NewFromFloat(minPayout)) {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return d, nil
}
