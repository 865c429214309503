// Package amount normalizes and bounds-checks monetary amounts submitted to
// transfer, withdraw and deposit.
package amount

import (
	"math"

	"github.com/shopspring/decimal"
)

// Reason explains why an amount was rejected.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonInvalidNumber Reason = "invalid_number"
	ReasonBelowMinimum  Reason = "below_minimum"
	ReasonAboveMaximum  Reason = "above_maximum"
)

// Bounds are inclusive limits applied to the normalized amount.
type Bounds struct {
	Min   decimal.Decimal
	Max   decimal.Decimal
	Scale int32
}

// DefaultBounds accepts 0.01 through 1,000,000.00 at two decimal places.
func DefaultBounds() Bounds {
	return Bounds{
		Min:   decimal.RequireFromString("0.01"),
		Max:   decimal.RequireFromString("1000000.00"),
		Scale: 2,
	}
}

// Result is produced once per raw amount. Amount is only meaningful when
// Valid reports true.
type Result struct {
	Amount    decimal.Decimal
	Sanitized bool
	Reason    Reason
}

func (r Result) Valid() bool {
	return r.Reason == ReasonNone
}

// Validator holds no mutable state and is safe for concurrent use.
type Validator struct {
	bounds Bounds
}

func NewValidator(bounds Bounds) *Validator {
	return &Validator{bounds: bounds}
}

func (v *Validator) Bounds() Bounds {
	return v.bounds
}

// Validate runs the checks in a fixed order: number format, rounding,
// minimum, maximum. Bounds apply to the rounded value.
func (v *Validator) Validate(raw float64) Result {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return Result{Reason: ReasonInvalidNumber}
	}

	// Round rounds half away from zero, which is half-up for the
	// non-negative amounts that can pass the minimum check.
	normalized := decimal.NewFromFloat(raw).Round(v.bounds.Scale)
	sanitized := normalized.InexactFloat64() != raw

	if normalized.LessThan(v.bounds.Min) || !normalized.IsPositive() {
		return Result{Sanitized: sanitized, Reason: ReasonBelowMinimum}
	}
	if normalized.GreaterThan(v.bounds.Max) {
		return Result{Sanitized: sanitized, Reason: ReasonAboveMaximum}
	}

	return Result{Amount: normalized, Sanitized: sanitized}
}
