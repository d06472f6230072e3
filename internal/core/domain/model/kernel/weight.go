package kernel

import (
	"fmt"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

const (
	// WeightMinKilograms is the exclusive lower bound for a package weight.
	WeightMinKilograms = 0.0
	// WeightMaxKilograms is the maximum package weight a shipment may carry.
	WeightMaxKilograms = 25.0
)

// ErrWeightIsNotConstructed is returned when attempting to use an improperly initialized Weight.
var ErrWeightIsNotConstructed = errs.NewValueIsRequiredError(
	"weight must be created via NewWeight constructor")

// Weight represents a package weight in kilograms.
// It is an immutable value object constrained to the range
// (WeightMinKilograms, WeightMaxKilograms].
//
// Example:
//
//	w, err := kernel.NewWeight(3.5)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(w) // Output: 3.50kg
type Weight struct { //nolint:recvcheck //using for validation
	kilograms float64
	guard     guard.ConstructorGuard
}

// NewWeight creates a Weight from a kilogram value.
// The value must be greater than zero and at most WeightMaxKilograms.
func NewWeight(kilograms float64) (Weight, error) {
	if kilograms <= WeightMinKilograms || kilograms > WeightMaxKilograms {
		return Weight{}, errs.NewValueIsOutOfRangeError(
			"weight", kilograms, WeightMinKilograms, WeightMaxKilograms)
	}

	return Weight{
		kilograms: kilograms,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Kilograms returns the weight value in kilograms.
func (w Weight) Kilograms() float64 {
	return w.kilograms
}

// String implements fmt.Stringer.
func (w Weight) String() string {
	return fmt.Sprintf("%.2fkg", w.kilograms)
}

// Validate ensures the Weight was created via NewWeight.
func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}
