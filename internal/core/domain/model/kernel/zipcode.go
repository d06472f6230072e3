package kernel

import (
	"fmt"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// zipCodeLength is the number of digits in a valid postal code.
const zipCodeLength = 5

// ErrZipCodeIsNotConstructed is returned when attempting to use an improperly initialized ZipCode.
// Zip codes must be created using the NewZipCode constructor to ensure validity.
var ErrZipCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"zip code must be created via NewZipCode constructor")

// ZipCode represents a destination postal code serviced by delivery partners.
// It is an immutable value object; the zero value is invalid and will fail validation.
//
// Example:
//
//	zip, err := kernel.NewZipCode("90210")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(zip) // Output: 90210
type ZipCode struct { //nolint:recvcheck //using for validation
	code  string
	guard guard.ConstructorGuard
}

// NewZipCode creates a ZipCode from its string form.
// The code must consist of exactly five decimal digits.
// Returns a ValueIsInvalidError when the format does not match.
func NewZipCode(code string) (ZipCode, error) {
	if code == "" {
		return ZipCode{}, errs.NewValueIsRequiredError("zip code")
	}

	if len(code) != zipCodeLength {
		return ZipCode{}, errs.NewValueIsInvalidErrorWithCause("zip code",
			fmt.Errorf("%q must contain exactly %d digits", code, zipCodeLength))
	}

	for _, r := range code {
		if r < '0' || r > '9' {
			return ZipCode{}, errs.NewValueIsInvalidErrorWithCause("zip code",
				fmt.Errorf("%q contains a non-digit character", code))
		}
	}

	return ZipCode{
		code:  code,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// String returns the five-digit string form of the zip code.
func (z ZipCode) String() string {
	return z.code
}

// IsEqual compares two zip codes by their digit sequence.
func (z ZipCode) IsEqual(other ZipCode) bool {
	return z.code == other.code
}

// Validate ensures the ZipCode was created via NewZipCode.
func (z ZipCode) Validate() error {
	return z.guard.Validate(ErrZipCodeIsNotConstructed)
}
