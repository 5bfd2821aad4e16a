// Package calculators holds the deterministic computations handlers may
// invoke during synthesis. Every function is pure: no network, no
// randomness, and invalid inputs fail closed with ErrInvalidInput so the
// caller drops the computed claim instead of guessing.
package calculators

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a calculator's inputs fail validation.
var ErrInvalidInput = errors.New("calculator input invalid")

// StudentAidIndex estimates a simplified federal-methodology aid index
// from family finances. Inputs are annual figures in dollars.
func StudentAidIndex(income, assets float64, familySize, inCollege int) (float64, error) {
	switch {
	case income < 0:
		return 0, fmt.Errorf("%w: negative income", ErrInvalidInput)
	case assets < 0:
		return 0, fmt.Errorf("%w: negative assets", ErrInvalidInput)
	case familySize < 1:
		return 0, fmt.Errorf("%w: family size below 1", ErrInvalidInput)
	case inCollege < 1:
		return 0, fmt.Errorf("%w: students in college below 1", ErrInvalidInput)
	case inCollege > familySize:
		return 0, fmt.Errorf("%w: more students in college than family members", ErrInvalidInput)
	}

	// Income protection allowance grows with family size; available income
	// and a flat asset assessment are split across enrolled students.
	allowance := 25000.0 + 7000.0*float64(familySize-1)
	available := income - allowance
	if available < 0 {
		available = 0
	}

	index := (available*0.47 + assets*0.12) / float64(inCollege)
	return index, nil
}

// CostComponents are the budget lines of a cost-of-attendance estimate.
type CostComponents struct {
	Tuition        float64
	Fees           float64
	Housing        float64
	Food           float64
	Books          float64
	Personal       float64
	Transportation float64
}

// CostOfAttendance sums the budget components. Any negative component is
// invalid.
func CostOfAttendance(c CostComponents) (float64, error) {
	components := []float64{c.Tuition, c.Fees, c.Housing, c.Food, c.Books, c.Personal, c.Transportation}
	total := 0.0
	for _, v := range components {
		if v < 0 {
			return 0, fmt.Errorf("%w: negative cost component", ErrInvalidInput)
		}
		total += v
	}
	return total, nil
}

// NetPrice is the cost of attendance remaining after gift aid. Gift aid
// exceeding the cost of attendance is rejected rather than clamped.
func NetPrice(costOfAttendance, giftAid float64) (float64, error) {
	switch {
	case costOfAttendance < 0:
		return 0, fmt.Errorf("%w: negative cost of attendance", ErrInvalidInput)
	case giftAid < 0:
		return 0, fmt.Errorf("%w: negative gift aid", ErrInvalidInput)
	case giftAid > costOfAttendance:
		return 0, fmt.Errorf("%w: gift aid exceeds cost of attendance", ErrInvalidInput)
	}
	return costOfAttendance - giftAid, nil
}
