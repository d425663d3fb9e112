// Package fiscal computes steady-state debt targets from fiscal
// parameters. The target debt-to-GDP ratio is the level at which a
// constant primary surplus exactly services the debt:
//
//	ratio = primary_surplus / (interest_rate - gdp_growth_rate)
//
// The denominator must be positive. When the interest rate does not
// exceed the growth rate the debt dynamics are unsustainable and no
// finite target exists, reported as an UnsustainableError rather than
// a sentinel so callers can recover the offending rates.
package fiscal

import "fmt"

// Inputs are the fiscal parameters for a target computation. Rates
// are fractions, not percentages: 0.33 means 33%.
type Inputs struct {
	InterestRate   float64
	PrimarySurplus float64
	GDPGrowthRate  float64
}

// UnsustainableError reports that the interest rate does not exceed
// the GDP growth rate, so no finite debt target exists.
type UnsustainableError struct {
	InterestRate  float64
	GDPGrowthRate float64
}

func (e *UnsustainableError) Error() string {
	return fmt.Sprintf("interest rate %g must exceed GDP growth rate %g for sustainable debt",
		e.InterestRate, e.GDPGrowthRate)
}

// TargetDebtToGDP returns the debt-to-GDP ratio at which the primary
// surplus exactly stabilizes the debt. A negative surplus (a deficit)
// yields a negative target.
func TargetDebtToGDP(in Inputs) (float64, error) {
	if in.InterestRate <= in.GDPGrowthRate {
		return 0, &UnsustainableError{
			InterestRate:  in.InterestRate,
			GDPGrowthRate: in.GDPGrowthRate,
		}
	}
	return in.PrimarySurplus / (in.InterestRate - in.GDPGrowthRate), nil
}
