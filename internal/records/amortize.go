package records

import "math"

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// MonthlyPayment returns the fixed installment that repays amount over
// termMonths at annualRate percent, rounded to cents. A zero rate splits the
// principal evenly. Invalid inputs give NaN.
func MonthlyPayment(amount, annualRate float64, termMonths int) float64 {
	if termMonths <= 0 || math.IsNaN(amount) || math.IsNaN(annualRate) || annualRate < 0 {
		return math.NaN()
	}
	if annualRate == 0 {
		return roundCents(amount / float64(termMonths))
	}
	monthly := annualRate / 100 / 12
	n := float64(termMonths)
	return roundCents(amount * (monthly / (1 - math.Pow(1+monthly, -n))))
}
