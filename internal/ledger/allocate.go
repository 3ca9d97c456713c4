package ledger

import "github.com/shopspring/decimal"

// Allocation splits a repayment into the part that reduces principal and
// the part that reduces interest.
type Allocation struct {
	Principal decimal.Decimal
	Interest  decimal.Decimal
}

// Total returns Principal + Interest.
func (a Allocation) Total() decimal.Decimal {
	return a.Principal.Add(a.Interest)
}

// Allocate applies a repayment principal-first: the loan is paid off before
// any of it counts against interest.
func Allocate(repayment, loan, interest decimal.Decimal) (Allocation, error) {
	if err := requireNonNegative(FieldRepayment, repayment); err != nil {
		return Allocation{}, err
	}
	if repayment.GreaterThan(loan.Add(interest)) {
		return Allocation{}, ValidationError{Field: FieldRepayment, Reason: "repayment exceeds debt"}
	}
	if repayment.LessThanOrEqual(loan) {
		return Allocation{Principal: repayment, Interest: decimal.Zero}, nil
	}
	return Allocation{Principal: loan, Interest: repayment.Sub(loan)}, nil
}
