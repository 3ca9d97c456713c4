package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Form field names carried on ValidationError.
const (
	FieldName      = "name"
	FieldShare     = "share"
	FieldLoan      = "loan"
	FieldInterest  = "interest"
	FieldRepayment = "repayment"
)

// ValidationError rejects user input before the store is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

var invalidReasons = map[string]string{
	FieldLoan:     "Invalid loan amount",
	FieldInterest: "Invalid interest",
}

var negativeReasons = map[string]string{
	FieldShare:     "Share cannot be negative",
	FieldLoan:      "Loan amount cannot be negative",
	FieldInterest:  "Interest cannot be negative",
	FieldRepayment: "Repayment amount cannot be negative",
}

// maxExponent bounds the decimal exponent of parsed amounts. Printing
// 1e2000000000 would expand two billion digits.
const maxExponent = 18

// ParseAmount parses user input for field as a decimal. Surrounding
// whitespace is ignored. Sign is not checked here.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.Exponent() > maxExponent || d.Exponent() < -maxExponent {
		reason, ok := invalidReasons[field]
		if !ok {
			reason = "Enter valid number"
		}
		return decimal.Zero, ValidationError{Field: field, Reason: reason}
	}
	return d, nil
}

func requireNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return ValidationError{Field: field, Reason: negativeReasons[field]}
	}
	return nil
}

// ValidateName trims name and rejects it if empty.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ValidationError{Field: FieldName, Reason: "Enter valid username"}
	}
	return name, nil
}

// ValidatePassword applies the new-password rules: both entries at least
// minLen characters and identical.
func ValidatePassword(password, confirm string, minLen int) error {
	if len([]rune(password)) < minLen || len([]rune(confirm)) < minLen {
		return ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("Password needs to be at least %d characters long", minLen),
		}
	}
	if password != confirm {
		return ValidationError{Field: "password", Reason: "Passwords do not match"}
	}
	return nil
}
