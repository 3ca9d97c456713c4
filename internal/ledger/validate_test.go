package ledger

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		field   string
		input   string
		want    string
		wantErr string
	}{
		{FieldShare, "100", "100", ""},
		{FieldShare, " 12.50 ", "12.5", ""},
		{FieldShare, "-3", "-3", ""},
		{FieldShare, "", "", "Enter valid number"},
		{FieldShare, "ten", "", "Enter valid number"},
		{FieldLoan, "1,000", "", "Invalid loan amount"},
		{FieldInterest, "x", "", "Invalid interest"},
		{FieldRepayment, "abc", "", "Enter valid number"},
		{FieldShare, "1.5e3", "1500", ""},
		{FieldShare, "0.000000000000000001", "0.000000000000000001", ""},
		{FieldShare, "1e2000000000", "", "Enter valid number"},
		{FieldShare, "1e-2000000000", "", "Enter valid number"},
		{FieldLoan, "5E19", "", "Invalid loan amount"},
		{FieldInterest, "1e-19", "", "Invalid interest"},
		{FieldRepayment, "-1e100", "", "Enter valid number"},
	}
	for _, tt := range tests {
		t.Run(tt.field+"/"+tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.field, tt.input)
			if tt.wantErr != "" {
				var ve ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.field, ve.Field)
				assert.Equal(t, tt.wantErr, ve.Reason)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestIsValidation(t *testing.T) {
	ve := ValidationError{Field: FieldName, Reason: "Enter valid username"}
	assert.True(t, IsValidation(ve))
	assert.True(t, IsValidation(fmt.Errorf("wrapped: %w", ve)))
	assert.False(t, IsValidation(fmt.Errorf("plain")))
	assert.False(t, IsValidation(nil))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret", "secret", 6))
	assert.EqualError(t, ValidatePassword("short", "short", 6), "Password needs to be at least 6 characters long")
	assert.EqualError(t, ValidatePassword("longenough", "short", 6), "Password needs to be at least 6 characters long")
	assert.EqualError(t, ValidatePassword("secret1", "secret2", 6), "Passwords do not match")
	assert.NoError(t, ValidatePassword("ab", "ab", 2))
}
