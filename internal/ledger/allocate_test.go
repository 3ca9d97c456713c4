package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate(t *testing.T) {
	d := decimal.RequireFromString
	tests := []struct {
		name          string
		repayment     string
		loan          string
		interest      string
		wantPrincipal string
		wantInterest  string
	}{
		{"within principal", "30", "50", "10", "30", "0"},
		{"exactly principal", "50", "50", "10", "50", "0"},
		{"spills into interest", "55", "50", "10", "50", "5"},
		{"whole debt", "60", "50", "10", "50", "10"},
		{"interest only", "4", "0", "10", "0", "4"},
		{"zero", "0", "50", "10", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Allocate(d(tt.repayment), d(tt.loan), d(tt.interest))
			require.NoError(t, err)
			assert.True(t, d(tt.wantPrincipal).Equal(a.Principal), "principal %s", a.Principal)
			assert.True(t, d(tt.wantInterest).Equal(a.Interest), "interest %s", a.Interest)
			assert.True(t, d(tt.repayment).Equal(a.Total()))
		})
	}
}

func TestAllocate_Rejects(t *testing.T) {
	d := decimal.RequireFromString

	_, err := Allocate(d("61"), d("50"), d("10"))
	assert.EqualError(t, err, "repayment exceeds debt")

	_, err = Allocate(d("-1"), d("50"), d("10"))
	assert.EqualError(t, err, "Repayment amount cannot be negative")
}
