package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMemberDebt(t *testing.T) {
	m := Member{ID: 3, Loan: dec("50"), Interest: dec("10.25")}
	assert.True(t, m.Debt().Equal(dec("60.25")))
	assert.False(t, m.IsProfit())
}

func TestPartitionProfit(t *testing.T) {
	rows := []Member{
		{ID: 0, Name: ProfitMemberName, Share: dec("12")},
		{ID: 1, Name: "Alice", Share: dec("100")},
		{ID: 2, Name: "Bob", Share: dec("50")},
	}

	members, profit, ok := PartitionProfit(rows)
	assert.True(t, ok)
	assert.True(t, profit.Share.Equal(dec("12")))
	assert.Len(t, members, 2)
	for _, m := range members {
		assert.NotEqual(t, ProfitMemberID, m.ID)
	}

	_, _, ok = PartitionProfit(rows[1:])
	assert.False(t, ok, "missing Profit row must be reported")
}

func TestCredentialIsSet(t *testing.T) {
	tests := []struct {
		hash string
		want bool
	}{
		{"", false},
		{UnsetPasswordHash, false},
		{"$argon2id$v=19$m=16,t=1,p=1$c2FsdA$aGFzaA", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Credential{Hash: tt.hash}.IsSet(), "IsSet(%q)", tt.hash)
	}
}
