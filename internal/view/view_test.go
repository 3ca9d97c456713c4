package view

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familybank-dev/familybank/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleMembers() []model.Member {
	return []model.Member{
		{ID: model.ProfitMemberID, Name: model.ProfitMemberName, Share: dec("7"), Loan: decimal.Zero, Interest: decimal.Zero},
		{ID: 1, Name: "Ana", Share: dec("100"), Loan: dec("50"), Interest: dec("10")},
		{ID: 2, Name: "Ben", Share: dec("200"), Loan: decimal.Zero, Interest: decimal.Zero},
		{ID: 3, Name: "Cy", Share: dec("0"), Loan: dec("20"), Interest: dec("1.5")},
	}
}

func TestMemberViews_ExcludesProfitRow(t *testing.T) {
	views := MemberViews(sampleMembers())
	require.Len(t, views, 3)
	for _, v := range views {
		assert.NotEqual(t, model.ProfitMemberID, v.ID)
	}
	assert.Equal(t, "Ana", views[0].Name)
	assert.True(t, dec("100").Equal(views[0].Contribution))
	assert.True(t, dec("60").Equal(views[0].Debt()))
}

func TestMemberViews_PercentSumsToHundred(t *testing.T) {
	members := []model.Member{
		{ID: 1, Name: "A", Share: dec("1")},
		{ID: 2, Name: "B", Share: dec("1")},
		{ID: 3, Name: "C", Share: dec("1")},
	}
	views := MemberViews(members)

	sum := decimal.Zero
	for _, v := range views {
		sum = sum.Add(v.Percent)
	}
	assert.True(t, sum.Sub(hundred).Abs().LessThan(dec("0.0001")), "sum %s", sum)
	assert.Equal(t, "33.33", views[0].Percent.StringFixed(2))
}

func TestMemberViews_ZeroTotal(t *testing.T) {
	members := []model.Member{
		{ID: model.ProfitMemberID, Name: model.ProfitMemberName, Share: dec("3")},
		{ID: 1, Name: "A", Share: decimal.Zero},
	}
	views := MemberViews(members)
	require.Len(t, views, 1)
	assert.True(t, views[0].Percent.IsZero())
}

func TestNewHome(t *testing.T) {
	h := NewHome(sampleMembers(), dec("7"))

	assert.True(t, dec("300").Equal(h.TotalShares), "shares %s", h.TotalShares)
	assert.True(t, dec("70").Equal(h.TotalLoans), "loans %s", h.TotalLoans)
	assert.True(t, dec("81.5").Equal(h.TotalDebt), "debt %s", h.TotalDebt)
	assert.True(t, dec("237").Equal(h.TotalCash), "cash %s", h.TotalCash)
	assert.True(t, dec("7").Equal(h.Profit))
	assert.Len(t, h.Members, 3)
}

func TestNewHome_NoMembers(t *testing.T) {
	h := NewHome(nil, decimal.Zero)

	assert.True(t, h.TotalShares.IsZero())
	assert.True(t, h.TotalLoans.IsZero())
	assert.True(t, h.TotalDebt.IsZero())
	assert.True(t, h.TotalCash.IsZero())
	assert.Empty(t, h.Members)
}

func TestNewUsersAndDebts(t *testing.T) {
	u := NewUsers(sampleMembers())
	d := NewDebts(sampleMembers())
	assert.Equal(t, u.Members, d.Members)
	assert.Len(t, u.Members, 3)
}

func TestFind(t *testing.T) {
	views := MemberViews(sampleMembers())

	v, ok := Find(views, 2)
	require.True(t, ok)
	assert.Equal(t, "Ben", v.Name)

	_, ok = Find(views, model.ProfitMemberID)
	assert.False(t, ok)
}

func TestWriteCSV(t *testing.T) {
	views := MemberViews(sampleMembers())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, views))

	want := "member_id,name,contribution,percent,loan,interest\n" +
		"1,Ana,100,33.33,50,10\n" +
		"2,Ben,200,66.67,0,0\n" +
		"3,Cy,0,0.00,20,1.5\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_QuotesNames(t *testing.T) {
	views := []MemberView{{ID: 9, Name: "Smith, Jr.", Contribution: dec("1"), Percent: hundred, Loan: decimal.Zero, Interest: decimal.Zero}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, views))
	assert.Contains(t, buf.String(), `9,"Smith, Jr.",1,100.00,0,0`)
}
