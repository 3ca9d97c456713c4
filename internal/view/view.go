// Package view projects member rows into the read-only Home, Users and
// Debts view-models. Everything here is pure.
package view

import (
	"github.com/shopspring/decimal"

	"github.com/familybank-dev/familybank/internal/model"
)

var hundred = decimal.NewFromInt(100)

// MemberView is one member as shown on the Users and Debts tabs.
type MemberView struct {
	ID           int64
	Name         string
	Contribution decimal.Decimal
	Percent      decimal.Decimal // share of total contributions, 0 when the total is 0
	Loan         decimal.Decimal
	Interest     decimal.Decimal
}

// Debt returns loan plus interest.
func (v MemberView) Debt() decimal.Decimal {
	return v.Loan.Add(v.Interest)
}

// Home is the summary tab.
type Home struct {
	TotalShares decimal.Decimal
	TotalLoans  decimal.Decimal
	TotalDebt   decimal.Decimal
	TotalCash   decimal.Decimal
	Profit      decimal.Decimal
	Members     []MemberView
}

// Users is the member management tab.
type Users struct {
	Members []MemberView
}

// Debts is the borrow/repay tab.
type Debts struct {
	Members []MemberView
}

// TotalShares sums the share of every member except the Profit row.
func TotalShares(members []model.Member) decimal.Decimal {
	total := decimal.Zero
	for _, m := range members {
		if m.IsProfit() {
			continue
		}
		total = total.Add(m.Share)
	}
	return total
}

// MemberViews converts members to views, dropping the Profit row.
func MemberViews(members []model.Member) []MemberView {
	total := TotalShares(members)
	views := make([]MemberView, 0, len(members))
	for _, m := range members {
		if m.IsProfit() {
			continue
		}
		views = append(views, MemberView{
			ID:           m.ID,
			Name:         m.Name,
			Contribution: m.Share,
			Percent:      percent(m.Share, total),
			Loan:         m.Loan,
			Interest:     m.Interest,
		})
	}
	return views
}

func percent(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred)
}

// NewHome builds the Home view-model. Cash on hand is contributions less
// outstanding principal plus collected profit.
func NewHome(members []model.Member, profit decimal.Decimal) Home {
	views := MemberViews(members)

	h := Home{
		TotalShares: decimal.Zero,
		TotalLoans:  decimal.Zero,
		TotalDebt:   decimal.Zero,
		Profit:      profit,
		Members:     views,
	}
	for _, v := range views {
		h.TotalShares = h.TotalShares.Add(v.Contribution)
		h.TotalLoans = h.TotalLoans.Add(v.Loan)
		h.TotalDebt = h.TotalDebt.Add(v.Debt())
	}
	h.TotalCash = h.TotalShares.Sub(h.TotalLoans).Add(profit)
	return h
}

// NewUsers builds the Users view-model.
func NewUsers(members []model.Member) Users {
	return Users{Members: MemberViews(members)}
}

// NewDebts builds the Debts view-model.
func NewDebts(members []model.Member) Debts {
	return Debts{Members: MemberViews(members)}
}

// Find returns the view with the given id.
func Find(views []MemberView, id int64) (MemberView, bool) {
	for _, v := range views {
		if v.ID == id {
			return v, true
		}
	}
	return MemberView{}, false
}
