package model

import "github.com/shopspring/decimal"

const (
	// ProfitMemberID is the reserved row that accumulates interest income for all members.
	ProfitMemberID int64 = 0
	// ProfitMemberName is the fixed label stored on the Profit row.
	ProfitMemberName = "Profits"
)

// Member is one row of the member table.
type Member struct {
	ID       int64
	Name     string
	Share    decimal.Decimal // contributed capital; on the Profit row, undistributed interest income
	Loan     decimal.Decimal // outstanding principal
	Interest decimal.Decimal // outstanding interest, tracked apart from principal
}

// IsProfit reports whether m is the reserved Profit row.
func (m Member) IsProfit() bool {
	return m.ID == ProfitMemberID
}

// Debt returns principal plus interest still owed.
func (m Member) Debt() decimal.Decimal {
	return m.Loan.Add(m.Interest)
}

// PartitionProfit splits the Profit row out of rows.
// ok is false when no Profit row was present.
func PartitionProfit(rows []Member) (members []Member, profit Member, ok bool) {
	members = make([]Member, 0, len(rows))
	for _, r := range rows {
		if r.IsProfit() {
			profit, ok = r, true
			continue
		}
		members = append(members, r)
	}
	return members, profit, ok
}
