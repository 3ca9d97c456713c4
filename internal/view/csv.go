package view

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

const (
	numFields       = 6
	colID           = 0
	colName         = 1
	colContribution = 2
	colPercent      = 3
	colLoan         = 4
	colInterest     = 5
)

var csvHeader = []string{"member_id", "name", "contribution", "percent", "loan", "interest"}

// WriteCSV writes the member views as CSV with a header row.
func WriteCSV(w io.Writer, views []MemberView) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, v := range views {
		if err := cw.Write(MarshalMemberView(v)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalMemberView converts a MemberView to a CSV row. Percent is rounded
// to two places; money columns keep full precision.
func MarshalMemberView(v MemberView) []string {
	row := make([]string, numFields)
	row[colID] = strconv.FormatInt(v.ID, 10)
	row[colName] = v.Name
	row[colContribution] = v.Contribution.String()
	row[colPercent] = v.Percent.StringFixed(2)
	row[colLoan] = v.Loan.String()
	row[colInterest] = v.Interest.String()
	return row
}
