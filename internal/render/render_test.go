package render

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familybank-dev/familybank/internal/app"
	"github.com/familybank-dev/familybank/internal/model"
	"github.com/familybank-dev/familybank/internal/view"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func plain(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(Options{ThousandSeparator: ",", DecimalSeparator: ".", FractionDigits: 2, Style: StylePlain})
	require.NoError(t, err)
	return r
}

func sample() []model.Member {
	return []model.Member{
		{ID: 1, Name: "Ana", Share: dec("1000"), Loan: dec("50"), Interest: dec("10")},
		{ID: 2, Name: "Ben | Jr", Share: dec("3000"), Loan: decimal.Zero, Interest: decimal.Zero},
	}
}

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		name     string
		format   MoneyFormat
		in, want string
	}{
		{"grouping", NewMoneyFormat("", ",", ".", 2), "1234567.891", "1,234,567.89"},
		{"zero", NewMoneyFormat("", ",", ".", 2), "0", "0.00"},
		{"small", NewMoneyFormat("", ",", ".", 2), "0.05", "0.05"},
		{"negative", NewMoneyFormat("", ",", ".", 2), "-5", "-5.00"},
		{"symbol", NewMoneyFormat("€", ".", ",", 2), "1234.5", "€1.234,50"},
		{"no fraction", NewMoneyFormat("", " ", ".", 0), "1234.4", "1 234"},
		{"rounds half up", NewMoneyFormat("", ",", ".", 2), "2.345", "2.35"},
		{"overflow falls back", NewMoneyFormat("", ",", ".", 2), "1e30", "1000000000000000000000000000000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.Format(dec(tt.in)))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "33.33%", FormatPercent(dec("33.333333")))
	assert.Equal(t, "0.00%", FormatPercent(decimal.Zero))
}

func TestTabData_Home(t *testing.T) {
	r := plain(t)

	md, err := r.TabData(&app.HomeData{View: view.NewHome(sample(), dec("5"))})
	require.NoError(t, err)
	assert.Contains(t, md, "| Total shares | 4,000.00 |")
	assert.Contains(t, md, "| Total loans | 50.00 |")
	assert.Contains(t, md, "| Total debt | 60.00 |")
	assert.Contains(t, md, "| Cash on hand | 3,955.00 |")
	assert.Contains(t, md, "| Profit | 5.00 |")
	assert.Contains(t, md, "| #1 | Ana | 1,000.00 | 25.00% |")
	assert.Contains(t, md, `| #2 | Ben \| Jr | 3,000.00 | 75.00% |`)
}

func TestTabData_Debts(t *testing.T) {
	r := plain(t)

	md, err := r.TabData(&app.DebtsData{View: view.NewDebts(sample())})
	require.NoError(t, err)
	assert.Contains(t, md, "| #1 | Ana | 50.00 | 10.00 | 60.00 |")
}

func TestTabData_EmptyAndError(t *testing.T) {
	r := plain(t)

	md, err := r.TabData(&app.UsersData{View: view.NewUsers(nil)})
	require.NoError(t, err)
	assert.Contains(t, md, "_No members yet._")

	md, err = r.TabData(&app.FetchError{Message: "Error while fetching data: boom"})
	require.NoError(t, err)
	assert.Equal(t, "**Error while fetching data: boom**\n", md)
}

func TestMarkdown_LoginForms(t *testing.T) {
	r := plain(t)

	md, err := r.Markdown(&app.NotLoggedIn{Form: app.LoginForm{Mode: app.ModeCreatePassword, Password: "hunter22"}})
	require.NoError(t, err)
	assert.Contains(t, md, "# Create password")
	assert.NotContains(t, md, "hunter22")

	md, err = r.Markdown(&app.NotLoggedIn{Form: app.LoginForm{Mode: app.ModeLogin, Error: "Incorrect password"}})
	require.NoError(t, err)
	assert.Contains(t, md, "# Login")
	assert.Contains(t, md, "**Error:** Incorrect password")
}

func TestMarkdown_LoggedInWithPane(t *testing.T) {
	r := plain(t)

	st := &app.LoggedIn{
		Tab:  app.TabDebts,
		Data: &app.DebtsData{View: view.NewDebts(sample())},
		Pane: &app.RepayingDebt{ID: 1, Name: "Ana", Amount: "61", Error: "repayment exceeds debt"},
	}
	md, err := r.Markdown(st)
	require.NoError(t, err)
	assert.Contains(t, md, "Home | Users | **Debts**")
	assert.Contains(t, md, "### Repayment from Ana")
	assert.Contains(t, md, "- Amount: 61")
	assert.Contains(t, md, "**Error:** repayment exceeds debt")

	st.Pane = &app.ChangingPassword{Password: "topsecret"}
	md, err = r.Markdown(st)
	require.NoError(t, err)
	assert.NotContains(t, md, "topsecret")
}

func TestTerminal(t *testing.T) {
	r := plain(t)
	out, err := r.Terminal("# Title")
	require.NoError(t, err)
	assert.Equal(t, "# Title", out)

	styled, err := New(Options{FractionDigits: 2, DecimalSeparator: ".", Style: "notty", WordWrap: 80})
	require.NoError(t, err)
	out, err = styled.Terminal("# Title\n\nbody text")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body text")
}
