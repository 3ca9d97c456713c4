package render

import (
	"fmt"
	"strings"

	"github.com/familybank-dev/familybank/internal/app"
	"github.com/familybank-dev/familybank/internal/id"
)

func loginMarkdown(f app.LoginForm) string {
	var b strings.Builder
	if f.Mode == app.ModeCreatePassword {
		b.WriteString("# Create password\n\nNo admin password is set. Enter a new one twice.\n")
	} else {
		b.WriteString("# Login\n\nEnter the admin password.\n")
	}
	writeError(&b, f.Error)
	return b.String()
}

func paneMarkdown(p app.Pane) string {
	var b strings.Builder
	switch p := p.(type) {
	case *app.AddingMember:
		b.WriteString("### Add member\n\n")
		field(&b, "Name", p.Form.Name)
		field(&b, "Contribution", p.Form.Share)
		writeError(&b, p.Form.Error)
	case *app.EditingMember:
		fmt.Fprintf(&b, "### Edit member %s\n\n", id.FormatMemberID(p.ID))
		field(&b, "Name", p.Form.Name)
		field(&b, "Contribution", p.Form.Share)
		writeError(&b, p.Form.Error)
	case *app.ConfirmingDeletion:
		fmt.Fprintf(&b, "### Delete member %s\n\nRemove **%s**? Collected profit stays in the pool.\n", id.FormatMemberID(p.ID), p.Name)
		writeError(&b, p.Error)
	case *app.AddingDebt:
		fmt.Fprintf(&b, "### Loan to %s\n\n", p.Name)
		field(&b, "Loan", p.Loan)
		field(&b, "Interest", p.Interest)
		writeError(&b, p.Error)
	case *app.RepayingDebt:
		fmt.Fprintf(&b, "### Repayment from %s\n\n", p.Name)
		field(&b, "Amount", p.Amount)
		writeError(&b, p.Error)
	case *app.ChangingPassword:
		b.WriteString("### Change password\n")
		writeError(&b, p.Error)
	}
	return b.String()
}

func field(b *strings.Builder, label, value string) {
	if value == "" {
		value = "_empty_"
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}

func writeError(b *strings.Builder, msg string) {
	if msg != "" {
		fmt.Fprintf(b, "\n**Error:** %s\n", msg)
	}
}
