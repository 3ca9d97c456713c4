package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/familybank-dev/familybank/internal/app"
	"github.com/familybank-dev/familybank/internal/id"
)

const shellHelp = `Commands:
  home | users | debts   switch tab
  add                    add a member (users tab)
  edit <id>              edit a member (users tab)
  delete <id>            delete a member (users tab)
  borrow <id>            lend to a member (debts tab)
  repay <id>             record a repayment (debts tab)
  retry                  re-enter the open form
  cancel                 close the open form
  passwd                 change the admin password
  logout                 return to the login screen
  help                   show this help
  quit                   leave the shell
`

func newShellCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session over the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}
}

func runShell(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()

	e, err := openEnv(cmd, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	sess, err := e.newSession(ctx)
	if err != nil {
		return err
	}

	sh := &shell{env: e, sess: sess}
	err = sh.loop(ctx)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

type shell struct {
	*env
	sess *app.Session
}

func (s *shell) loop(ctx context.Context) error {
	redraw := true
	for {
		if redraw {
			if err := s.render(); err != nil {
				return err
			}
		}
		redraw = true

		if st, ok := s.sess.State().(*app.NotLoggedIn); ok {
			if err := s.loginPrompt(ctx, st.Form.Mode); err != nil {
				return err
			}
			continue
		}

		line, err := s.prompt.line("> ")
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			redraw = false
			continue
		}

		switch fields[0] {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprint(s.out, shellHelp)
			redraw = false
			continue
		}

		if err := s.run(ctx, fields); err != nil {
			if errors.Is(err, io.EOF) {
				return err
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
			redraw = false
		}
	}
}

// run executes one shell command against the session.
func (s *shell) run(ctx context.Context, fields []string) error {
	if tab, ok := app.ParseTab(fields[0]); ok {
		return s.sess.Dispatch(ctx, app.SwitchTab{Tab: tab})
	}

	var open app.Intent
	switch fields[0] {
	case "tab":
		if len(fields) != 2 {
			return fmt.Errorf("usage: tab <home|users|debts>")
		}
		tab, ok := app.ParseTab(fields[1])
		if !ok {
			return fmt.Errorf("unknown tab %q", fields[1])
		}
		return s.sess.Dispatch(ctx, app.SwitchTab{Tab: tab})
	case "cancel":
		return s.sess.Dispatch(ctx, app.ClosePane{})
	case "logout":
		return s.sess.Dispatch(ctx, app.Logout{})
	case "retry":
		if s.pane() == nil {
			return fmt.Errorf("no open form")
		}
		return s.fillAndSubmit(ctx)
	case "add":
		open = app.OpenAddMember{}
	case "passwd":
		open = app.OpenChangePassword{}
	case "edit", "delete", "borrow", "repay":
		if len(fields) != 2 {
			return fmt.Errorf("usage: %s <id>", fields[0])
		}
		memberID, err := id.ParseMemberID(fields[1])
		if err != nil {
			return err
		}
		open = openIntent(fields[0], memberID)
	default:
		return fmt.Errorf("unknown command %q (try help)", fields[0])
	}

	if err := s.sess.Dispatch(ctx, open); err != nil {
		return err
	}
	return s.fillAndSubmit(ctx)
}

func openIntent(verb string, memberID int64) app.Intent {
	switch verb {
	case "edit":
		return app.OpenEditMember{ID: memberID}
	case "delete":
		return app.OpenDeleteMember{ID: memberID}
	case "borrow":
		return app.OpenBorrow{ID: memberID}
	default:
		return app.OpenRepay{ID: memberID}
	}
}

func (s *shell) pane() app.Pane {
	if st, ok := s.sess.State().(*app.LoggedIn); ok {
		return st.Pane
	}
	return nil
}

// fillAndSubmit prompts for every field of the open pane and submits it.
// Pressing enter keeps a field's current value.
func (s *shell) fillAndSubmit(ctx context.Context) error {
	pane := s.pane()

	if del, ok := pane.(*app.ConfirmingDeletion); ok {
		yes, err := s.prompt.confirm(fmt.Sprintf("Delete %s %s?", id.FormatMemberID(del.ID), del.Name))
		if err != nil {
			return err
		}
		if !yes {
			return s.sess.Dispatch(ctx, app.ClosePane{})
		}
		return s.sess.Dispatch(ctx, app.Submit{})
	}

	for _, f := range paneFields(pane) {
		value, err := s.ask(f)
		if err != nil {
			return err
		}
		if err := s.sess.Dispatch(ctx, app.SetInput{Field: f.field, Value: value}); err != nil {
			return err
		}
	}
	return s.sess.Dispatch(ctx, app.Submit{})
}

func (s *shell) ask(f paneField) (string, error) {
	if f.secret {
		return s.prompt.secret(f.label + ": ")
	}

	label := f.label + ": "
	if f.value != "" {
		label = fmt.Sprintf("%s [%s]: ", f.label, f.value)
	}
	answer, err := s.prompt.line(label)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return f.value, nil
	}
	return answer, nil
}

func (s *shell) loginPrompt(ctx context.Context, mode app.LoginMode) error {
	password, err := s.prompt.secret("Password: ")
	if err != nil {
		return err
	}
	intents := []app.Intent{app.SetInput{Field: app.FieldPassword, Value: password}}

	if mode == app.ModeCreatePassword {
		confirm, err := s.prompt.secret("Repeat password: ")
		if err != nil {
			return err
		}
		intents = append(intents, app.SetInput{Field: app.FieldConfirm, Value: confirm})
	}

	for _, in := range append(intents, app.Submit{}) {
		if err := s.sess.Dispatch(ctx, in); err != nil {
			return err
		}
	}
	return nil
}

func (s *shell) render() error {
	md, err := s.renderer.Markdown(s.sess.State())
	if err != nil {
		return err
	}
	return s.print(md)
}

type paneField struct {
	field  string
	label  string
	value  string
	secret bool
}

func paneFields(p app.Pane) []paneField {
	switch p := p.(type) {
	case *app.AddingMember:
		return memberFields(p.Form)
	case *app.EditingMember:
		return memberFields(p.Form)
	case *app.AddingDebt:
		return []paneField{
			{field: app.FieldLoan, label: "Loan", value: p.Loan},
			{field: app.FieldInterest, label: "Interest", value: p.Interest},
		}
	case *app.RepayingDebt:
		return []paneField{{field: app.FieldRepayment, label: "Amount", value: p.Amount}}
	case *app.ChangingPassword:
		return []paneField{
			{field: app.FieldPassword, label: "New password", secret: true},
			{field: app.FieldConfirm, label: "Repeat password", secret: true},
		}
	}
	return nil
}

func memberFields(f app.MemberForm) []paneField {
	return []paneField{
		{field: app.FieldName, label: "Name", value: f.Name},
		{field: app.FieldShare, label: "Contribution", value: f.Share},
	}
}
