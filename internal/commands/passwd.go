package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/familybank-dev/familybank/internal/app"
)

func newPasswdCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Set or change the admin password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPasswd(cmd, opts)
		},
	}
}

func runPasswd(cmd *cobra.Command, opts *rootOptions) error {
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

	if sess.State().(*app.NotLoggedIn).Form.Mode == app.ModeLogin {
		current, err := e.prompt.secret("Current password: ")
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		if err := apply(ctx, sess, app.SetInput{Field: app.FieldPassword, Value: current}, app.Submit{}); err != nil {
			return err
		}
		if err := apply(ctx, sess, app.OpenChangePassword{}); err != nil {
			return err
		}
	}

	password, err := e.prompt.secret("New password: ")
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	confirm, err := e.prompt.secret("Repeat password: ")
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	err = apply(ctx, sess,
		app.SetInput{Field: app.FieldPassword, Value: password},
		app.SetInput{Field: app.FieldConfirm, Value: confirm},
		app.Submit{},
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(e.out, "Admin password saved.")
	return nil
}
