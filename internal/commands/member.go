package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/familybank-dev/familybank/internal/app"
	"github.com/familybank-dev/familybank/internal/id"
)

func newMemberCommand(opts *rootOptions) *cobra.Command {
	memberCmd := &cobra.Command{
		Use:   "member",
		Short: "Add, edit or delete members",
	}
	memberCmd.AddCommand(
		newMemberAddCommand(opts),
		newMemberEditCommand(opts),
		newMemberDeleteCommand(opts),
	)
	return memberCmd
}

func newMemberAddCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <contribution>",
		Short: "Add a member with an initial contribution",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMemberPane(cmd, opts, app.OpenAddMember{}, []app.SetInput{
				{Field: app.FieldName, Value: args[0]},
				{Field: app.FieldShare, Value: args[1]},
			})
		},
	}
}

func newMemberEditCommand(opts *rootOptions) *cobra.Command {
	var name, contribution string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a member's name or contribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			memberID, err := id.ParseMemberID(args[0])
			if err != nil {
				return err
			}

			var inputs []app.SetInput
			if cmd.Flags().Changed("name") {
				inputs = append(inputs, app.SetInput{Field: app.FieldName, Value: name})
			}
			if cmd.Flags().Changed("contribution") {
				inputs = append(inputs, app.SetInput{Field: app.FieldShare, Value: contribution})
			}
			if len(inputs) == 0 {
				return fmt.Errorf("nothing to change: pass --name and/or --contribution")
			}
			return runMemberPane(cmd, opts, app.OpenEditMember{ID: memberID}, inputs)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&contribution, "contribution", "", "new contribution")

	return cmd
}

func newMemberDeleteCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			memberID, err := id.ParseMemberID(args[0])
			if err != nil {
				return err
			}
			return runMemberDelete(cmd, opts, memberID, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

// runMemberPane opens a pane on the Users tab, fills it and submits it.
func runMemberPane(cmd *cobra.Command, opts *rootOptions, open app.Intent, inputs []app.SetInput) error {
	ctx := cmd.Context()

	e, err := openEnv(cmd, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	sess, err := e.login(ctx)
	if err != nil {
		return err
	}

	intents := []app.Intent{app.SwitchTab{Tab: app.TabUsers}, open}
	for _, in := range inputs {
		intents = append(intents, in)
	}
	intents = append(intents, app.Submit{})
	if err := apply(ctx, sess, intents...); err != nil {
		return err
	}
	return e.printTab(sess)
}

func runMemberDelete(cmd *cobra.Command, opts *rootOptions, memberID int64, yes bool) error {
	ctx := cmd.Context()

	e, err := openEnv(cmd, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	sess, err := e.login(ctx)
	if err != nil {
		return err
	}
	if err := apply(ctx, sess, app.SwitchTab{Tab: app.TabUsers}, app.OpenDeleteMember{ID: memberID}); err != nil {
		return err
	}

	if !yes {
		pane := sess.State().(*app.LoggedIn).Pane.(*app.ConfirmingDeletion)
		ok, err := e.prompt.confirm(fmt.Sprintf("Delete %s %s?", id.FormatMemberID(pane.ID), pane.Name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(e.out, "Cancelled.")
			return apply(ctx, sess, app.ClosePane{})
		}
	}

	if err := apply(ctx, sess, app.Submit{}); err != nil {
		return err
	}
	return e.printTab(sess)
}
