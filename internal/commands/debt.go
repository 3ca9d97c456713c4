package commands

import (
	"github.com/spf13/cobra"

	"github.com/familybank-dev/familybank/internal/app"
	"github.com/familybank-dev/familybank/internal/id"
)

func newDebtCommand(opts *rootOptions) *cobra.Command {
	debtCmd := &cobra.Command{
		Use:   "debt",
		Short: "Record loans and repayments",
	}
	debtCmd.AddCommand(newDebtBorrowCommand(opts), newDebtRepayCommand(opts))
	return debtCmd
}

func newDebtBorrowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "borrow <id> <loan> [interest]",
		Short: "Lend money to a member, with the interest they will owe",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			memberID, err := id.ParseMemberID(args[0])
			if err != nil {
				return err
			}
			interest := "0"
			if len(args) == 3 {
				interest = args[2]
			}
			return runDebtPane(cmd, opts,
				app.OpenBorrow{ID: memberID},
				app.SetInput{Field: app.FieldLoan, Value: args[1]},
				app.SetInput{Field: app.FieldInterest, Value: interest},
			)
		},
	}
}

func newDebtRepayCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repay <id> <amount>",
		Short: "Record a repayment; principal is paid off before interest",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			memberID, err := id.ParseMemberID(args[0])
			if err != nil {
				return err
			}
			return runDebtPane(cmd, opts,
				app.OpenRepay{ID: memberID},
				app.SetInput{Field: app.FieldRepayment, Value: args[1]},
			)
		},
	}
}

// runDebtPane opens a pane on the Debts tab, fills it and submits it.
func runDebtPane(cmd *cobra.Command, opts *rootOptions, open app.Intent, inputs ...app.Intent) error {
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

	intents := append([]app.Intent{app.SwitchTab{Tab: app.TabDebts}, open}, inputs...)
	intents = append(intents, app.Submit{})
	if err := apply(ctx, sess, intents...); err != nil {
		return err
	}
	return e.printTab(sess)
}
