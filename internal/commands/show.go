package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/familybank-dev/familybank/internal/app"
)

func newShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "show [home|users|debts]",
		Short:     "Print a tab of the ledger",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"home", "users", "debts"},
		RunE: func(cmd *cobra.Command, args []string) error {
			tab := app.TabHome
			if len(args) > 0 {
				var ok bool
				if tab, ok = app.ParseTab(args[0]); !ok {
					return fmt.Errorf("unknown tab %q", args[0])
				}
			}
			return runShow(cmd, opts, tab)
		},
	}
}

func runShow(cmd *cobra.Command, opts *rootOptions, tab app.Tab) error {
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
	if err := apply(ctx, sess, app.SwitchTab{Tab: tab}); err != nil {
		return err
	}
	return e.printTab(sess)
}
