package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/familybank-dev/familybank/internal/app"
	"github.com/familybank-dev/familybank/internal/view"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export members as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func runExport(cmd *cobra.Command, opts *rootOptions, output string) error {
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
	if err := apply(ctx, sess, app.SwitchTab{Tab: app.TabUsers}); err != nil {
		return err
	}
	users := sess.State().(*app.LoggedIn).Data.(*app.UsersData)

	var w io.Writer = e.out
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	if err := view.WriteCSV(w, users.View.Members); err != nil {
		return fmt.Errorf("exporting members: %w", err)
	}
	if output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d members to %s\n", len(users.View.Members), output)
	}
	return nil
}
