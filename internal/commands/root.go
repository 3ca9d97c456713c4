package commands

import (
	"github.com/spf13/cobra"

	"github.com/familybank-dev/familybank/internal/buildinfo"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	dbPath     string
	logLevel   string
	plain      bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "familybank",
		Short:   "Family banking ledger: member shares, loans, interest and pooled profit",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "familybank.yaml", "config file")
	flags.StringVar(&opts.dbPath, "db", "", "ledger database file (overrides config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	flags.BoolVar(&opts.plain, "plain", false, "print raw markdown instead of styled output")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newPasswdCommand(opts),
		newShowCommand(opts),
		newMemberCommand(opts),
		newDebtCommand(opts),
		newExportCommand(opts),
		newShellCommand(opts),
	)

	return rootCmd
}
