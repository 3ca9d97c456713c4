package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/familybank-dev/familybank/internal/config"
	"github.com/familybank-dev/familybank/internal/logging"
	"github.com/familybank-dev/familybank/internal/store"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the config file and create an empty ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}
}

func runInit(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.Log.Level, cmd.ErrOrStderr())

	// Write familybank.yaml unless one is already there.
	if _, err := os.Stat(opts.configPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(opts.configPath), 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
		if err := config.Save(opts.configPath, cfg); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", opts.configPath)
	}

	st, err := store.Open(ctx, cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("opening ledger %s: %w", cfg.Database.Path, err)
	}
	defer st.Close()

	if err := st.Initialize(ctx); err != nil {
		if errors.Is(err, store.ErrAlreadyInitialized) {
			return fmt.Errorf("ledger %s is already initialized", cfg.Database.Path)
		}
		return fmt.Errorf("initializing ledger: %w", err)
	}

	fmt.Fprintf(out, "Initialized ledger at %s\n", cfg.Database.Path)
	fmt.Fprintln(out, "Run 'familybank passwd' to set the admin password.")
	return nil
}
