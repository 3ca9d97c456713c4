package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/familybank-dev/familybank/internal/app"
	"github.com/familybank-dev/familybank/internal/auth"
	"github.com/familybank-dev/familybank/internal/config"
	"github.com/familybank-dev/familybank/internal/ledger"
	"github.com/familybank-dev/familybank/internal/logging"
	"github.com/familybank-dev/familybank/internal/render"
	"github.com/familybank-dev/familybank/internal/store"
)

const wordWrap = 100

// loadConfig reads the config file (defaults when absent), then applies
// .env, environment and flag overrides, in that order.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(filepath.Dir(opts.configPath)); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("db") {
		cfg.Database.Path = opts.dbPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// env is everything a command needs once the config is resolved.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	ledger   *ledger.Service
	hasher   *auth.MultiHasher
	renderer *render.Renderer
	out      io.Writer
	prompt   *prompter
}

// openEnv resolves config, sets up logging and opens the store. The store
// is bootstrapped so a first run on an empty file works.
func openEnv(cmd *cobra.Command, opts *rootOptions) (*env, error) {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	logger := logging.Setup(cfg.Log.Level, cmd.ErrOrStderr())

	hasher, err := auth.New(cfg.Auth.Algorithm)
	if err != nil {
		return nil, err
	}

	style := cfg.Display.Style
	if opts.plain {
		style = render.StylePlain
	}
	renderer, err := render.New(render.Options{
		CurrencySymbol:    cfg.Display.CurrencySymbol,
		ThousandSeparator: cfg.Display.ThousandSeparator,
		DecimalSeparator:  cfg.Display.DecimalSeparator,
		FractionDigits:    cfg.Display.FractionDigits,
		Style:             style,
		WordWrap:          wordWrap,
	})
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg.Database.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", cfg.Database.Path, err)
	}
	if err := st.Bootstrap(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("preparing ledger %s: %w", cfg.Database.Path, err)
	}

	return &env{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		ledger:   ledger.NewService(st),
		hasher:   hasher,
		renderer: renderer,
		out:      cmd.OutOrStdout(),
		prompt:   newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()),
	}, nil
}

func (e *env) Close() error {
	return e.store.Close()
}

func (e *env) newSession(ctx context.Context) (*app.Session, error) {
	return app.NewSession(ctx, app.Config{
		Ledger:            e.ledger,
		Credentials:       e.store,
		Hasher:            e.hasher,
		MinPasswordLength: e.cfg.Auth.MinPasswordLength,
		Logger:            e.logger,
	})
}

// login starts a session and logs in with a prompted password.
func (e *env) login(ctx context.Context) (*app.Session, error) {
	sess, err := e.newSession(ctx)
	if err != nil {
		return nil, err
	}
	st := sess.State().(*app.NotLoggedIn)
	if st.Form.Mode == app.ModeCreatePassword {
		return nil, errors.New("no admin password set: run 'familybank passwd' first")
	}

	password, err := e.prompt.secret("Password: ")
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	if err := apply(ctx, sess, app.SetInput{Field: app.FieldPassword, Value: password}, app.Submit{}); err != nil {
		return nil, err
	}
	return sess, nil
}

// apply dispatches intents in order and fails with the session's visible
// message if the last one left an error on screen.
func apply(ctx context.Context, sess *app.Session, intents ...app.Intent) error {
	for _, in := range intents {
		if err := sess.Dispatch(ctx, in); err != nil {
			return err
		}
	}
	if msg := sess.Message(); msg != "" {
		return errors.New(msg)
	}
	return nil
}

// printTab renders the current tab's content.
func (e *env) printTab(sess *app.Session) error {
	st, ok := sess.State().(*app.LoggedIn)
	if !ok {
		return fmt.Errorf("not logged in")
	}
	md, err := e.renderer.TabData(st.Data)
	if err != nil {
		return err
	}
	return e.print(md)
}

func (e *env) print(md string) error {
	out, err := e.renderer.Terminal(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(e.out, out)
	return err
}
