// Package app is the command dispatcher: a Session holds the current screen
// state and applies user intents to it against the ledger.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/familybank-dev/familybank/internal/auth"
	"github.com/familybank-dev/familybank/internal/ledger"
	"github.com/familybank-dev/familybank/internal/model"
	"github.com/familybank-dev/familybank/internal/view"
)

var (
	// ErrNotApplicable is returned when an intent does not fit the current state.
	ErrNotApplicable = errors.New("action not available here")
	// ErrUnknownField is returned by SetInput for a field the open form lacks.
	ErrUnknownField = errors.New("unknown input field")
)

// CredentialStore reads and writes the admin password hash. *store.Store satisfies it.
type CredentialStore interface {
	ReadCredential(ctx context.Context) (model.Credential, error)
	SetCredential(ctx context.Context, hash string) error
}

// Config holds a Session's collaborators.
type Config struct {
	Ledger            *ledger.Service
	Credentials       CredentialStore
	Hasher            auth.Hasher
	MinPasswordLength int
	Logger            *slog.Logger
}

// Session is the single-user dispatcher. It is not safe for concurrent use;
// intents are applied one at a time.
type Session struct {
	ledger    *ledger.Service
	creds     CredentialStore
	hasher    auth.Hasher
	minPwdLen int
	logger    *slog.Logger

	state State
}

// NewSession reads the credential and starts at the matching logged-out form.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.MinPasswordLength < 1 {
		cfg.MinPasswordLength = 6
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Session{
		ledger:    cfg.Ledger,
		creds:     cfg.Credentials,
		hasher:    cfg.Hasher,
		minPwdLen: cfg.MinPasswordLength,
		logger:    cfg.Logger,
	}

	cred, err := s.creds.ReadCredential(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading credential: %w", err)
	}
	mode := ModeLogin
	if !cred.IsSet() {
		mode = ModeCreatePassword
	}
	s.state = &NotLoggedIn{Form: LoginForm{Mode: mode}}
	return s, nil
}

// State returns the current state. Callers must treat it as read-only.
func (s *Session) State() State {
	return s.state
}

// Dispatch applies one intent. Ledger and validation failures are recorded in
// the state as messages, not returned. The returned error is ErrNotApplicable,
// ErrUnknownField, or ledger.ErrNotFound for a pane opened on a missing member.
func (s *Session) Dispatch(ctx context.Context, in Intent) error {
	s.logger.Debug("dispatch", "intent", fmt.Sprintf("%T", in), "state", fmt.Sprintf("%T", s.state))

	switch st := s.state.(type) {
	case *NotLoggedIn:
		return s.dispatchLoggedOut(ctx, st, in)
	case *LoggedIn:
		st.Notice = ""
		return s.dispatchLoggedIn(ctx, st, in)
	default:
		return fmt.Errorf("unexpected state %T", s.state)
	}
}

func (s *Session) dispatchLoggedOut(ctx context.Context, st *NotLoggedIn, in Intent) error {
	switch in := in.(type) {
	case SetInput:
		switch in.Field {
		case FieldPassword:
			st.Form.Password = in.Value
		case FieldConfirm:
			st.Form.Confirm = in.Value
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, in.Field)
		}
		return nil
	case Submit:
		if st.Form.Mode == ModeCreatePassword {
			s.createPassword(ctx, st)
		} else {
			s.login(ctx, st)
		}
		return nil
	default:
		return fmt.Errorf("%w: %T while logged out", ErrNotApplicable, in)
	}
}

func (s *Session) login(ctx context.Context, st *NotLoggedIn) {
	cred, err := s.creds.ReadCredential(ctx)
	if err != nil {
		s.logger.Warn("reading credential failed", "err", err)
		st.Form.Error = "Error while reading credential: " + err.Error()
		return
	}
	if !cred.IsSet() {
		st.Form = LoginForm{Mode: ModeCreatePassword}
		return
	}

	if err := auth.Check(s.hasher, cred.Hash, st.Form.Password); err != nil {
		s.logger.Warn("login rejected")
		st.Form.Error = "Incorrect password"
		return
	}

	s.logger.Info("logged in")
	s.enter(ctx, TabHome)
}

func (s *Session) createPassword(ctx context.Context, st *NotLoggedIn) {
	if msg := s.storePassword(ctx, st.Form.Password, st.Form.Confirm); msg != "" {
		st.Form.Error = msg
		return
	}
	s.logger.Info("admin password created")
	s.enter(ctx, TabHome)
}

// storePassword validates and saves a new password, returning a
// user-facing message on failure.
func (s *Session) storePassword(ctx context.Context, password, confirm string) string {
	if err := ledger.ValidatePassword(password, confirm, s.minPwdLen); err != nil {
		return err.Error()
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Warn("hashing password failed", "err", err)
		return "Could not hash password: " + err.Error()
	}
	if err := s.creds.SetCredential(ctx, hash); err != nil {
		s.logger.Warn("storing password failed", "err", err)
		return "Could not store password: " + err.Error()
	}
	return ""
}

// enter switches to the logged-in screen on tab.
func (s *Session) enter(ctx context.Context, tab Tab) {
	s.state = &LoggedIn{Tab: tab, Data: s.fetch(ctx, tab)}
}

func (s *Session) dispatchLoggedIn(ctx context.Context, st *LoggedIn, in Intent) error {
	switch in := in.(type) {
	case SwitchTab:
		st.Tab = in.Tab
		st.Data = s.fetch(ctx, in.Tab)
		st.Pane = nil
		return nil
	case SetInput:
		return setPaneInput(st.Pane, in)
	case Submit:
		if st.Pane == nil {
			return fmt.Errorf("%w: no open pane", ErrNotApplicable)
		}
		s.submitPane(ctx, st)
		return nil
	case ClosePane:
		st.Pane = nil
		return nil
	case Logout:
		s.logger.Info("logged out")
		s.state = &NotLoggedIn{Form: LoginForm{Mode: ModeLogin}}
		return nil
	case OpenChangePassword:
		st.Pane = &ChangingPassword{}
		return nil
	case OpenAddMember:
		if _, err := usersView(st); err != nil {
			return err
		}
		st.Pane = &AddingMember{}
		return nil
	case OpenEditMember:
		m, err := findOnTab(st, TabUsers, in.ID)
		if err != nil {
			return err
		}
		st.Pane = &EditingMember{ID: m.ID, Form: MemberForm{Name: m.Name, Share: m.Contribution.String()}}
		return nil
	case OpenDeleteMember:
		m, err := findOnTab(st, TabUsers, in.ID)
		if err != nil {
			return err
		}
		st.Pane = &ConfirmingDeletion{ID: m.ID, Name: m.Name}
		return nil
	case OpenBorrow:
		m, err := findOnTab(st, TabDebts, in.ID)
		if err != nil {
			return err
		}
		st.Pane = &AddingDebt{ID: m.ID, Name: m.Name}
		return nil
	case OpenRepay:
		m, err := findOnTab(st, TabDebts, in.ID)
		if err != nil {
			return err
		}
		st.Pane = &RepayingDebt{ID: m.ID, Name: m.Name}
		return nil
	default:
		return fmt.Errorf("%w: %T while logged in", ErrNotApplicable, in)
	}
}

// fetch loads tab from the store. A store failure becomes FetchError so the
// rest of the session stays usable.
func (s *Session) fetch(ctx context.Context, tab Tab) TabData {
	snap, err := s.ledger.ListMembers(ctx)
	if err != nil {
		s.logger.Warn("fetching tab data failed", "tab", tab, "err", err)
		return &FetchError{Message: "Error while fetching data: " + err.Error()}
	}

	switch tab {
	case TabUsers:
		return &UsersData{View: view.NewUsers(snap.Members)}
	case TabDebts:
		return &DebtsData{View: view.NewDebts(snap.Members)}
	default:
		return &HomeData{View: view.NewHome(snap.Members, snap.Profit)}
	}
}

func usersView(st *LoggedIn) ([]view.MemberView, error) {
	if d, ok := st.Data.(*UsersData); ok && st.Tab == TabUsers {
		return d.View.Members, nil
	}
	return nil, fmt.Errorf("%w: users tab is not loaded", ErrNotApplicable)
}

func debtsView(st *LoggedIn) ([]view.MemberView, error) {
	if d, ok := st.Data.(*DebtsData); ok && st.Tab == TabDebts {
		return d.View.Members, nil
	}
	return nil, fmt.Errorf("%w: debts tab is not loaded", ErrNotApplicable)
}

// findOnTab looks the member up in the loaded data of tab, which must be current.
func findOnTab(st *LoggedIn, tab Tab, id int64) (view.MemberView, error) {
	var (
		members []view.MemberView
		err     error
	)
	if tab == TabUsers {
		members, err = usersView(st)
	} else {
		members, err = debtsView(st)
	}
	if err != nil {
		return view.MemberView{}, err
	}

	m, ok := view.Find(members, id)
	if !ok {
		return view.MemberView{}, fmt.Errorf("%w: %d", ledger.ErrNotFound, id)
	}
	return m, nil
}

// Message returns the error currently shown to the user, if any.
func (s *Session) Message() string {
	switch st := s.state.(type) {
	case *NotLoggedIn:
		return st.Form.Error
	case *LoggedIn:
		if msg := paneError(st.Pane); msg != "" {
			return msg
		}
		if fe, ok := st.Data.(*FetchError); ok {
			return fe.Message
		}
	}
	return ""
}
