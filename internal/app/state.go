package app

import "github.com/familybank-dev/familybank/internal/view"

// State is the top-level session mode: *NotLoggedIn or *LoggedIn.
type State interface {
	isState()
}

// LoginMode selects which form the logged-out screen shows.
type LoginMode int

const (
	// ModeCreatePassword asks for a new password twice; no credential is stored yet.
	ModeCreatePassword LoginMode = iota
	// ModeLogin asks for the stored password.
	ModeLogin
)

func (m LoginMode) String() string {
	if m == ModeCreatePassword {
		return "create-password"
	}
	return "login"
}

// LoginForm is the logged-out form and its input buffers.
type LoginForm struct {
	Mode     LoginMode
	Password string
	Confirm  string
	Error    string
}

// NotLoggedIn shows the login or create-password form.
type NotLoggedIn struct {
	Form LoginForm
}

// LoggedIn is the main screen.
type LoggedIn struct {
	Tab    Tab
	Data   TabData
	Pane   Pane   // nil when no edit pane is open
	Notice string // one-shot confirmation, cleared by the next intent
}

func (*NotLoggedIn) isState() {}
func (*LoggedIn) isState()    {}

// Tab identifies one of the three main tabs.
type Tab int

const (
	TabHome Tab = iota
	TabUsers
	TabDebts
)

var tabNames = map[Tab]string{
	TabHome:  "home",
	TabUsers: "users",
	TabDebts: "debts",
}

func (t Tab) String() string {
	if name, ok := tabNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTab maps a tab name back to a Tab.
func ParseTab(s string) (Tab, bool) {
	for t, name := range tabNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// TabData is the loaded content of the current tab: *HomeData, *UsersData,
// *DebtsData, or *FetchError when the store could not be read.
type TabData interface {
	isTabData()
}

// HomeData holds the Home tab totals.
type HomeData struct{ View view.Home }

// UsersData holds the Users tab member list.
type UsersData struct{ View view.Users }

// DebtsData holds the Debts tab member list.
type DebtsData struct{ View view.Debts }

// FetchError replaces a tab's content when loading it failed.
type FetchError struct {
	Message string
}

func (*HomeData) isTabData()   {}
func (*UsersData) isTabData()  {}
func (*DebtsData) isTabData()  {}
func (*FetchError) isTabData() {}

// Pane is an open edit pane on the Users or Debts tab.
type Pane interface {
	isPane()
}

// MemberForm holds the name and share inputs of the add and edit panes.
type MemberForm struct {
	Name  string
	Share string
	Error string
}

// AddingMember collects a new member's name and contribution.
type AddingMember struct {
	Form MemberForm
}

// EditingMember edits member ID, prefilled with its current values.
type EditingMember struct {
	ID   int64
	Form MemberForm
}

// ConfirmingDeletion waits for confirmation before member ID is deleted.
type ConfirmingDeletion struct {
	ID    int64
	Name  string
	Error string
}

// AddingDebt records a loan and its interest for member ID.
type AddingDebt struct {
	ID       int64
	Name     string
	Loan     string
	Interest string
	Error    string
}

// RepayingDebt records a repayment by member ID.
type RepayingDebt struct {
	ID     int64
	Name   string
	Amount string
	Error  string
}

// ChangingPassword replaces the admin password.
type ChangingPassword struct {
	Password string
	Confirm  string
	Error    string
}

func (*AddingMember) isPane()       {}
func (*EditingMember) isPane()      {}
func (*ConfirmingDeletion) isPane() {}
func (*AddingDebt) isPane()         {}
func (*RepayingDebt) isPane()       {}
func (*ChangingPassword) isPane()   {}
