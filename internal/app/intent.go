package app

// Intent is a user action handed to Session.Dispatch.
type Intent interface {
	isIntent()
}

// Input field names for SetInput.
const (
	FieldPassword  = "password"
	FieldConfirm   = "confirm"
	FieldName      = "name"
	FieldShare     = "share"
	FieldLoan      = "loan"
	FieldInterest  = "interest"
	FieldRepayment = "repayment"
)

// SwitchTab loads a tab fresh and closes any open pane.
type SwitchTab struct{ Tab Tab }

// SetInput replaces one input buffer of the open form.
type SetInput struct{ Field, Value string }

// Submit logs in, creates the password, or confirms the open pane.
type Submit struct{}

// OpenAddMember opens an empty add pane on the Users tab.
type OpenAddMember struct{}

// OpenEditMember opens the edit pane prefilled with the member's name and contribution.
type OpenEditMember struct{ ID int64 }

// OpenDeleteMember asks for confirmation before removing the member.
type OpenDeleteMember struct{ ID int64 }

// OpenBorrow opens the loan pane for a member on the Debts tab.
type OpenBorrow struct{ ID int64 }

// OpenRepay opens the repayment pane for a member on the Debts tab.
type OpenRepay struct{ ID int64 }

// OpenChangePassword opens the new-password pane on any tab.
type OpenChangePassword struct{}

// ClosePane discards the open pane and its input.
type ClosePane struct{}

// Logout returns to the login form.
type Logout struct{}

func (SwitchTab) isIntent()          {}
func (SetInput) isIntent()           {}
func (Submit) isIntent()             {}
func (OpenAddMember) isIntent()      {}
func (OpenEditMember) isIntent()     {}
func (OpenDeleteMember) isIntent()   {}
func (OpenBorrow) isIntent()         {}
func (OpenRepay) isIntent()          {}
func (OpenChangePassword) isIntent() {}
func (ClosePane) isIntent()          {}
func (Logout) isIntent()             {}
