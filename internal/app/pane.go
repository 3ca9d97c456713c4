package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/familybank-dev/familybank/internal/ledger"
)

func setPaneInput(p Pane, in SetInput) error {
	var target *string
	switch p := p.(type) {
	case *AddingMember:
		target = memberField(&p.Form, in.Field)
	case *EditingMember:
		target = memberField(&p.Form, in.Field)
	case *AddingDebt:
		switch in.Field {
		case FieldLoan:
			target = &p.Loan
		case FieldInterest:
			target = &p.Interest
		}
	case *RepayingDebt:
		if in.Field == FieldRepayment {
			target = &p.Amount
		}
	case *ChangingPassword:
		switch in.Field {
		case FieldPassword:
			target = &p.Password
		case FieldConfirm:
			target = &p.Confirm
		}
	case *ConfirmingDeletion:
	case nil:
		return fmt.Errorf("%w: no open pane", ErrNotApplicable)
	}

	if target == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, in.Field)
	}
	*target = in.Value
	return nil
}

func memberField(f *MemberForm, field string) *string {
	switch field {
	case FieldName:
		return &f.Name
	case FieldShare:
		return &f.Share
	}
	return nil
}

// submitPane confirms the open pane. On success the pane closes and the
// current tab reloads; on failure the pane stays open with its inputs and an
// error message.
func (s *Session) submitPane(ctx context.Context, st *LoggedIn) {
	var err error
	switch p := st.Pane.(type) {
	case *AddingMember:
		err = s.submitMember(ctx, 0, &p.Form)
	case *EditingMember:
		err = s.submitMember(ctx, p.ID, &p.Form)
	case *ConfirmingDeletion:
		if err = s.ledger.DeleteMember(ctx, p.ID); err != nil {
			p.Error = s.errorMessage(err)
		}
	case *AddingDebt:
		if err = s.submitBorrow(ctx, p); err != nil {
			p.Error = s.errorMessage(err)
		}
	case *RepayingDebt:
		if err = s.submitRepay(ctx, p); err != nil {
			p.Error = s.errorMessage(err)
		}
	case *ChangingPassword:
		if msg := s.storePassword(ctx, p.Password, p.Confirm); msg != "" {
			p.Error = msg
			return
		}
		s.logger.Info("admin password changed")
		st.Pane = nil
		st.Notice = "Password changed"
		return
	}
	if err != nil {
		return
	}

	st.Pane = nil
	st.Data = s.fetch(ctx, st.Tab)
}

// submitMember adds a member when id is 0, otherwise edits it.
func (s *Session) submitMember(ctx context.Context, id int64, f *MemberForm) error {
	err := func() error {
		name, err := ledger.ValidateName(f.Name)
		if err != nil {
			return err
		}
		share, err := ledger.ParseAmount(ledger.FieldShare, f.Share)
		if err != nil {
			return err
		}
		if id == 0 {
			newID, err := s.ledger.AddMember(ctx, name, share)
			if err == nil {
				s.logger.Info("member added", "member_id", newID)
			}
			return err
		}
		if err := s.ledger.EditMember(ctx, id, name, share); err != nil {
			return err
		}
		s.logger.Info("member edited", "member_id", id)
		return nil
	}()
	if err != nil {
		f.Error = s.errorMessage(err)
	}
	return err
}

func (s *Session) submitBorrow(ctx context.Context, p *AddingDebt) error {
	loan, err := ledger.ParseAmount(ledger.FieldLoan, p.Loan)
	if err != nil {
		return err
	}
	interest, err := ledger.ParseAmount(ledger.FieldInterest, p.Interest)
	if err != nil {
		return err
	}
	if err := s.ledger.Borrow(ctx, p.ID, loan, interest); err != nil {
		return err
	}
	s.logger.Info("loan recorded", "member_id", p.ID, "loan", loan, "interest", interest)
	return nil
}

func (s *Session) submitRepay(ctx context.Context, p *RepayingDebt) error {
	amount, err := ledger.ParseAmount(ledger.FieldRepayment, p.Amount)
	if err != nil {
		return err
	}
	alloc, err := s.ledger.RepayAmount(ctx, p.ID, amount)
	if err != nil {
		return err
	}
	s.logger.Info("repayment recorded", "member_id", p.ID, "principal", alloc.Principal, "interest", alloc.Interest)
	return nil
}

// errorMessage turns a ledger failure into the inline pane message.
func (s *Session) errorMessage(err error) string {
	switch {
	case ledger.IsValidation(err):
		return err.Error()
	case errors.Is(err, ledger.ErrNotFound):
		s.logger.Warn("member not found", "err", err)
		return "Member not found"
	default:
		s.logger.Warn("ledger operation failed", "err", err)
		return err.Error()
	}
}

func paneError(p Pane) string {
	switch p := p.(type) {
	case *AddingMember:
		return p.Form.Error
	case *EditingMember:
		return p.Form.Error
	case *ConfirmingDeletion:
		return p.Error
	case *AddingDebt:
		return p.Error
	case *RepayingDebt:
		return p.Error
	case *ChangingPassword:
		return p.Error
	}
	return ""
}
