// Package ledger implements member management and the borrow/repay rules
// over the store.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/familybank-dev/familybank/internal/model"
	"github.com/familybank-dev/familybank/internal/store"
)

// ErrNotFound is returned when an operation targets a missing member.
var ErrNotFound = store.ErrNotFound

// Store is the persistence the ledger needs. *store.Store satisfies it.
type Store interface {
	ListMembers(ctx context.Context) ([]model.Member, error)
	GetMember(ctx context.Context, id int64) (model.Member, error)
	InsertMember(ctx context.Context, name string, share decimal.Decimal) (int64, error)
	UpdateMember(ctx context.Context, id int64, name string, share decimal.Decimal) error
	DeleteMember(ctx context.Context, id int64) error
	AddDebt(ctx context.Context, id int64, principal, interest decimal.Decimal) error
	ApplyRepayment(ctx context.Context, id int64, principal, interest decimal.Decimal) error
}

// Snapshot is the member set with the Profit row split out.
type Snapshot struct {
	Members []model.Member
	Profit  decimal.Decimal
}

// Service provides the ledger operations.
type Service struct {
	store Store
}

// NewService creates a ledger Service.
func NewService(s Store) *Service {
	return &Service{store: s}
}

// ListMembers returns every member except the Profit row, plus the pooled profit.
func (s *Service) ListMembers(ctx context.Context) (Snapshot, error) {
	rows, err := s.store.ListMembers(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing members: %w", err)
	}
	members, profit, ok := model.PartitionProfit(rows)
	if !ok {
		return Snapshot{}, fmt.Errorf("listing members: %w: profit row missing", store.ErrCorrupt)
	}
	return Snapshot{Members: members, Profit: profit.Share}, nil
}

// GetMember returns one member. The Profit row is not addressable.
func (s *Service) GetMember(ctx context.Context, id int64) (model.Member, error) {
	if err := checkID(id); err != nil {
		return model.Member{}, err
	}
	m, err := s.store.GetMember(ctx, id)
	if err != nil {
		return model.Member{}, fmt.Errorf("getting member: %w", err)
	}
	return m, nil
}

// AddMember creates a member with the given share and no debt.
func (s *Service) AddMember(ctx context.Context, name string, share decimal.Decimal) (int64, error) {
	name, err := ValidateName(name)
	if err != nil {
		return 0, err
	}
	if err := requireNonNegative(FieldShare, share); err != nil {
		return 0, err
	}

	id, err := s.store.InsertMember(ctx, name, share)
	if err != nil {
		return 0, fmt.Errorf("adding member: %w", err)
	}
	return id, nil
}

// EditMember replaces a member's name and share.
func (s *Service) EditMember(ctx context.Context, id int64, name string, share decimal.Decimal) error {
	if err := checkID(id); err != nil {
		return err
	}
	name, err := ValidateName(name)
	if err != nil {
		return err
	}
	if err := requireNonNegative(FieldShare, share); err != nil {
		return err
	}

	if err := s.store.UpdateMember(ctx, id, name, share); err != nil {
		return fmt.Errorf("editing member: %w", err)
	}
	return nil
}

// DeleteMember removes a member. Interest already credited to the Profit
// row stays there.
func (s *Service) DeleteMember(ctx context.Context, id int64) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.store.DeleteMember(ctx, id); err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	return nil
}

// Borrow adds principal to a member's loan and interest to their interest owed.
func (s *Service) Borrow(ctx context.Context, id int64, principal, interest decimal.Decimal) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := requireNonNegative(FieldLoan, principal); err != nil {
		return err
	}
	if err := requireNonNegative(FieldInterest, interest); err != nil {
		return err
	}

	if err := s.store.AddDebt(ctx, id, principal, interest); err != nil {
		return fmt.Errorf("borrowing: %w", err)
	}
	return nil
}

// Repay reduces a member's loan and interest by the given portions and
// credits the interest portion to the Profit row, atomically.
func (s *Service) Repay(ctx context.Context, id int64, principal, interest decimal.Decimal) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := requireNonNegative(FieldRepayment, principal); err != nil {
		return err
	}
	if err := requireNonNegative(FieldRepayment, interest); err != nil {
		return err
	}

	err := s.store.ApplyRepayment(ctx, id, principal, interest)
	if errors.Is(err, store.ErrExceedsDebt) {
		return ValidationError{Field: FieldRepayment, Reason: "repayment exceeds debt"}
	}
	if err != nil {
		return fmt.Errorf("repaying: %w", err)
	}
	return nil
}

// RepayAmount allocates a total repayment principal-first against the
// member's current debt and applies it.
func (s *Service) RepayAmount(ctx context.Context, id int64, amount decimal.Decimal) (Allocation, error) {
	m, err := s.GetMember(ctx, id)
	if err != nil {
		return Allocation{}, err
	}
	alloc, err := Allocate(amount, m.Loan, m.Interest)
	if err != nil {
		return Allocation{}, err
	}
	if err := s.Repay(ctx, id, alloc.Principal, alloc.Interest); err != nil {
		return Allocation{}, err
	}
	return alloc, nil
}

func checkID(id int64) error {
	if id <= model.ProfitMemberID {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}
