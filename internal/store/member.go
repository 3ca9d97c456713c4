package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/familybank-dev/familybank/internal/model"
)

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ListMembers returns every member row, the Profit row included, ordered by id.
func (s *Store) ListMembers(ctx context.Context) ([]model.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT memberId, name, share, loan, interest FROM member ORDER BY memberId",
	)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Share, &m.Loan, &m.Interest); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}

// GetMember returns one member row by id.
func (s *Store) GetMember(ctx context.Context, id int64) (model.Member, error) {
	return getMember(ctx, s.db, id)
}

func getMember(ctx context.Context, q rowQuerier, id int64) (model.Member, error) {
	var m model.Member
	err := q.QueryRowContext(ctx,
		"SELECT memberId, name, share, loan, interest FROM member WHERE memberId = ?", id,
	).Scan(&m.ID, &m.Name, &m.Share, &m.Loan, &m.Interest)
	if errors.Is(err, sql.ErrNoRows) {
		if id == model.ProfitMemberID {
			return model.Member{}, fmt.Errorf("%w: profit row missing", ErrCorrupt)
		}
		return model.Member{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return model.Member{}, fmt.Errorf("query member %d: %w", id, err)
	}
	return m, nil
}

// InsertMember adds a member with no debt and returns its id.
func (s *Store) InsertMember(ctx context.Context, name string, share decimal.Decimal) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO member (name, share, loan, interest) VALUES (?, ?, '0', '0')",
		name, share.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert member: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// UpdateMember replaces a member's name and share. Loan and interest are untouched.
func (s *Store) UpdateMember(ctx context.Context, id int64, name string, share decimal.Decimal) error {
	if id == model.ProfitMemberID {
		return ErrReserved
	}
	result, err := s.db.ExecContext(ctx,
		"UPDATE member SET name = ?, share = ? WHERE memberId = ?",
		name, share.String(), id,
	)
	if err != nil {
		return fmt.Errorf("update member %d: %w", id, err)
	}
	return expectOneRow(result, id)
}

// DeleteMember removes a member row.
func (s *Store) DeleteMember(ctx context.Context, id int64) error {
	if id == model.ProfitMemberID {
		return ErrReserved
	}
	result, err := s.db.ExecContext(ctx, "DELETE FROM member WHERE memberId = ?", id)
	if err != nil {
		return fmt.Errorf("delete member %d: %w", id, err)
	}
	return expectOneRow(result, id)
}

// AddDebt increases a member's loan by principal and interest by interest.
func (s *Store) AddDebt(ctx context.Context, id int64, principal, interest decimal.Decimal) error {
	if id == model.ProfitMemberID {
		return ErrReserved
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		m, err := getMember(ctx, tx, id)
		if err != nil {
			return err
		}
		return setDebt(ctx, tx, id, m.Loan.Add(principal), m.Interest.Add(interest))
	})
}

// ApplyRepayment reduces a member's loan and interest and credits the
// interest portion to the Profit row, all in one transaction.
func (s *Store) ApplyRepayment(ctx context.Context, id int64, principal, interest decimal.Decimal) error {
	if id == model.ProfitMemberID {
		return ErrReserved
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		m, err := getMember(ctx, tx, id)
		if err != nil {
			return err
		}
		loan := m.Loan.Sub(principal)
		owed := m.Interest.Sub(interest)
		if loan.IsNegative() || owed.IsNegative() {
			return fmt.Errorf("%w: member %d", ErrExceedsDebt, id)
		}

		profit, err := getMember(ctx, tx, model.ProfitMemberID)
		if err != nil {
			return err
		}

		if err := setDebt(ctx, tx, id, loan, owed); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE member SET share = ? WHERE memberId = ?",
			profit.Share.Add(interest).String(), model.ProfitMemberID,
		); err != nil {
			return fmt.Errorf("credit profit: %w", err)
		}
		return nil
	})
}

func setDebt(ctx context.Context, tx *sql.Tx, id int64, loan, interest decimal.Decimal) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE member SET loan = ?, interest = ? WHERE memberId = ?",
		loan.String(), interest.String(), id,
	)
	if err != nil {
		return fmt.Errorf("update debt for member %d: %w", id, err)
	}
	return nil
}

func expectOneRow(result sql.Result, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}
