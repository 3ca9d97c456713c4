package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/familybank-dev/familybank/internal/model"
)

const credentialID = 1

// ReadCredential returns the admin credential. A missing singleton row is
// recreated with the sentinel and reported as unset.
func (s *Store) ReadCredential(ctx context.Context) (model.Credential, error) {
	var hash string
	err := s.db.QueryRowContext(ctx,
		"SELECT passwordHash FROM credential WHERE id = ?", credentialID,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("credential row missing, restoring sentinel")
		if _, err := s.db.ExecContext(ctx,
			"INSERT INTO credential (id, passwordHash) VALUES (?, ?)", credentialID, model.UnsetPasswordHash,
		); err != nil {
			return model.Credential{}, fmt.Errorf("restore credential: %w", err)
		}
		return model.Credential{}, nil
	}
	if err != nil {
		return model.Credential{}, fmt.Errorf("read credential: %w", err)
	}

	cred := model.Credential{Hash: hash}
	if !cred.IsSet() {
		return model.Credential{}, nil
	}
	return cred, nil
}

// SetCredential stores hash as the admin password hash, replacing any previous one.
func (s *Store) SetCredential(ctx context.Context, hash string) error {
	if !(model.Credential{Hash: hash}).IsSet() {
		return fmt.Errorf("set credential: refusing to store an empty hash")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO credential (id, passwordHash) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET passwordHash = excluded.passwordHash`,
		credentialID, hash,
	)
	if err != nil {
		return fmt.Errorf("set credential: %w", err)
	}
	return nil
}
