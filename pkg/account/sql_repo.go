package account

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// MySQLRepo is the relational credential store; the same narrow
// interface, backed by the users table from internal/mysql/users.sql.
type MySQLRepo struct {
	DB *sql.DB
}

func NewMySQLRepo(db *sql.DB) *MySQLRepo {
	return &MySQLRepo{DB: db}
}

const accountColumns = `id, identifier, secret, display_name, role, active,
	session_token, session_expiry, last_login, last_logout`

func (r *MySQLRepo) Create(ctx context.Context, acct *UserAccount) error {
	if acct.ID == "" {
		acct.ID = uuid.NewString()
	}
	acct.Identifier = NormalizeIdentifier(acct.Identifier)

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, identifier, secret, display_name, role, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, acct.ID, acct.Identifier, acct.Secret, acct.DisplayName, acct.Role, acct.Active)
	return err
}

func (r *MySQLRepo) FindByIdentifier(ctx context.Context, identifier string) (*UserAccount, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+accountColumns+` FROM users WHERE identifier = ?
	`, NormalizeIdentifier(identifier))
	return scanAccount(row)
}

func (r *MySQLRepo) GetByID(ctx context.Context, id string) (*UserAccount, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+accountColumns+` FROM users WHERE id = ?
	`, id)
	return scanAccount(row)
}

func (r *MySQLRepo) UpdateSession(ctx context.Context, id, token string, expiry, lastLogin time.Time) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE users SET session_token = ?, session_expiry = ?, last_login = ?
		WHERE id = ?
	`, token, expiry, lastLogin, id)
	if err != nil {
		return err
	}
	return requireMatch(result)
}

func (r *MySQLRepo) ClearSession(ctx context.Context, id string, at time.Time) error {
	// no affected-rows check: clearing an already-clear session is a no-op
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users SET session_token = NULL, session_expiry = NULL, last_logout = ?
		WHERE id = ?
	`, at, id)
	return err
}

func (r *MySQLRepo) List(ctx context.Context) ([]*UserAccount, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+accountColumns+` FROM users WHERE active = TRUE ORDER BY identifier
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*UserAccount
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*UserAccount, error) {
	var acct UserAccount
	var token sql.NullString
	var expiry, lastLogin, lastLogout sql.NullTime

	err := row.Scan(
		&acct.ID, &acct.Identifier, &acct.Secret, &acct.DisplayName,
		&acct.Role, &acct.Active, &token, &expiry, &lastLogin, &lastLogout,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if token.Valid {
		acct.SessionToken = &token.String
	}
	if expiry.Valid {
		acct.SessionExpiry = &expiry.Time
	}
	if lastLogin.Valid {
		acct.LastLogin = &lastLogin.Time
	}
	if lastLogout.Valid {
		acct.LastLogout = &lastLogout.Time
	}
	return &acct, nil
}

func requireMatch(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
