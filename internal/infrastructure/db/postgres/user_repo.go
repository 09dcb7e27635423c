package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jobhive/auth-service/internal/application/identity"
	"github.com/jobhive/auth-service/internal/domain"
)

const accountColumns = "id, name, email, password_hash, role, verified, active, created_at, updated_at"

// UserRepo persists accounts in Postgres. The unique indexes on name and
// email are the authoritative uniqueness check: concurrent writers that
// slip past the application-level pre-check are rejected here and mapped
// to the matching duplicate error.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- helpers ----------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepo) scanAccountRow(row *sql.Row) (accountRow, error) {
	var ar accountRow
	err := row.Scan(
		&ar.ID,
		&ar.Name,
		&ar.Email,
		&ar.PasswordHash,
		&ar.Role,
		&ar.Verified,
		&ar.Active,
		&ar.CreatedAt,
		&ar.UpdatedAt,
	)
	return ar, err
}

// mapWriteErr turns a unique-violation from Postgres into the matching
// domain duplicate error by constraint name.
func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "uq_accounts_email":
			return domain.ErrDuplicateEmail()
		case "uq_accounts_name":
			return domain.ErrDuplicateName()
		}
	}
	return domain.ErrPersistence(err)
}

// ---------- identity.UserRepo ----------

func (r *UserRepo) FindOne(ctx context.Context, q identity.UserQuery) (domain.Account, error) {
	name := strings.TrimSpace(q.Name)
	email := normalizeEmail(q.Email)
	if name == "" && email == "" {
		return domain.Account{}, domain.ErrMissingField("name or email")
	}

	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE ($1 <> '' AND name = $1)
   OR ($2 <> '' AND email = $2)
LIMIT 1;
`
	ar, err := r.scanAccountRow(r.db.QueryRowContext(ctx, query, name, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound()
		}
		return domain.Account{}, domain.ErrPersistence(err)
	}
	return toDomainAccount(ar), nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (domain.Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}

	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1
LIMIT 1;
`
	ar, err := r.scanAccountRow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound()
		}
		return domain.Account{}, domain.ErrPersistence(err)
	}
	return toDomainAccount(ar), nil
}

func (r *UserRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	a.Email = normalizeEmail(a.Email)
	if a.ID == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}
	if a.Name == "" {
		return domain.Account{}, domain.ErrMissingField("name")
	}
	if a.Email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}
	if a.PasswordHash == "" {
		return domain.Account{}, domain.ErrMissingField("password_hash")
	}
	if !domain.IsValidRole(string(a.Role)) {
		return domain.Account{}, domain.ErrInvalidRole(string(a.Role))
	}

	const query = `
INSERT INTO accounts (id, name, email, password_hash, role, verified, active)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING ` + accountColumns + `;
`
	ar, err := r.scanAccountRow(r.db.QueryRowContext(ctx, query,
		a.ID, a.Name, a.Email, a.PasswordHash, string(a.Role), a.Verified, a.Active,
	))
	if err != nil {
		return domain.Account{}, mapWriteErr(err)
	}
	return toDomainAccount(ar), nil
}

func (r *UserRepo) Update(ctx context.Context, a domain.Account) (domain.Account, error) {
	a.Email = normalizeEmail(a.Email)
	if a.ID == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}

	const query = `
UPDATE accounts
SET name = $2,
    email = $3,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + accountColumns + `;
`
	ar, err := r.scanAccountRow(r.db.QueryRowContext(ctx, query, a.ID, a.Name, a.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound()
		}
		return domain.Account{}, mapWriteErr(err)
	}
	return toDomainAccount(ar), nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, accountID, newHash string) error {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return domain.ErrMissingField("account_id")
	}
	if newHash == "" {
		return domain.ErrMissingField("password_hash")
	}

	const query = `
UPDATE accounts
SET password_hash = $2,
    updated_at = NOW()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, query, accountID, newHash)
	if err != nil {
		return domain.ErrPersistence(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAccountNotFound()
	}
	return nil
}

func (r *UserRepo) SetVerified(ctx context.Context, accountID string) error {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return domain.ErrMissingField("account_id")
	}

	const query = `
UPDATE accounts
SET verified = TRUE,
    updated_at = NOW()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, query, accountID)
	if err != nil {
		return domain.ErrPersistence(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAccountNotFound()
	}
	return nil
}
