package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/wallywood/poster-api/internal/model"
)

// UserRepo provides data access to the `users` table. Password hashing is
// the caller's concern; this layer only stores and returns the hash column.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,firstname,lastname,email,password_hash,role,is_active,created_at"

// Create inserts a user and returns its ID. The email is normalized to
// lower case before insertion; a duplicate email maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u model.User) (uint64, error) {
	email := normalizeEmail(u.Email)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (firstname, lastname, email, password_hash, role, is_active) VALUES (?,?,?,?,?,?)",
		u.Firstname, u.Lastname, email, u.PasswordHash, u.Role, u.IsActive)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email. Missing rows map to
// ErrNotFound.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1",
		normalizeEmail(email)).
		Scan(&u.ID, &u.Firstname, &u.Lastname, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1",
		id).
		Scan(&u.ID, &u.Firstname, &u.Lastname, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// List returns all users ordered by id. Callers project to PublicUser
// before responding.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Firstname, &u.Lastname, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update rewrites the mutable profile columns of a user and returns the
// updated record. The password hash is not touched here.
func (r *UserRepo) Update(ctx context.Context, id uint64, firstname, lastname, email, role string, isActive bool) (model.User, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET firstname=?, lastname=?, email=?, role=?, is_active=? WHERE id=?",
		firstname, lastname, normalizeEmail(email), role, isActive, id)
	if err != nil {
		if isDuplicateKey(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Zero affected rows is ambiguous (no change vs no row); resolve by
		// re-reading the record.
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.User{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user. Dependent cartlines and ratings go with it via
// ON DELETE CASCADE on their foreign keys.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
