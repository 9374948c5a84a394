package repository

import (
	"context"
	"database/sql"

	"github.com/wallywood/poster-api/internal/model"
)

// CartlineRepo provides data access to the `cartlines` table. The table's
// primary key is (user_id, poster_id), which is what guarantees a user has
// at most one line per poster.
type CartlineRepo struct{ DB *sql.DB }

func NewCartlineRepo(db *sql.DB) *CartlineRepo { return &CartlineRepo{DB: db} }

// Upsert inserts a cartline or, when the (userID, posterID) row already
// exists, adds quantity to the stored value. The whole merge happens in one
// statement so two concurrent adds for the same pair cannot lose an update.
// The returned flag is true when a new row was inserted: MySQL reports one
// affected row for an insert and two for a duplicate-key update (zero when
// the update left the value unchanged, i.e. quantity was 0).
func (r *CartlineRepo) Upsert(ctx context.Context, userID, posterID uint64, quantity int) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO cartlines (user_id, poster_id, quantity) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)`,
		userID, posterID, quantity)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Get returns one cartline with its poster summary (id, name, price), the
// shape the add/update responses embed.
func (r *CartlineRepo) Get(ctx context.Context, userID, posterID uint64) (model.CartlineWithPoster, error) {
	var cl model.CartlineWithPoster
	err := r.DB.QueryRowContext(ctx,
		`SELECT c.user_id, c.poster_id, c.quantity, p.id, p.name, p.price
		 FROM cartlines c JOIN posters p ON p.id = c.poster_id
		 WHERE c.user_id=? AND c.poster_id=? LIMIT 1`,
		userID, posterID).
		Scan(&cl.UserID, &cl.PosterID, &cl.Quantity, &cl.Poster.ID, &cl.Poster.Name, &cl.Poster.Price)
	if err == sql.ErrNoRows {
		return model.CartlineWithPoster{}, ErrNotFound
	}
	return cl, err
}

// UpdateQuantity replaces (not accumulates) the quantity of an existing
// line. A missing (userID, posterID) pair maps to ErrNotFound. Zero
// affected rows can also mean the quantity did not change, so existence is
// re-checked before reporting a miss.
func (r *CartlineRepo) UpdateQuantity(ctx context.Context, userID, posterID uint64, quantity int) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE cartlines SET quantity=? WHERE user_id=? AND poster_id=?",
		quantity, userID, posterID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM cartlines WHERE user_id=? AND poster_id=?)",
			userID, posterID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}
	return nil
}

// Delete removes a single line. Deleting a pair that does not exist returns
// ErrNotFound rather than silent success.
func (r *CartlineRepo) Delete(ctx context.Context, userID, posterID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM cartlines WHERE user_id=? AND poster_id=?", userID, posterID)
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

// ClearByUser removes every line for one user. Clearing an already-empty
// cart is not an error.
func (r *CartlineRepo) ClearByUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM cartlines WHERE user_id=?", userID)
	return err
}

// ListByUser returns all of one user's lines with the full poster summary
// including stock, the shape the cart page renders from.
func (r *CartlineRepo) ListByUser(ctx context.Context, userID uint64) ([]model.CartlineWithPoster, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.user_id, c.poster_id, c.quantity,
		        p.id, p.name, p.slug, p.price, p.image, p.stock
		 FROM cartlines c JOIN posters p ON p.id = c.poster_id
		 WHERE c.user_id=? ORDER BY c.poster_id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []model.CartlineWithPoster{}
	for rows.Next() {
		var cl model.CartlineWithPoster
		var stock int
		if err := rows.Scan(&cl.UserID, &cl.PosterID, &cl.Quantity,
			&cl.Poster.ID, &cl.Poster.Name, &cl.Poster.Slug, &cl.Poster.Price, &cl.Poster.Image, &stock); err != nil {
			return nil, err
		}
		cl.Poster.Stock = &stock
		lines = append(lines, cl)
	}
	return lines, rows.Err()
}

// ListAll returns every cartline in the system with user and poster
// summaries joined in. Admin-only; no pagination.
func (r *CartlineRepo) ListAll(ctx context.Context) ([]model.CartlineWithRefs, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.user_id, c.poster_id, c.quantity,
		        u.id, u.firstname, u.lastname, u.email,
		        p.id, p.name, p.slug, p.price, p.image
		 FROM cartlines c
		 JOIN users u ON u.id = c.user_id
		 JOIN posters p ON p.id = c.poster_id
		 ORDER BY c.user_id, c.poster_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []model.CartlineWithRefs{}
	for rows.Next() {
		var cl model.CartlineWithRefs
		if err := rows.Scan(&cl.UserID, &cl.PosterID, &cl.Quantity,
			&cl.User.ID, &cl.User.Firstname, &cl.User.Lastname, &cl.User.Email,
			&cl.Poster.ID, &cl.Poster.Name, &cl.Poster.Slug, &cl.Poster.Price, &cl.Poster.Image); err != nil {
			return nil, err
		}
		lines = append(lines, cl)
	}
	return lines, rows.Err()
}
