package repository

import (
	"context"
	"database/sql"

	"github.com/wallywood/poster-api/internal/model"
)

// RatingRepo provides data access to the `user_ratings` table.
type RatingRepo struct{ DB *sql.DB }

func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{DB: db} }

const ratingJoin = `SELECT r.id, r.user_id, r.poster_id, r.num_stars,
       u.id, u.firstname, u.lastname, u.email,
       p.id, p.name, p.slug, p.price
FROM user_ratings r
JOIN users u ON u.id = r.user_id
JOIN posters p ON p.id = r.poster_id`

func scanRatingWithRefs(s interface{ Scan(...any) error }) (model.RatingWithRefs, error) {
	var rt model.RatingWithRefs
	err := s.Scan(&rt.ID, &rt.UserID, &rt.PosterID, &rt.NumStars,
		&rt.User.ID, &rt.User.Firstname, &rt.User.Lastname, &rt.User.Email,
		&rt.Poster.ID, &rt.Poster.Name, &rt.Poster.Slug, &rt.Poster.Price)
	return rt, err
}

// List returns every rating with its user and poster summaries.
func (r *RatingRepo) List(ctx context.Context) ([]model.RatingWithRefs, error) {
	rows, err := r.DB.QueryContext(ctx, ratingJoin+" ORDER BY r.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := []model.RatingWithRefs{}
	for rows.Next() {
		rt, err := scanRatingWithRefs(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}

// GetByID returns one rating with its references.
func (r *RatingRepo) GetByID(ctx context.Context, id uint64) (model.RatingWithRefs, error) {
	rt, err := scanRatingWithRefs(r.DB.QueryRowContext(ctx, ratingJoin+" WHERE r.id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.RatingWithRefs{}, ErrNotFound
	}
	return rt, err
}

// Create inserts a rating and returns the joined projection.
func (r *RatingRepo) Create(ctx context.Context, userID, posterID uint64, numStars int) (model.RatingWithRefs, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_ratings (user_id, poster_id, num_stars) VALUES (?,?,?)",
		userID, posterID, numStars)
	if err != nil {
		return model.RatingWithRefs{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.RatingWithRefs{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// UpdateStars replaces the star value of an existing rating.
func (r *RatingRepo) UpdateStars(ctx context.Context, id uint64, numStars int) (model.RatingWithRefs, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE user_ratings SET num_stars=? WHERE id=?", numStars, id)
	if err != nil {
		return model.RatingWithRefs{}, err
	}
	// Zero affected rows means either no change or no row; the re-read
	// reports ErrNotFound for the latter.
	return r.GetByID(ctx, id)
}

// Delete removes a rating by id.
func (r *RatingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM user_ratings WHERE id=?", id)
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
