package repository

import (
	"context"
	"database/sql"

	"github.com/wallywood/poster-api/internal/model"
)

// GenrePosterRepo manages the genre_poster_rel join table.
type GenrePosterRepo struct{ DB *sql.DB }

func NewGenrePosterRepo(db *sql.DB) *GenrePosterRepo { return &GenrePosterRepo{DB: db} }

// List returns every genre-poster link.
func (r *GenrePosterRepo) List(ctx context.Context) ([]model.GenrePosterRel, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT genre_id, poster_id FROM genre_poster_rel ORDER BY genre_id, poster_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rels := []model.GenrePosterRel{}
	for rows.Next() {
		var rel model.GenrePosterRel
		if err := rows.Scan(&rel.GenreID, &rel.PosterID); err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return rels, rows.Err()
}

// Create links a genre to a poster. Linking the same pair twice maps to
// ErrDuplicate via the composite primary key.
func (r *GenrePosterRepo) Create(ctx context.Context, genreID, posterID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO genre_poster_rel (genre_id, poster_id) VALUES (?,?)", genreID, posterID)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

// Delete removes one link by its composite key.
func (r *GenrePosterRepo) Delete(ctx context.Context, genreID, posterID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM genre_poster_rel WHERE genre_id=? AND poster_id=?", genreID, posterID)
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
