package repository

import (
	"context"
	"database/sql"

	"github.com/wallywood/poster-api/internal/model"
)

// GenreRepo provides data access to the `genres` table.
type GenreRepo struct{ DB *sql.DB }

func NewGenreRepo(db *sql.DB) *GenreRepo { return &GenreRepo{DB: db} }

// List returns every genre with the posters carrying it.
func (r *GenreRepo) List(ctx context.Context) ([]model.GenreWithPosters, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, title, slug FROM genres ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := []model.GenreWithPosters{}
	index := map[uint64]int{}
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug); err != nil {
			return nil, err
		}
		index[g.ID] = len(genres)
		genres = append(genres, model.GenreWithPosters{Genre: g, Posters: []model.Poster{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachPosters(ctx, genres, index); err != nil {
		return nil, err
	}
	return genres, nil
}

// GetByID returns one genre with its posters. Missing ids map to ErrNotFound.
func (r *GenreRepo) GetByID(ctx context.Context, id uint64) (model.GenreWithPosters, error) {
	var g model.Genre
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, slug FROM genres WHERE id=? LIMIT 1", id).
		Scan(&g.ID, &g.Title, &g.Slug)
	if err == sql.ErrNoRows {
		return model.GenreWithPosters{}, ErrNotFound
	}
	if err != nil {
		return model.GenreWithPosters{}, err
	}
	out := []model.GenreWithPosters{{Genre: g, Posters: []model.Poster{}}}
	if err := r.attachPosters(ctx, out, map[uint64]int{g.ID: 0}); err != nil {
		return model.GenreWithPosters{}, err
	}
	return out[0], nil
}

func (r *GenreRepo) attachPosters(ctx context.Context, genres []model.GenreWithPosters, index map[uint64]int) error {
	if len(genres) == 0 {
		return nil
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT gp.genre_id, p.id, p.name, p.slug, p.description, p.image, p.width, p.height, p.price, p.stock
		 FROM genre_poster_rel gp JOIN posters p ON p.id = gp.poster_id
		 ORDER BY gp.genre_id, p.id`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var genreID uint64
		var p model.Poster
		if err := rows.Scan(&genreID, &p.ID, &p.Name, &p.Slug, &p.Description, &p.Image, &p.Width, &p.Height, &p.Price, &p.Stock); err != nil {
			return err
		}
		if i, ok := index[genreID]; ok {
			genres[i].Posters = append(genres[i].Posters, p)
		}
	}
	return rows.Err()
}

// Create inserts a genre and returns it with its assigned id.
func (r *GenreRepo) Create(ctx context.Context, g model.Genre) (model.Genre, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO genres (title, slug) VALUES (?,?)", g.Title, g.Slug)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Genre{}, ErrDuplicate
		}
		return model.Genre{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Genre{}, err
	}
	g.ID = uint64(id)
	return g, nil
}

// Update rewrites a genre's title and slug.
func (r *GenreRepo) Update(ctx context.Context, g model.Genre) (model.Genre, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE genres SET title=?, slug=? WHERE id=?", g.Title, g.Slug, g.ID)
	if err != nil {
		return model.Genre{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM genres WHERE id=?)", g.ID).Scan(&exists); err != nil {
			return model.Genre{}, err
		}
		if !exists {
			return model.Genre{}, ErrNotFound
		}
	}
	return g, nil
}

// Delete removes a genre and, via cascade, its poster links.
func (r *GenreRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM genres WHERE id=?", id)
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
