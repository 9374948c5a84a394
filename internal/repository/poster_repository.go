package repository

import (
	"context"
	"database/sql"

	"github.com/wallywood/poster-api/internal/model"
)

// PosterRepo provides data access to the `posters` table and the joined
// genre/rating projections the public catalog endpoints return.
type PosterRepo struct{ DB *sql.DB }

func NewPosterRepo(db *sql.DB) *PosterRepo { return &PosterRepo{DB: db} }

const posterColumns = "id,name,slug,description,image,width,height,price,stock"

func scanPoster(s interface{ Scan(...any) error }) (model.Poster, error) {
	var p model.Poster
	err := s.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Image, &p.Width, &p.Height, &p.Price, &p.Stock)
	return p, err
}

// List returns every poster with its genres and ratings attached. The
// relations are fetched in two extra queries and grouped in memory; the
// catalog is small enough that three round trips beat N+1 per-poster
// lookups.
func (r *PosterRepo) List(ctx context.Context) ([]model.PosterWithDetails, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+posterColumns+" FROM posters ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posters := []model.PosterWithDetails{}
	index := map[uint64]int{}
	for rows.Next() {
		p, err := scanPoster(rows)
		if err != nil {
			return nil, err
		}
		index[p.ID] = len(posters)
		posters = append(posters, model.PosterWithDetails{
			Poster:  p,
			Genres:  []model.Genre{},
			Ratings: []model.Rating{},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachGenres(ctx, posters, index); err != nil {
		return nil, err
	}
	if err := r.attachRatings(ctx, posters, index); err != nil {
		return nil, err
	}
	return posters, nil
}

// GetByID returns one poster with genres and ratings. Missing ids map to
// ErrNotFound.
func (r *PosterRepo) GetByID(ctx context.Context, id uint64) (model.PosterWithDetails, error) {
	p, err := scanPoster(r.DB.QueryRowContext(ctx,
		"SELECT "+posterColumns+" FROM posters WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.PosterWithDetails{}, ErrNotFound
	}
	if err != nil {
		return model.PosterWithDetails{}, err
	}
	out := []model.PosterWithDetails{{Poster: p, Genres: []model.Genre{}, Ratings: []model.Rating{}}}
	index := map[uint64]int{p.ID: 0}
	if err := r.attachGenres(ctx, out, index); err != nil {
		return model.PosterWithDetails{}, err
	}
	if err := r.attachRatings(ctx, out, index); err != nil {
		return model.PosterWithDetails{}, err
	}
	return out[0], nil
}

func (r *PosterRepo) attachGenres(ctx context.Context, posters []model.PosterWithDetails, index map[uint64]int) error {
	if len(posters) == 0 {
		return nil
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT gp.poster_id, g.id, g.title, g.slug
		 FROM genre_poster_rel gp JOIN genres g ON g.id = gp.genre_id
		 ORDER BY gp.poster_id, g.id`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var posterID uint64
		var g model.Genre
		if err := rows.Scan(&posterID, &g.ID, &g.Title, &g.Slug); err != nil {
			return err
		}
		if i, ok := index[posterID]; ok {
			posters[i].Genres = append(posters[i].Genres, g)
		}
	}
	return rows.Err()
}

func (r *PosterRepo) attachRatings(ctx context.Context, posters []model.PosterWithDetails, index map[uint64]int) error {
	if len(posters) == 0 {
		return nil
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, poster_id, num_stars FROM user_ratings ORDER BY poster_id, id")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rt model.Rating
		if err := rows.Scan(&rt.ID, &rt.UserID, &rt.PosterID, &rt.NumStars); err != nil {
			return err
		}
		if i, ok := index[rt.PosterID]; ok {
			posters[i].Ratings = append(posters[i].Ratings, rt)
		}
	}
	return rows.Err()
}

// Create inserts a poster and returns it with its assigned id.
func (r *PosterRepo) Create(ctx context.Context, p model.Poster) (model.Poster, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posters (name, slug, description, image, width, height, price, stock) VALUES (?,?,?,?,?,?,?,?)",
		p.Name, p.Slug, p.Description, p.Image, p.Width, p.Height, p.Price, p.Stock)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Poster{}, ErrDuplicate
		}
		return model.Poster{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Poster{}, err
	}
	p.ID = uint64(id)
	return p, nil
}

// Update rewrites all poster columns for an id and returns the new state.
func (r *PosterRepo) Update(ctx context.Context, p model.Poster) (model.Poster, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE posters SET name=?, slug=?, description=?, image=?, width=?, height=?, price=?, stock=? WHERE id=?",
		p.Name, p.Slug, p.Description, p.Image, p.Width, p.Height, p.Price, p.Stock, p.ID)
	if err != nil {
		return model.Poster{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM posters WHERE id=?)", p.ID).Scan(&exists); err != nil {
			return model.Poster{}, err
		}
		if !exists {
			return model.Poster{}, ErrNotFound
		}
	}
	return p, nil
}

// Delete removes a poster; cartlines, ratings and genre links referencing it
// cascade away at the schema level.
func (r *PosterRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM posters WHERE id=?", id)
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
