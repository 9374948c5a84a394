package model

// Genre mirrors a row of the `genres` table.
type Genre struct {
	ID    uint64 `json:"id"`    // genres.id
	Title string `json:"title"` // genres.title
	Slug  string `json:"slug"`  // genres.slug
}

// GenrePosterRel links a genre to a poster. The pair forms the composite
// primary key of `genre_poster_rel`.
type GenrePosterRel struct {
	GenreID  uint64 `json:"genreId"`  // genre_poster_rel.genre_id
	PosterID uint64 `json:"posterId"` // genre_poster_rel.poster_id
}

// GenreWithPosters is the public genre projection including the posters
// carrying that genre.
type GenreWithPosters struct {
	Genre
	Posters []Poster `json:"posters"`
}

// PosterWithDetails is the public poster projection including genres and
// ratings.
type PosterWithDetails struct {
	Poster
	Genres  []Genre  `json:"genres"`
	Ratings []Rating `json:"ratings"`
}
