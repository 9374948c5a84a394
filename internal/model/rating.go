package model

// Rating mirrors a row of the `user_ratings` table: one star rating a user
// gave a poster. NumStars is validated to 1..5 at the handler boundary.
type Rating struct {
	ID       uint64 `json:"id"`       // user_ratings.id
	UserID   uint64 `json:"userId"`   // user_ratings.user_id
	PosterID uint64 `json:"posterId"` // user_ratings.poster_id
	NumStars int    `json:"numStars"` // user_ratings.num_stars
}

// RatingWithRefs is the listing projection joining the rating's user and
// poster summaries.
type RatingWithRefs struct {
	Rating
	User   UserSummary   `json:"user"`
	Poster PosterSummary `json:"poster"`
}
