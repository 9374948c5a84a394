package model

// Cartline mirrors a row of the `cartlines` table. The (UserID, PosterID)
// pair is the primary key: a user never has more than one line per poster,
// repeated adds accumulate into Quantity instead.
type Cartline struct {
	UserID   uint64 `json:"userId"`   // cartlines.user_id
	PosterID uint64 `json:"posterId"` // cartlines.poster_id
	Quantity int    `json:"quantity"` // cartlines.quantity
}

// CartlineWithPoster is the per-user cart projection with the poster summary
// joined in.
type CartlineWithPoster struct {
	Cartline
	Poster PosterSummary `json:"poster"`
}

// CartlineWithRefs is the admin-wide cart projection joining both the owning
// user and the poster.
type CartlineWithRefs struct {
	Cartline
	User   UserSummary   `json:"user"`
	Poster PosterSummary `json:"poster"`
}
