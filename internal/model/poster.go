package model

// Poster mirrors a row of the `posters` table: one purchasable movie poster
// with its print dimensions, price and remaining stock.
type Poster struct {
	ID          uint64  `json:"id"`          // posters.id
	Name        string  `json:"name"`        // posters.name
	Slug        string  `json:"slug"`        // posters.slug
	Description string  `json:"description"` // posters.description
	Image       string  `json:"image"`       // posters.image (URL or asset path)
	Width       int     `json:"width"`       // posters.width in cm
	Height      int     `json:"height"`      // posters.height in cm
	Price       float64 `json:"price"`       // posters.price
	Stock       int     `json:"stock"`       // posters.stock
}

// PosterSummary is the short poster projection attached to cartlines and
// ratings. Stock is a pointer so listings that do not select it (the admin
// cart view) omit the field instead of reporting zero.
type PosterSummary struct {
	ID    uint64  `json:"id"`
	Name  string  `json:"name"`
	Slug  string  `json:"slug,omitempty"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
	Stock *int    `json:"stock,omitempty"`
}
