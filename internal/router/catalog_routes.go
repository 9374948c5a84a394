package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wallywood/poster-api/internal/handler"
	"github.com/wallywood/poster-api/internal/middleware"
	"github.com/wallywood/poster-api/internal/model"
)

// RegisterCatalog registers the poster, genre, genre-poster relation and
// rating endpoints. Reads are public (and run behind the response cache when
// one is configured); writes require a session token and, except for
// ratings, the ADMIN role. cacheMW may be nil when caching is disabled.
func RegisterCatalog(
	e *echo.Echo,
	p *handler.PosterHandler,
	g *handler.GenreHandler,
	rel *handler.GenrePosterHandler,
	rt *handler.RatingHandler,
	jwtSecret string,
	cacheMW echo.MiddlewareFunc,
) {
	public := []echo.MiddlewareFunc{}
	if cacheMW != nil {
		public = append(public, cacheMW)
	}
	authed := middleware.JWTAuth(jwtSecret)
	adminOnly := []echo.MiddlewareFunc{authed, middleware.RequireRole(model.RoleAdmin)}

	// Posters: public read, ADMIN write.
	posters := e.Group("/api/posters")
	posters.GET("", p.GetAll, public...)
	posters.GET("/:id", p.GetByID, public...)
	posters.POST("", p.Create, adminOnly...)
	posters.PUT("/:id", p.Update, adminOnly...)
	posters.DELETE("/:id", p.Delete, adminOnly...)

	// Genres: public read, ADMIN write.
	genres := e.Group("/api/genres")
	genres.GET("", g.GetAll, public...)
	genres.GET("/:id", g.GetByID, public...)
	genres.POST("", g.Create, adminOnly...)
	genres.PUT("/:id", g.Update, adminOnly...)
	genres.DELETE("/:id", g.Delete, adminOnly...)

	// Genre-poster relations: public read, ADMIN link/unlink.
	rels := e.Group("/api/genre-poster-rel")
	rels.GET("", rel.GetAll, public...)
	rels.POST("", rel.Create, adminOnly...)
	rels.DELETE("/:genreId/:posterId", rel.Delete, adminOnly...)

	// Ratings: public read, authenticated create/update, ADMIN delete.
	ratings := e.Group("/api/ratings")
	ratings.GET("", rt.GetAll, public...)
	ratings.GET("/:id", rt.GetByID, public...)
	ratings.POST("", rt.Create, authed)
	ratings.PUT("/:id", rt.Update, authed)
	ratings.DELETE("/:id", rt.Delete, adminOnly...)
}
