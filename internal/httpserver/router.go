package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyscope/studyscope/internal/middleware"
)

type Deps struct {
	Auth    *AuthHTTP
	Books   *BookHTTP
	Tags    *TagHTTP
	Reviews *ReviewHTTP

	Guard    *middleware.TokenGuard
	Resolver *middleware.IdentityResolver
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api/v1")

	access := d.Guard.Require(middleware.AccessToken)
	refresh := d.Guard.Require(middleware.RefreshToken)
	resolved := d.Resolver.CurrentUser

	// Every catalog route requires an authenticated user with a known role.
	authed := []echo.MiddlewareFunc{access, resolved, middleware.RequireRole("admin", "user")}
	adminOnly := []echo.MiddlewareFunc{access, resolved, middleware.RequireRole("admin")}

	auth := api.Group("/auth")
	auth.POST("/signup", d.Auth.Signup)
	auth.POST("/login", d.Auth.Login)
	auth.GET("/refresh_token", d.Auth.Refresh, refresh)
	auth.GET("/logout", d.Auth.Logout, access)
	auth.GET("/me", d.Auth.Me, authed...)
	auth.PATCH("/users/:uid/role", d.Auth.UpdateUserRole, adminOnly...)

	books := api.Group("/books")
	books.GET("", d.Books.GetBooks, authed...)
	books.GET("/search", d.Books.SearchBooks, authed...)
	books.GET("/user/:uid", d.Books.GetUserBooks, authed...)
	books.GET("/:uid", d.Books.GetBook, authed...)
	books.POST("", d.Books.CreateBook, authed...)
	books.PATCH("/:uid", d.Books.UpdateBook, authed...)
	books.DELETE("/:uid", d.Books.DeleteBook, authed...)

	books.POST("/:uid/tags", d.Tags.AddTagsToBook, authed...)
	books.POST("/:uid/reviews", d.Reviews.AddReviewToBook, authed...)

	tags := api.Group("/tags")
	tags.GET("", d.Tags.GetTags, authed...)
	tags.POST("", d.Tags.AddTag, authed...)
	tags.PUT("/:uid", d.Tags.UpdateTag, authed...)
	tags.DELETE("/:uid", d.Tags.DeleteTag, adminOnly...)

	reviews := api.Group("/reviews")
	reviews.GET("/:uid", d.Reviews.GetReview, authed...)
	reviews.DELETE("/:uid", d.Reviews.DeleteReview, authed...)
}
