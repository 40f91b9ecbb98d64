package handlers

import (
	"net/http"

	"reviewdb-api/middleware"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Catalog  *CatalogHandler
	Titles   *TitleHandler
	Reviews  *ReviewHandler
	Comments *CommentHandler

	// AuthMiddleware resolves the caller from a Bearer token; it runs
	// on every route so public reads still see an authenticated user
	// when one is present.
	AuthMiddleware gin.HandlerFunc
	RequestID      gin.HandlerFunc
}

// NewRouter wires the versioned API surface. Write operations on the
// catalog, titles and users sit behind the admin gate; review and
// comment mutation is authorized per object inside the handlers.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if deps.RequestID != nil {
		router.Use(deps.RequestID)
	}
	router.Use(deps.AuthMiddleware)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", deps.Auth.SignUp)
			auth.POST("/token", deps.Auth.IssueToken)
		}

		users := v1.Group("/users")
		{
			users.GET("/me", middleware.RequireAuth(), deps.Users.Me)
			users.PATCH("/me", middleware.RequireAuth(), deps.Users.PatchMe)

			admin := users.Group("", middleware.RequireAdmin())
			{
				admin.GET("", deps.Users.List)
				admin.POST("", deps.Users.Create)
				admin.GET("/:username", deps.Users.Get)
				admin.PATCH("/:username", deps.Users.Patch)
				admin.DELETE("/:username", deps.Users.Delete)
			}
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", deps.Catalog.ListCategories)
			categories.POST("", middleware.RequireAdmin(), deps.Catalog.CreateCategory)
			categories.DELETE("/:slug", middleware.RequireAdmin(), deps.Catalog.DeleteCategory)
		}

		genres := v1.Group("/genres")
		{
			genres.GET("", deps.Catalog.ListGenres)
			genres.POST("", middleware.RequireAdmin(), deps.Catalog.CreateGenre)
			genres.DELETE("/:slug", middleware.RequireAdmin(), deps.Catalog.DeleteGenre)
		}

		titles := v1.Group("/titles")
		{
			titles.GET("", deps.Titles.List)
			titles.POST("", middleware.RequireAdmin(), deps.Titles.Create)
			titles.GET("/:title_id", deps.Titles.Get)
			titles.PATCH("/:title_id", middleware.RequireAdmin(), deps.Titles.Patch)
			titles.DELETE("/:title_id", middleware.RequireAdmin(), deps.Titles.Delete)

			reviews := titles.Group("/:title_id/reviews")
			{
				reviews.GET("", deps.Reviews.List)
				reviews.POST("", deps.Reviews.Create)
				reviews.GET("/:review_id", deps.Reviews.Get)
				reviews.PATCH("/:review_id", deps.Reviews.Patch)
				reviews.DELETE("/:review_id", deps.Reviews.Delete)
				reviews.PUT("/:review_id", deps.Reviews.MethodNotAllowed)

				comments := reviews.Group("/:review_id/comments")
				{
					comments.GET("", deps.Comments.List)
					comments.POST("", deps.Comments.Create)
					comments.GET("/:id", deps.Comments.Get)
					comments.PATCH("/:id", deps.Comments.Patch)
					comments.DELETE("/:id", deps.Comments.Delete)
					comments.PUT("/:id", deps.Comments.MethodNotAllowed)
				}
			}
		}
	}

	return router
}
