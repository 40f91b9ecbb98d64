package cmd

import (
	"net/http"

	"reviewdb-api/auth"
	"reviewdb-api/handlers"
	"reviewdb-api/helper"
	"reviewdb-api/middleware"
	"reviewdb-api/repositories"
	"reviewdb-api/services"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, log, err := setup()
		if err != nil {
			return err
		}

		userRepo := repositories.NewUserRepository(db)
		categoryRepo := repositories.NewCategoryRepository(db)
		genreRepo := repositories.NewGenreRepository(db)
		titleRepo := repositories.NewTitleRepository(db)
		reviewRepo := repositories.NewReviewRepository(db)
		commentRepo := repositories.NewCommentRepository(db)

		codes := auth.NewCodeGenerator(cfg.JWT.Secret, cfg.JWT.CodeTTL)
		mailService := services.NewMailService(cfg.SMTP, log)
		authService := services.NewAuthService(userRepo, mailService, codes, cfg.JWT, log)
		userService := services.NewUserService(userRepo, log)
		catalogService := services.NewCatalogService(categoryRepo, genreRepo, log)
		titleService := services.NewTitleService(titleRepo, categoryRepo, genreRepo, log)
		reviewService := services.NewReviewService(titleRepo, reviewRepo, commentRepo, log)

		h := helper.NewHTTPHelper()

		router := handlers.NewRouter(handlers.RouterDeps{
			Auth:           handlers.NewAuthHandler(authService, h),
			Users:          handlers.NewUserHandler(userService, h),
			Catalog:        handlers.NewCatalogHandler(catalogService, h),
			Titles:         handlers.NewTitleHandler(titleService, h),
			Reviews:        handlers.NewReviewHandler(reviewService, h),
			Comments:       handlers.NewCommentHandler(reviewService, h),
			AuthMiddleware: middleware.Auth(userRepo, cfg.JWT.Secret),
			RequestID:      middleware.RequestID(log),
		})

		log.WithField("port", cfg.Server.Port).Info("server starting")
		return http.ListenAndServe(":"+cfg.Server.Port, router)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
