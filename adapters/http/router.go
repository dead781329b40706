package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/devlink/devlink/pkg/logger"
)

// NewRouter builds the full API surface. Private routes sit behind the one
// auth middleware; public profile reads take no token.
func NewRouter(
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	authMiddleware gin.HandlerFunc,
	log logger.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	router.Use(ErrorMiddleware(log))
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", authHandler.Register)
			users.POST("/login", authHandler.Login)
		}

		api.GET("/auth", authMiddleware, authHandler.Current)

		profiles := api.Group("/profile")
		{
			profiles.GET("/handle/:handle", profileHandler.GetByHandle)
			profiles.GET("/user/:user_id", profileHandler.GetByUserID)
			profiles.GET("/all", profileHandler.ListAll)

			profiles.GET("", authMiddleware, profileHandler.GetOwn)
			profiles.POST("", authMiddleware, profileHandler.CreateOrUpdate)
			profiles.DELETE("", authMiddleware, profileHandler.DeleteAccount)

			profiles.POST("/experience", authMiddleware, profileHandler.AddExperience)
			profiles.POST("/education", authMiddleware, profileHandler.AddEducation)
			profiles.DELETE("/experience/:exp_id", authMiddleware, profileHandler.RemoveExperience)
			profiles.DELETE("/education/:edu_id", authMiddleware, profileHandler.RemoveEducation)
		}

		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
	}

	return router
}
