package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"digisanchar/internal/handlers"
	"digisanchar/internal/middleware"
	"digisanchar/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	authService services.AuthService,
) *gin.Engine {

	// ---- static pages
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	})
	r.GET("/login.html", func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", nil)
	})
	r.GET("/register.html", func(c *gin.Context) {
		c.HTML(http.StatusOK, "register.html", nil)
	})

	// ---- public API
	api := r.Group("/api/auth")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/verify/:token", authHandler.VerifyEmail)
	}

	// ---- protected API
	protected := r.Group("/api/auth", middleware.Auth(authService))
	{
		protected.GET("/profile", authHandler.Profile)
		protected.POST("/logout", authHandler.Logout)
	}

	// uniform JSON body for unknown routes
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Endpoint not found"})
	})

	return r
}
