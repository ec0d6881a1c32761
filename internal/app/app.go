package app

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"digisanchar/internal/config"
	"digisanchar/internal/handlers"
	"digisanchar/internal/repositories"
	"digisanchar/internal/routes"
	"digisanchar/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "digisanchar/docs"
)

func Run() {
	cfg := config.LoadConfig()

	if cfg.JWT.Secret == "" {
		log.Fatal("JWT secret is not configured (jwt.secret / JWT_SECRET_KEY)")
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	if err := userRepo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema: ", err)
	}

	// === Services ===
	authService := services.NewAuthService([]byte(cfg.JWT.Secret))

	// Email is optional: without SMTP credentials the dispatcher stays nil
	// and verification emails are skipped.
	var emailService services.EmailService
	if cfg.Email.SMTPUser != "" {
		emailService = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
			cfg.App.BaseURL,
		)
	} else {
		log.Printf("Email transport not configured, verification emails disabled")
	}

	userService := services.NewUserService(userRepo, authService, emailService)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}))
	router.Use(corsMiddleware())
	router.LoadHTMLGlob("web/templates/*.html")

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authHandler, authService)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
