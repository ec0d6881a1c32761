package main

import (
	"log"

	"github.com/joho/godotenv"

	"digisanchar/internal/app"
)

// @title           DigiSanchar Auth API
// @version         1.0
// @description     User-account service: registration, login, email verification and profiles.
// @BasePath        /api/auth
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	app.Run()
}
