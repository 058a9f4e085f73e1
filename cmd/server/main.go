package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"inkwell/internal/db"
	"inkwell/internal/router"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, reading config from the environment")
	}

	db.Init()

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}

	r := router.New(secret, "./web/templates", "./web/static")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Infof("Inkwell server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
