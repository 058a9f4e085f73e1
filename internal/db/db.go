package db

import (
	"os"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"inkwell/internal/models"
)

var DB *gorm.DB

// Init connects to the database named by DATABASE_URL (postgres) or, when
// unset, a local sqlite file, then migrates the schema.
func Init() {
	var dial gorm.Dialector
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		dial = postgres.Open(dsn)
	} else {
		path := os.Getenv("BLOG_DB")
		if path == "" {
			path = "blog.db"
		}
		// _fk=1 turns on sqlite foreign key enforcement; the comment
		// cascades depend on it.
		dial = sqlite.Open("file:" + path + "?_fk=1")
	}

	var err error
	DB, err = gorm.Open(dial, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Info("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Info("Database migration completed")
}

// Migrate creates any missing tables, indexes and constraints. Running it
// against an already migrated database is a no-op; existing rows are kept.
func Migrate(g *gorm.DB) error {
	return g.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
	)
}
