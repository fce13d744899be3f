package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// DB est le cœur relationnel : commandes, catalogue, utilisateurs, jetons.
var DB *sql.DB

// ConnectPostgres ouvre la connexion et joue les migrations goose.
func ConnectPostgres() error {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=lavoir password=lavoir dbname=lavoir sslmode=disable"
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("ouverture Postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping Postgres: %w", err)
	}

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("migrations goose: %w", err)
	}

	DB = db
	log.Println("✅ PostgreSQL connecté, migrations à jour")
	return nil
}

func ClosePostgres() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
