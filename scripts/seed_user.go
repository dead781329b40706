package main

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/devlink/devlink/pkg/auth"
)

// Seeds a login-ready user straight into the database, handy for local
// development when the register endpoint is not wired up yet.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, using system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")
	name := os.Getenv("SEED_NAME")
	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	if dsn == "" || email == "" || password == "" {
		log.Fatal("DB_DSN, SEED_EMAIL and SEED_PASSWORD must be set")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}
	avatar := fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&d=mm&r=pg", md5.Sum([]byte(email)))

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	query := `
		INSERT INTO users (id, name, email, avatar, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET name = $2, avatar = $4, password_hash = $5
	`
	if _, err := pool.Exec(context.Background(), query, uuid.New(), name, email, avatar, hash); err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	fmt.Printf("seeded user '%s'\n", email)
}
