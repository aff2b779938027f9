package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"github.com/oksasatya/jobboard-api/config"
	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	pginfra "github.com/oksasatya/jobboard-api/internal/infrastructure/postgres"
	"github.com/oksasatya/jobboard-api/pkg/helpers"
)

// seed creates the admin account. Admins cannot self-register.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	email := flag.String("email", "admin@jobboard.local", "admin email")
	password := flag.String("password", "", "admin password (min 8 chars)")
	name := flag.String("name", "Administrator", "admin full name")
	flag.Parse()
	if len(*password) < 8 {
		log.Fatal("-password is required and must be at least 8 characters")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	if u, err := users.GetByEmail(ctx, *email); err == nil {
		log.Printf("admin already exists: id=%s email=%s", u.UlID, u.Email)
		return
	}

	hash, err := helpers.HashPassword(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	u := &entity.User{
		UlID:     helpers.NewULID(),
		Email:    strings.ToLower(strings.TrimSpace(*email)),
		Password: hash,
		FullName: *name,
		Role:     entity.RoleAdmin,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	log.Printf("seeded admin: id=%s email=%s", u.UlID, u.Email)
}
