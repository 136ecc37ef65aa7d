package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/qwego/maintenance-service/internal/auth"
	"github.com/qwego/maintenance-service/internal/config"
	"github.com/qwego/maintenance-service/internal/domain"
	"github.com/qwego/maintenance-service/internal/observability"
	"github.com/qwego/maintenance-service/internal/persistence"
	"github.com/qwego/maintenance-service/internal/repository"
)

// Managers cannot self-register through the public API; this command is the
// only way to provision one.
func main() {
	username := flag.String("username", "", "manager username")
	fullName := flag.String("full-name", "", "manager full name")
	email := flag.String("email", "", "manager email")
	phone := flag.String("phone", "", "manager phone number")
	password := flag.String("password", "", "manager password")
	flag.Parse()

	if *username == "" || *fullName == "" || *email == "" || *password == "" {
		log.Fatal("usage: create-manager -username ... -full-name ... -email ... -password ... [-phone ...]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer pg.Close()

	if pg.PoolHandle() == nil {
		log.Fatal("POSTGRES_DSN must be set")
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	users := repository.NewUserRepository(pg.PoolHandle())

	if _, err := users.GetByUsername(ctx, *username); err == nil {
		log.Fatalf("username %q already exists", *username)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Fatalf("failed to check username: %v", err)
	}

	hash, err := auth.HashPassword(*password, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	manager := &domain.User{
		Username:       *username,
		FullName:       *fullName,
		Email:          *email,
		PhoneNumber:    *phone,
		CredentialHash: hash,
		Role:           domain.RoleManager,
		IsApproved:     true,
	}
	if err := users.Create(ctx, manager); err != nil {
		log.Fatalf("failed to create manager: %v", err)
	}

	fmt.Println("Manager account created.")
	fmt.Printf("ID:       %s\n", manager.ID)
	fmt.Printf("Username: %s\n", manager.Username)
	fmt.Printf("Email:    %s\n", manager.Email)
}
