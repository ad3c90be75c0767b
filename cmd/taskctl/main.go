// taskctl is a small operator tool for bootstrapping accounts: it creates a
// user directly against the database, prompting for the password without
// echoing it to the terminal.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/aleksivanovs/taskvault/internal/server/config"
	"github.com/aleksivanovs/taskvault/internal/server/repositories/repomanager"
	"github.com/aleksivanovs/taskvault/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] == "" {
		log.Fatalf("usage: taskctl <email> [-d dsn]")
	}
	email := os.Args[1]

	cfg := config.LoadConfig()
	ctx := context.Background()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	fmt.Println("Enter password:")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("password read error: %v", err)
	}

	us := services.NewUserService(db, m, cfg)
	user, _, err := us.SignUp(ctx, email, string(password))
	if err != nil {
		log.Fatalf("user creation error: %v", err)
	}

	fmt.Printf("created user %s (%s)\n", user.Email, user.ID)
}
