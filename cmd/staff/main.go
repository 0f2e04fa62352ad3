// Command staff creates a back-office account.
//
//	STAFF_PASSWORD=... go run ./cmd/staff -email ops@sofadeal.com -role admin
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"sofadeal/config"
	"sofadeal/internal/domain"
	"sofadeal/internal/pkg/database"
	"sofadeal/internal/pkg/logger"
	"sofadeal/internal/repository/staffrepo"
	"sofadeal/internal/service/sessionservice"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, using the process environment")
	}

	var email, role string
	flag.StringVar(&email, "email", "", "account email")
	flag.StringVar(&role, "role", string(domain.RoleEditor), "admin or editor")
	flag.Parse()

	password := os.Getenv("STAFF_PASSWORD")
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "usage: STAFF_PASSWORD=... staff -email <email> [-role admin|editor]")
		os.Exit(2)
	}

	logg := logger.NewLogger("info")
	dbCfg := config.LoadDatabaseConfig()

	db, err := database.NewPostgresDB(dbCfg.URL, dbCfg.Timeout, database.PoolConfig{MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		logg.Fatal("Failed to connect to the database.", err)
	}
	defer db.Close()

	// Account creation never issues tokens.
	svc := sessionservice.NewService(staffrepo.NewStaffRepository(db, dbCfg.Timeout, logg), nil, logg)

	user, err := svc.CreateStaff(context.Background(), email, password, domain.UserRole(role))
	if err != nil {
		logg.Error("Failed to create staff account.", err)
		os.Exit(1)
	}
	fmt.Printf("created %s (%s) with id %s\n", user.Email, user.Role, user.ID)
}
