package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"go-elms/internal/audit"
	"go-elms/internal/authz"
	"go-elms/internal/leave"
	"go-elms/internal/shared/connection"
	"go-elms/internal/user"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const usage = `Usage:
  admin init-db
  admin create-user -name NAME -email EMAIL -password PASSWORD -role ROLE
`

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	db, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		3,
	)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	switch os.Args[1] {
	case "init-db":
		err = initDB(db)
	case "create-user":
		err = createUser(db, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Fatal("command failed", zap.String("command", os.Args[1]), zap.Error(err))
	}
}

func initDB(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&leave.LeaveRequest{},
		&audit.AuditLogEntry{},
	); err != nil {
		return err
	}

	// The outbox is written with raw SQL, so its table is created the same way.
	return db.Exec(`
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id TEXT,
	aggregate_type TEXT NOT NULL,
	aggregate_id UUID NOT NULL,
	event_type TEXT NOT NULL,
	topic TEXT NOT NULL,
	payload BYTEA NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	error_message TEXT,
	next_retry_at TIMESTAMPTZ,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`).Error
}

func createUser(db *gorm.DB, args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "initial password")
	roleFlag := fs.String("role", authz.RoleEmployee.String(), "ADMIN, MANAGER or EMPLOYEE")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" || *email == "" || *password == "" {
		return errors.New("name, email and password are required")
	}

	role, err := authz.ParseRole(*roleFlag)
	if err != nil {
		return err
	}

	normalized := strings.ToLower(strings.TrimSpace(*email))

	ctx := context.Background()
	repo := user.NewRepository(db)
	if _, err := repo.FindByEmail(ctx, normalized); err == nil {
		return fmt.Errorf("email %s is already registered", normalized)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u := &user.User{
		Name:     strings.TrimSpace(*name),
		Email:    normalized,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	if err := repo.Create(ctx, u); err != nil {
		return err
	}

	fmt.Printf("created %s user %s (%s)\n", role, u.Name, u.Email)
	return nil
}
