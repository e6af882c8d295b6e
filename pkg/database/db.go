package database

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Options selects the driver and connection target. DSN wins over the
// individual postgres fields when set.
type Options struct {
	Driver     string
	DSN        string
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SQLitePath string
}

func Connect(opts Options) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if opts.Driver == "sqlite" {
		// the embedded store has a single writer; keep every statement on one connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Printf("Connected to %s database", opts.Driver)
	return db, nil
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case "postgres", "":
		dsn := opts.DSN
		if dsn == "" {
			dsn = fmt.Sprintf(
				"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
				valueOrDefault(opts.Host, "localhost"),
				valueOrDefault(opts.User, "postgres"),
				opts.Password,
				valueOrDefault(opts.Name, "storytelling_assistant"),
				valueOrDefault(opts.Port, "5432"),
			)
		}
		return postgres.Open(dsn), nil
	case "sqlite":
		path := opts.DSN
		if path == "" {
			path = valueOrDefault(opts.SQLitePath, "storytelling_assistant.db")
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

func valueOrDefault(val, fallback string) string {
	if val != "" {
		return val
	}

	return fallback
}
