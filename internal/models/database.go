package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cashbook/backend/internal/ledger"
	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DB is the database used by the backend.
var DB *gorm.DB

type ContextKey string

const (
	DBContextURL ContextKey = "cashbook-url"
)

// Connect opens the SQLite database and configures the connection pool.
func Connect(dsn string) error {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},

		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
	}

	// Migration with foreign keys disabled.
	//
	// sqlite does not support ALTER COLUMN, so tables are copied to a temporary table,
	// then the table is dropped and recreated
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err = gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection serialises all writers. This prevents SQLITE_BUSY
	// and makes check-then-delete sequences in a transaction atomic.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = registerCallbacks(db)
	if err != nil {
		return err
	}

	// Set the exported variable
	DB = db

	return nil
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		name     string
		register func() error
	}{
		{"query", func() error {
			return db.Callback().Query().After("*").Register("cashbook:after_query", queryCallback)
		}},
		{"query general", func() error {
			return db.Callback().Query().After("cashbook:after_query").Register("cashbook:after_query_general", generalCallback)
		}},
		{"create", func() error {
			return db.Callback().Create().After("*").Register("cashbook:after_create", createUpdateCallback)
		}},
		{"create general", func() error {
			return db.Callback().Create().After("cashbook:after_create").Register("cashbook:after_create_general", generalCallback)
		}},
		{"update", func() error {
			return db.Callback().Update().After("*").Register("cashbook:after_update", createUpdateCallback)
		}},
		{"update general", func() error {
			return db.Callback().Update().After("cashbook:after_update").Register("cashbook:after_update_general", generalCallback)
		}},
		{"delete", func() error {
			return db.Callback().Delete().After("*").Register("cashbook:after_delete", deleteCallback)
		}},
		{"delete general", func() error {
			return db.Callback().Delete().After("cashbook:after_delete").Register("cashbook:after_delete_general", generalCallback)
		}},
		{"row general", func() error {
			return db.Callback().Row().After("*").Register("cashbook:after_row_general", generalCallback)
		}},
		{"raw general", func() error {
			return db.Callback().Raw().After("*").Register("cashbook:after_raw_general", generalCallback)
		}},
	}

	for _, c := range callbacks {
		if err := c.register(); err != nil {
			return fmt.Errorf("could not register %s callback: %w", c.name, err)
		}
	}

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		db.Error = ledger.NotFound(resourceName(db.Statement.Table))
	}
}

var pluralIes = regexp.MustCompile("ies$")

// resourceName derives a singular resource name from a table name.
func resourceName(table string) string {
	// Use the table name as information about the type of resource
	// and replace "_" with "[space]"
	name := strings.ReplaceAll(table, "_", " ")

	// Replace pluralized "ies" with "y"
	name = pluralIes.ReplaceAllString(name, "y")

	// Remove plural "s"
	return strings.TrimSuffix(name, "s")
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// Email addresses identify users and need to be unique
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: users.email") {
		db.Error = ErrEmailInUse
		return
	}

	// Hooks check references first, this only triggers on races
	if strings.Contains(db.Error.Error(), "FOREIGN KEY constraint failed") {
		db.Error = ErrReferenceMissing
	}
}

// deleteCallback refuses deletions of records that other records
// still reference.
func deleteCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if strings.Contains(db.Error.Error(), "FOREIGN KEY constraint failed") {
		db.Error = ErrStillReferenced
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	db.Error = general(db.Error)
}

// general replaces errors of the database itself with ErrGeneral.
func general(err error) error {
	if err == nil {
		return nil
	}

	// "sql: database is closed" is hard-coded in the sql module
	var sqliteErr *go_sqlite.Error
	if err.Error() == "sql: database is closed" || errors.As(err, &sqliteErr) {
		// A general error where we cannot provide more useful information to the end user
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrGeneral
	}

	return err
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(User{}, Account{}, Category{}, Transaction{}, Budget{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
