package db

import (
	"database/sql"
	"fmt"

	"sharefm/config"
	"sharefm/logger"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

var DB *sql.DB

// ConnectDB establishes a connection to the database.
func ConnectDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = DB.Ping(); err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("connected to database")
	return nil
}

// InitDB initializes the catalog schema, creating the entries table if it
// does not exist. The sessions table is owned by the GORM connection and
// migrated there.
func InitDB() error {
	if err := createEntriesTable(); err != nil {
		return err
	}
	logger.Info("database schema initialized")
	return nil
}

func createEntriesTable() error {
	// artists and albumartists hold JSON-encoded string arrays; last_update
	// is Unix seconds so it compares directly against file mtimes.
	query := `
	CREATE TABLE IF NOT EXISTS entries (
		id CHAR(36) PRIMARY KEY,
		path VARCHAR(767) NOT NULL,
		title VARCHAR(255),
		album VARCHAR(255),
		artists TEXT,
		albumartists TEXT,
		duration DOUBLE NOT NULL DEFAULT 0,
		last_update DOUBLE NOT NULL,
		CONSTRAINT uq_entry_path UNIQUE (path)
	);
	`
	if _, err := DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create entries table: %w", err)
	}
	return nil
}
