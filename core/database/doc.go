// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL (production) or SQLite (local runs and tests)
// connections from the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and pings the
// database within the configured timeout. Migrate creates the tables of the
// models owned by the feature packages (wallet links, rule configurations).
//
// # Schema Inspection
//
// GetTableColumns reads a table's column definitions, which the integrity
// check compares against the expected models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	columns, err := database.GetTableColumns(db, "wallet_links")
package database
