// Package database handles the optional database sink connection and schema inspection.
//
// It configures GORM for MySQL in production and SQLite for local runs and
// tests. The inspector lets the merge job verify that an existing target table
// carries every unified column before any row is written.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	missing, err := database.MissingColumns(db, "unified_businesses", columns)
package database
