// Package database handles database connections, driver error mapping and schema inspection.
//
// Connect wraps GORM for the sqlite, mysql and postgres drivers, enabling
// TranslateError so uniqueness failures surface as gorm.ErrDuplicatedKey.
// IsUniqueViolation also recognises raw pgconn, MySQL and SQLite errors.
//
// GetTableColumns and MissingColumns inspect a table so the migrate and
// integrity commands can verify the catalog schema.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	missing, err := database.MissingColumns(db, "brainrots", []string{"external_id"})
package database
