package checks

import (
	"fmt"

	"brainrot-catalog/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of comparing a table with the columns the catalog needs.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies that table has every required column.
func CheckSchema(db *gorm.DB, table string, required []string) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	missing, err := database.MissingColumns(db, table, required)
	if err != nil {
		return nil, err
	}

	report := &SchemaReport{
		Table:          table,
		Matched:        len(missing) == 0,
		MissingColumns: []string{},
		Status:         "ok",
	}
	if len(missing) > 0 {
		report.MissingColumns = missing
		report.Status = "error"
	}
	return report, nil
}
