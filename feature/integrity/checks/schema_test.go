package checks

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func showColumns(fields ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	for _, f := range fields {
		rows.AddRow(f, "varchar(255)", "YES", "", nil, "")
	}
	return rows
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, "brainrots", []string{"id"})
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_Matched(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `brainrots`")).
		WillReturnRows(showColumns("ID", "name", "rarity"))

	report, err := CheckSchema(db, "brainrots", []string{"id", "name", "rarity"})
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "ok", report.Status)
	assert.Empty(t, report.MissingColumns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSchema_MissingColumns(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `brainrots`")).
		WillReturnRows(showColumns("id", "name"))

	report, err := CheckSchema(db, "brainrots", []string{"id", "name", "external_id", "metadata"})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "error", report.Status)
	assert.Equal(t, []string{"external_id", "metadata"}, report.MissingColumns)
}

func TestCheckSchema_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `brainrots`")).
		WillReturnError(assert.AnError)

	_, err := CheckSchema(db, "brainrots", []string{"id"})
	assert.ErrorIs(t, err, assert.AnError)
}
