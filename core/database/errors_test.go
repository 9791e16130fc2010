package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Nil", nil, false},
		{"Gorm", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"Postgres", &pgconn.PgError{Code: "23505"}, true},
		{"PostgresOther", &pgconn.PgError{Code: "23503"}, false},
		{"MySQL", &mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"}, true},
		{"SQLiteMessage", errors.New("UNIQUE constraint failed: brainrots.external_id"), true},
		{"Other", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err))
		})
	}
}

func TestIsUniqueViolation_ThroughGorm(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO `things`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry '7' for key 'external_id'"})

	err = db.Exec("INSERT INTO `things` (id) VALUES (?)", 7).Error
	assert.True(t, IsUniqueViolation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
