package persistence

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	// gorm.Open pings the connection it is handed; satisfy that before
	// the tests register their own expectations.
	mock.ExpectPing()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       conn,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return &Database{DB: gormDB}, mock, conn
}

func TestDatabase_Ping(t *testing.T) {
	db, mock, conn := mockDatabase(t)
	defer conn.Close()

	mock.ExpectPing()

	assert.NoError(t, db.Ping())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_PingAfterClose(t *testing.T) {
	db, mock, _ := mockDatabase(t)

	mock.ExpectClose()
	require.NoError(t, db.Close())

	assert.Error(t, db.Ping())
}

func TestDatabase_Close(t *testing.T) {
	db, mock, _ := mockDatabase(t)

	mock.ExpectClose()

	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_QueriesGoThroughSharedHandle(t *testing.T) {
	db, mock, conn := mockDatabase(t)
	defer conn.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	var count int64
	require.NoError(t, db.DB.Table("bookings").Count(&count).Error)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
