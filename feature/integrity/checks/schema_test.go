package checks

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type linkRow struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Address   string    `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (linkRow) TableName() string { return "links" }

type docRow struct {
	ID       string `gorm:"column:id;primaryKey"`
	Document string `gorm:"column:document;type:text"`
}

func (docRow) TableName() string { return "docs" }

type untabled struct {
	ID string `gorm:"column:id"`
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}
	return gormDB, mock
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, linkRow{})
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_NoTableName(t *testing.T) {
	db, _ := setupMockDB(t)
	_, err := CheckSchema(db, untabled{})
	assert.ErrorContains(t, err, "does not implement TableName")
}

func TestCheckSchema_MissingColumn(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("user_id", "varchar(64)", "NO", "PRI", nil, "").
		AddRow("address", "varchar(128)", "NO", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `links`").WillReturnRows(rows)

	report, err := CheckSchema(db, linkRow{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "mysql", report.Driver)

	tbl := report.Tables["links"]
	assert.Equal(t, "error", tbl.Status)
	assert.Equal(t, []string{"created_at"}, tbl.MissingColumns)
}

func TestCheckSchema_TypeMismatch(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "varchar(64)", "NO", "PRI", nil, "").
		AddRow("document", "VARCHAR(255)", "NO", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `docs`").WillReturnRows(rows)

	report, err := CheckSchema(db, &docRow{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"document: expected text, got varchar(255)"}, report.Tables["docs"].TypeMismatches)
}

func TestCheckSchema_InspectFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS FROM `links`").WillReturnError(assert.AnError)

	report, err := CheckSchema(db, linkRow{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Len(t, report.Errors, 1)
}

func TestCheckSchema_SQLiteMigrated(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&linkRow{}, &docRow{}))

	report, err := CheckSchema(db, linkRow{}, docRow{})
	require.NoError(t, err)
	assert.True(t, report.Matched, "%+v", report)
	assert.Equal(t, "sqlite", report.Driver)
}

func TestParseGormTags(t *testing.T) {
	assert.Equal(t, "id", parseGormColumn("column:id;primaryKey"))
	assert.Equal(t, "document", parseGormColumn("primaryKey;column:document;type:text"))
	assert.Equal(t, "text", parseGormType("column:document;type:text"))
	assert.Equal(t, "", parseGormType("column:id"))
}
