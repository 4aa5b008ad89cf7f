package checks

import (
	"regexp"
	"testing"

	"equipment-validator/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type sampleModel struct {
	ID   uint   `gorm:"column:id;primaryKey"`
	Type string `gorm:"column:equipment_type;type:varchar(64)"`
	Note string `gorm:"column:note;type:text"`
	Skip string `gorm:"-"`
}

func (sampleModel) TableName() string { return "sample_rules" }

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

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, sampleModel{})
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_NotAModel(t *testing.T) {
	db, _ := setupMockDB(t)
	_, err := CheckSchema(db, 42)
	assert.Error(t, err)

	type noTable struct{ A int }
	_, err = CheckSchema(db, noTable{})
	assert.ErrorContains(t, err, "does not implement TableName")
}

func TestCheckSchema_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	rows.AddRow("id", "int(10) unsigned", "NO", "PRI", nil, "auto_increment")
	rows.AddRow("equipment_type", "int(11)", "NO", "", nil, "") // expect varchar
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `sample_rules`")).WillReturnRows(rows)

	report, err := CheckSchema(db, &sampleModel{})
	require.NoError(t, err)
	assert.True(t, report.Exists)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"note"}, report.MissingColumns)
	assert.Equal(t, []string{"equipment_type: expected varchar(64), got int(11)"}, report.TypeMismatches)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSchema_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	report, err := CheckSchema(db, sampleModel{})
	require.NoError(t, err)
	assert.False(t, report.Exists)
	assert.ElementsMatch(t, []string{"id", "equipment_type", "note"}, report.MissingColumns)

	require.NoError(t, db.AutoMigrate(&sampleModel{}))
	report, err = CheckSchema(db, sampleModel{})
	require.NoError(t, err)
	assert.True(t, report.Exists)
	assert.True(t, report.Matched, "mismatches: %v", report.TypeMismatches)
}
