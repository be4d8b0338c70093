package services

import (
	"testing"

	"faculty_directory_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique shared memory name isolates tests while letting async audit writes see the schema
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection serialises async audit writes with the request under test
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, testDB.AutoMigrate(&models.Department{}, &models.Faculty{}, &models.AuditLog{}))
	return testDB
}

func seedDepartment(t *testing.T, db *gorm.DB, id, name string, faculty ...models.Faculty) {
	t.Helper()

	_, err := EnsureDepartment(db, id, name, 0)
	require.NoError(t, err)

	for i := range faculty {
		faculty[i].DepartmentID = id
		faculty[i].Position = i
		require.NoError(t, db.Create(&faculty[i]).Error)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
