package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"faculty_directory_go/config"
	"faculty_directory_go/db"
	"faculty_directory_go/models"
	"faculty_directory_go/services"
	"faculty_directory_go/services/i18n"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Use unique shared memory name to isolate tests while allowing shared cache for async audit writes
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

	// Set global DB and a throwaway snapshot store
	db.DB = testDB
	services.Storage = services.NewLocalStorage(t.TempDir())

	require.NoError(t, i18n.Load())
	return testDB
}

// setupEcho returns an echo instance with every route registered
func setupEcho() *echo.Echo {
	e := echo.New()
	RegisterRoutes(e, &config.Config{Environment: "test", DefaultLang: "en"})
	return e
}

func doRequest(e *echo.Echo, method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func seedDepartment(t *testing.T, database *gorm.DB, id, name string, faculty ...models.Faculty) {
	t.Helper()

	_, err := services.EnsureDepartment(database, id, name, 0)
	require.NoError(t, err)

	for i := range faculty {
		faculty[i].DepartmentID = id
		faculty[i].Position = i
		require.NoError(t, database.Create(&faculty[i]).Error)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
