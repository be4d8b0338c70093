package services

import (
	"testing"
	"time"

	"faculty_directory_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAuditEvent(t *testing.T) {
	db := setupServiceTestDB(t)

	ctx := AuditContext{
		DepartmentID:   "CS101",
		DepartmentName: "Computer Science",
		IPAddress:      "10.0.0.1",
	}

	LogAuditEvent(db, ctx, models.AuditActionStatusChange, "Faculty", "fac-1", "Bhoomika U", "Locked faculty member",
		map[string]interface{}{"isActive": true},
		map[string]interface{}{"isActive": false},
	)

	var entry models.AuditLog
	require.Eventually(t, func() bool {
		return db.First(&entry, "resource_id = ?", "fac-1").Error == nil
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, "CS101", entry.DepartmentID)
	assert.Equal(t, models.AuditActionStatusChange, entry.Action)
	assert.Equal(t, "10.0.0.1", entry.IPAddress)

	changes := entry.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, "isActive", changes[0].Field)
}

func TestAuditLogIsImmutable(t *testing.T) {
	db := setupServiceTestDB(t)

	require.NoError(t, writeAuditLog(db, AuditContext{DepartmentID: "CS101"}, models.AuditActionCreate, "Faculty", "fac-2", "A", "", nil, map[string]string{"Name": "A"}))

	var entry models.AuditLog
	require.NoError(t, db.First(&entry, "resource_id = ?", "fac-2").Error)
	assert.Empty(t, entry.OldValues)
	assert.JSONEq(t, `{"Name":"A"}`, entry.NewValues)

	assert.Error(t, db.Model(&entry).Update("description", "changed").Error)
	assert.Error(t, db.Delete(&entry).Error)
}

func TestDescribeChanges(t *testing.T) {
	entry := models.AuditLog{
		OldValues: `{"isActive":true}`,
		NewValues: `{"isActive":false}`,
	}
	assert.Equal(t, " (isActive: true -> false)", describeChanges(entry.Changes()))
	assert.Empty(t, describeChanges(nil))
}
