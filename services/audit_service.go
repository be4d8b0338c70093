package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"faculty_directory_go/models"

	"gorm.io/gorm"
)

// AuditContext contains contextual information for audit logging
type AuditContext struct {
	DepartmentID   string
	DepartmentName string
	IPAddress      string
	UserAgent      string
}

// LogAuditEvent creates a new audit log entry asynchronously
func LogAuditEvent(
	db *gorm.DB,
	ctx AuditContext,
	action models.AuditAction,
	resourceType string,
	resourceID string,
	resourceName string,
	description string,
	oldValues interface{},
	newValues interface{},
) {
	go func() {
		if err := writeAuditLog(db, ctx, action, resourceType, resourceID, resourceName, description, oldValues, newValues); err != nil {
			log.Printf("[AUDIT] Failed to create audit log: %v", err)
		}
	}()
}

func writeAuditLog(
	db *gorm.DB,
	ctx AuditContext,
	action models.AuditAction,
	resourceType string,
	resourceID string,
	resourceName string,
	description string,
	oldValues interface{},
	newValues interface{},
) error {
	auditLog := models.AuditLog{
		DepartmentID:   ctx.DepartmentID,
		DepartmentName: ctx.DepartmentName,
		ResourceType:   resourceType,
		ResourceID:     resourceID,
		ResourceName:   resourceName,
		Action:         action,
		Description:    description,
		OldValues:      encodeAuditValues(oldValues),
		NewValues:      encodeAuditValues(newValues),
		IPAddress:      ctx.IPAddress,
		UserAgent:      ctx.UserAgent,
	}

	if err := db.Create(&auditLog).Error; err != nil {
		return err
	}

	log.Printf("[AUDIT] %s %s %q%s", action, resourceType, resourceName, describeChanges(auditLog.Changes()))
	return nil
}

// describeChanges renders changed fields as " (field: old -> new, ...)"
func describeChanges(changes []models.AuditChange) string {
	if len(changes) == 0 {
		return ""
	}
	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		parts = append(parts, fmt.Sprintf("%s: %v -> %v", c.Field, c.Old, c.New))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func encodeAuditValues(values interface{}) string {
	if values == nil {
		return ""
	}
	bytes, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(bytes)
}
