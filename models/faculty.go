package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Faculty is a person entry in a department. Records have no public identity:
// clients address them by their 0-based rank in Position order.
// The JSON shape (capitalised keys, optional isActive) is the legacy
// directory file format.
type Faculty struct {
	ID           string    `gorm:"type:uuid;primarykey" json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
	DepartmentID string    `gorm:"size:100;not null;index:idx_faculty_dept_position,priority:1" json:"-"`
	Position     int       `gorm:"not null;index:idx_faculty_dept_position,priority:2" json:"-"`

	Name        string `gorm:"size:200" json:"Name"`
	Initials    string `gorm:"size:20" json:"Initials,omitempty"`
	Designation string `gorm:"size:200" json:"Designation"`
	Phone       string `gorm:"size:50" json:"Phone"`
	Email       string `gorm:"size:200" json:"Email"`
	// IsActive is nil for records imported before the flag existed
	IsActive *bool `json:"isActive,omitempty"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"-"`
}

// Active reports the effective status; a missing flag means active.
func (f *Faculty) Active() bool {
	return f.IsActive == nil || *f.IsActive
}

// SetActive stores an explicit status flag
func (f *Faculty) SetActive(active bool) {
	f.IsActive = &active
}

// BeforeCreate hook to generate UUID
func (f *Faculty) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Faculty) TableName() string {
	return "faculty"
}
