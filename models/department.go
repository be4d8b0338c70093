package models

import (
	"time"
)

// Department is an organisational grouping of faculty. The ID is caller supplied
// (for example "CS101") and travels in API paths.
type Department struct {
	ID        string    `gorm:"primarykey;size:100" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name     string `gorm:"size:200;not null;index" json:"name"`
	Position int    `gorm:"not null;default:0" json:"-"`

	Faculty []Faculty `gorm:"foreignKey:DepartmentID" json:"-"`
}

// TableName specifies the table name
func (Department) TableName() string {
	return "departments"
}
