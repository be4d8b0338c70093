package pages

import (
	"faculty_directory_go/models"
)

// IndexData holds the data for the directory page
type IndexData struct {
	Lang        string
	Departments []models.Department
	// TotalFaculty counts every record across departments
	TotalFaculty int64
}

// tableColumns are the translation suffixes of the faculty table headers
var tableColumns = []string{"name", "initials", "designation", "phone", "email", "status", "actions"}
