package components

import (
	"net/url"
	"strconv"

	"faculty_directory_go/panel"
)

const tableColumns = "7"

// FacultyPath is the HTMX base path of a department
func FacultyPath(deptID string) string {
	return "/htmx/faculty/" + url.PathEscape(deptID)
}

// addFormAction is the add endpoint for a department, or the no-selection
// endpoint when none is chosen yet
func addFormAction(deptID string) string {
	if deptID == "" {
		return "/htmx/faculty/add"
	}
	return FacultyPath(deptID) + "/add"
}

func departmentItemClass(selected bool) string {
	if selected {
		return "list-group-item list-group-item-action department-item active"
	}
	return "list-group-item list-group-item-action department-item"
}

func toggleVals(index int) string {
	return JSON(map[string]int{"index": index})
}

func alertTimeout() string {
	return strconv.FormatInt(panel.AlertTimeout.Milliseconds(), 10)
}
