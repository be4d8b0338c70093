package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"faculty_directory_go/db"
	"faculty_directory_go/models"
	"faculty_directory_go/services"

	"github.com/labstack/echo/v4"
)

var (
	errIndexRequired = errors.New("index required")
	errInvalidIndex  = errors.New("invalid index")
)

// toggleRequest accepts index as a number or a numeric string
type toggleRequest struct {
	Index         json.RawMessage `json:"index"`
	CurrentStatus *bool           `json:"currentStatus"`
}

// GetFacultyHandler returns every record of a department in positional
// order. Unknown departments give an empty list.
func GetFacultyHandler(c echo.Context) error {
	return listFaculty(c, true)
}

// GetActiveFacultyHandler returns only records that are not locked
func GetActiveFacultyHandler(c echo.Context) error {
	return listFaculty(c, false)
}

func listFaculty(c echo.Context, includeInactive bool) error {
	faculty, err := services.ListFaculty(db.DB, departmentParam(c), includeInactive)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, tr(c, "api.load_failed"))
	}
	return c.JSON(http.StatusOK, faculty)
}

// AddFacultyHandler appends a member to a department
func AddFacultyHandler(c echo.Context) error {
	deptID := departmentParam(c)

	if c.Request().ContentLength == 0 {
		return jsonError(c, http.StatusBadRequest, tr(c, "api.no_data"))
	}

	var input services.FacultyInput
	if err := c.Bind(&input); err != nil {
		return jsonError(c, http.StatusBadRequest, tr(c, "api.no_data"))
	}
	if err := c.Validate(input.Normalize()); err != nil {
		return addFacultyError(c, err)
	}

	faculty, err := addFaculty(c, deptID, input)
	if err != nil {
		return addFacultyError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "success",
		"faculty": faculty,
	})
}

// addFaculty stores the member, then records the audit entry and snapshot
func addFaculty(c echo.Context, deptID string, input services.FacultyInput) (*models.Faculty, error) {
	dept, err := services.GetDepartment(db.DB, deptID)
	if err != nil {
		return nil, err
	}

	faculty, err := services.AddFaculty(db.DB, deptID, input)
	if err != nil {
		return nil, err
	}

	services.LogAuditEvent(db.DB, auditContext(c, dept), models.AuditActionCreate,
		"faculty", faculty.ID, faculty.Name,
		fmt.Sprintf("Faculty member %s added to %s", faculty.Name, dept.Name),
		nil, faculty)
	snapshotDepartment(c.Request().Context(), deptID)

	return faculty, nil
}

// addFacultyMessage maps an add failure to a status and localised message
func addFacultyMessage(c echo.Context, err error) (int, string) {
	var fieldErr *services.FieldError
	switch {
	case errors.As(err, &fieldErr) && fieldErr.Missing():
		return http.StatusBadRequest, tr(c, "api.missing_field", map[string]interface{}{"field": fieldErr.Field})
	case errors.As(err, &fieldErr):
		return http.StatusBadRequest, tr(c, "api.invalid_field", map[string]interface{}{"field": fieldErr.Field})
	case errors.Is(err, services.ErrDepartmentNotFound):
		return http.StatusNotFound, tr(c, "api.department_not_found")
	default:
		c.Logger().Errorf("add faculty failed: %v", err)
		return http.StatusInternalServerError, tr(c, "api.add_failed")
	}
}

func addFacultyError(c echo.Context, err error) error {
	status, msg := addFacultyMessage(c, err)
	return jsonError(c, status, msg)
}

// ToggleFacultyStatusHandler flips the active flag of the record at index
func ToggleFacultyStatusHandler(c echo.Context) error {
	deptID := departmentParam(c)

	if c.Request().ContentLength == 0 {
		return jsonError(c, http.StatusBadRequest, tr(c, "api.no_data"))
	}

	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, tr(c, "api.no_data"))
	}

	index, err := parseIndex(req.Index)
	if err != nil {
		return toggleError(c, err)
	}

	faculty, previous, err := toggleStatus(c, deptID, index, req.CurrentStatus)
	if err != nil {
		return toggleError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "success",
		"isActive": faculty.Active(),
		"previous": previous,
		"message":  tr(c, "api.status_updated"),
	})
}

// toggleStatus runs the toggle with its audit entry and snapshot
func toggleStatus(c echo.Context, deptID string, index int, currentStatus *bool) (*models.Faculty, bool, error) {
	dept, err := services.GetDepartment(db.DB, deptID)
	if err != nil {
		return nil, false, err
	}

	faculty, previous, err := services.ToggleFacultyStatus(db.DB, deptID, index, currentStatus)
	if err != nil {
		return nil, false, err
	}

	services.LogAuditEvent(db.DB, auditContext(c, dept), models.AuditActionStatusChange,
		"faculty", faculty.ID, faculty.Name,
		fmt.Sprintf("Faculty member %s set to active=%t", faculty.Name, faculty.Active()),
		map[string]bool{"isActive": previous}, map[string]bool{"isActive": faculty.Active()})
	snapshotDepartment(c.Request().Context(), deptID)

	return faculty, previous, nil
}

func toggleMessage(c echo.Context, err error) (int, string) {
	switch {
	case errors.Is(err, errIndexRequired):
		return http.StatusBadRequest, tr(c, "api.index_required")
	case errors.Is(err, errInvalidIndex):
		return http.StatusBadRequest, tr(c, "api.invalid_index")
	case errors.Is(err, services.ErrFacultyNotFound), errors.Is(err, services.ErrDepartmentNotFound):
		return http.StatusNotFound, tr(c, "api.faculty_not_found")
	default:
		c.Logger().Errorf("toggle status failed: %v", err)
		return http.StatusInternalServerError, tr(c, "api.update_failed")
	}
}

func toggleError(c echo.Context, err error) error {
	status, msg := toggleMessage(c, err)
	return jsonError(c, status, msg)
}

// parseIndex reads a JSON number (truncated) or a string holding an integer
func parseIndex(raw json.RawMessage) (int, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, errIndexRequired
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, errInvalidIndex
		}
		return parseIndexString(str)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errInvalidIndex
	}
	return int(f), nil
}

func parseIndexString(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errInvalidIndex
	}
	return n, nil
}
