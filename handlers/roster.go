package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"faculty_directory_go/db"
	"faculty_directory_go/models"
	"faculty_directory_go/services"

	"github.com/labstack/echo/v4"
)

// ExportRosterHandler serves a department's roster as an xlsx download
func ExportRosterHandler(c echo.Context) error {
	deptID := departmentParam(c)

	buf, err := services.ExportRosterWorkbook(c.Request().Context(), db.DB, deptID)
	if err != nil {
		if errors.Is(err, services.ErrDepartmentNotFound) {
			return jsonError(c, http.StatusNotFound, tr(c, "api.department_not_found"))
		}
		c.Logger().Errorf("roster export failed: %v", err)
		return jsonError(c, http.StatusInternalServerError, tr(c, "api.export_failed"))
	}

	filename := fmt.Sprintf("faculty_%s.xlsx", safeFilename(deptID))
	c.Response().Header().Set("Content-Disposition", "attachment; filename="+filename)
	return c.Blob(http.StatusOK, services.XLSXContentType, buf.Bytes())
}

// ImportRosterHandler appends the rows of an uploaded xlsx ("file") to a department
func ImportRosterHandler(c echo.Context) error {
	deptID := departmentParam(c)

	file, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, http.StatusBadRequest, tr(c, "api.file_required"))
	}
	if err := services.ValidateRosterUpload(file); err != nil {
		if errors.Is(err, services.ErrRosterTooLarge) {
			return jsonError(c, http.StatusRequestEntityTooLarge, err.Error())
		}
		return jsonError(c, http.StatusBadRequest, tr(c, "api.file_required"))
	}

	src, err := file.Open()
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, tr(c, "api.import_failed"))
	}
	defer src.Close()

	dept, err := services.GetDepartment(db.DB, deptID)
	if err != nil {
		if errors.Is(err, services.ErrDepartmentNotFound) {
			return jsonError(c, http.StatusNotFound, tr(c, "api.department_not_found"))
		}
		return jsonError(c, http.StatusInternalServerError, tr(c, "api.import_failed"))
	}

	result, err := services.ImportRosterWorkbook(db.DB, deptID, src)
	if err != nil {
		c.Logger().Errorf("roster import failed: %v", err)
		return jsonError(c, http.StatusBadRequest, tr(c, "api.import_failed"))
	}

	if result.SuccessCount > 0 {
		services.LogAuditEvent(db.DB, auditContext(c, dept), models.AuditActionImport,
			"department", dept.ID, dept.Name,
			fmt.Sprintf("Imported %d faculty members from %s", result.SuccessCount, file.Filename),
			nil, map[string]int{"imported": result.SuccessCount, "failed": result.FailedCount})
		snapshotDepartment(c.Request().Context(), deptID)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "success",
		"message":   tr(c, "api.import_success", map[string]interface{}{"count": result.SuccessCount}),
		"processed": result.TotalProcessed,
		"imported":  result.SuccessCount,
		"failed":    result.FailedCount,
		"errors":    result.Errors,
	})
}

func safeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
