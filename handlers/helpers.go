package handlers

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"faculty_directory_go/db"
	"faculty_directory_go/models"
	"faculty_directory_go/panel"
	"faculty_directory_go/services"
	"faculty_directory_go/services/i18n"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs the shared validator into echo's c.Validate
type RequestValidator struct{}

func (RequestValidator) Validate(i interface{}) error {
	return services.ValidateStruct(i)
}

// departmentParam returns the :id path parameter. Echo only matches on the
// escaped path when the request has one (an id holding "/"), and then the
// parameter still needs unescaping.
func departmentParam(c echo.Context) string {
	param := c.Param("id")
	if c.Request().URL.RawPath == "" {
		return param
	}
	id, err := url.PathUnescape(param)
	if err != nil {
		return param
	}
	return id
}

func tr(c echo.Context, key string, args ...map[string]interface{}) string {
	return i18n.T(c.Request().Context(), key, args...)
}

// jsonError writes the {status, message} error envelope
func jsonError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]interface{}{
		"status":  "error",
		"message": message,
	})
}

func render(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

func auditContext(c echo.Context, dept *models.Department) services.AuditContext {
	ctx := services.AuditContext{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
	if dept != nil {
		ctx.DepartmentID = dept.ID
		ctx.DepartmentName = dept.Name
	}
	return ctx
}

// snapshotDepartment refreshes the stored JSON copy of a department. Failures
// are logged only; the mutation already succeeded.
func snapshotDepartment(ctx context.Context, deptID string) {
	if services.Storage == nil {
		return
	}
	if _, err := services.SnapshotDepartment(ctx, db.DB, services.Storage, deptID); err != nil {
		log.Printf("[WARNING] Failed to snapshot department %s: %v", deptID, err)
	}
}

// recordsFromModels converts stored faculty to the wire records the panel renders
func recordsFromModels(faculty []models.Faculty) []panel.Record {
	records := make([]panel.Record, 0, len(faculty))
	for _, f := range faculty {
		records = append(records, panel.Record{
			Name:        f.Name,
			Initials:    f.Initials,
			Designation: f.Designation,
			Phone:       f.Phone,
			Email:       f.Email,
			IsActive:    f.IsActive,
		})
	}
	return records
}

func statusText(status int) string {
	return http.StatusText(status)
}
