package handlers

import (
	"net/http"

	"faculty_directory_go/db"
	"faculty_directory_go/services"

	"github.com/labstack/echo/v4"
)

// ListDepartmentsHandler returns [{id, name}] in display order
func ListDepartmentsHandler(c echo.Context) error {
	departments, err := services.ListDepartments(db.DB)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, tr(c, "api.load_failed"))
	}
	return c.JSON(http.StatusOK, departments)
}
