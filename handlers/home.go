package handlers

import (
	"net/http"

	"faculty_directory_go/db"
	"faculty_directory_go/middleware"
	"faculty_directory_go/models"
	"faculty_directory_go/services"
	"faculty_directory_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// IndexHandler renders the directory page
func IndexHandler(c echo.Context) error {
	departments, err := services.ListDepartments(db.DB)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load departments")
	}

	var total int64
	if err := db.DB.Model(&models.Faculty{}).Count(&total).Error; err != nil {
		c.Logger().Warnf("faculty count failed: %v", err)
	}

	return render(c, http.StatusOK, pages.Index(pages.IndexData{
		Lang:         middleware.GetLocale(c),
		Departments:  departments,
		TotalFaculty: total,
	}))
}
