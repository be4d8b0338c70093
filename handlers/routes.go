package handlers

import (
	"faculty_directory_go/config"
	"faculty_directory_go/middleware"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires the page, the HTMX fragments and the JSON API
func RegisterRoutes(e *echo.Echo, cfg *config.Config) {
	e.Validator = RequestValidator{}

	site := e.Group("")
	site.Use(middleware.Locale(cfg))

	site.GET("/", IndexHandler)

	htmx := site.Group("/htmx/faculty")
	{
		htmx.POST("/add", AddFacultyNoDepartmentHTMX)
		htmx.GET("/:id", FacultyRowsHTMX)
		htmx.POST("/:id/add", AddFacultyHTMX, middleware.MutationRateLimiter.Middleware())
		htmx.POST("/:id/toggle_status", ToggleStatusHTMX, middleware.MutationRateLimiter.Middleware())
	}

	api := site.Group("/api")
	{
		api.GET("/departments", ListDepartmentsHandler)
		api.GET("/faculty/:id", GetFacultyHandler)
		api.GET("/faculty/:id/all", GetFacultyHandler)
		api.GET("/faculty/:id/active", GetActiveFacultyHandler)
		api.GET("/faculty/:id/export", ExportRosterHandler)
		api.POST("/faculty/:id/import", ImportRosterHandler, middleware.ImportRateLimiter.Middleware())
		api.POST("/faculty/:id/add", AddFacultyHandler, middleware.MutationRateLimiter.Middleware())
		api.POST("/faculty/:id/toggle_status", ToggleFacultyStatusHandler, middleware.MutationRateLimiter.Middleware())
	}
}
