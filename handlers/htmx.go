package handlers

import (
	"context"
	"io"
	"net/http"

	"faculty_directory_go/db"
	"faculty_directory_go/middleware"
	"faculty_directory_go/panel"
	"faculty_directory_go/services"
	"faculty_directory_go/templates/components"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// fragments renders several components in one response
func fragments(parts ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, p := range parts {
			if err := p.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// alertOnly answers with an out-of-band alert and leaves the target alone
func alertOnly(c echo.Context, kind panel.AlertKind, message string) error {
	c.Response().Header().Set("HX-Reswap", "none")
	return render(c, http.StatusOK, components.Alert(panel.Alert{Kind: kind, Message: message}, true))
}

// facultyRows loads a department's rows, or an error row when the load fails
func facultyRows(c echo.Context, deptID string) templ.Component {
	lang := middleware.GetLocale(c)
	faculty, err := services.ListFaculty(db.DB, deptID, true)
	if err != nil {
		c.Logger().Errorf("faculty rows failed: %v", err)
		return components.ErrorRow(http.StatusInternalServerError, statusText(http.StatusInternalServerError), lang)
	}
	return components.FacultyRows(deptID, panel.Rows(recordsFromModels(faculty), lang), lang)
}

// FacultyRowsHTMX renders the table body for a department, plus the panel
// title and the add form bound to it
func FacultyRowsHTMX(c echo.Context) error {
	deptID := departmentParam(c)
	lang := middleware.GetLocale(c)

	title := deptID
	if dept, err := services.GetDepartment(db.DB, deptID); err == nil {
		title = dept.Name
	}

	return render(c, http.StatusOK, fragments(
		facultyRows(c, deptID),
		components.PanelTitle(title, true),
		components.AddFacultyForm(deptID, lang, true),
	))
}

// AddFacultyNoDepartmentHTMX answers a form submitted before any selection
func AddFacultyNoDepartmentHTMX(c echo.Context) error {
	return alertOnly(c, panel.AlertWarning, tr(c, "panel.select_department_first"))
}

// AddFacultyHTMX validates the form like the panel does, adds the member and
// re-renders the rows
func AddFacultyHTMX(c echo.Context) error {
	deptID := departmentParam(c)
	lang := middleware.GetLocale(c)

	var input services.FacultyInput
	if err := c.Bind(&input); err != nil {
		return alertOnly(c, panel.AlertDanger, tr(c, "panel.add.error"))
	}

	fields := panel.FormFields{
		Name:        input.Name,
		Initials:    input.Initials,
		Designation: input.Designation,
		Phone:       input.Phone,
		Email:       input.Email,
	}.Trimmed()
	if verr := panel.ValidateForm(fields, lang); verr != nil {
		return alertOnly(c, panel.AlertWarning, verr.Message)
	}

	if _, err := addFaculty(c, deptID, input); err != nil {
		_, msg := addFacultyMessage(c, err)
		return alertOnly(c, panel.AlertDanger, msg)
	}

	c.Response().Header().Set("HX-Trigger", "facultyAdded")
	return render(c, http.StatusOK, fragments(
		facultyRows(c, deptID),
		components.AddFacultyForm(deptID, lang, true),
		components.Alert(panel.Alert{Kind: panel.AlertSuccess, Message: tr(c, "panel.add.success")}, true),
	))
}

// ToggleStatusHTMX flips a member's status from a row button
func ToggleStatusHTMX(c echo.Context) error {
	deptID := departmentParam(c)

	index, err := parseIndexString(c.FormValue("index"))
	if c.FormValue("index") == "" {
		err = errIndexRequired
	}
	if err != nil {
		return alertOnly(c, panel.AlertDanger, tr(c, "panel.toggle.error"))
	}

	faculty, _, err := toggleStatus(c, deptID, index, nil)
	if err != nil {
		return alertOnly(c, panel.AlertDanger, tr(c, "panel.toggle.error"))
	}

	message := tr(c, "panel.toggle.locked")
	if faculty.Active() {
		message = tr(c, "panel.toggle.unlocked")
	}

	return render(c, http.StatusOK, fragments(
		facultyRows(c, deptID),
		components.Alert(panel.Alert{Kind: panel.AlertSuccess, Message: message}, true),
	))
}
