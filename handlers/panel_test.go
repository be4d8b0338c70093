package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"faculty_directory_go/models"
	"faculty_directory_go/panel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingView keeps the last state pushed by the controller
type capturingView struct {
	rows    []panel.Row
	empty   bool
	alert   panel.Alert
	loadErr *panel.RequestError
	visible bool
	resets  int
}

func (v *capturingView) SetTitle(string) {}
func (v *capturingView) ShowLoading()    {}
func (v *capturingView) ShowEmpty() {
	v.empty = true
	v.rows = nil
}
func (v *capturingView) ShowLoadError(err *panel.RequestError) { v.loadErr = err }
func (v *capturingView) RenderRows(rows []panel.Row) {
	v.empty = false
	v.rows = rows
}
func (v *capturingView) ShowAlert(alert panel.Alert)                 { v.alert = alert }
func (v *capturingView) SetSubmitBusy(bool)                          {}
func (v *capturingView) SetToggleBusy(int, bool)                     {}
func (v *capturingView) SetFormVisible(visible bool, _ panel.Button) { v.visible = visible }
func (v *capturingView) ResetForm()                                  { v.resets++ }
func (v *capturingView) FocusField(string)                           {}

func TestPanelAgainstServer(t *testing.T) {
	database := setupTestDB(t)
	seedDepartment(t, database, "CS101", "Computer Science")
	seedDepartment(t, database, "MATH", "Mathematics",
		models.Faculty{Name: "A"}, models.Faculty{Name: "B"}, models.Faculty{Name: "C", IsActive: boolPtr(false)},
		models.Faculty{Name: "D"}, models.Faculty{Name: "E"},
	)

	srv := httptest.NewServer(setupEcho())
	defer srv.Close()

	api := panel.NewHTTPClient(srv.URL, srv.Client())
	view := &capturingView{}
	c := panel.New(api, view)
	ctx := context.Background()

	departments, err := api.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Len(t, departments, 2)

	// Empty department shows the empty state
	require.NoError(t, c.SelectDepartment(ctx, "CS101", "Computer Science"))
	assert.True(t, view.empty)
	assert.Equal(t, panel.StateLoaded, c.Snapshot().State)

	// Add re-fetches, clears and hides the form
	c.ToggleAddFacultyForm(nil)
	require.NoError(t, c.AddFaculty(ctx, panel.FormFields{
		Name:        "Jane Doe",
		Initials:    "JD",
		Designation: "Professor",
		Phone:       "555-0100",
		Email:       "jane@uni.edu",
	}))
	require.Len(t, view.rows, 1)
	assert.Equal(t, "Jane Doe", view.rows[0].Name)
	assert.Equal(t, "Faculty member added successfully!", view.alert.Message)
	assert.False(t, view.visible)
	assert.Equal(t, 1, view.resets)

	// Toggle index 2 of five rows
	require.NoError(t, c.SelectDepartment(ctx, "MATH", "Mathematics"))
	require.Len(t, view.rows, 5)
	assert.Equal(t, "Locked", view.rows[2].StatusLabel)

	require.NoError(t, c.ToggleStatus(ctx, 1))
	assert.Equal(t, "Faculty member locked successfully!", view.alert.Message)
	assert.False(t, view.rows[1].Active)

	require.NoError(t, c.ToggleStatus(ctx, 2))
	assert.Equal(t, "Faculty member unlocked successfully!", view.alert.Message)
	assert.True(t, view.rows[2].Active)

	// Server-side failure surfaces as a danger alert
	require.Error(t, c.ToggleStatus(ctx, 42))
	assert.Equal(t, panel.AlertDanger, view.alert.Kind)
	assert.Equal(t, "Error updating faculty status", view.alert.Message)
}
