package panel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) ListDepartments(ctx context.Context) ([]Department, error) {
	args := m.Called(ctx)
	departments, _ := args.Get(0).([]Department)
	return departments, args.Error(1)
}

func (m *mockAPI) ListFaculty(ctx context.Context, deptID string) ([]Record, error) {
	args := m.Called(ctx, deptID)
	records, _ := args.Get(0).([]Record)
	return records, args.Error(1)
}

func (m *mockAPI) AddFaculty(ctx context.Context, deptID string, fields FormFields) error {
	args := m.Called(ctx, deptID, fields)
	return args.Error(0)
}

func (m *mockAPI) ToggleStatus(ctx context.Context, deptID string, index int) (bool, error) {
	args := m.Called(ctx, deptID, index)
	return args.Bool(0), args.Error(1)
}

// recordingView keeps every call in order
type recordingView struct {
	mu      sync.Mutex
	calls   []string
	title   string
	rows    []Row
	alerts  []Alert
	focus   string
	visible bool
	toggle  Button
	loadErr *RequestError
}

func (v *recordingView) record(format string, args ...interface{}) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, fmt.Sprintf(format, args...))
}

func (v *recordingView) SetTitle(title string) {
	v.title = title
	v.record("title:%s", title)
}
func (v *recordingView) ShowLoading() { v.record("loading") }
func (v *recordingView) ShowEmpty() {
	v.rows = nil
	v.record("empty")
}
func (v *recordingView) ShowLoadError(err *RequestError) {
	v.loadErr = err
	v.record("load_error:%d", err.Status)
}
func (v *recordingView) RenderRows(rows []Row) {
	v.rows = rows
	v.record("rows:%d", len(rows))
}
func (v *recordingView) ShowAlert(alert Alert) {
	v.alerts = append(v.alerts, alert)
	v.record("alert:%s", alert.Kind)
}
func (v *recordingView) SetSubmitBusy(busy bool) { v.record("submit_busy:%t", busy) }
func (v *recordingView) SetToggleBusy(index int, busy bool) {
	v.record("toggle_busy:%d:%t", index, busy)
}
func (v *recordingView) SetFormVisible(visible bool, toggle Button) {
	v.visible = visible
	v.toggle = toggle
	v.record("form:%t", visible)
}
func (v *recordingView) ResetForm() { v.record("reset") }
func (v *recordingView) FocusField(field string) {
	v.focus = field
	v.record("focus:%s", field)
}

func (v *recordingView) lastAlert() Alert {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.alerts) == 0 {
		return Alert{}
	}
	return v.alerts[len(v.alerts)-1]
}

func fiveRecords() []Record {
	return []Record{
		{Name: "A", Initials: "A"},
		{Name: "B", Initials: "B"},
		{Name: "C", Initials: "C"},
		{Name: "D", Initials: "D"},
		{Name: "E", Initials: "E"},
	}
}

func TestSelectDepartmentEmptyList(t *testing.T) {
	api := new(mockAPI)
	view := &recordingView{}
	api.On("ListFaculty", mock.Anything, "CS101").Return([]Record{}, nil).Once()

	c := New(api, view)
	require.NoError(t, c.SelectDepartment(context.Background(), "CS101", "Computer Science"))

	assert.Equal(t, "Computer Science", view.title)
	assert.Equal(t, []string{"title:Computer Science", "loading", "empty"}, view.calls)
	snap := c.Snapshot()
	assert.Equal(t, StateLoaded, snap.State)
	assert.Empty(t, snap.Rows)
	assert.Equal(t, &Department{ID: "CS101", Name: "Computer Science"}, snap.Department)
	api.AssertExpectations(t)
}

func TestSelectDepartmentRendersRows(t *testing.T) {
	api := new(mockAPI)
	view := &recordingView{}
	api.On("ListFaculty", mock.Anything, "1").Return([]Record{
		{Name: "Ada", Initials: "AL"},
		{Name: "Bob", Initials: "BB", IsActive: boolPtr(false)},
	}, nil)

	c := New(api, view)
	require.NoError(t, c.SelectDepartment(context.Background(), "1", "Architecture"))

	require.Len(t, view.rows, 2)
	assert.Equal(t, "Active", view.rows[0].StatusLabel)
	assert.Equal(t, "Locked", view.rows[1].StatusLabel)
	assert.Equal(t, 1, view.rows[1].Index)
}

func TestSelectDepartmentLoadError(t *testing.T) {
	api := new(mockAPI)
	view := &recordingView{}
	api.On("ListFaculty", mock.Anything, "X").Return(nil, newStatusError(http.StatusInternalServerError, ""))

	c := New(api, view)
	err := c.SelectDepartment(context.Background(), "X", "Unknown")
	require.Error(t, err)

	require.NotNil(t, view.loadErr)
	assert.Equal(t, 500, view.loadErr.Status)
	assert.Equal(t, "Internal Server Error", view.loadErr.StatusText)
	assert.Equal(t, StateLoadError, c.Snapshot().State)
}

func TestSelectDepartmentTransportError(t *testing.T) {
	api := new(mockAPI)
	view := &recordingView{}
	api.On("ListFaculty", mock.Anything, "X").Return(nil, errors.New("connection refused"))

	c := New(api, view)
	require.Error(t, c.SelectDepartment(context.Background(), "X", "Unknown"))

	require.NotNil(t, view.loadErr)
	assert.Equal(t, 0, view.loadErr.Status)
	assert.EqualError(t, view.loadErr.Err, "connection refused")
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	api := new(mockAPI)
	view := &recordingView{}
	started := make(chan struct{})
	release := make(chan struct{})

	api.On("ListFaculty", mock.Anything, "A").Run(func(args mock.Arguments) {
		close(started)
		<-release
	}).Return([]Record{{Name: "Stale"}}, nil)
	api.On("ListFaculty", mock.Anything, "B").Return([]Record{{Name: "Fresh"}}, nil)

	c := New(api, view)

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.SelectDepartment(context.Background(), "A", "Dept A")
	}()
	<-started

	require.NoError(t, c.SelectDepartment(context.Background(), "B", "Dept B"))
	close(release)
	assert.ErrorIs(t, <-errCh, ErrSuperseded)

	snap := c.Snapshot()
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, "Fresh", snap.Rows[0].Name)
	assert.Equal(t, "B", snap.Department.ID)
	assert.Equal(t, StateLoaded, snap.State)
}

func TestAddFacultyWithoutDepartment(t *testing.T) {
	api := new(mockAPI)
	view := &recordingView{}

	c := New(api, view)
	err := c.AddFaculty(context.Background(), validForm())

	assert.ErrorIs(t, err, ErrNoDepartment)
	assert.Equal(t, Alert{Kind: AlertWarning, Message: "Please select a department first"}, view.lastAlert())
	api.AssertNotCalled(t, "AddFaculty", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddFacultyValidationBlocksRequest(t *testing.T) {
	api := new(mockAPI)
	view := &recordingView{}
	api.On("ListFaculty", mock.Anything, "CS101").Return([]Record{}, nil)

	c := New(api, view)
	require.NoError(t, c.SelectDepartment(context.Background(), "CS101", "Computer Science"))

	f := validForm()
	f.Phone = "  "
	err := c.AddFaculty(context.Background(), f)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldPhone, verr.Field)
	assert.Equal(t, FieldPhone, view.focus)
	assert.Equal(t, Alert{Kind: AlertWarning, Message: "Phone number is required"}, view.lastAlert())
	api.AssertNotCalled(t, "AddFaculty", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddFacultySuccess(t *testing.T) {
	api := new(mockAPI)
	view := &recordingView{}
	api.On("ListFaculty", mock.Anything, "CS101").Return([]Record{}, nil).Once()
	api.On("AddFaculty", mock.Anything, "CS101", FormFields{
		Name:        "Jane Doe",
		Initials:    "JD",
		Designation: "Professor",
		Phone:       "555-0100",
		Email:       "jane@uni.edu",
	}).Return(nil).Once()
	api.On("ListFaculty", mock.Anything, "CS101").Return([]Record{{Name: "Jane Doe", Initials: "JD"}}, nil).Once()

	c := New(api, view)
	require.NoError(t, c.SelectDepartment(context.Background(), "CS101", "Computer Science"))
	c.ToggleAddFacultyForm(nil)
	require.True(t, c.Snapshot().FormOpen)

	f := validForm()
	f.Name = "  Jane Doe  "
	require.NoError(t, c.AddFaculty(context.Background(), f))

	api.AssertExpectations(t)
	snap := c.Snapshot()
	assert.False(t, snap.FormOpen)
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, Alert{Kind: AlertSuccess, Message: "Faculty member added successfully!"}, view.lastAlert())
	assert.Contains(t, view.calls, "reset")
	assert.Equal(t, "submit_busy:false", view.calls[len(view.calls)-1])
}

func TestAddFacultyServerError(t *testing.T) {
	api := new(mockAPI)
	view := &recordingView{}
	api.On("ListFaculty", mock.Anything, "CS101").Return([]Record{}, nil).Once()
	api.On("AddFaculty", mock.Anything, "CS101", mock.Anything).
		Return(newStatusError(http.StatusBadRequest, "Missing required field: Phone")).Once()

	c := New(api, view)
	require.NoError(t, c.SelectDepartment(context.Background(), "CS101", "Computer Science"))
	require.Error(t, c.AddFaculty(context.Background(), validForm()))

	assert.Equal(t, Alert{Kind: AlertDanger, Message: "Missing required field: Phone"}, view.lastAlert())
	assert.Equal(t, "submit_busy:false", view.calls[len(view.calls)-1])
	api.AssertNumberOfCalls(t, "ListFaculty", 1)
}

func TestAddFacultyTransportErrorUsesDefaultMessage(t *testing.T) {
	api := new(mockAPI)
	view := &recordingView{}
	api.On("ListFaculty", mock.Anything, "CS101").Return([]Record{}, nil).Once()
	api.On("AddFaculty", mock.Anything, "CS101", mock.Anything).Return(&RequestError{Err: errors.New("eof")}).Once()

	c := New(api, view)
	require.NoError(t, c.SelectDepartment(context.Background(), "CS101", "Computer Science"))
	require.Error(t, c.AddFaculty(context.Background(), validForm()))

	assert.Equal(t, "Error adding faculty member", view.lastAlert().Message)
}

func TestToggleStatusLocks(t *testing.T) {
	api := new(mockAPI)
	view := &recordingView{}
	api.On("ListFaculty", mock.Anything, "CS101").Return(fiveRecords(), nil).Twice()
	api.On("ToggleStatus", mock.Anything, "CS101", 2).Return(false, nil).Once()

	c := New(api, view)
	require.NoError(t, c.SelectDepartment(context.Background(), "CS101", "Computer Science"))
	require.NoError(t, c.ToggleStatus(context.Background(), 2))

	api.AssertExpectations(t)
	api.AssertNumberOfCalls(t, "ListFaculty", 2)
	assert.Equal(t, Alert{Kind: AlertSuccess, Message: "Faculty member locked successfully!"}, view.lastAlert())
	assert.Contains(t, view.calls, "toggle_busy:2:true")
}

func TestToggleStatusUnlocks(t *testing.T) {
	api := new(mockAPI)
	view := &recordingView{}
	api.On("ListFaculty", mock.Anything, "CS101").Return(fiveRecords(), nil)
	api.On("ToggleStatus", mock.Anything, "CS101", 0).Return(true, nil)

	c := New(api, view)
	require.NoError(t, c.SelectDepartment(context.Background(), "CS101", "Computer Science"))
	require.NoError(t, c.ToggleStatus(context.Background(), 0))

	assert.Equal(t, "Faculty member unlocked successfully!", view.lastAlert().Message)
}

func TestToggleStatusFailureRestoresControl(t *testing.T) {
	api := new(mockAPI)
	view := &recordingView{}
	api.On("ListFaculty", mock.Anything, "CS101").Return(fiveRecords(), nil).Once()
	api.On("ToggleStatus", mock.Anything, "CS101", 9).Return(false, newStatusError(http.StatusNotFound, "Faculty not found"))

	c := New(api, view)
	require.NoError(t, c.SelectDepartment(context.Background(), "CS101", "Computer Science"))
	require.Error(t, c.ToggleStatus(context.Background(), 9))

	assert.Equal(t, Alert{Kind: AlertDanger, Message: "Error updating faculty status"}, view.lastAlert())
	assert.Contains(t, view.calls, "toggle_busy:9:false")
	api.AssertNumberOfCalls(t, "ListFaculty", 1)
}

func TestToggleStatusWithoutDepartmentIsNoop(t *testing.T) {
	api := new(mockAPI)
	view := &recordingView{}

	c := New(api, view)
	assert.NoError(t, c.ToggleStatus(context.Background(), 0))
	assert.Empty(t, view.calls)
	api.AssertNotCalled(t, "ToggleStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleAddFacultyForm(t *testing.T) {
	view := &recordingView{}
	c := New(new(mockAPI), view)

	c.ToggleAddFacultyForm(nil)
	assert.True(t, view.visible)
	assert.Equal(t, "Hide Form", view.toggle.Label)
	assert.Equal(t, "btn-outline-secondary", view.toggle.Style)
	assert.Equal(t, FieldName, view.focus)

	c.ToggleAddFacultyForm(nil)
	assert.False(t, view.visible)
	assert.Equal(t, "Add Faculty", view.toggle.Label)
	assert.Equal(t, "btn-primary", view.toggle.Style)

	show := false
	c.ToggleAddFacultyForm(&show)
	assert.False(t, c.Snapshot().FormOpen)
}

func TestControllerSpanish(t *testing.T) {
	view := &recordingView{}
	c := New(new(mockAPI), view, WithLang("es"))

	require.ErrorIs(t, c.AddFaculty(context.Background(), validForm()), ErrNoDepartment)
	assert.NotEqual(t, "Please select a department first", view.lastAlert().Message)
}
