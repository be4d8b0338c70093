package panel

import (
	"context"
	"errors"
	"sync"

	"faculty_directory_go/services/i18n"
)

// Controller drives the faculty panel: department selection, the faculty
// table, the add form and status toggles. It is safe for concurrent use.
type Controller struct {
	api  API
	view View
	lang string

	mu         sync.Mutex
	state      State
	department *Department
	rows       []Row
	formOpen   bool
	alert      *Alert
	loadErr    *RequestError
	generation uint64
	cancel     context.CancelFunc
}

// Option configures a Controller
type Option func(*Controller)

// WithLang sets the language of every message the controller shows
func WithLang(lang string) Option {
	return func(c *Controller) {
		c.lang = lang
	}
}

// New creates a controller with nothing selected
func New(api API, view View, opts ...Option) *Controller {
	c := &Controller{
		api:   api,
		view:  view,
		lang:  "en",
		state: StateNoSelection,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) t(key string) string {
	return i18n.Translate(c.lang, key)
}

// SelectDepartment makes id the current department and loads its faculty.
// A newer selection cancels this load; its late response is dropped and
// ErrSuperseded returned.
func (c *Controller) SelectDepartment(ctx context.Context, id, name string) error {
	c.mu.Lock()
	c.department = &Department{ID: id, Name: name}
	c.view.SetTitle(name)
	loadCtx, gen := c.beginLoad(ctx)
	c.mu.Unlock()

	return c.load(loadCtx, gen, id)
}

// beginLoad starts a new generation, cancelling the previous load. Callers
// hold c.mu.
func (c *Controller) beginLoad(ctx context.Context) (context.Context, uint64) {
	if c.cancel != nil {
		c.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.generation++

	c.state = StateLoading
	c.loadErr = nil
	c.view.ShowLoading()
	return loadCtx, c.generation
}

func (c *Controller) load(ctx context.Context, gen uint64, deptID string) error {
	records, err := c.api.ListFaculty(ctx, deptID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return ErrSuperseded
	}
	c.cancel()
	c.cancel = nil

	if err != nil {
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			reqErr = &RequestError{Err: err}
		}
		c.state = StateLoadError
		c.rows = nil
		c.loadErr = reqErr
		c.view.ShowLoadError(reqErr)
		return err
	}

	c.state = StateLoaded
	c.rows = Rows(records, c.lang)
	if len(c.rows) == 0 {
		c.view.ShowEmpty()
	} else {
		c.view.RenderRows(c.rows)
	}
	return nil
}

// reload re-fetches dept if it is still the current department
func (c *Controller) reload(ctx context.Context, dept Department) {
	c.mu.Lock()
	if c.department == nil || c.department.ID != dept.ID {
		c.mu.Unlock()
		return
	}
	loadCtx, gen := c.beginLoad(ctx)
	c.mu.Unlock()

	_ = c.load(loadCtx, gen, dept.ID)
}

// AddFaculty validates and submits the add form. Validation failures and a
// missing selection never reach the API.
func (c *Controller) AddFaculty(ctx context.Context, fields FormFields) error {
	c.mu.Lock()
	if c.department == nil {
		c.showAlert(AlertWarning, c.t("panel.select_department_first"))
		c.mu.Unlock()
		return ErrNoDepartment
	}
	dept := *c.department

	fields = fields.Trimmed()
	if verr := ValidateForm(fields, c.lang); verr != nil {
		c.showAlert(AlertWarning, verr.Message)
		c.view.FocusField(verr.Field)
		c.mu.Unlock()
		return verr
	}
	c.view.SetSubmitBusy(true)
	c.mu.Unlock()

	err := c.api.AddFaculty(ctx, dept.ID, fields)
	if err != nil {
		c.mu.Lock()
		msg := c.t("panel.add.error")
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.Message != "" {
			msg = reqErr.Message
		}
		c.showAlert(AlertDanger, msg)
		c.view.SetSubmitBusy(false)
		c.mu.Unlock()
		return err
	}

	c.reload(ctx, dept)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.ResetForm()
	c.setForm(false)
	c.showAlert(AlertSuccess, c.t("panel.add.success"))
	c.view.SetSubmitBusy(false)
	return nil
}

// ToggleStatus flips the status of the row at index. Without a selected
// department it does nothing.
func (c *Controller) ToggleStatus(ctx context.Context, index int) error {
	c.mu.Lock()
	if c.department == nil {
		c.mu.Unlock()
		return nil
	}
	dept := *c.department
	c.view.SetToggleBusy(index, true)
	c.mu.Unlock()

	active, err := c.api.ToggleStatus(ctx, dept.ID, index)
	if err != nil {
		c.mu.Lock()
		c.view.SetToggleBusy(index, false)
		c.showAlert(AlertDanger, c.t("panel.toggle.error"))
		c.mu.Unlock()
		return err
	}

	c.reload(ctx, dept)

	c.mu.Lock()
	defer c.mu.Unlock()
	if active {
		c.showAlert(AlertSuccess, c.t("panel.toggle.unlocked"))
	} else {
		c.showAlert(AlertSuccess, c.t("panel.toggle.locked"))
	}
	return nil
}

// ToggleAddFacultyForm opens or closes the add form. A nil show flips it.
func (c *Controller) ToggleAddFacultyForm(show *bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	open := !c.formOpen
	if show != nil {
		open = *show
	}
	c.setForm(open)
}

func (c *Controller) setForm(open bool) {
	c.formOpen = open
	c.view.SetFormVisible(open, FormButton(open, c.lang))
	if open {
		c.view.FocusField(FieldName)
	}
}

func (c *Controller) showAlert(kind AlertKind, message string) {
	c.alert = &Alert{Kind: kind, Message: message}
	c.view.ShowAlert(*c.alert)
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		State:    c.state,
		FormOpen: c.formOpen,
		LoadErr:  c.loadErr,
	}
	if c.department != nil {
		dept := *c.department
		s.Department = &dept
	}
	if c.alert != nil {
		alert := *c.alert
		s.Alert = &alert
	}
	if c.rows != nil {
		s.Rows = append([]Row(nil), c.rows...)
	}
	return s
}
